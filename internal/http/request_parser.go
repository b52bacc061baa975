// Package http provides HTTP server and handler implementations.
//
// This file implements utilities for parsing and validating HTTP request data.
// It keeps body decoding, query extraction and method checks in one place so
// handlers only deal with typed values.

package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

var errEmptyBody = errors.New("request body is empty")

// DecodeJSONBody decodes a single JSON object from the request body into dst.
// Unknown fields and trailing data are rejected.
func DecodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("request body must contain a single JSON object")
	}
	return nil
}

// FormatParams holds the formatting overrides accepted in query strings.
type FormatParams struct {
	Locale   string
	Currency string
	Digits   *int
}

// ParseFormatParams extracts locale, currency and digits from query
// parameters. Missing values are left empty so the server defaults apply.
func ParseFormatParams(query url.Values) (FormatParams, error) {
	params := FormatParams{
		Locale:   strings.TrimSpace(query.Get("locale")),
		Currency: strings.TrimSpace(query.Get("currency")),
	}
	if v := strings.TrimSpace(query.Get("digits")); v != "" {
		d, err := strconv.Atoi(v)
		if err != nil || d < 0 {
			return params, fmt.Errorf("invalid digits %q", v)
		}
		params.Digits = &d
	}
	return params, nil
}

// RequireMethod checks if the request method matches the expected method(s).
// Returns an error response builder if the method doesn't match.
func RequireMethod(r *http.Request, methods ...string) *JSONResponseBuilder {
	for _, m := range methods {
		if r.Method == m {
			return nil
		}
	}
	return MethodNotAllowedError(strings.Join(methods, ", "))
}

// RequirePOST is a convenience function for POST-only handlers.
func RequirePOST(r *http.Request) *JSONResponseBuilder {
	return RequireMethod(r, http.MethodPost)
}

// RequireGET is a convenience function for read-only handlers.
func RequireGET(r *http.Request) *JSONResponseBuilder {
	return RequireMethod(r, http.MethodGet, http.MethodHead)
}
