package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/auburus/expense-splitter/internal/core"
	applog "github.com/auburus/expense-splitter/internal/log"
	"github.com/auburus/expense-splitter/internal/services"
)

type splitRequest struct {
	Amount   *decimal.Decimal `json:"amount"`
	Parts    int              `json:"parts"`
	Locale   string           `json:"locale,omitempty"`
	Currency string           `json:"currency,omitempty"`
}

type splitResponse struct {
	Amount    core.Money   `json:"amount"`
	Parts     int          `json:"parts"`
	Shares    []core.Money `json:"shares"`
	Formatted []string     `json:"formatted"`
}

type formatResponse struct {
	Amount    string `json:"amount"`
	Locale    string `json:"locale"`
	Currency  string `json:"currency"`
	Formatted string `json:"formatted"`
}

type colorResponse struct {
	ID    int    `json:"id"`
	Color string `json:"color"`
}

type createExpenseRequest struct {
	Concept      string      `json:"concept"`
	Amount       json.Number `json:"amount"`
	Payee        core.User   `json:"payee"`
	Participants []core.User `json:"participants"`
}

type shareView struct {
	Participant core.User  `json:"participant"`
	Amount      core.Money `json:"amount"`
	Formatted   string     `json:"formatted"`
	Color       string     `json:"color"`
}

type createExpenseResponse struct {
	ID      string       `json:"id,omitempty"`
	Expense core.Expense `json:"expense"`
	Shares  []shareView  `json:"shares"`
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	NewJSONResponse().Body(map[string]string{"status": "ok"}).Write(w)
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	publishing := "disabled"
	if s.expenses.PublishingEnabled() {
		publishing = "enabled"
	}
	NewJSONResponse().Body(map[string]string{
		"status":     "ready",
		"publishing": publishing,
	}).Write(w)
}

// handleSplit divides an amount into fair shares.
func (s *Server) handleSplit(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	logger := applog.FromContext(r.Context())

	var req splitRequest
	if err := DecodeJSONBody(w, r, &req); err != nil {
		logger.WarnContext(r.Context(), "Invalid split request", applog.FieldError, err)
		BadRequestError(err.Error()).Write(w)
		return
	}
	if req.Amount == nil {
		BadRequestError("amount is required").Write(w)
		return
	}

	total, err := core.MoneyFromDecimal(*req.Amount)
	if err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}
	if req.Parts > core.MaxParts {
		UnprocessableEntityError(fmt.Sprintf("parts must be at most %d", core.MaxParts)).Write(w)
		return
	}

	formatter, err := s.formatterFor(FormatParams{Locale: req.Locale, Currency: req.Currency})
	if err != nil {
		UnprocessableEntityError(err.Error()).Write(w)
		return
	}

	shares, err := total.Split(req.Parts)
	if err != nil {
		UnprocessableEntityError(err.Error()).Write(w)
		return
	}
	s.events.LogSplit(r.Context(), total.Cents, req.Parts)

	NewJSONResponse().Body(splitResponse{
		Amount:    total,
		Parts:     req.Parts,
		Shares:    shares,
		Formatted: formatAll(formatter, shares),
	}).Write(w)
}

// handleFormat renders a single amount for a locale and currency.
func (s *Server) handleFormat(w http.ResponseWriter, r *http.Request) {
	if resp := RequireGET(r); resp != nil {
		resp.Write(w)
		return
	}
	query := r.URL.Query()

	amount, err := core.ParseSignedAmount(query.Get("amount"))
	if err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}
	params, err := ParseFormatParams(query)
	if err != nil {
		UnprocessableEntityError(err.Error()).Write(w)
		return
	}
	formatter, err := s.formatterFor(params)
	if err != nil {
		UnprocessableEntityError(err.Error()).Write(w)
		return
	}

	NewJSONResponse().Body(formatResponse{
		Amount:    amount.String(),
		Locale:    formatter.Locale(),
		Currency:  formatter.Currency(),
		Formatted: formatter.FormatDecimal(amount),
	}).Write(w)
}

// handleColor maps an id to its palette color.
func (s *Server) handleColor(w http.ResponseWriter, r *http.Request) {
	if resp := RequireGET(r); resp != nil {
		resp.Write(w)
		return
	}
	id, err := strconv.Atoi(r.PathValue("n"))
	if err != nil {
		BadRequestError("id must be an integer").Write(w)
		return
	}
	NewJSONResponse().Body(colorResponse{ID: id, Color: core.PaletteColor(id)}).Write(w)
}

// handleCreateExpense splits an expense evenly among its participants and
// publishes the result when a publisher is configured.
func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	ctx := r.Context()

	var req createExpenseRequest
	if err := DecodeJSONBody(w, r, &req); err != nil {
		applog.FromContext(ctx).WarnContext(ctx, "Invalid expense request", applog.FieldError, err)
		BadRequestError(err.Error()).Write(w)
		return
	}
	if req.Amount == "" {
		BadRequestError("amount is required").Write(w)
		return
	}
	amount, err := core.ParseAmount(req.Amount.String())
	if err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}
	total, err := core.MoneyFromDecimal(amount)
	if err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}

	req.Payee.Name = sanitizeInput(req.Payee.Name)
	for i := range req.Participants {
		req.Participants[i].Name = sanitizeInput(req.Participants[i].Name)
	}

	exp, messageID, err := s.expenses.SplitEvenly(ctx, services.EvenExpenseRequest{
		Amount:       total,
		Concept:      sanitizeInput(req.Concept),
		Payee:        req.Payee,
		Participants: req.Participants,
	})
	switch {
	case errors.Is(err, services.ErrPublish):
		BadGatewayError("failed to publish expense").Write(w)
		return
	case errors.Is(err, core.ErrInvalidAmount):
		BadRequestError(err.Error()).Write(w)
		return
	case err != nil:
		UnprocessableEntityError(err.Error()).Write(w)
		return
	}

	shares := make([]shareView, len(exp.Split))
	for i, sp := range exp.Split {
		shares[i] = shareView{
			Participant: sp.Participant,
			Amount:      sp.Amount,
			Formatted:   s.formatter.FormatMoney(sp.Amount),
			Color:       core.PaletteColor(int(sp.Participant.ID)),
		}
	}

	NewJSONResponse().
		Status(http.StatusCreated).
		Body(createExpenseResponse{ID: messageID, Expense: exp, Shares: shares}).
		Write(w)
}
