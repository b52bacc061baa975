package log

import (
	"context"
	"log/slog"
	"net/http"
)

// ContextKey type for context keys
type ContextKey string

const (
	// LoggerContextKey is the context key for the logger
	LoggerContextKey ContextKey = "logger"
)

// NewContext returns a copy of ctx carrying logger.
func NewContext(ctx context.Context, logger *Logger) context.Context {
	return context.WithValue(ctx, LoggerContextKey, logger)
}

// Middleware creates HTTP middleware that adds a logger to the request context
func Middleware(logger *Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), logger)))
		})
	}
}

// FromContext extracts a logger from the request context
func FromContext(ctx context.Context) *Logger {
	if logger, ok := ctx.Value(LoggerContextKey).(*Logger); ok {
		return logger
	}
	// Return default logger if not found
	return &Logger{
		Logger:    slog.Default(),
		component: "unknown",
	}
}

// StructuredLogger provides domain-level logging helpers
type StructuredLogger struct {
	logger *Logger
}

// NewStructuredLogger creates a new structured logger
func NewStructuredLogger(logger *Logger) *StructuredLogger {
	return &StructuredLogger{
		logger: logger,
	}
}

// LogSplit logs a computed split
func (sl *StructuredLogger) LogSplit(ctx context.Context, amountCents int64, parts int) {
	fields := NewFields().
		WithSplit(amountCents, parts).
		WithOperation(OpSplit)

	sl.logger.WithComponent(ComponentSplit).DebugContext(ctx, "Amount split", fields.ToSlice()...)
}

// LogExpenseSplit logs an expense built from an even split
func (sl *StructuredLogger) LogExpenseSplit(ctx context.Context, concept string, amountCents, payeeID int64, parts int, messageID string) {
	fields := NewFields().
		WithExpense(concept, amountCents, payeeID, parts).
		WithOperation(OpSplit).
		ToSlice()

	if messageID != "" {
		fields = append(fields, FieldMessageID, messageID)
	}

	sl.logger.WithComponent(ComponentSplit).InfoContext(ctx, "Expense split successfully", fields...)
}

// LogError logs an error with structured context
func (sl *StructuredLogger) LogError(ctx context.Context, msg string, err error, component string, operation string, fields LogFields) {
	if fields == nil {
		fields = NewFields()
	}
	allFields := fields.
		WithError(err).
		WithOperation(operation)

	sl.logger.WithComponent(component).ErrorContext(ctx, msg, allFields.ToSlice()...)
}
