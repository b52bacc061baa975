package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldRequestID   = "request_id"
	FieldClientIP    = "client_ip"
	FieldMethod      = "method"
	FieldPath        = "path"
	FieldStatusCode  = "status_code"
	FieldDuration    = "duration_ms"
	FieldSuccess     = "success"
	FieldError       = "error"
	FieldOperation   = "operation"
	FieldAmountCents = "amount_cents"
	FieldParts       = "parts"
	FieldConcept     = "concept"
	FieldPayee       = "payee_id"
	FieldLocale      = "locale"
	FieldCurrency    = "currency"
	FieldMessageID   = "message_id"
)

// Components defines standard component names
const (
	ComponentApp       = "app"
	ComponentHTTP      = "http"
	ComponentSplit     = "split"
	ComponentFormat    = "format"
	ComponentAMQP      = "amqp"
	ComponentSecurity  = "security"
	ComponentRateLimit = "rate_limit"
	ComponentTrace     = "trace"
)

// Operations defines standard operation names
const (
	OpSplit    = "split"
	OpFormat   = "format"
	OpColor    = "color"
	OpPublish  = "publish"
	OpValidate = "validate"
	OpParse    = "parse"
	OpShutdown = "shutdown"
	OpStartup  = "startup"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithComponent adds component field
func (f LogFields) WithComponent(component string) LogFields {
	f[FieldComponent] = component
	return f
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithSplit adds split-related fields
func (f LogFields) WithSplit(amountCents int64, parts int) LogFields {
	f[FieldAmountCents] = amountCents
	f[FieldParts] = parts
	return f
}

// WithExpense adds expense-related fields
func (f LogFields) WithExpense(concept string, amountCents int64, payeeID int64, parts int) LogFields {
	f[FieldConcept] = concept
	f[FieldPayee] = payeeID
	return f.WithSplit(amountCents, parts)
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
