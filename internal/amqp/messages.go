package amqp

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/auburus/expense-splitter/internal/core"
)

// ExpenseSplitMessage announces an expense whose amount has been divided
// among its participants. Amounts are in cents.
type ExpenseSplitMessage struct {
	ID          string       `json:"id"`
	Concept     string       `json:"concept"`
	AmountCents int64        `json:"amount_cents"`
	Payee       core.User    `json:"payee"`
	Splits      []SplitEntry `json:"splits"`
	Timestamp   time.Time    `json:"timestamp"`
}

type SplitEntry struct {
	Participant core.User `json:"participant"`
	AmountCents int64     `json:"amount_cents"`
}

// NewExpenseSplitMessage creates a message with a fresh UUID
func NewExpenseSplitMessage(exp core.Expense) *ExpenseSplitMessage {
	msg := &ExpenseSplitMessage{
		ID:          uuid.NewString(),
		Concept:     exp.Concept,
		AmountCents: exp.Amount.Cents,
		Payee:       exp.Payee,
		Splits:      make([]SplitEntry, len(exp.Split)),
		Timestamp:   time.Now().UTC(),
	}
	for i, s := range exp.Split {
		msg.Splits[i] = SplitEntry{Participant: s.Participant, AmountCents: s.Amount.Cents}
	}
	return msg
}

// Expense converts the message back into the domain record
func (m *ExpenseSplitMessage) Expense() core.Expense {
	exp := core.Expense{
		Amount:  core.Money{Cents: m.AmountCents},
		Concept: m.Concept,
		Payee:   m.Payee,
		Split:   make([]core.Split, len(m.Splits)),
	}
	for i, s := range m.Splits {
		exp.Split[i] = core.Split{Amount: core.Money{Cents: s.AmountCents}, Participant: s.Participant}
	}
	return exp
}

// ToJSON converts the message to JSON bytes
func (m *ExpenseSplitMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ExpenseSplitMessageFromJSON creates a message from JSON bytes
func ExpenseSplitMessageFromJSON(data []byte) (*ExpenseSplitMessage, error) {
	var msg ExpenseSplitMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
