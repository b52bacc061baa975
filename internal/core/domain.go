package core

import (
	"errors"
	"fmt"
	"strings"
)

type (
	// Money is an amount in minor units (cents).
	Money struct {
		Cents int64
	}

	// User is anyone who pays for or shares an expense.
	User struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}

	// Split is one participant's share of an expense.
	Split struct {
		Amount      Money `json:"amount"`
		Participant User  `json:"participant"`
	}

	// Expense is a payment by Payee shared among the Split participants.
	// The split amounts add up to Amount.
	Expense struct {
		Amount  Money   `json:"amount"`
		Concept string  `json:"concept"`
		Payee   User    `json:"payee"`
		Split   []Split `json:"split"`
	}

	// Debt records what one participant paid and received.
	Debt struct {
		Participant User  `json:"participant"`
		Paid        Money `json:"paid"`
		Received    Money `json:"received"`
	}

	// Transfer moves Amount from Src to Dst.
	Transfer struct {
		Src    User  `json:"src"`
		Dst    User  `json:"dst"`
		Amount Money `json:"amount"`
	}
)

var (
	ErrInvalidArgument      = errors.New("invalid argument")
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrEmptyName            = errors.New("empty user name")
	ErrEmptyConcept         = errors.New("empty concept")
	ErrNoParticipants       = errors.New("no participants")
	ErrSplitMismatch        = errors.New("split amounts do not add up to expense amount")
	ErrSelfTransfer         = errors.New("transfer source and destination are the same user")
	ErrConceptTooLong       = errors.New("concept too long (max 200 characters)")
	ErrDuplicateParticipant = errors.New("participant appears more than once")
)

func (u User) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// NewEvenExpense builds an expense paid by payee and shared evenly among
// participants. Leftover cents go to the first participants in order.
func NewEvenExpense(amount Money, concept string, payee User, participants []User) (Expense, error) {
	if len(participants) == 0 {
		return Expense{}, ErrNoParticipants
	}
	shares, err := amount.Split(len(participants))
	if err != nil {
		return Expense{}, err
	}
	exp := Expense{
		Amount:  amount,
		Concept: concept,
		Payee:   payee,
		Split:   make([]Split, len(participants)),
	}
	for i, p := range participants {
		exp.Split[i] = Split{Amount: shares[i], Participant: p}
	}
	if err := exp.Validate(); err != nil {
		return Expense{}, err
	}
	return exp, nil
}

func (e Expense) Validate() error {
	if len(strings.TrimSpace(e.Concept)) == 0 {
		return ErrEmptyConcept
	}
	if len(e.Concept) > 200 {
		return ErrConceptTooLong
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if err := e.Payee.Validate(); err != nil {
		return fmt.Errorf("payee: %w", err)
	}
	if len(e.Split) == 0 {
		return ErrNoParticipants
	}

	seen := make(map[int64]struct{}, len(e.Split))
	var total Money
	for _, s := range e.Split {
		if err := s.Participant.Validate(); err != nil {
			return fmt.Errorf("participant %d: %w", s.Participant.ID, err)
		}
		if _, dup := seen[s.Participant.ID]; dup {
			return fmt.Errorf("%w: %d", ErrDuplicateParticipant, s.Participant.ID)
		}
		seen[s.Participant.ID] = struct{}{}
		if s.Amount.Cents < 0 {
			return ErrInvalidAmount
		}
		total = total.Add(s.Amount)
	}
	if total != e.Amount {
		return fmt.Errorf("%w: %s != %s", ErrSplitMismatch, total, e.Amount)
	}
	return nil
}

// ShareOf returns the amount owed by the given user, zero if absent.
func (e Expense) ShareOf(userID int64) Money {
	for _, s := range e.Split {
		if s.Participant.ID == userID {
			return s.Amount
		}
	}
	return Money{}
}

// Net is what the participant paid minus what they received.
func (d Debt) Net() Money {
	return d.Paid.Sub(d.Received)
}

func (t Transfer) Validate() error {
	if err := t.Src.Validate(); err != nil {
		return fmt.Errorf("src: %w", err)
	}
	if err := t.Dst.Validate(); err != nil {
		return fmt.Errorf("dst: %w", err)
	}
	if t.Src.ID == t.Dst.ID {
		return ErrSelfTransfer
	}
	return t.Amount.Validate()
}
