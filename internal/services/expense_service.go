package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/auburus/expense-splitter/internal/core"
	applog "github.com/auburus/expense-splitter/internal/log"
)

// Publisher announces expenses once they have been split.
type Publisher interface {
	PublishExpenseSplit(ctx context.Context, exp core.Expense) (string, error)
}

// ErrPublish wraps every failure to hand an expense to the publisher.
var ErrPublish = errors.New("publish expense split")

// EvenExpenseRequest describes an expense to be shared evenly.
type EvenExpenseRequest struct {
	Amount       core.Money
	Concept      string
	Payee        core.User
	Participants []core.User
}

// ExpenseService builds split expenses and publishes them when a publisher
// is configured.
type ExpenseService struct {
	publisher Publisher
	events    *applog.StructuredLogger
}

// NewExpenseService accepts a nil publisher, which disables publishing.
func NewExpenseService(publisher Publisher, logger *applog.Logger) *ExpenseService {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	return &ExpenseService{
		publisher: publisher,
		events:    applog.NewStructuredLogger(logger),
	}
}

func (s *ExpenseService) PublishingEnabled() bool {
	return s.publisher != nil
}

// SplitEvenly validates the request, splits the amount among the
// participants and publishes the result. It returns the expense and the
// published message id, empty when publishing is disabled.
func (s *ExpenseService) SplitEvenly(ctx context.Context, req EvenExpenseRequest) (core.Expense, string, error) {
	exp, err := core.NewEvenExpense(req.Amount, req.Concept, req.Payee, req.Participants)
	if err != nil {
		return core.Expense{}, "", err
	}

	var messageID string
	if s.publisher != nil {
		messageID, err = s.publisher.PublishExpenseSplit(ctx, exp)
		if err != nil {
			s.events.LogError(ctx, "Failed to publish expense split", err, applog.ComponentAMQP, applog.OpPublish,
				applog.NewFields().WithExpense(exp.Concept, exp.Amount.Cents, exp.Payee.ID, len(exp.Split)))
			return exp, "", fmt.Errorf("%w: %w", ErrPublish, err)
		}
	}

	s.events.LogExpenseSplit(ctx, exp.Concept, exp.Amount.Cents, exp.Payee.ID, len(exp.Split), messageID)
	return exp, messageID, nil
}

// Close closes the publisher when it holds resources.
func (s *ExpenseService) Close() error {
	if c, ok := s.publisher.(io.Closer); ok {
		if err := c.Close(); err != nil {
			return fmt.Errorf("close publisher: %w", err)
		}
	}
	return nil
}
