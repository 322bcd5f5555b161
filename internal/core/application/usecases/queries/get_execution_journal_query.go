package queries

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrGetExecutionJournalQueryIsNotConstructed = errors.New(
		"GetExecutionJournalQuery must be created via NewGetExecutionJournalQuery constructor",
	)
)

// GetExecutionJournalQuery retrieves recorded executions grouped by calendar day.
// A zero from or to leaves that side of the window open; to is exclusive.
type GetExecutionJournalQuery struct {
	from  time.Time
	to    time.Time
	guard guard.ConstructorGuard
}

func NewGetExecutionJournalQuery(from, to time.Time) (GetExecutionJournalQuery, error) {
	if !from.IsZero() && !to.IsZero() && !from.Before(to) {
		return GetExecutionJournalQuery{}, errs.NewValueIsInvalidErrorWithCause(
			"to", fmt.Errorf("%s is not after %s", to.Format(time.RFC3339), from.Format(time.RFC3339)),
		)
	}
	return GetExecutionJournalQuery{from: from, to: to, guard: guard.NewConstructorGuard()}, nil
}

func (q GetExecutionJournalQuery) Validate() error {
	return q.guard.Validate(ErrGetExecutionJournalQueryIsNotConstructed)
}

func (q GetExecutionJournalQuery) From() time.Time { return q.from }
func (q GetExecutionJournalQuery) To() time.Time { return q.to }

// JournalEntry is one execution with the label of its order.
type JournalEntry struct {
	ItemView
	OrderInfo          string
	ServiceDescription string
}

// GetExecutionJournalQueryResponse is one day of the journal, newest day first.
// Total is the sum of the day's item prices rounded to 2 places.
type GetExecutionJournalQueryResponse struct {
	Day     time.Time
	Total   decimal.Decimal
	Entries []JournalEntry
}
