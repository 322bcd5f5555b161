package queries

import (
	"errors"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrGetServiceTrendQueryIsNotConstructed = errors.New(
		"GetServiceTrendQuery must be created via NewGetServiceTrendQuery constructor",
	)
)

const (
	minTrendYear = 2000
	maxTrendYear = 2999
)

// GetServiceTrendQuery counts the service executions of each month of a year.
type GetServiceTrendQuery struct {
	year  int
	guard guard.ConstructorGuard
}

func NewGetServiceTrendQuery(year int) (GetServiceTrendQuery, error) {
	if year < minTrendYear || year > maxTrendYear {
		return GetServiceTrendQuery{}, errs.NewValueIsOutOfRangeError("year", year, minTrendYear, maxTrendYear)
	}
	return GetServiceTrendQuery{year: year, guard: guard.NewConstructorGuard()}, nil
}

func (q GetServiceTrendQuery) Validate() error {
	return q.guard.Validate(ErrGetServiceTrendQueryIsNotConstructed)
}

func (q GetServiceTrendQuery) Year() int { return q.year }

// GetServiceTrendQueryResponse holds execution counts, January first.
type GetServiceTrendQueryResponse struct {
	Year   int
	Months [12]int64
}
