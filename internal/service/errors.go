package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ting-32/noodle/internal/planning"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrStoreClosed = errors.New("store is closed on that date")
)

// ConflictError is returned by SubmitOrder when some rows duplicate existing
// orders. Nothing was admitted; resubmit with override to admit every row.
type ConflictError struct {
	Date      string
	StoreName string
	Rows      []planning.CandidateRow
}

func (e *ConflictError) Error() string {
	items := make([]string, 0, len(e.Rows))
	for _, r := range e.Rows {
		items = append(items, r.ItemName)
	}
	return fmt.Sprintf("%s already has orders on %s for: %s", e.StoreName, e.Date, strings.Join(items, ", "))
}

func IsConflict(err error) bool {
	var c *ConflictError
	return errors.As(err, &c)
}
