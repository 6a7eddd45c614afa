package models

import (
	"fmt"
	"time"
)

// InsufficientDataError reports that a sequence is shorter than the
// lookback an operation requires. Deterministic: the same input always
// fails the same way, so callers should fix the input, not retry.
type InsufficientDataError struct {
	Op   string
	Need int
	Have int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("%s: insufficient data: need %d bars, have %d", e.Op, e.Need, e.Have)
}

// InvalidBarError reports a bar that violates the OHLC invariant at the
// ingestion boundary. The bar is rejected, never silently corrected.
type InvalidBarError struct {
	Date   time.Time
	Reason string
}

func (e *InvalidBarError) Error() string {
	return fmt.Sprintf("invalid bar at %s: %s", e.Date.Format("2006-01-02"), e.Reason)
}
