package ward

import "context"

// Aggregates are the raw counts the metrics snapshot is computed from.
type Aggregates struct {
	ClabsiCases          int
	TotalCentralLineDays int
	DressingChangeCount  int
	CatheterChangeCount  int
}

// Repository collects the ward-wide aggregates in one pass.
type Repository interface {
	Collect(ctx context.Context) (*Aggregates, error)
}
