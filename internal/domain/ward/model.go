// Package ward aggregates the surveillance numbers an infection-control team
// reports: CLABSI cases, central-line days and the rate per 1000 line-days.
package ward

import "time"

// Metrics is one ward-level surveillance snapshot.
type Metrics struct {
	WardID               string    `json:"ward_id"`
	Date                 string    `json:"date"`
	ClabsiCases          int       `json:"clabsi_cases"`
	TotalCentralLineDays int       `json:"total_central_line_days"`
	DressingChangeCount  int       `json:"dressing_change_count"`
	CatheterChangeCount  int       `json:"catheter_change_count"`
	ClabsiRate           float64   `json:"clabsi_rate"`
	GeneratedAt          time.Time `json:"generated_at"`
}
