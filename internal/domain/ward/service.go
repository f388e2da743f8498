package ward

import (
	"context"
	"time"
)

type Service struct {
	repo        Repository
	defaultWard string
}

func NewService(repo Repository, defaultWard string) *Service {
	return &Service{repo: repo, defaultWard: defaultWard}
}

// GetMetrics assembles the surveillance snapshot for a ward and date,
// defaulting to the configured ward and today. The CLABSI rate is expressed
// per 1000 central-line days, zero when no line-days have accrued.
func (s *Service) GetMetrics(ctx context.Context, wardID, date string) (*Metrics, error) {
	if wardID == "" {
		wardID = s.defaultWard
	}
	now := time.Now()
	if date == "" {
		date = now.Format("2006-01-02")
	}

	agg, err := s.repo.Collect(ctx)
	if err != nil {
		return nil, err
	}

	m := &Metrics{
		WardID:               wardID,
		Date:                 date,
		ClabsiCases:          agg.ClabsiCases,
		TotalCentralLineDays: agg.TotalCentralLineDays,
		DressingChangeCount:  agg.DressingChangeCount,
		CatheterChangeCount:  agg.CatheterChangeCount,
		GeneratedAt:          now,
	}
	if m.TotalCentralLineDays > 0 {
		m.ClabsiRate = float64(m.ClabsiCases) / float64(m.TotalCentralLineDays) * 1000
	}
	return m, nil
}
