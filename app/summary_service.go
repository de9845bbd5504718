package app

import (
	"context"
	"sort"

	"boothpulse/domain/core"
	"boothpulse/ports"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// SummaryService aggregates persisted booth voter counts into the
// per-constituency figures the dashboards show
type SummaryService struct {
	repo ports.SummaryRepository
}

// ConstituencySummary is the aggregate for one constituency
type ConstituencySummary struct {
	ConstituencyCode string  `json:"constituency_code"`
	BoothCount       int     `json:"booth_count"`
	TotalVoters      int64   `json:"total_voters"`
	MeanVoters       float64 `json:"mean_voters"`
	StdDevVoters     float64 `json:"stddev_voters"`
	MedianVoters     float64 `json:"median_voters"`
	P90Voters        float64 `json:"p90_voters"`
}

// NewSummaryService creates a voter summary service
func NewSummaryService(repo ports.SummaryRepository) *SummaryService {
	return &SummaryService{repo: repo}
}

// VoterSummary computes per-constituency booth statistics for one org.
// Booths without a constituency code are grouped under the empty key.
func (s *SummaryService) VoterSummary(ctx context.Context, orgID core.OrgID) ([]ConstituencySummary, error) {
	rows, err := s.repo.BoothVoterCounts(ctx, orgID)
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]float64)
	for _, row := range rows {
		grouped[row.ConstituencyCode] = append(grouped[row.ConstituencyCode], row.TotalVoters)
	}

	codes := make([]string, 0, len(grouped))
	for code := range grouped {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	summaries := make([]ConstituencySummary, 0, len(codes))
	for _, code := range codes {
		counts := grouped[code]

		var total int64
		for _, c := range counts {
			total += int64(c)
		}

		median, err := stats.Median(stats.Float64Data(counts))
		if err != nil {
			median = 0
		}
		p90, err := stats.Percentile(stats.Float64Data(counts), 90)
		if err != nil {
			p90 = 0
		}

		summaries = append(summaries, ConstituencySummary{
			ConstituencyCode: code,
			BoothCount:       len(counts),
			TotalVoters:      total,
			MeanVoters:       stat.Mean(counts, nil),
			StdDevVoters:     stdDevOrZero(counts),
			MedianVoters:     median,
			P90Voters:        p90,
		})
	}

	return summaries, nil
}

// stdDevOrZero avoids gonum's NaN for single-sample groups
func stdDevOrZero(counts []float64) float64 {
	if len(counts) < 2 {
		return 0
	}
	return stat.StdDev(counts, nil)
}
