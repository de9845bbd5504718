package ports

import (
	"context"

	"boothpulse/domain/core"
)

// BoothVoterRow is one booth's voter counts grouped under its constituency
type BoothVoterRow struct {
	ConstituencyCode string  `db:"constituency_code" json:"constituency_code"`
	BoothNumber      string  `db:"booth_number" json:"booth_number"`
	TotalVoters      float64 `db:"total_voters" json:"total_voters"`
}

// SummaryRepository reads already-persisted booth rows for aggregation
type SummaryRepository interface {
	BoothVoterCounts(ctx context.Context, orgID core.OrgID) ([]BoothVoterRow, error)
}
