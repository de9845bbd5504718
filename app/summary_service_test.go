package app

import (
	"context"
	"errors"
	"testing"

	"boothpulse/domain/core"
	"boothpulse/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSummaryRepository struct {
	mock.Mock
}

func (m *MockSummaryRepository) BoothVoterCounts(ctx context.Context, orgID core.OrgID) ([]ports.BoothVoterRow, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).([]ports.BoothVoterRow), args.Error(1)
}

func TestVoterSummaryGroupsByConstituency(t *testing.T) {
	repo := &MockSummaryRepository{}
	repo.On("BoothVoterCounts", mock.Anything, core.OrgID("org-1")).Return([]ports.BoothVoterRow{
		{ConstituencyCode: "AC-101", BoothNumber: "B-001", TotalVoters: 1000},
		{ConstituencyCode: "AC-101", BoothNumber: "B-002", TotalVoters: 1200},
		{ConstituencyCode: "AC-101", BoothNumber: "B-003", TotalVoters: 800},
		{ConstituencyCode: "AC-102", BoothNumber: "B-004", TotalVoters: 500},
	}, nil)

	svc := NewSummaryService(repo)
	summaries, err := svc.VoterSummary(context.Background(), "org-1")
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	// Sorted by constituency code
	first := summaries[0]
	assert.Equal(t, "AC-101", first.ConstituencyCode)
	assert.Equal(t, 3, first.BoothCount)
	assert.Equal(t, int64(3000), first.TotalVoters)
	assert.InDelta(t, 1000, first.MeanVoters, 0.001)
	assert.InDelta(t, 1000, first.MedianVoters, 0.001)
	assert.Greater(t, first.StdDevVoters, 0.0)

	// Single-booth group gets a zero spread, not NaN
	second := summaries[1]
	assert.Equal(t, "AC-102", second.ConstituencyCode)
	assert.Equal(t, 1, second.BoothCount)
	assert.Equal(t, 0.0, second.StdDevVoters)
	assert.InDelta(t, 500, second.MedianVoters, 0.001)
}

func TestVoterSummaryEmpty(t *testing.T) {
	repo := &MockSummaryRepository{}
	repo.On("BoothVoterCounts", mock.Anything, mock.Anything).Return([]ports.BoothVoterRow{}, nil)

	svc := NewSummaryService(repo)
	summaries, err := svc.VoterSummary(context.Background(), "org-1")
	require.NoError(t, err)
	assert.Empty(t, summaries)
}

func TestVoterSummaryRepoError(t *testing.T) {
	repo := &MockSummaryRepository{}
	repo.On("BoothVoterCounts", mock.Anything, mock.Anything).
		Return([]ports.BoothVoterRow(nil), errors.New("connection refused"))

	svc := NewSummaryService(repo)
	_, err := svc.VoterSummary(context.Background(), "org-1")
	assert.Error(t, err)
}
