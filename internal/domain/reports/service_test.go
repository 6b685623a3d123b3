package reports

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labelprint/internal/domain"
)

type stubRepo struct {
	totals   Totals
	daily    []DailyStat
	since    time.Time
	topLimit int
	err      error
}

func (r *stubRepo) Totals(context.Context, domain.TimeRange) (Totals, error) {
	return r.totals, r.err
}

func (r *stubRepo) Daily(_ context.Context, since time.Time) ([]DailyStat, error) {
	r.since = since
	return r.daily, r.err
}

func (r *stubRepo) TopLabels(_ context.Context, limit int) ([]TopLabel, error) {
	r.topLimit = limit
	return nil, r.err
}

func TestSuccessRate(t *testing.T) {
	tests := []struct {
		successful, total int64
		want              string
	}{
		{0, 0, "0"},
		{3, 3, "100"},
		{2, 3, "66.67"},
		{1, 8, "12.5"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SuccessRate(tt.successful, tt.total).String())
	}
}

func TestService_Summary(t *testing.T) {
	repo := &stubRepo{totals: Totals{
		TotalPrints:      4,
		TotalLabels:      120,
		SuccessfulPrints: 3,
		FailedPrints:     1,
		Downloads:        2,
		AvgDurationMS:    812.6,
	}}
	s, err := NewService(repo).Summary(context.Background(), domain.TimeRange{})
	require.NoError(t, err)

	assert.Equal(t, int64(120), s.TotalLabels)
	assert.Equal(t, "75", s.SuccessRate.String())
	assert.Equal(t, "813", s.AvgDuration.String())
	assert.Equal(t, int64(2), s.Downloads)
}

func TestService_Summary_Error(t *testing.T) {
	boom := errors.New("boom")
	_, err := NewService(&stubRepo{err: boom}).Summary(context.Background(), domain.TimeRange{})
	assert.ErrorIs(t, err, boom)
}

func TestService_Daily(t *testing.T) {
	repo := &stubRepo{}
	svc := NewService(repo)
	svc.now = func() time.Time { return time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC) }

	stats, err := svc.Daily(context.Background(), 0)
	require.NoError(t, err)
	assert.NotNil(t, stats)
	assert.Equal(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), repo.since)

	_, err = svc.Daily(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), repo.since)
}

func TestService_TopLabels(t *testing.T) {
	repo := &stubRepo{}
	svc := NewService(repo)

	top, err := svc.TopLabels(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, top)
	assert.Equal(t, DefaultTopLimit, repo.topLimit)

	_, err = svc.TopLabels(context.Background(), 5000)
	require.NoError(t, err)
	assert.Equal(t, MaxTopLimit, repo.topLimit)
}

func TestService_Summary_InvertedRange(t *testing.T) {
	from := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, -1)
	_, err := NewService(&stubRepo{}).Summary(context.Background(), domain.TimeRange{From: &from, To: &to})
	assert.Error(t, err)
}
