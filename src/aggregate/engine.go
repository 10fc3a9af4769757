package aggregate

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"smart-home-energy-analyzer/src/types"
)

const (
	RecentWindow  = 24 * time.Hour
	SummaryWindow = 7 * 24 * time.Hour
	MaxRecent     = 5000
)

// ReadingSource returns stored readings with timestamp >= cutoff.
type ReadingSource interface {
	ReadingsSince(ctx context.Context, cutoff time.Time) ([]types.StoredRecord, error)
}

// Engine answers dashboard queries straight from the store. It holds no
// state between requests and takes no locks.
type Engine struct {
	source ReadingSource
	logger *slog.Logger
	now    func() time.Time
}

func NewEngine(source ReadingSource, logger *slog.Logger) *Engine {
	return &Engine{source: source, logger: logger, now: time.Now}
}

// Dashboard runs the recent-window and daily-summary scans and derives the
// rest of the response from them.
func (e *Engine) Dashboard(ctx context.Context) (types.Dashboard, error) {
	now := e.now().UTC()

	recent, err := e.source.ReadingsSince(ctx, now.Add(-RecentWindow))
	if err != nil {
		return types.Dashboard{}, fmt.Errorf("%w: recent readings: %v", types.ErrAggregationQuery, err)
	}
	recent = RecentReadings(recent, MaxRecent)

	week, err := e.source.ReadingsSince(ctx, now.Add(-SummaryWindow))
	if err != nil {
		return types.Dashboard{}, fmt.Errorf("%w: daily summaries: %v", types.ErrAggregationQuery, err)
	}
	days := SummarizeDays(week)

	e.logger.Debug("built dashboard", "recent", len(recent), "week", len(week), "days", len(days))

	return types.Dashboard{
		RecentReadings:      recent,
		DailySummaries:      DailySummaries(days),
		Anomalies:           Anomalies(recent),
		SmartSuggestions:    SmartSuggestions(recent, days, now),
		ConsumptionByDevice: ConsumptionByDevice(recent),
	}, nil
}
