package aggregate

import (
	"sort"

	"smart-home-energy-analyzer/src/types"
	"smart-home-energy-analyzer/src/utils"

	"github.com/shopspring/decimal"
)

// DayTotals holds the exact figures behind one DailySummary.
type DayTotals struct {
	Date            string
	Consumption     decimal.Decimal
	Cost            decimal.Decimal
	PeakDevice      string
	PeakConsumption decimal.Decimal
}

type dayAccumulator struct {
	consumption decimal.Decimal
	cost        decimal.Decimal
	devices     map[string]decimal.Decimal
	order       []string // devices in scan order, for the first-seen tie-break
}

// SummarizeDays groups records by UTC calendar date, oldest first. The
// peak device needs strictly more consumption than any device seen before
// it, so ties go to the first device in scan order and a day with only
// zero readings has no peak.
func SummarizeDays(records []types.StoredRecord) []DayTotals {
	days := map[string]*dayAccumulator{}

	for _, r := range records {
		date := r.ObservedAt.UTC().Format("2006-01-02")

		day, ok := days[date]
		if !ok {
			day = &dayAccumulator{devices: map[string]decimal.Decimal{}}
			days[date] = day
		}

		day.consumption = day.consumption.Add(r.ConsumptionKWh)
		day.cost = day.cost.Add(r.CostUSD)

		if _, seen := day.devices[r.DeviceID]; !seen {
			day.order = append(day.order, r.DeviceID)
		}
		day.devices[r.DeviceID] = day.devices[r.DeviceID].Add(r.ConsumptionKWh)
	}

	dates := make([]string, 0, len(days))
	for date := range days {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	out := make([]DayTotals, 0, len(dates))
	for _, date := range dates {
		day := days[date]
		totals := DayTotals{Date: date, Consumption: day.consumption, Cost: day.cost}

		for _, device := range day.order {
			if total := day.devices[device]; total.GreaterThan(totals.PeakConsumption) {
				totals.PeakConsumption = total
				totals.PeakDevice = device
			}
		}

		out = append(out, totals)
	}

	return out
}

// DailySummaries rounds day totals for display.
func DailySummaries(days []DayTotals) []types.DailySummary {
	summaries := make([]types.DailySummary, 0, len(days))
	for _, d := range days {
		summaries = append(summaries, types.DailySummary{
			Date:                  d.Date,
			TotalConsumptionKWh:   utils.RoundDisplay(d.Consumption),
			TotalCostUSD:          utils.RoundDisplay(d.Cost),
			PeakDevice:            d.PeakDevice,
			PeakDeviceConsumption: utils.RoundDisplay(d.PeakConsumption),
		})
	}
	return summaries
}
