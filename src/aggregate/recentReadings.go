package aggregate

import (
	"sort"

	"smart-home-energy-analyzer/src/types"
	"smart-home-energy-analyzer/src/utils"

	"github.com/shopspring/decimal"
)

// RecentReadings orders newest first and keeps at most limit records.
func RecentReadings(records []types.StoredRecord, limit int) []types.StoredRecord {
	out := make([]types.StoredRecord, len(records))
	copy(out, records)

	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp > out[j].Timestamp })

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func Anomalies(records []types.StoredRecord) []types.StoredRecord {
	out := []types.StoredRecord{}
	for _, r := range records {
		if r.AnomalyDetected {
			out = append(out, r)
		}
	}
	return out
}

func ConsumptionByDevice(records []types.StoredRecord) map[string]float64 {
	totals := map[string]decimal.Decimal{}
	for _, r := range records {
		totals[r.DeviceID] = totals[r.DeviceID].Add(r.ConsumptionKWh)
	}

	out := make(map[string]float64, len(totals))
	for device, total := range totals {
		out[device] = utils.RoundDisplay(total)
	}
	return out
}
