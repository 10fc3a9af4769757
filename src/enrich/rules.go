package enrich

import (
	"fmt"
	"strings"

	"smart-home-energy-analyzer/src/types"

	"github.com/shopspring/decimal"
)

// Rule is one anomaly predicate with the message it reports.
type Rule struct {
	Name    string
	Match   func(r types.Reading) bool
	Message func(r types.Reading) string
}

const (
	StatusAnomalySpike = "ANOMALY_SPIKE"
	StatusOn           = "ON"
	StatusOff          = "OFF"

	HVACDeviceID        = "HVAC_001"
	WaterHeaterDeviceID = "WaterHeater_Basement"

	MildWeatherMessage = "HVAC running high during mild weather."
)

var (
	hvacHighKWh        = decimal.RequireFromString("2.5")
	lightsLowKWh       = decimal.RequireFromString("0.005")
	phantomKWh         = decimal.RequireFromString("0.1")
	waterHeaterHighKWh = decimal.RequireFromString("1.5")
)

const (
	mildTempMinF = 55.0
	mildTempMaxF = 75.0
)

// DefaultRules returns the detection rules in priority order.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:  "injected_spike",
			Match: func(r types.Reading) bool { return r.Status == StatusAnomalySpike },
			Message: func(r types.Reading) string {
				return fmt.Sprintf("Injected anomaly: Device %s had an unusual spike in consumption.", r.DeviceID)
			},
		},
		{
			Name: "hvac_mild_weather",
			Match: func(r types.Reading) bool {
				return r.DeviceID == HVACDeviceID &&
					r.ConsumptionKWh.GreaterThan(hvacHighKWh) &&
					r.OutsideTempF != nil &&
					*r.OutsideTempF >= mildTempMinF && *r.OutsideTempF <= mildTempMaxF
			},
			Message: func(types.Reading) string { return MildWeatherMessage },
		},
		{
			Name: "lights_malfunction",
			Match: func(r types.Reading) bool {
				return strings.Contains(r.DeviceID, "Lights") &&
					r.Status == StatusOn &&
					r.ConsumptionKWh.LessThan(lightsLowKWh)
			},
			Message: func(types.Reading) string {
				return "Very low light consumption while status is ON (possible malfunction)."
			},
		},
		{
			Name: "phantom_draw",
			Match: func(r types.Reading) bool {
				return r.ConsumptionKWh.GreaterThan(phantomKWh) && r.Status == StatusOff
			},
			Message: func(r types.Reading) string {
				return fmt.Sprintf("Device %s consuming energy while reporting OFF.", r.DeviceID)
			},
		},
		{
			Name: "water_heater_early_morning",
			Match: func(r types.Reading) bool {
				hour := r.ObservedAt.Hour()
				return r.DeviceID == WaterHeaterDeviceID &&
					r.ConsumptionKWh.GreaterThan(waterHeaterHighKWh) &&
					hour >= 0 && hour < 5
			},
			Message: func(types.Reading) string {
				return "Water heater high consumption in early morning hours."
			},
		},
	}
}
