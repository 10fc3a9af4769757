package aggregate

import (
	"strings"
	"time"

	"smart-home-energy-analyzer/src/enrich"
	"smart-home-energy-analyzer/src/types"

	"github.com/shopspring/decimal"
)

const (
	SuggestionLights  = "High light consumption detected during night hours. Remember to turn off unused lights!"
	SuggestionTV      = "Consider turning off the living room TV late at night."
	SuggestionHVAC    = "HVAC is consuming more than expected during mild weather. Check insulation or consider smart thermostat settings."
	SuggestionFridge  = "Your refrigerator seems to be a consistent high consumer. Check its seals and temperature settings."
	DefaultSuggestion = "No immediate issues detected. Keep monitoring your energy use!"
	DefaultVampireTip = "Unplug electronics when not in use to reduce 'vampire' energy draw."

	LivingRoomTV = "TV_LivingRoom"
)

var (
	nightLightsKWh = decimal.RequireFromString("1.0")
	fridgeDayKWh   = decimal.RequireFromString("15.0")
)

// isNight covers [23,24) and [0,6) in UTC.
func isNight(t time.Time) bool {
	h := t.UTC().Hour()
	return h >= 23 || h < 6
}

// SmartSuggestions evaluates every rule; none short-circuits another.
func SmartSuggestions(recent []types.StoredRecord, days []DayTotals, now time.Time) []string {
	suggestions := []string{}

	nightLights := decimal.Zero
	tvOnAtNight := false
	hvacMild := false

	for _, r := range recent {
		if isNight(r.ObservedAt) {
			if strings.Contains(r.DeviceID, "Lights") {
				nightLights = nightLights.Add(r.ConsumptionKWh)
			}
			if r.DeviceID == LivingRoomTV && r.Status == enrich.StatusOn {
				tvOnAtNight = true
			}
		}
		if r.DeviceID == enrich.HVACDeviceID && r.AnomalyDetected && strings.Contains(r.AnomalyMessage, "mild weather") {
			hvacMild = true
		}
	}

	if tvOnAtNight {
		suggestions = append(suggestions, SuggestionTV)
	}
	if nightLights.GreaterThan(nightLightsKWh) {
		suggestions = append(suggestions, SuggestionLights)
	}
	if hvacMild {
		suggestions = append(suggestions, SuggestionHVAC)
	}

	today := now.UTC().Format("2006-01-02")
	for _, d := range days {
		if d.Date == today && d.Consumption.GreaterThan(fridgeDayKWh) && strings.Contains(d.PeakDevice, "Fridge") {
			suggestions = append(suggestions, SuggestionFridge)
			break
		}
	}

	if len(suggestions) == 0 {
		return []string{DefaultSuggestion, DefaultVampireTip}
	}
	return suggestions
}
