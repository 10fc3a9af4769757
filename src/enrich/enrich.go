package enrich

import (
	"fmt"
	"log/slog"

	"smart-home-energy-analyzer/src/types"

	"github.com/shopspring/decimal"
)

type Enricher struct {
	rate   decimal.Decimal
	rules  []Rule
	logger *slog.Logger
}

func NewEnricher(rate decimal.Decimal, rules []Rule, logger *slog.Logger) *Enricher {
	return &Enricher{rate: rate, rules: rules, logger: logger}
}

// Enrich adds cost and anomaly flags. It never fails: detection errors
// leave the reading unflagged.
func (e *Enricher) Enrich(r types.Reading) types.EnrichedReading {
	detected, message := e.Detect(r)

	return types.EnrichedReading{
		Reading:         r,
		CostUSD:         ComputeCost(r.ConsumptionKWh, e.rate),
		AnomalyDetected: detected,
		AnomalyMessage:  message,
	}
}

// Detect evaluates rules in order and stops at the first match.
func (e *Enricher) Detect(r types.Reading) (detected bool, message string) {
	defer func() {
		if p := recover(); p != nil {
			e.logger.Error("anomaly detection failed", "device_id", r.DeviceID, "timestamp", r.Timestamp, "err", fmt.Sprint(p))
			detected, message = false, ""
		}
	}()

	for _, rule := range e.rules {
		if rule.Match(r) {
			e.logger.Debug("anomaly rule matched", "rule", rule.Name, "device_id", r.DeviceID)
			return true, rule.Message(r)
		}
	}

	return false, ""
}
