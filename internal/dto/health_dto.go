package dto

import "time"

// Component status values used in health reports.
const (
	HealthOK   = "ok"
	HealthFail = "fail"
)

// HealthComponents holds the per-dependency status of the service.
type HealthComponents struct {
	Database          string            `json:"database"`
	Cache             string            `json:"cache"`
	ExternalProviders map[string]string `json:"external_providers"`
}

// HealthReport aggregates component checks into a single ok/fail status.
type HealthReport struct {
	Status     string           `json:"status"`
	Components HealthComponents `json:"components"`
	Timestamp  time.Time        `json:"timestamp"`
}

// Healthy reports whether every component check passed.
func (r HealthReport) Healthy() bool {
	if r.Components.Database != HealthOK || r.Components.Cache != HealthOK {
		return false
	}
	for _, status := range r.Components.ExternalProviders {
		if status != HealthOK {
			return false
		}
	}
	return true
}
