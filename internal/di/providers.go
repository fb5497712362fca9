package di

import (
	"tatico/internal/providers"
	"tatico/internal/services"
)

// provideTrackerStats narrows the tracker service to the read-only view the
// metrics gauges need.
func provideTrackerStats(service services.TrackerServiceInterface) providers.TrackerStats {
	return service
}
