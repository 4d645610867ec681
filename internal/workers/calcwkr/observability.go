package calcwkr

import (
	"time"

	"exusiai.dev/cardrank/internal/pkg/observability"
)

func observeCalcDuration(service string, deduplicate string, f func() error) error {
	start := time.Now()
	defer func() {
		observability.WorkerCalcDuration.WithLabelValues(service, deduplicate).Set(time.Since(start).Seconds())
	}()
	return f()
}
