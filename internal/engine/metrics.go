package engine

import (
	"time"

	"github.com/voracio/sheetsense/internal/domain/attribute"
)

// Metrics receives one observation per resolved attribute. Implementations
// must be safe for concurrent use.
type Metrics interface {
	ObserveResolution(strategy attribute.Strategy, found bool, took time.Duration)
	ObserveFallbackFailure()
}

type nopMetrics struct{}

func (nopMetrics) ObserveResolution(attribute.Strategy, bool, time.Duration) {}
func (nopMetrics) ObserveFallbackFailure()                                   {}
