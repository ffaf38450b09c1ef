package providers

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"github.com/nweber28/espn-fantasy-baseball-tools/pkg/logger"
)

// newProviderBreaker builds a circuit breaker for one upstream provider.
// Five consecutive failures open the circuit; after 30 seconds a limited
// number of probe requests decide whether to close it again.
func newProviderBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.GetLogger().WithFields(logrus.Fields{
				"provider":   name,
				"from_state": from.String(),
				"to_state":   to.String(),
			}).Warn("Provider circuit breaker state change")
		},
	})
}
