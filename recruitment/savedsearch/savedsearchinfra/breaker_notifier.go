package savedsearchinfra

import (
	"context"
	"time"

	"github.com/Abraxas-365/hirematch/pkg/logx"
	"github.com/Abraxas-365/hirematch/recruitment/savedsearch"
	"github.com/sony/gobreaker"
)

// BreakerSettings tune the delivery circuit breaker
type BreakerSettings struct {
	Name        string
	MaxFailures uint32
	OpenTimeout time.Duration
}

// BreakerNotifier stops calling a failing delivery channel until it has had
// time to recover. While open every Notify fails fast, so the batch leaves
// those searches uncommitted.
type BreakerNotifier struct {
	next    savedsearch.Notifier
	breaker *gobreaker.CircuitBreaker
}

// NewBreakerNotifier wraps next in a circuit breaker
func NewBreakerNotifier(next savedsearch.Notifier, settings BreakerSettings) *BreakerNotifier {
	if settings.Name == "" {
		settings.Name = "saved-search-notifier"
	}
	if settings.MaxFailures == 0 {
		settings.MaxFailures = 5
	}
	if settings.OpenTimeout <= 0 {
		settings.OpenTimeout = 30 * time.Second
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        settings.Name,
		MaxRequests: 1,
		Timeout:     settings.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= settings.MaxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logx.Warnf("circuit breaker '%s' state changed from %v to %v", name, from, to)
		},
	})

	return &BreakerNotifier{next: next, breaker: cb}
}

// Notify delivers through the breaker
func (b *BreakerNotifier) Notify(ctx context.Context, note savedsearch.Notification) error {
	_, err := b.breaker.Execute(func() (any, error) {
		return nil, b.next.Notify(ctx, note)
	})
	return err
}

// State reports the breaker state
func (b *BreakerNotifier) State() gobreaker.State {
	return b.breaker.State()
}
