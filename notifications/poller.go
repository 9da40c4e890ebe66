package notifications

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Poller refreshes the unread counter on a fixed interval. Notifications
// are polled, not pushed; the consuming view ties the poller's lifetime to
// its own by cancelling the context.
type Poller struct {
	store    *Store
	interval time.Duration
	log      zerolog.Logger
}

// NewPoller creates a poller over the notification store.
func NewPoller(store *Store, interval time.Duration, log zerolog.Logger) *Poller {
	return &Poller{
		store:    store,
		interval: interval,
		log:      log,
	}
}

// Run polls until ctx is cancelled. Poll failures are logged and the next
// tick retried; there is no backoff.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := p.store.FetchUnreadCount(ctx); err != nil {
				p.log.Debug().Err(err).Msg("unread count poll failed")
			}
		}
	}
}
