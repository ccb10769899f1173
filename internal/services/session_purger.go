package services

import (
	"context"
	"log"
	"time"
)

// SessionPurger periodically deletes picker sessions that have been idle for
// longer than maxAge.
type SessionPurger struct {
	pickers  *PickerService
	maxAge   time.Duration
	interval time.Duration
}

func NewSessionPurger(pickers *PickerService, maxAge time.Duration, interval time.Duration) *SessionPurger {
	if interval <= 0 {
		interval = time.Hour
	}
	return &SessionPurger{
		pickers:  pickers,
		maxAge:   maxAge,
		interval: interval,
	}
}

// Start runs one purge immediately and then one per interval until ctx is
// done. A non-positive maxAge disables it.
func (purger *SessionPurger) Start(ctx context.Context) {
	if purger.maxAge <= 0 {
		return
	}

	ticker := time.NewTicker(purger.interval)
	go func() {
		defer ticker.Stop()

		purger.run()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				purger.run()
			}
		}
	}()
}

func (purger *SessionPurger) run() int64 {
	deleted, err := purger.pickers.PurgeOlderThan(purger.maxAge)
	if err != nil {
		log.Printf("sessions: purge failed: %v", err)
		return 0
	}
	if deleted > 0 {
		log.Printf("sessions: purged %d idle picker sessions", deleted)
	}
	return deleted
}
