package query

import (
	"context"
	"log"
	"time"

	"github.com/kaushalkahapola/smart-campus/src/lib"
)

// Poller refreshes the unread-notification count on a fixed interval,
// regardless of user interaction. The count bypasses the staleness window:
// every tick invalidates the slot and refetches.
type Poller struct {
	jobID string
}

// StartUnreadPoller schedules the refresh job. fetch loads the count from the
// backend; onCount receives every successfully refreshed value.
func StartUnreadPoller(c *Client, interval time.Duration, fetch func(ctx context.Context) (int, error), onCount func(int)) (*Poller, error) {
	task := func() {
		ctx, cancel := context.WithTimeout(context.Background(), interval)
		defer cancel()
		c.Invalidate(ctx, ListPrefix("notifications", "unreadCount"))
		count, err := Fetch(ctx, c, UnreadCountKey(), fetch)
		if err != nil {
			log.Printf("[poller] unread count refresh failed: %s\n", err.Error())
			return
		}
		if onCount != nil {
			onCount(count)
		}
	}
	id, err := lib.CreateCronJob(task, interval)
	if err != nil {
		return nil, err
	}
	if err := lib.StartScheduler(); err != nil {
		return nil, err
	}
	return &Poller{jobID: *id}, nil
}

func (p *Poller) Stop() error {
	return lib.RemoveJob(p.jobID)
}
