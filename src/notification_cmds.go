package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/spf13/pflag"

	"github.com/kaushalkahapola/smart-campus/src/config"
	"github.com/kaushalkahapola/smart-campus/src/models"
	"github.com/kaushalkahapola/smart-campus/src/query"
	"github.com/kaushalkahapola/smart-campus/src/services"
	"github.com/kaushalkahapola/smart-campus/src/types"
)

func (a *app) notificationsCmd(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("notifications: missing subcommand")
	}
	if err := a.requireRole("/notifications", ""); err != nil {
		return err
	}
	switch args[0] {
	case "list":
		return a.notificationsList(ctx, args[1:])
	case "read":
		return a.notificationsRead(ctx, args[1:])
	case "read-all":
		return a.notificationsReadAll(ctx)
	case "unread":
		return a.notificationsUnread(ctx)
	case "delete":
		return a.notificationsDelete(ctx, args[1:])
	case "watch":
		return a.notificationsWatch(ctx)
	default:
		return fmt.Errorf("notifications: unknown subcommand %q", args[0])
	}
}

func (a *app) notificationsList(ctx context.Context, args []string) error {
	flags := pflag.NewFlagSet("notifications list", pflag.ContinueOnError)
	filters := types.NotificationQueryFilters{}
	flags.BoolVar(&filters.UnreadOnly, "unread-only", false, "only unread notifications")
	flags.IntVar(&filters.Page, "page", 0, "page number")
	flags.IntVar(&filters.Limit, "limit", 0, "page size")
	if err := flags.Parse(args); err != nil {
		return err
	}
	list, err := query.Fetch(ctx, a.cache, query.NotificationListKey(filters.Values()), func(ctx context.Context) (*services.NotificationList, error) {
		return a.notifications.ListMine(ctx, &filters)
	})
	if err != nil {
		return err
	}
	return printJSON(list)
}

func notificationEffect() query.Effect {
	return query.Effect{Invalidate: []query.Prefix{
		query.ListPrefix("notifications", "list"),
		query.ListPrefix("notifications", "unreadCount"),
	}}
}

func (a *app) notificationsRead(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("notifications read: missing id")
	}
	n, err := query.Mutate(ctx, a.cache, func(ctx context.Context) (*models.Notification, error) {
		return a.notifications.MarkAsRead(ctx, args[0])
	}, notificationEffect())
	if err != nil {
		return err
	}
	return printJSON(n)
}

func (a *app) notificationsReadAll(ctx context.Context) error {
	count, err := query.Mutate(ctx, a.cache, func(ctx context.Context) (*services.NotificationCount, error) {
		return a.notifications.MarkAllAsRead(ctx)
	}, notificationEffect())
	if err != nil {
		return err
	}
	fmt.Printf("marked %d notifications as read\n", count.Count)
	return nil
}

func (a *app) notificationsUnread(ctx context.Context) error {
	count, err := query.Fetch(ctx, a.cache, query.UnreadCountKey(), func(ctx context.Context) (int, error) {
		c, err := a.notifications.UnreadCount(ctx)
		if err != nil {
			return 0, err
		}
		return c.Count, nil
	})
	if err != nil {
		return err
	}
	fmt.Println(count)
	return nil
}

func (a *app) notificationsDelete(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("notifications delete: missing id")
	}
	if err := a.notifications.Delete(ctx, args[0]); err != nil {
		return err
	}
	a.cache.Invalidate(ctx, query.ListPrefix("notifications", "list"), query.ListPrefix("notifications", "unreadCount"))
	fmt.Println("deleted", args[0])
	return nil
}

// notificationsWatch polls the unread count until interrupted, the same way
// the web client keeps its badge current.
func (a *app) notificationsWatch(ctx context.Context) error {
	poller, err := query.StartUnreadPoller(a.cache, config.GetPollInterval(), func(ctx context.Context) (int, error) {
		c, err := a.notifications.UnreadCount(ctx)
		if err != nil {
			return 0, err
		}
		return c.Count, nil
	}, func(count int) {
		log.Printf("[notifications] %d unread\n", count)
	})
	if err != nil {
		return err
	}
	<-ctx.Done()
	return poller.Stop()
}
