package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/pflag"

	"github.com/kaushalkahapola/smart-campus/src/config"
	"github.com/kaushalkahapola/smart-campus/src/models"
	"github.com/kaushalkahapola/smart-campus/src/query"
	"github.com/kaushalkahapola/smart-campus/src/services"
	"github.com/kaushalkahapola/smart-campus/src/types"
)

func (a *app) bookingsCmd(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("bookings: missing subcommand")
	}
	switch args[0] {
	case "list":
		return a.bookingsList(ctx, args[1:])
	case "get":
		return a.bookingsGet(ctx, args[1:])
	case "create":
		return a.bookingsCreate(ctx, args[1:])
	case "update":
		return a.bookingsUpdate(ctx, args[1:])
	case "cancel":
		return a.bookingsCancel(ctx, args[1:])
	case "waitlist":
		return a.bookingsWaitlist(ctx, args[1:])
	case "all":
		return a.bookingsAll(ctx, args[1:])
	case "set-status":
		return a.bookingsSetStatus(ctx, args[1:])
	default:
		return fmt.Errorf("bookings: unknown subcommand %q", args[0])
	}
}

func bookingFilterFlags(name string, filters *types.BookingQueryFilters) *pflag.FlagSet {
	flags := pflag.NewFlagSet(name, pflag.ContinueOnError)
	flags.StringVar(&filters.Status, "status", "", "booking status")
	flags.StringVar(&filters.StartDate, "start", "", "start date (YYYY-MM-DD)")
	flags.StringVar(&filters.EndDate, "end", "", "end date (YYYY-MM-DD)")
	flags.IntVar(&filters.Page, "page", 0, "page number")
	flags.IntVar(&filters.Limit, "limit", 0, "page size")
	return flags
}

func (a *app) bookingsList(ctx context.Context, args []string) error {
	filters := types.BookingQueryFilters{}
	flags := bookingFilterFlags("bookings list", &filters)
	if err := flags.Parse(args); err != nil {
		return err
	}
	if err := a.requireRole("/bookings", ""); err != nil {
		return err
	}
	list, err := query.Fetch(ctx, a.cache, query.MyBookingsKey(filters.Values()), func(ctx context.Context) (*services.BookingList, error) {
		return a.bookings.ListMine(ctx, &filters)
	})
	if err != nil {
		return err
	}
	return printJSON(list)
}

func (a *app) bookingsGet(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("bookings get: missing id")
	}
	if err := a.requireRole("/bookings", ""); err != nil {
		return err
	}
	id := args[0]
	booking, err := query.Fetch(ctx, a.cache, query.BookingKey(id), func(ctx context.Context) (*models.Booking, error) {
		return a.bookings.Get(ctx, id)
	})
	if err != nil {
		return err
	}
	return printJSON(booking)
}

func parseBookingTime(s string) (time.Time, error) {
	t, err := time.Parse(config.TIME_PARSE_FORMAT, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("time %q must be RFC3339: %w", s, err)
	}
	return t, nil
}

func (a *app) bookingsCreate(ctx context.Context, args []string) error {
	flags := pflag.NewFlagSet("bookings create", pflag.ContinueOnError)
	body := types.CreateBookingRequestBody{}
	start := flags.String("start", "", "start time (RFC3339)")
	end := flags.String("end", "", "end time (RFC3339)")
	flags.StringVar(&body.ResourceID, "resource", "", "resource id")
	flags.StringVar(&body.Title, "title", "", "booking title")
	flags.StringVar(&body.Description, "description", "", "description")
	flags.StringVar(&body.Purpose, "purpose", "", "purpose")
	flags.IntVar(&body.AttendeesCount, "attendees", 0, "expected attendees")
	if err := flags.Parse(args); err != nil {
		return err
	}
	var err error
	if body.StartTime, err = parseBookingTime(*start); err != nil {
		return err
	}
	if body.EndTime, err = parseBookingTime(*end); err != nil {
		return err
	}
	if err := a.requireRole("/bookings", ""); err != nil {
		return err
	}
	booking, err := query.Mutate(ctx, a.cache, func(ctx context.Context) (*models.Booking, error) {
		return a.bookings.Create(ctx, &body)
	}, bookingEffect(""))
	if err != nil {
		return err
	}
	return printJSON(booking)
}

// bookingEffect invalidates every booking list plus the availability maps,
// which all go stale when a booking changes. A non-empty id also writes the
// canonical entity through to its detail slot.
func bookingEffect(id string) query.Effect {
	effect := query.Effect{Invalidate: []query.Prefix{
		query.ListPrefix("bookings", "my"),
		query.ListPrefix("bookings", "list"),
		query.ListPrefix("resources", "availability"),
	}}
	if id != "" {
		key := query.BookingKey(id)
		effect.WriteThrough = &key
	}
	return effect
}

func (a *app) bookingsUpdate(ctx context.Context, args []string) error {
	flags := pflag.NewFlagSet("bookings update", pflag.ContinueOnError)
	body := types.UpdateBookingRequestBody{}
	start := flags.String("start", "", "start time (RFC3339)")
	end := flags.String("end", "", "end time (RFC3339)")
	flags.StringVar(&body.Title, "title", "", "booking title")
	flags.StringVar(&body.Description, "description", "", "description")
	flags.StringVar(&body.Purpose, "purpose", "", "purpose")
	flags.IntVar(&body.AttendeesCount, "attendees", 0, "expected attendees")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() == 0 {
		return errors.New("bookings update: missing id")
	}
	if *start != "" {
		t, err := parseBookingTime(*start)
		if err != nil {
			return err
		}
		body.StartTime = &t
	}
	if *end != "" {
		t, err := parseBookingTime(*end)
		if err != nil {
			return err
		}
		body.EndTime = &t
	}
	if err := a.requireRole("/bookings", ""); err != nil {
		return err
	}
	id := flags.Arg(0)
	booking, err := query.Mutate(ctx, a.cache, func(ctx context.Context) (*models.Booking, error) {
		return a.bookings.Update(ctx, id, &body)
	}, bookingEffect(id))
	if err != nil {
		return err
	}
	return printJSON(booking)
}

func (a *app) bookingsCancel(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("bookings cancel: missing id")
	}
	if err := a.requireRole("/bookings", ""); err != nil {
		return err
	}
	id := args[0]
	booking, err := query.Mutate(ctx, a.cache, func(ctx context.Context) (*models.Booking, error) {
		return a.bookings.Cancel(ctx, id)
	}, bookingEffect(id))
	if err != nil {
		return err
	}
	return printJSON(booking)
}

func (a *app) bookingsWaitlist(ctx context.Context, args []string) error {
	flags := pflag.NewFlagSet("bookings waitlist", pflag.ContinueOnError)
	body := types.JoinWaitlistRequestBody{}
	start := flags.String("start", "", "start time (RFC3339)")
	end := flags.String("end", "", "end time (RFC3339)")
	flags.StringVar(&body.ResourceID, "resource", "", "resource id")
	if err := flags.Parse(args); err != nil {
		return err
	}
	var err error
	if body.StartTime, err = parseBookingTime(*start); err != nil {
		return err
	}
	if body.EndTime, err = parseBookingTime(*end); err != nil {
		return err
	}
	if err := a.requireRole("/bookings", ""); err != nil {
		return err
	}
	entry, err := a.bookings.JoinWaitlist(ctx, &body)
	if err != nil {
		return err
	}
	return printJSON(entry)
}

func (a *app) bookingsAll(ctx context.Context, args []string) error {
	filters := types.BookingQueryFilters{}
	flags := bookingFilterFlags("bookings all", &filters)
	flags.StringVar(&filters.UserID, "user", "", "filter by user id")
	flags.StringVar(&filters.ResourceID, "resource", "", "filter by resource id")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if err := a.requireRole("/admin/bookings", models.ROLE_STAFF); err != nil {
		return err
	}
	list, err := query.Fetch(ctx, a.cache, query.AllBookingsKey(filters.Values()), func(ctx context.Context) (*services.BookingList, error) {
		return a.bookings.ListAll(ctx, &filters)
	})
	if err != nil {
		return err
	}
	return printJSON(list)
}

func (a *app) bookingsSetStatus(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.New("bookings set-status: usage <id> <status>")
	}
	if err := a.requireRole("/admin/bookings", models.ROLE_STAFF); err != nil {
		return err
	}
	id := args[0]
	booking, err := query.Mutate(ctx, a.cache, func(ctx context.Context) (*models.Booking, error) {
		return a.bookings.UpdateStatus(ctx, id, models.BookingStatus(args[1]))
	}, bookingEffect(id))
	if err != nil {
		return err
	}
	return printJSON(booking)
}
