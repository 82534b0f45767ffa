package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/kaushalkahapola/smart-campus/src/models"
	"github.com/kaushalkahapola/smart-campus/src/query"
	"github.com/kaushalkahapola/smart-campus/src/services"
	"github.com/kaushalkahapola/smart-campus/src/types"
)

func (a *app) resourcesCmd(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("resources: missing subcommand")
	}
	switch args[0] {
	case "list":
		return a.resourcesList(ctx, args[1:])
	case "get":
		return a.resourcesGet(ctx, args[1:])
	case "availability":
		return a.resourcesAvailability(ctx, args[1:])
	case "create":
		return a.resourcesCreate(ctx, args[1:])
	case "update":
		return a.resourcesUpdate(ctx, args[1:])
	case "delete":
		return a.resourcesDelete(ctx, args[1:])
	case "set-status":
		return a.resourcesSetStatus(ctx, args[1:])
	default:
		return fmt.Errorf("resources: unknown subcommand %q", args[0])
	}
}

func (a *app) resourcesList(ctx context.Context, args []string) error {
	flags := pflag.NewFlagSet("resources list", pflag.ContinueOnError)
	filters := types.ResourceQueryFilters{}
	flags.StringVar(&filters.Type, "type", "", "resource type")
	flags.StringVar(&filters.Building, "building", "", "building name")
	flags.IntVar(&filters.Capacity, "capacity", 0, "minimum capacity")
	flags.StringSliceVar(&filters.Features, "features", nil, "required features")
	flags.StringVar(&filters.Status, "status", "", "resource status")
	flags.StringVar(&filters.Search, "search", "", "name search")
	flags.IntVar(&filters.Page, "page", 0, "page number")
	flags.IntVar(&filters.Limit, "limit", 0, "page size")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if err := a.requireRole("/resources", ""); err != nil {
		return err
	}
	list, err := query.Fetch(ctx, a.cache, query.ResourceListKey(filters.Values()), func(ctx context.Context) (*services.ResourceList, error) {
		return a.resources.List(ctx, &filters)
	})
	if err != nil {
		return err
	}
	return printJSON(list)
}

func (a *app) resourcesGet(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("resources get: missing id")
	}
	if err := a.requireRole("/resources", ""); err != nil {
		return err
	}
	id := args[0]
	resource, err := query.Fetch(ctx, a.cache, query.ResourceKey(id), func(ctx context.Context) (*models.Resource, error) {
		return a.resources.Get(ctx, id)
	})
	if err != nil {
		return err
	}
	return printJSON(resource)
}

func (a *app) resourcesAvailability(ctx context.Context, args []string) error {
	flags := pflag.NewFlagSet("resources availability", pflag.ContinueOnError)
	start := flags.String("start", "", "start date (YYYY-MM-DD)")
	end := flags.String("end", "", "end date (YYYY-MM-DD)")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() == 0 {
		return errors.New("resources availability: missing id")
	}
	if err := a.requireRole("/resources", ""); err != nil {
		return err
	}
	id := flags.Arg(0)
	days, err := query.Fetch(ctx, a.cache, query.AvailabilityKey(id, *start, *end), func(ctx context.Context) ([]models.ResourceAvailability, error) {
		return a.resources.Availability(ctx, id, *start, *end)
	})
	if err != nil {
		return err
	}
	return printJSON(days)
}

func (a *app) resourcesCreate(ctx context.Context, args []string) error {
	flags := pflag.NewFlagSet("resources create", pflag.ContinueOnError)
	body := types.CreateResourceRequestBody{}
	var features []string
	flags.StringVar(&body.Name, "name", "", "resource name")
	flags.StringVar(&body.Type, "type", "", "resource type")
	flags.IntVar(&body.Capacity, "capacity", 0, "capacity")
	flags.StringSliceVar(&features, "features", nil, "feature flags")
	flags.StringVar(&body.Location, "location", "", "location")
	flags.StringVar(&body.Building, "building", "", "building")
	flags.StringVar(&body.Floor, "floor", "", "floor")
	flags.StringVar(&body.RoomNumber, "room", "", "room number")
	flags.StringVar(&body.Description, "description", "", "description")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if len(features) > 0 {
		body.Features = types.JSONB{}
		for _, f := range features {
			body.Features[f] = true
		}
	}
	if err := a.requireRole("/admin/resources", models.ROLE_STAFF); err != nil {
		return err
	}
	resource, err := query.Mutate(ctx, a.cache, func(ctx context.Context) (*models.Resource, error) {
		return a.resources.Create(ctx, &body)
	}, query.Effect{Invalidate: []query.Prefix{query.ListPrefix("resources", "list")}})
	if err != nil {
		return err
	}
	return printJSON(resource)
}

func (a *app) resourcesUpdate(ctx context.Context, args []string) error {
	flags := pflag.NewFlagSet("resources update", pflag.ContinueOnError)
	body := types.UpdateResourceRequestBody{}
	flags.StringVar(&body.Name, "name", "", "resource name")
	flags.IntVar(&body.Capacity, "capacity", 0, "capacity")
	flags.StringVar(&body.Building, "building", "", "building")
	flags.StringVar(&body.Location, "location", "", "location")
	flags.StringVar(&body.Description, "description", "", "description")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() == 0 {
		return errors.New("resources update: missing id")
	}
	if err := a.requireRole("/admin/resources", models.ROLE_STAFF); err != nil {
		return err
	}
	id := flags.Arg(0)
	key := query.ResourceKey(id)
	resource, err := query.Mutate(ctx, a.cache, func(ctx context.Context) (*models.Resource, error) {
		return a.resources.Update(ctx, id, &body)
	}, query.Effect{
		Invalidate:   []query.Prefix{query.ListPrefix("resources", "list"), query.ListPrefix("resources", "availability")},
		WriteThrough: &key,
	})
	if err != nil {
		return err
	}
	return printJSON(resource)
}

func (a *app) resourcesDelete(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("resources delete: missing id")
	}
	if err := a.requireRole("/admin/resources", models.ROLE_STAFF); err != nil {
		return err
	}
	id := args[0]
	if err := a.resources.Delete(ctx, id); err != nil {
		return err
	}
	a.cache.Remove(ctx, query.ResourceKey(id))
	a.cache.Invalidate(ctx, query.ListPrefix("resources", "list"), query.ListPrefix("resources", "availability"))
	fmt.Println("deleted", id)
	return nil
}

func (a *app) resourcesSetStatus(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.New("resources set-status: usage <id> <status>")
	}
	if err := a.requireRole("/admin/resources", models.ROLE_STAFF); err != nil {
		return err
	}
	id := args[0]
	key := query.ResourceKey(id)
	resource, err := query.Mutate(ctx, a.cache, func(ctx context.Context) (*models.Resource, error) {
		return a.resources.UpdateStatus(ctx, id, models.ResourceStatus(args[1]))
	}, query.Effect{
		Invalidate:   []query.Prefix{query.ListPrefix("resources", "list"), query.ListPrefix("resources", "availability")},
		WriteThrough: &key,
	})
	if err != nil {
		return err
	}
	return printJSON(resource)
}
