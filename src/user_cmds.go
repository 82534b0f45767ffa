package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/pflag"

	"github.com/kaushalkahapola/smart-campus/src/models"
	"github.com/kaushalkahapola/smart-campus/src/query"
	"github.com/kaushalkahapola/smart-campus/src/services"
	"github.com/kaushalkahapola/smart-campus/src/types"
)

func (a *app) usersCmd(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("users: missing subcommand")
	}
	switch args[0] {
	case "me":
		return a.whoamiCmd(ctx)
	case "update-me":
		return a.usersUpdateMe(ctx, args[1:])
	case "list":
		return a.usersList(ctx, args[1:])
	case "create":
		return a.usersCreate(ctx, args[1:])
	case "update":
		return a.usersUpdate(ctx, args[1:])
	case "delete":
		return a.usersDelete(ctx, args[1:])
	case "set-active":
		return a.usersSetActive(ctx, args[1:])
	default:
		return fmt.Errorf("users: unknown subcommand %q", args[0])
	}
}

func userUpdateFlags(name string, body *types.UpdateUserRequestBody) *pflag.FlagSet {
	flags := pflag.NewFlagSet(name, pflag.ContinueOnError)
	flags.StringVar(&body.Username, "username", "", "username")
	flags.StringVar(&body.Email, "email", "", "email address")
	flags.StringVar(&body.Department, "department", "", "department")
	flags.StringVar(&body.FirstName, "first-name", "", "first name")
	flags.StringVar(&body.LastName, "last-name", "", "last name")
	return flags
}

func (a *app) usersUpdateMe(ctx context.Context, args []string) error {
	body := types.UpdateUserRequestBody{}
	flags := userUpdateFlags("users update-me", &body)
	if err := flags.Parse(args); err != nil {
		return err
	}
	if err := a.requireRole("/profile", ""); err != nil {
		return err
	}
	key := query.CurrentUserKey()
	user, err := query.Mutate(ctx, a.cache, func(ctx context.Context) (*models.User, error) {
		return a.users.UpdateMe(ctx, &body)
	}, query.Effect{WriteThrough: &key})
	if err != nil {
		return err
	}
	return printJSON(user)
}

func (a *app) usersList(ctx context.Context, args []string) error {
	flags := pflag.NewFlagSet("users list", pflag.ContinueOnError)
	filters := types.UserQueryFilters{}
	flags.StringVar(&filters.Role, "role", "", "filter by role")
	flags.StringVar(&filters.Search, "search", "", "name search")
	flags.IntVar(&filters.Page, "page", 0, "page number")
	flags.IntVar(&filters.Limit, "limit", 0, "page size")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if err := a.requireRole("/admin/users", models.ROLE_ADMIN); err != nil {
		return err
	}
	list, err := query.Fetch(ctx, a.cache, query.UserListKey(filters.Values()), func(ctx context.Context) (*services.UserList, error) {
		return a.users.List(ctx, &filters)
	})
	if err != nil {
		return err
	}
	return printJSON(list)
}

func (a *app) usersCreate(ctx context.Context, args []string) error {
	flags := pflag.NewFlagSet("users create", pflag.ContinueOnError)
	body := types.CreateUserRequestBody{}
	flags.StringVar(&body.Username, "username", "", "username")
	flags.StringVar(&body.Email, "email", "", "email address")
	flags.StringVar(&body.Role, "role", "student", "role (student|staff|admin)")
	flags.StringVar(&body.Department, "department", "", "department")
	flags.StringVar(&body.StudentID, "student-id", "", "student id")
	flags.StringVar(&body.FirstName, "first-name", "", "first name")
	flags.StringVar(&body.LastName, "last-name", "", "last name")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if err := a.requireRole("/admin/users", models.ROLE_ADMIN); err != nil {
		return err
	}
	user, err := query.Mutate(ctx, a.cache, func(ctx context.Context) (*models.User, error) {
		return a.users.Create(ctx, &body)
	}, query.Effect{Invalidate: []query.Prefix{query.ListPrefix("users", "list")}})
	if err != nil {
		return err
	}
	return printJSON(user)
}

func (a *app) usersUpdate(ctx context.Context, args []string) error {
	body := types.UpdateUserRequestBody{}
	flags := userUpdateFlags("users update", &body)
	flags.StringVar(&body.Role, "role", "", "role (student|staff|admin)")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() == 0 {
		return errors.New("users update: missing id")
	}
	if err := a.requireRole("/admin/users", models.ROLE_ADMIN); err != nil {
		return err
	}
	id := flags.Arg(0)
	key := query.UserKey(id)
	user, err := query.Mutate(ctx, a.cache, func(ctx context.Context) (*models.User, error) {
		return a.users.Update(ctx, id, &body)
	}, query.Effect{
		Invalidate:   []query.Prefix{query.ListPrefix("users", "list")},
		WriteThrough: &key,
	})
	if err != nil {
		return err
	}
	return printJSON(user)
}

func (a *app) usersDelete(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("users delete: missing id")
	}
	if err := a.requireRole("/admin/users", models.ROLE_ADMIN); err != nil {
		return err
	}
	if err := a.users.Delete(ctx, args[0]); err != nil {
		return err
	}
	a.cache.Remove(ctx, query.UserKey(args[0]))
	a.cache.Invalidate(ctx, query.ListPrefix("users", "list"))
	fmt.Println("deleted", args[0])
	return nil
}

func (a *app) usersSetActive(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.New("users set-active: usage <id> <true|false>")
	}
	active, err := strconv.ParseBool(args[1])
	if err != nil {
		return fmt.Errorf("users set-active: %w", err)
	}
	if err := a.requireRole("/admin/users", models.ROLE_ADMIN); err != nil {
		return err
	}
	id := args[0]
	key := query.UserKey(id)
	user, err := query.Mutate(ctx, a.cache, func(ctx context.Context) (*models.User, error) {
		return a.users.SetActive(ctx, id, active)
	}, query.Effect{
		Invalidate:   []query.Prefix{query.ListPrefix("users", "list")},
		WriteThrough: &key,
	})
	if err != nil {
		return err
	}
	return printJSON(user)
}
