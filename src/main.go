package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path"
	"syscall"

	"github.com/covalenthq/lumberjack"
	"github.com/joho/godotenv"
	_ "github.com/joho/godotenv/autoload"

	"github.com/kaushalkahapola/smart-campus/src/api"
	"github.com/kaushalkahapola/smart-campus/src/config"
	"github.com/kaushalkahapola/smart-campus/src/lib"
	"github.com/kaushalkahapola/smart-campus/src/models"
	"github.com/kaushalkahapola/smart-campus/src/query"
	"github.com/kaushalkahapola/smart-campus/src/services"
	"github.com/kaushalkahapola/smart-campus/src/session"
)

// app wires one API client, one session and one cache together for the
// lifetime of a command.
type app struct {
	session *session.Manager
	cache   *query.Client

	resources     *services.ResourceService
	bookings      *services.BookingService
	notifications *services.NotificationService
	users         *services.UserService
	analytics     *services.AnalyticsService
	ai            *services.AIService
}

func newApp() *app {
	manager := session.NewManager(session.EnvProvider{})
	client := api.New(config.GetAPIBaseURL(), api.WithTokenSource(manager))

	var store query.Store
	if redis := lib.GetRedisClient(); redis != nil {
		store = query.NewRedisStore(redis, 2*config.GetStaleTime())
	}
	cache := query.NewClient(query.WithStore(store), query.WithStaleTime(config.GetStaleTime()))

	return &app{
		session:       manager,
		cache:         cache,
		resources:     services.NewResourceService(client),
		bookings:      services.NewBookingService(client),
		notifications: services.NewNotificationService(client),
		users:         services.NewUserService(client),
		analytics:     services.NewAnalyticsService(client),
		ai:            services.NewAIService(client),
	}
}

// requireRole runs the same gate the web client applies to protected routes.
func (a *app) requireRole(page string, role models.UserRole) error {
	outcome := session.Evaluate(session.GuardInput{
		Authenticated: a.session.IsAuthenticated(),
		Loading:       a.session.IsLoading(),
		Path:          page,
		UserRole:      a.session.UserRole(),
		RequiredRole:  role,
	})
	if outcome.Decision != session.DecisionRedirect {
		return nil
	}
	if outcome.RedirectTo == session.UnauthorizedPath {
		return fmt.Errorf("%s requires the %s role", page, role)
	}
	return errors.New("not signed in: set CAMPUS_SESSION_ID and CAMPUS_ACCESS_TOKEN")
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func initLogger() {
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		cwd, _ := os.Getwd()
		logFile = path.Join(cwd, "logs", "campus.log")
	}
	log.SetOutput(io.MultiWriter(os.Stderr, &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    500,
		MaxBackups: 3,
		MaxAge:     30,
		Compress:   true,
	}))
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: campus <command> [subcommand] [flags]

commands:
  whoami                          show the signed-in user
  resources   list|get|availability|create|update|delete|set-status
  bookings    list|get|create|update|cancel|waitlist|all|set-status
  notifications list|read|read-all|unread|delete|watch
  users       me|update-me|list|create|update|delete|set-active
  analytics   utilization|trends|efficiency|report|export
  ai          recommend-resources|recommend-times|patterns|predict|anomalies`)
	os.Exit(2)
}

func main() {
	if os.Getenv("API_ENV") == "local" {
		cwd, _ := os.Getwd()
		if err := godotenv.Load(path.Join(cwd, ".env")); err != nil {
			log.Printf("[main] no .env loaded: %s\n", err.Error())
		}
	}
	initLogger()

	if len(os.Args) < 2 {
		usage()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := newApp()
	if err := a.session.Initialize(ctx, a.users); err != nil {
		log.Printf("[main] session not established: %s\n", err.Error())
	}

	var err error
	switch os.Args[1] {
	case "whoami":
		err = a.whoamiCmd(ctx)
	case "resources":
		err = a.resourcesCmd(ctx, os.Args[2:])
	case "bookings":
		err = a.bookingsCmd(ctx, os.Args[2:])
	case "notifications":
		err = a.notificationsCmd(ctx, os.Args[2:])
	case "users":
		err = a.usersCmd(ctx, os.Args[2:])
	case "analytics":
		err = a.analyticsCmd(ctx, os.Args[2:])
	case "ai":
		err = a.aiCmd(ctx, os.Args[2:])
	default:
		usage()
	}
	lib.StopScheduler()
	if err != nil {
		log.Printf("[main] %s\n", err.Error())
		os.Exit(1)
	}
}

func (a *app) whoamiCmd(ctx context.Context) error {
	if err := a.requireRole("/profile", ""); err != nil {
		return err
	}
	user, err := query.Fetch(ctx, a.cache, query.CurrentUserKey(), func(ctx context.Context) (*models.User, error) {
		return a.users.Me(ctx)
	})
	if err != nil {
		return err
	}
	return printJSON(user)
}
