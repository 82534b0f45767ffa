package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/kaushalkahapola/smart-campus/src/models"
	"github.com/kaushalkahapola/smart-campus/src/query"
	"github.com/kaushalkahapola/smart-campus/src/services"
	"github.com/kaushalkahapola/smart-campus/src/types"
)

func (a *app) analyticsCmd(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("analytics: missing subcommand")
	}
	if err := a.requireRole("/analytics", models.ROLE_STAFF); err != nil {
		return err
	}
	switch args[0] {
	case "utilization":
		return a.analyticsUtilization(ctx, args[1:])
	case "trends":
		return a.analyticsTrends(ctx, args[1:])
	case "efficiency":
		return a.analyticsEfficiency(ctx, args[1:])
	case "report":
		return a.analyticsReport(ctx, args[1:])
	case "export":
		return a.analyticsExport(ctx, args[1:])
	default:
		return fmt.Errorf("analytics: unknown subcommand %q", args[0])
	}
}

func printDocument(doc *types.Document) error {
	fmt.Println(doc.String())
	return nil
}

func (a *app) analyticsUtilization(ctx context.Context, args []string) error {
	flags := pflag.NewFlagSet("analytics utilization", pflag.ContinueOnError)
	filters := types.UtilizationQueryFilters{}
	flags.StringVar(&filters.ResourceID, "resource", "", "resource id")
	flags.StringVar(&filters.StartDate, "start", "", "start date (YYYY-MM-DD)")
	flags.StringVar(&filters.EndDate, "end", "", "end date (YYYY-MM-DD)")
	flags.StringVar(&filters.Granularity, "granularity", "", "day|week|month")
	if err := flags.Parse(args); err != nil {
		return err
	}
	doc, err := query.Fetch(ctx, a.cache, query.AnalyticsKey("utilization", filters.Values()), func(ctx context.Context) (*types.Document, error) {
		return a.analytics.Utilization(ctx, &filters)
	})
	if err != nil {
		return err
	}
	return printDocument(doc)
}

func (a *app) analyticsTrends(ctx context.Context, args []string) error {
	flags := pflag.NewFlagSet("analytics trends", pflag.ContinueOnError)
	filters := types.TrendsQueryFilters{}
	flags.StringVar(&filters.ResourceID, "resource", "", "resource id")
	flags.StringVar(&filters.UserID, "user", "", "user id")
	flags.StringVar(&filters.StartDate, "start", "", "start date (YYYY-MM-DD)")
	flags.StringVar(&filters.EndDate, "end", "", "end date (YYYY-MM-DD)")
	flags.StringVar(&filters.Granularity, "granularity", "", "day|week|month")
	if err := flags.Parse(args); err != nil {
		return err
	}
	doc, err := query.Fetch(ctx, a.cache, query.AnalyticsKey("trends", filters.Values()), func(ctx context.Context) (*types.Document, error) {
		return a.analytics.Trends(ctx, &filters)
	})
	if err != nil {
		return err
	}
	return printDocument(doc)
}

func (a *app) analyticsEfficiency(ctx context.Context, args []string) error {
	flags := pflag.NewFlagSet("analytics efficiency", pflag.ContinueOnError)
	filters := types.EfficiencyQueryFilters{}
	flags.StringVar(&filters.ResourceID, "resource", "", "resource id")
	flags.StringVar(&filters.UserID, "user", "", "user id")
	flags.StringVar(&filters.StartDate, "start", "", "start date (YYYY-MM-DD)")
	flags.StringVar(&filters.EndDate, "end", "", "end date (YYYY-MM-DD)")
	if err := flags.Parse(args); err != nil {
		return err
	}
	doc, err := query.Fetch(ctx, a.cache, query.AnalyticsKey("efficiency", filters.Values()), func(ctx context.Context) (*types.Document, error) {
		return a.analytics.Efficiency(ctx, &filters)
	})
	if err != nil {
		return err
	}
	return printDocument(doc)
}

func (a *app) analyticsReport(ctx context.Context, args []string) error {
	flags := pflag.NewFlagSet("analytics report", pflag.ContinueOnError)
	filters := types.ReportQueryFilters{}
	flags.StringVar(&filters.StartDate, "start", "", "start date (YYYY-MM-DD)")
	flags.StringVar(&filters.EndDate, "end", "", "end date (YYYY-MM-DD)")
	flags.StringVar(&filters.Department, "department", "", "department")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if err := a.requireRole("/admin/analytics", models.ROLE_ADMIN); err != nil {
		return err
	}
	doc, err := query.Fetch(ctx, a.cache, query.AnalyticsKey("report", filters.Values()), func(ctx context.Context) (*types.Document, error) {
		return a.analytics.Report(ctx, &filters)
	})
	if err != nil {
		return err
	}
	return printDocument(doc)
}

// analyticsExport streams the raw download to a file or stdout. Exports are
// never cached; every call is a fresh download.
func (a *app) analyticsExport(ctx context.Context, args []string) error {
	flags := pflag.NewFlagSet("analytics export", pflag.ContinueOnError)
	filters := types.ExportQueryFilters{}
	format := flags.String("format", "csv", "csv|pdf")
	out := flags.String("out", "", "output file (default stdout)")
	flags.StringVar(&filters.Type, "type", "", "report type")
	flags.StringVar(&filters.StartDate, "start", "", "start date (YYYY-MM-DD)")
	flags.StringVar(&filters.EndDate, "end", "", "end date (YYYY-MM-DD)")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if err := a.requireRole("/admin/analytics", models.ROLE_ADMIN); err != nil {
		return err
	}
	data, contentType, err := a.analytics.Export(ctx, services.ExportFormat(strings.ToLower(*format)), &filters)
	if err != nil {
		return err
	}
	if *out == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		return err
	}
	fmt.Printf("wrote %d bytes (%s) to %s\n", len(data), contentType, *out)
	return nil
}

func (a *app) aiCmd(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("ai: missing subcommand")
	}
	if err := a.requireRole("/recommendations", ""); err != nil {
		return err
	}
	switch args[0] {
	case "recommend-resources":
		return a.aiRecommendResources(ctx, args[1:])
	case "recommend-times":
		return a.aiRecommendTimes(ctx, args[1:])
	case "patterns":
		return a.aiPatterns(ctx, args[1:])
	case "predict":
		return a.aiPredict(ctx, args[1:])
	case "anomalies":
		return a.aiAnomalies(ctx, args[1:])
	default:
		return fmt.Errorf("ai: unknown subcommand %q", args[0])
	}
}

func (a *app) aiRecommendResources(ctx context.Context, args []string) error {
	flags := pflag.NewFlagSet("ai recommend-resources", pflag.ContinueOnError)
	req := types.RecommendResourcesRequest{}
	flags.StringVar(&req.ResourceType, "type", "", "resource type")
	flags.IntVar(&req.Capacity, "capacity", 0, "minimum capacity")
	flags.StringSliceVar(&req.Features, "features", nil, "required features")
	flags.StringVar(&req.StartTime, "start", "", "start time (RFC3339)")
	flags.StringVar(&req.EndTime, "end", "", "end time (RFC3339)")
	if err := flags.Parse(args); err != nil {
		return err
	}
	doc, err := a.ai.RecommendResources(ctx, &req)
	if err != nil {
		return err
	}
	return printDocument(doc)
}

func (a *app) aiRecommendTimes(ctx context.Context, args []string) error {
	flags := pflag.NewFlagSet("ai recommend-times", pflag.ContinueOnError)
	req := types.RecommendTimesRequest{}
	flags.StringVar(&req.ResourceID, "resource", "", "resource id")
	flags.IntVar(&req.Duration, "duration", 60, "duration in minutes")
	flags.StringVar(&req.StartDate, "start", "", "start date (YYYY-MM-DD)")
	flags.StringVar(&req.EndDate, "end", "", "end date (YYYY-MM-DD)")
	if err := flags.Parse(args); err != nil {
		return err
	}
	doc, err := a.ai.RecommendTimes(ctx, &req)
	if err != nil {
		return err
	}
	return printDocument(doc)
}

func (a *app) aiPatterns(ctx context.Context, args []string) error {
	userID := ""
	if len(args) > 0 {
		userID = args[0]
	}
	doc, err := a.ai.UserPatterns(ctx, userID)
	if err != nil {
		return err
	}
	return printDocument(doc)
}

func (a *app) aiPredict(ctx context.Context, args []string) error {
	flags := pflag.NewFlagSet("ai predict", pflag.ContinueOnError)
	days := flags.Int("days", 7, "days ahead")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() == 0 {
		return errors.New("ai predict: missing resource id")
	}
	doc, err := a.ai.PredictResource(ctx, flags.Arg(0), *days)
	if err != nil {
		return err
	}
	return printDocument(doc)
}

func (a *app) aiAnomalies(ctx context.Context, args []string) error {
	flags := pflag.NewFlagSet("ai anomalies", pflag.ContinueOnError)
	days := flags.Int("days", 30, "days of history")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() == 0 {
		return errors.New("ai anomalies: missing resource id")
	}
	doc, err := a.ai.DetectAnomalies(ctx, flags.Arg(0), *days)
	if err != nil {
		return err
	}
	return printDocument(doc)
}
