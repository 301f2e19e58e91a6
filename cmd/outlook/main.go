package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"activity-forecast/app"
	"activity-forecast/datasource"
	"activity-forecast/logging"
	"activity-forecast/models"
	"activity-forecast/scoring"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	configFile := flag.String("config", "config.json", "Path to configuration file")
	asJSON := flag.Bool("json", false, "Print the outlook as JSON")
	timeout := flag.Duration("timeout", 30*time.Second, "Overall request timeout")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <location>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	location := strings.Join(flag.Args(), " ")
	if strings.TrimSpace(location) == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(location, *configFile, *asJSON, *timeout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(location, configFile string, asJSON bool, timeout time.Duration) error {
	config, err := datasource.LoadConfig(configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Only warnings reach the terminal; the outlook goes to stdout
	logger, err := logging.New(os.Stderr, "warn", config.Logging.Format)
	if err != nil {
		return err
	}

	a, err := app.New(config, app.Options{}, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	forecast, err := a.Aggregator.GetForecast(ctx, location)
	if err != nil {
		return err
	}

	outlook := scoring.BuildOutlook(*forecast)
	if asJSON {
		return writeJSON(os.Stdout, outlook)
	}
	return writeText(os.Stdout, outlook)
}

func writeJSON(w io.Writer, outlook models.ActivityForecast) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(outlook)
}

// writeText prints the ranked activities followed by their per-day scores
func writeText(w io.Writer, outlook models.ActivityForecast) error {
	loc := outlook.Location
	name := loc.Name
	if loc.Country != "" {
		name += ", " + loc.Country
	}
	fmt.Fprintf(w, "%s (%.2f, %.2f) %s\n", name, loc.Latitude, loc.Longitude, loc.Timezone)
	fmt.Fprintf(w, "Generated %s\n\n", outlook.GeneratedAt)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tACTIVITY\tSCORE\tBEST DAY\tSUMMARY")
	for i, result := range outlook.Activities {
		fmt.Fprintf(tw, "%d\t%s\t%.2f\t%s\t%s\n", i+1, result.Activity, result.Score, result.BestDay.Date, result.Summary)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, result := range outlook.Activities {
		fmt.Fprintf(w, "\n%s\n", result.Activity)
		for _, day := range result.Daily {
			reason := ""
			if len(day.Reasons) > 0 {
				reason = day.Reasons[0]
			}
			fmt.Fprintf(w, "  %s  %.2f  %s\n", day.Date, day.Score, reason)
		}
	}
	return nil
}
