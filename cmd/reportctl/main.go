package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/schollz/progressbar/v3"

	"marketplace-analytics/internal/analytics"
	"marketplace-analytics/internal/config"
	"marketplace-analytics/internal/db"
	"marketplace-analytics/internal/logger"
	"marketplace-analytics/internal/model"
	"marketplace-analytics/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "./reports", "Output directory")
	types := flag.String("types", "dashboard,products,orders,customers", "Comma-separated report types")
	format := flag.String("format", "csv", "Export format (json or csv)")
	period := flag.String("period", "", "Period keyword (today, week, month, quarter, year)")
	startDate := flag.String("start", "", "Start date (YYYY-MM-DD or RFC3339)")
	endDate := flag.String("end", "", "End date (YYYY-MM-DD or RFC3339)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	appLog, err := logger.New(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	ctx := context.Background()
	source, closeSource, err := db.Open(ctx, cfg, appLog)
	if err != nil {
		return fmt.Errorf("open data source: %w", err)
	}
	defer closeSource()

	forecaster, err := analytics.NewForecaster(cfg.ForecastModel, rand.NewSource(time.Now().UnixNano()))
	if err != nil {
		return fmt.Errorf("init forecaster: %w", err)
	}
	opts := service.DefaultOptions()
	opts.LowStockThreshold = cfg.LowStockThreshold
	opts.ChurnWindow = time.Duration(cfg.ChurnWindowDays) * 24 * time.Hour
	opts.FetchTimeout = cfg.FetchTimeout
	svc := service.NewReportService(source, forecaster, appLog, opts)

	kinds := strings.Split(*types, ",")
	bar := progressbar.Default(int64(len(kinds)), "exporting")
	q := model.ReportQuery{Period: *period, StartDate: *startDate, EndDate: *endDate}
	if err := exportAll(ctx, svc, *out, kinds, q, *format, bar); err != nil {
		return err
	}
	log.Printf("wrote %d reports to %s", len(kinds), *out)
	return nil
}

type progress interface {
	Add(n int) error
}

// exportAll writes one <kind>-report.<format> file per kind into dir.
func exportAll(ctx context.Context, svc service.ReportService, dir string, kinds []string, q model.ReportQuery, format string, bar progress) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	for _, kind := range kinds {
		kind = strings.TrimSpace(kind)
		_, body, err := svc.ExportReport(ctx, model.ExportQuery{
			ReportQuery: q,
			Type:        kind,
			Format:      format,
		})
		if err != nil {
			return fmt.Errorf("export %s: %w", kind, err)
		}

		path := filepath.Join(dir, fmt.Sprintf("%s-report.%s", kind, strings.ToLower(format)))
		if err := os.WriteFile(path, body, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		if err := bar.Add(1); err != nil {
			return fmt.Errorf("progress: %w", err)
		}
	}
	return nil
}
