package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"mt5-summary-bot/internal/interfaces"
	"mt5-summary-bot/internal/logger"
	"mt5-summary-bot/internal/metrics"
	"mt5-summary-bot/internal/runlog"
	"mt5-summary-bot/internal/schedule"
	"mt5-summary-bot/internal/storage"
	"mt5-summary-bot/internal/store"
	"mt5-summary-bot/internal/trace"
	"mt5-summary-bot/internal/types"
)

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}

// logRetentionDays reads SUMMARY_LOG_RETENTION_DAYS; 0 means retention is
// disabled.
func logRetentionDays() (int, error) {
	v := os.Getenv("SUMMARY_LOG_RETENTION_DAYS")
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}

func main() {
	runNow := flag.Bool("now", false, "run one summary immediately and exit")
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	_ = godotenv.Load()
	must(initializeSystem())

	cfg, err := store.LoadConfig(*configPath)
	must(err)

	if days, err := logRetentionDays(); err != nil {
		logger.Warn(context.Background(), "Invalid SUMMARY_LOG_RETENTION_DAYS, skipping log compression", "error", err)
	} else if days > 0 {
		_ = runlog.CompressOlder(days)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	defer trace.Shutdown(context.Background())

	pipe, err := buildPipeline(cfg)
	must(err)

	db, err := storage.OpenSQLite(cfg.RunHistoryDB)
	must(err)
	defer db.Close()
	must(storage.InitSchema(db))
	runs := storage.NewStore(db)

	if *runNow {
		runOnce(ctx, pipe, runs)
		return
	}

	if cfg.MetricsAddr != "" {
		go func() {
			if err := metrics.Serve(cfg.MetricsAddr); err != nil {
				logger.Warn(ctx, "Metrics server stopped", "error", err)
			}
		}()
	}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)

	gate := schedule.New(cfg.Schedule.WeekdayHours, cfg.Schedule.WeekendHour)
	loc, err := cfg.Location()
	must(err)

	lastRun, _, err := runs.LastRunAt()
	if err != nil {
		logger.Warn(ctx, "Could not read last run time, starting fresh", "error", err)
	}

	tick := time.NewTicker(time.Minute)
	defer tick.Stop()

	logger.Info(ctx, "Scheduler started",
		"weekday_hours", cfg.Schedule.WeekdayHours,
		"weekend_hour", cfg.Schedule.WeekendHour,
		"timezone", cfg.Timezone,
	)
	for {
		select {
		case <-tick.C:
			now := time.Now().In(loc)
			if !gate.ShouldRun(now, lastRun) {
				continue
			}
			runOnce(ctx, pipe, runs)
			lastRun = now
		case <-sigc:
			logger.Info(ctx, "Shutting down")
			return
		case <-ctx.Done():
			return
		}
	}
}

func runOnce(ctx context.Context, pipe interfaces.Pipeline, runs *storage.Store) {
	now := time.Now()
	res := pipe.RunOnce(ctx, now)

	if err := runs.RecordRun(now, res); err != nil {
		logger.Warn(ctx, "Failed to record run history", "error", err)
	}
	if err := runlog.Append(now, runEntry(res)); err != nil {
		logger.Warn(ctx, "Failed to append run log", "error", err)
	}
}

func runEntry(res types.RunResult) runlog.Entry {
	e := runlog.Entry{Status: string(res.Status), Stage: string(res.Stage)}
	if res.Err != nil {
		e.Error = res.Err.Error()
	}
	if res.Report != nil {
		e.DailyProfit = res.Report.Daily.Profit
		e.DailyTrades = res.Report.Daily.TradeCount
		e.Narrated = res.Report.Narrative != ""
	}
	return e
}
