package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"StockSentinel/internal/collector"
	"StockSentinel/internal/config"
	"StockSentinel/internal/notifier"
	"StockSentinel/internal/recorder"
	"StockSentinel/internal/scheduler"
	"StockSentinel/internal/strategy"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] StockSentinel starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init fetcher
	var fetcher collector.Fetcher
	if cfg.DataSource.Provider == "alpaca" {
		fetcher = collector.NewAlpacaFetcher(cfg.DataSource.BaseURL, cfg.DataSource.KeyID, cfg.DataSource.SecretKey, cfg.Proxy)
	} else {
		fetcher = collector.NewYahooFetcher(cfg.Proxy)
	}
	log.Printf("[INFO] data source: %s, watchlist: %v", fetcher.Name(), cfg.Watchlist)

	col := collector.NewCollector(fetcher, cfg.LookbackDays)

	// Macro reference series always come from Yahoo.
	var macro *scheduler.MacroSources
	var macroCol *collector.Collector
	if !cfg.Macro.Disabled {
		macro = &scheduler.MacroSources{
			YieldSymbol:  cfg.Macro.YieldSymbol,
			DollarSymbol: cfg.Macro.DollarSymbol,
		}
		macroCol = collector.NewCollector(collector.NewYahooFetcher(cfg.Proxy), 30)
	}

	// Init strategy engines
	eng := strategy.NewEngineer(cfg.Engineer)
	wd := strategy.NewWatchdog(cfg.Watchdog)

	// Init Discord notifier
	dn := notifier.NewDiscordNotifier(cfg.Discord.WebhookURL, cfg.Proxy)

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, col, macroCol, macro, cfg.Watchlist, eng, wd, cfg.Sizer, dn, rec)
	if err := sched.RegisterAll(cfg.Schedule.WeeklyCron, cfg.Schedule.DailyCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing weekly scan now")
		go sched.RunWeeklyNow()
	}

	log.Println("[INFO] StockSentinel is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] StockSentinel stopped")
}
