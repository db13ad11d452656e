package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"CryptoSentry/internal/analyzer"
	"CryptoSentry/internal/config"
	"CryptoSentry/internal/handler"
	"CryptoSentry/internal/model"
	"CryptoSentry/internal/monitor"
	"CryptoSentry/internal/notifier"
	"CryptoSentry/internal/provider"
	"CryptoSentry/internal/store"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] CryptoSentry starting...")

	// .env is optional; real env always wins.
	if err := godotenv.Load(); err == nil {
		log.Println("[INFO] loaded .env")
	}

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

	// Provider chain, in fallback order. Synthetic is last and never fails,
	// so analysis always produces an answer.
	binance := provider.NewBinanceFetcher(cfg.Providers.BinanceBaseURL, cfg.Proxy, cfg.ProviderTimeout())
	gecko := provider.NewCoinGeckoFetcher(cfg.Providers.CoinGeckoBaseURL, cfg.Proxy, cfg.ProviderTimeout())
	synthetic := provider.NewSyntheticFetcher()
	selector := provider.NewSelector(cfg.ProviderTimeout(), cfg.ProviderMinInterval(), binance, gecko, synthetic)
	log.Printf("[INFO] data sources: %s -> %s -> %s", binance.Name(), gecko.Name(), synthetic.Name())

	// Store: SQLite, with in-memory fallback when the file cannot be opened.
	var st store.Store
	if cfg.Database.SQLitePath != "" {
		ss, err := store.NewSQLiteStore(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite store failed, using in-memory: %v", err)
			st = store.NewMemoryStore()
		} else {
			st = ss
		}
	} else {
		st = store.NewMemoryStore()
	}
	defer st.Close()

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telegram notifier and analysis pipeline
	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
	an := analyzer.New(selector, cfg.Strategy.Weights, st)

	// Monitor: forward each TP/SL/alert event to Telegram.
	mon := monitor.New(ctx, selector, st, func(ev model.Event) {
		if err := tn.SendWithRetry(ctx, notifier.FormatEvent(ev), 3); err != nil {
			log.Printf("[ERROR] send event %s: %v", ev.ID, err)
		}
	})
	if err := mon.Start(cfg.MonitorInterval()); err != nil {
		log.Fatalf("[FATAL] start monitor: %v", err)
	}
	defer mon.Stop()

	// Start Telegram command polling
	h := handler.New(ctx, an, st)
	go tn.StartPolling(ctx, h.HandleCommand)
	log.Println("[INFO] Telegram polling started")

	log.Println("[INFO] CryptoSentry is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] CryptoSentry stopped")
}
