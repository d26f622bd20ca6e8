package main

import (
	"NetInsights/internal/alerter"
	"NetInsights/internal/api"
	"NetInsights/internal/config"
	"NetInsights/internal/feed"
	"NetInsights/internal/insights"
	"NetInsights/internal/notification"
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to the configuration file")
	flag.Parse()

	log.Println("Starting ni-engine...")

	// 1. Load configuration
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Println("Configuration loaded successfully.")

	// 2. Create and start the insights aggregator
	agg := insights.New(cfg.Insights.EventBufferSize)
	agg.Start()

	// 3. Bind the aggregator to the task event feed
	subscriber, err := feed.NewSubscriber(cfg.Feed)
	if err != nil {
		log.Fatalf("Failed to connect to event feed: %v", err)
	}
	if err := agg.Register(subscriber); err != nil {
		log.Fatalf("Failed to register event feed: %v", err)
	}

	// 4. Start the alerter if enabled and a notifier is configured
	var alertr *alerter.Alerter
	if cfg.Alerter.Enabled {
		if cfg.SMTP.Host != "" {
			notifier := notification.NewEmailNotifier(cfg.SMTP)
			alertr, err = alerter.NewAlerter(&cfg.Alerter, agg, notifier)
			if err != nil {
				log.Fatalf("Failed to create alerter: %v", err)
			}
			go alertr.Start()
			log.Println("Alerter enabled and initialized.")
		} else {
			log.Println("Alerter is enabled in config, but no notifiers are configured. Alerter will not run.")
		}
	}

	// 5. Start the HTTP API server
	server := &http.Server{
		Addr:    cfg.API.ListenAddr,
		Handler: api.NewRouter(agg),
	}
	go func() {
		log.Printf("API server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v", server.Addr, err)
		}
	}()

	// 6. Wait for a shutdown signal for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutdown signal received, stopping...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("API server forced to shutdown: %v", err)
	}

	if alertr != nil {
		alertr.Stop()
	}

	// Stop the feed before the aggregator so no event arrives after the
	// command channel is closed.
	subscriber.Close()
	agg.Stop()
	log.Println("Shutdown complete.")
}
