package main

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aura-finance/backend/internal/agent"
	"github.com/aura-finance/backend/internal/auth"
	"github.com/aura-finance/backend/internal/config"
	"github.com/aura-finance/backend/internal/controllers"
	"github.com/aura-finance/backend/internal/dashboard"
	"github.com/aura-finance/backend/internal/memory"
	"github.com/aura-finance/backend/internal/models"
	"github.com/aura-finance/backend/internal/pipeline"
	"github.com/aura-finance/backend/internal/resend"
	"github.com/aura-finance/backend/internal/router"
	"github.com/aura-finance/backend/internal/store"
	"github.com/aura-finance/backend/internal/webhook"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// A .env file is optional, the environment takes precedence
	_ = godotenv.Load()

	// gin uses debug as the default mode, we use release for
	// security reasons
	ginMode, ok := os.LookupEnv("GIN_MODE")
	if !ok {
		gin.SetMode("release")
	} else {
		gin.SetMode(ginMode)
	}

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	logFormat, ok := os.LookupEnv("LOG_FORMAT")
	output := io.Writer(os.Stdout)
	if (!ok && gin.IsDebugging()) || (ok && logFormat == "human") {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	cfg := config.Load()
	err := cfg.Validate()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	apiURL, err := url.Parse(cfg.APIURL)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	db, err := models.Connect(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	verifier, err := webhook.NewVerifier(webhookSecret(cfg))
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	var categorizer agent.Categorizer = agent.Unconfigured{}
	if cfg.GeminiAPIKey != "" {
		client, err := agent.NewGeminiClient(ctx, cfg.GeminiAPIKey)
		if err != nil {
			log.Fatal().Msg(err.Error())
		}
		categorizer = agent.NewGemini(client.Models, cfg.AgentModel, cfg.AgentTimeout)
	} else {
		log.Warn().Msg("GEMINI_API_KEY is not set, emails that miss the vendor cache cannot be categorized")
	}

	var corrections memory.Store = memory.NewDatabaseStore(db)
	if cfg.AMQPURL != "" {
		publisher, err := memory.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			log.Fatal().Msg(err.Error())
		}
		defer publisher.Close()

		corrections = memory.NewPublishingStore(corrections, publisher)
		log.Info().Str("exchange", cfg.AMQPExchange).Str("queue", cfg.AMQPQueue).Msg("Publishing corrections")
	}

	stores := pipeline.Stores{
		Transactions: store.NewTransactionStore(db),
		VendorCache:  store.NewVendorCacheStore(db),
		Users:        store.NewUserStore(db),
		Categories:   store.NewCategoryStore(db),
	}

	budgets := store.NewBudgetStore(db)

	co := controllers.Controller{
		DB:           db,
		Users:        stores.Users,
		Categories:   stores.Categories,
		Budgets:      budgets,
		Transactions: stores.Transactions,
		VendorCache:  stores.VendorCache,
		Sessions:     auth.NewSessions(cfg.SessionSecret, cfg.SessionTTL, apiURL.Scheme == "https"),
		Webhook: pipeline.NewWebhook(pipeline.WebhookConfig{
			Verifier:   verifier,
			Stores:     stores,
			Agent:      categorizer,
			Memory:     corrections,
			Emails:     resend.NewClient(cfg.ResendAPIURL, cfg.ResendAPIKey, 10*time.Second),
			Allowed:    cfg.AllowedSenders,
			RecallSize: cfg.MemoryRecallLimit,
		}),
		Feedback: pipeline.NewFeedback(pipeline.FeedbackConfig{
			Stores:     stores,
			Agent:      categorizer,
			Memory:     corrections,
			RecallSize: cfg.MemoryRecallLimit,
		}),
		Dashboard:   dashboard.NewAggregator(stores.Users, stores.Categories, budgets, stores.Transactions),
		Development: cfg.Development(),
	}

	r, teardown, err := router.Config(apiURL, cfg.CORSOrigins)
	defer teardown()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}
	router.AttachRoutes(co, r.Group("/"), cfg.EnablePprof)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 16,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("Server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	sqlDB, err := db.DB()
	if err == nil {
		sqlDB.Close()
	}
}

// webhookSecret returns the configured webhook secret. Development servers
// without one get a random secret, so every webhook is rejected.
func webhookSecret(cfg *config.Config) string {
	if cfg.ResendWebhookSecret != "" {
		return cfg.ResendWebhookSecret
	}

	key := make([]byte, 32)
	_, _ = rand.Read(key)

	log.Warn().Msg("RESEND_WEBHOOK_SECRET is not set, all webhooks will be rejected")
	return "whsec_" + base64.StdEncoding.EncodeToString(key)
}
