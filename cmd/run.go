package cmd

import (
	"context"
	"fmt"
	"time"

	"helix/bot"
	"helix/config"
	"helix/events"
	"helix/infrastructure"
	"helix/repository"
	"helix/service"

	log "github.com/sirupsen/logrus"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	// Load configuration
	cfg := config.Get()
	configureLogging(cfg)

	log.Info("Starting helix bot...")

	// Open the configured storage backend
	log.Infof("Opening %s storage...", cfg.StorageBackend)
	stores, closeStores, err := openStores(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer closeStores()
	log.Info("Storage opened successfully")

	// Initialize event bus
	eventBus := events.NewBus()

	// Initialize unit of work factory
	uowFactory := repository.NewUnitOfWorkFactory(stores, eventBus)

	// Initialize services
	configService := service.NewGuildConfigService(uowFactory)
	teamService := service.NewTeamService(uowFactory)
	ringRoleService := service.NewRingRoleService(uowFactory)
	log.Info("Services initialized successfully")

	// Forward registry events to other league services when NATS is configured
	var natsClient *infrastructure.NATSClient
	if servers := cfg.NATSServerList(); len(servers) > 0 {
		natsClient, err = connectEventForwarding(ctx, servers, eventBus)
		if err != nil {
			return fmt.Errorf("failed to set up event forwarding: %w", err)
		}
	}

	// Initialize Discord bot
	log.Info("Initializing Discord bot...")
	botConfig := bot.Config{
		Token:   cfg.DiscordToken,
		GuildID: cfg.DiscordGuildID,
	}
	discordBot, err := bot.New(botConfig, configService, teamService, ringRoleService, eventBus)
	if err != nil {
		if natsClient != nil {
			_ = natsClient.Close()
		}
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}
	log.Info("Discord bot initialized successfully")

	// Wait for context cancellation
	log.Infof("Bot is running in %s mode...", cfg.Environment)
	<-ctx.Done()

	// Cleanup resources
	log.Info("Shutting down bot...")

	if err := discordBot.Close(); err != nil {
		log.Errorf("Error closing Discord bot: %v", err)
	}

	// Give in-flight event handlers time to finish before storage closes
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if natsClient != nil {
		if err := natsClient.Close(); err != nil {
			log.Errorf("Error closing NATS connection: %v", err)
		}
	}

	select {
	case <-shutdownCtx.Done():
		log.Warn("Shutdown timeout exceeded")
	case <-time.After(1 * time.Second):
		log.Info("Shutdown completed")
	}

	return nil
}

// configureLogging applies LOG_LEVEL and switches to JSON output in production
func configureLogging(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warnf("Unknown LOG_LEVEL %q, using info", cfg.LogLevel)
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.IsProduction() {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}

func connectEventForwarding(ctx context.Context, servers []string, eventBus *events.Bus) (*infrastructure.NATSClient, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client := infrastructure.NewNATSClient(servers)
	if err := client.Connect(connectCtx); err != nil {
		return nil, err
	}
	if err := client.EnsureLeagueEventStream(); err != nil {
		_ = client.Close()
		return nil, err
	}

	forwarder := infrastructure.NewEventForwarder(client, infrastructure.NewEventSubjectMapper())
	forwarder.Register(eventBus)
	log.Info("Forwarding league events to NATS")
	return client, nil
}
