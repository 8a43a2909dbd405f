package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"modbot/auth"
	"modbot/behaviors"
	discordclient "modbot/clients/discord"
	"modbot/config"
	"modbot/db"
	"modbot/dispatch"
	"modbot/features/channeltracking"
	"modbot/features/emojis"
	"modbot/features/memberships"
	"modbot/features/moderation"
	"modbot/features/promotions"
	"modbot/features/removablemessages"
	"modbot/features/tags"
	"modbot/handlers"
	"modbot/middleware"
	"modbot/models"
	claimssvc "modbot/services/claims"
	emojissvc "modbot/services/emojis"
	guildchannelssvc "modbot/services/guildchannels"
	guilduserssvc "modbot/services/guildusers"
	infractionssvc "modbot/services/infractions"
	promotionssvc "modbot/services/promotions"
	tagssvc "modbot/services/tags"
	trackedmessagessvc "modbot/services/trackedmessages"
	"modbot/services/txmanager"
)

func main() {
	if err := run(); err != nil {
		log.Printf("❌ Fatal error: %v", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	// Initialize error alert middleware
	alertMiddleware := middleware.NewErrorAlertMiddleware(middleware.SlackAlertConfig{
		WebhookURL:  cfg.AlertsConfig.SlackWebhookURL,
		Environment: cfg.Environment,
		AppName:     "modbot",
		LogsURL:     cfg.AlertsConfig.LogsURL,
	})

	// Initialize database connection
	dbConn, err := db.NewConnection(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer dbConn.Close()

	// Initialize repositories with shared connection
	claimMappingsRepo := db.NewPostgresClaimMappingsRepository(dbConn, cfg.DatabaseSchema)
	infractionsRepo := db.NewPostgresInfractionsRepository(dbConn, cfg.DatabaseSchema)
	tagsRepo := db.NewPostgresTagsRepository(dbConn, cfg.DatabaseSchema)
	emojiStatsRepo := db.NewPostgresEmojiStatsRepository(dbConn, cfg.DatabaseSchema)
	promotionsRepo := db.NewPostgresPromotionsRepository(dbConn, cfg.DatabaseSchema)
	trackedMessagesRepo := db.NewPostgresTrackedMessagesRepository(dbConn, cfg.DatabaseSchema)
	guildUsersRepo := db.NewPostgresGuildUsersRepository(dbConn, cfg.DatabaseSchema)
	guildChannelsRepo := db.NewPostgresGuildChannelsRepository(dbConn, cfg.DatabaseSchema)

	// Initialize transaction manager
	txManager := txmanager.NewTransactionManager(dbConn)

	claimsService := claimssvc.NewClaimsService(claimMappingsRepo)
	infractionsService := infractionssvc.NewInfractionsService(infractionsRepo)
	tagsService := tagssvc.NewTagsService(tagsRepo)
	emojisService := emojissvc.NewEmojisService(emojiStatsRepo)
	promotionsService := promotionssvc.NewPromotionsService(promotionsRepo)
	trackedMessagesService := trackedmessagessvc.NewTrackedMessagesService(trackedMessagesRepo)
	guildUsersService := guilduserssvc.NewGuildUsersService(guildUsersRepo)
	guildChannelsService := guildchannelssvc.NewGuildChannelsService(guildChannelsRepo)

	// Initialize the Discord gateway session
	session, err := discordgo.New("Bot " + cfg.DiscordConfig.BotToken)
	if err != nil {
		return err
	}
	session.Identify.Intents = discordgo.IntentGuilds |
		discordgo.IntentGuildMessages |
		discordgo.IntentGuildMessageReactions |
		discordgo.IntentGuildMembers |
		discordgo.IntentGuildModeration |
		discordgo.IntentMessageContent

	discordClient := discordclient.NewDiscordClient(session)
	authResolver := auth.NewResolver(discordClient, claimsService)

	// Register feature handlers per notification variant. Within one dispatch
	// handlers run in registration order.
	registry := dispatch.NewRegistryBuilder().
		Register(models.NotificationMessageReceived, func(scope *dispatch.Scope) dispatch.Handler {
			return moderation.NewMessageFilterHandler(infractionsService, discordClient, cfg.ModerationConfig.BannedTerms)
		}).
		Register(models.NotificationMessageReceived, func(scope *dispatch.Scope) dispatch.Handler {
			return tags.NewTagUsageHandler(tagsService)
		}).
		Register(models.NotificationMessageReceived, func(scope *dispatch.Scope) dispatch.Handler {
			return emojis.NewEmojiStatsHandler(emojisService)
		}).
		Register(models.NotificationMessageUpdated, func(scope *dispatch.Scope) dispatch.Handler {
			return moderation.NewMessageFilterHandler(infractionsService, discordClient, cfg.ModerationConfig.BannedTerms)
		}).
		Register(models.NotificationMessageDeleted, func(scope *dispatch.Scope) dispatch.Handler {
			return removablemessages.NewRemovableMessageHandler(trackedMessagesService, discordClient)
		}).
		Register(models.NotificationReactionAdded, func(scope *dispatch.Scope) dispatch.Handler {
			return emojis.NewEmojiStatsHandler(emojisService)
		}).
		Register(models.NotificationReactionAdded, func(scope *dispatch.Scope) dispatch.Handler {
			return promotions.NewPromotionVoteHandler(promotionsService)
		}).
		Register(models.NotificationReactionAdded, func(scope *dispatch.Scope) dispatch.Handler {
			return removablemessages.NewRemovableMessageHandler(trackedMessagesService, discordClient)
		}).
		Register(models.NotificationReactionRemoved, func(scope *dispatch.Scope) dispatch.Handler {
			return emojis.NewEmojiStatsHandler(emojisService)
		}).
		Register(models.NotificationUserJoined, func(scope *dispatch.Scope) dispatch.Handler {
			return memberships.NewMembershipHandler(guildUsersService)
		}).
		Register(models.NotificationUserLeft, func(scope *dispatch.Scope) dispatch.Handler {
			return memberships.NewMembershipHandler(guildUsersService)
		}).
		Register(models.NotificationChannelCreated, func(scope *dispatch.Scope) dispatch.Handler {
			return channeltracking.NewChannelTrackingHandler(guildChannelsService)
		}).
		Register(models.NotificationChannelUpdated, func(scope *dispatch.Scope) dispatch.Handler {
			return channeltracking.NewChannelTrackingHandler(guildChannelsService)
		}).
		Register(models.NotificationAuditLogCreated, func(scope *dispatch.Scope) dispatch.Handler {
			return moderation.NewAuditLogSyncHandler(infractionsService)
		}).
		Build()

	scopeFactory := dispatch.NewScopeFactory(txManager)
	dispatcher := dispatch.NewDispatcher(registry, scopeFactory, authResolver, alertMiddleware)

	// Behaviors bridge the gateway to the dispatcher
	behaviorRegistry := behaviors.NewRegistry(
		behaviors.NewMessageBehavior(session, dispatcher),
		behaviors.NewReactionBehavior(session, dispatcher),
		behaviors.NewMemberBehavior(session, dispatcher),
		behaviors.NewChannelBehavior(session, dispatcher),
		behaviors.NewAuditLogBehavior(session, dispatcher),
	)
	if err := behaviorRegistry.StartAll(); err != nil {
		return err
	}

	if err := session.Open(); err != nil {
		return err
	}
	log.Printf("🤖 Discord gateway connection open")

	statsHandler := handlers.NewStatsHTTPHandler(tagsService, emojisService)
	claimsHandler := handlers.NewClaimsHTTPHandler(claimsService)

	// Create a new router
	router := mux.NewRouter()
	statsHandler.SetupEndpoints(router)
	claimsHandler.SetupEndpoints(router)

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"status":"ok"}`)); err != nil {
			log.Printf("❌ Failed to write health check response: %v", err)
		}
	}).Methods("GET")

	// Periodically purge expired message tracking records
	cleanupTicker := time.NewTicker(1 * time.Minute)
	go func() {
		for range cleanupTicker.C {
			_ = alertMiddleware.WrapBackgroundTask("PurgeExpiredTrackedMessages", func() error {
				_, err := trackedMessagesService.PurgeExpired(context.Background())
				return err
			})()
		}
	}()
	defer cleanupTicker.Stop()

	// Setup CORS middleware
	allowedOrigins := strings.Split(cfg.CORSAllowedOrigins, ",")
	for i, origin := range allowedOrigins {
		allowedOrigins[i] = strings.TrimSpace(origin)
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	// Setup and handle graceful shutdown
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           alertMiddleware.HTTPMiddleware(c.Handler(router)),
		ReadHeaderTimeout: 30 * time.Second,
	}

	return handleGracefulShutdown(server, func() {
		// Stop ingesting before closing the gateway, then drain dispatches
		behaviorRegistry.StopAll()
		if err := session.Close(); err != nil {
			log.Printf("❌ Failed to close gateway session: %v", err)
		}

		drainCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := dispatcher.Shutdown(drainCtx); err != nil {
			log.Printf("❌ Dispatcher shutdown error: %v", err)
		}
	})
}

func handleGracefulShutdown(server *http.Server, cleanup func()) error {
	// Channel to listen for interrupt signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Start server in a goroutine
	go func() {
		log.Printf("✅ Listening on http://localhost%s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("❌ Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	<-stop
	log.Printf("🛑 Shutdown signal received, cleaning up...")

	cleanup()

	// Create a deadline for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Shutdown server gracefully
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("❌ Server shutdown error: %v", err)
		return err
	}

	log.Printf("✅ Server stopped gracefully")
	return nil
}
