// File: advisordesk/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"advisordesk/config"
	"advisordesk/database"
	recordsRepo "advisordesk/database/repository/records"
	"advisordesk/handlers"
	"advisordesk/middleware"
	"advisordesk/routes"
	"advisordesk/services/actions"
	"advisordesk/services/availability"
	"advisordesk/services/booking"
	"advisordesk/services/conversation"
	ai "advisordesk/services/intelligence"
	"advisordesk/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitSessionCache()

	loc, err := time.LoadLocation(config.AppConfig.Timezone)
	if err != nil {
		logger.Sugar().Fatalf("main: invalid timezone %q: %v", config.AppConfig.Timezone, err)
	}

	// Calendar source: a dataset file when one is configured, otherwise
	// the standing weekly advisor schedule.
	var calendar availability.Source
	if path := config.AppConfig.CalendarDataPath; path != "" {
		src, err := availability.LoadFromFile(path, config.AppConfig.SlotDurationMin)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to load calendar dataset: %v", err)
		}
		calendar = src
	} else {
		days := config.AppConfig.BookingHorizonDays + config.AppConfig.AdjacentDayRange
		calendar = availability.GenerateWeekly(time.Now().In(loc), days, config.AppConfig.SlotDurationMin)
	}

	// Intent classification: keyword tiers, with the LLM as fallback
	// when an API key is configured.
	var fallback ai.FallbackClassifier
	if key := config.AppConfig.GeminiAPIKey; key != "" {
		gemini, err := ai.NewGeminiClient(context.Background(), key)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize gemini client: %v", err)
		}
		fallback = gemini
	}
	classifier := ai.NewClassifier(config.AppConfig.MinIntentConfidence, fallback)

	registry := &booking.DefaultRegistryService{
		Records:    recordsRepo.NewMongoRecordRepo(),
		CodePrefix: config.AppConfig.BookingCodePrefix,
	}

	tzLabel := config.AppConfig.TimezoneLabel
	sinks := &actions.Runner{
		Calendar:     &actions.HTTPCalendarSink{URL: config.AppConfig.CalendarSinkURL, TZLabel: tzLabel},
		Sheet:        &actions.HTTPSheetSink{URL: config.AppConfig.SheetSinkURL, TZLabel: tzLabel},
		Email:        &actions.HTTPEmailSink{URL: config.AppConfig.EmailSinkURL, TZLabel: tzLabel},
		AdvisorEmail: config.AppConfig.AdvisorEmail,
	}

	engine := conversation.NewEngine(classifier, registry, calendar, conversation.Policy{
		RetryLimit:       config.AppConfig.RetryLimit,
		HorizonDays:      config.AppConfig.BookingHorizonDays,
		AdjacentDayRange: config.AppConfig.AdjacentDayRange,
		TimezoneLabel:    tzLabel,
		Location:         loc,
	})

	sessionTTL := time.Duration(config.AppConfig.SessionTTLMinutes) * time.Minute
	conversationService := &conversation.DefaultConversationService{
		Engine: engine,
		Store:  conversation.NewRedisSessionStore(utils.GetSessionCacheClient(), sessionTTL),
		Sinks:  sinks,
	}

	conversationHandler := handlers.NewConversationHandler(conversationService, logger)
	recordHandler := handlers.NewRecordHandler(registry, logger)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		StartSessionHandler: conversationHandler.StartSessionHandler,
		TurnHandler:         conversationHandler.TurnHandler,
		GetBookingHandler:   recordHandler.GetBookingHandler,
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
