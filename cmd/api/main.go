package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/haulhire/crm/pkg/validator"

	"github.com/haulhire/crm/internal/adapter/handler"
	"github.com/haulhire/crm/internal/adapter/repository"
	"github.com/haulhire/crm/internal/infrastructure/cache"
	"github.com/haulhire/crm/internal/infrastructure/external/airtable"
	httpmw "github.com/haulhire/crm/internal/infrastructure/http/middleware"
	"github.com/haulhire/crm/internal/media"
	"github.com/haulhire/crm/internal/usecase/auth"
	"github.com/haulhire/crm/internal/usecase/candidate"
	"github.com/haulhire/crm/internal/usecase/interview"
	"github.com/haulhire/crm/internal/usecase/sharelink"
	pkgai "github.com/haulhire/crm/pkg/ai"
	"github.com/haulhire/crm/pkg/config"
	"github.com/haulhire/crm/pkg/jwt"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, "Set-Cookie", "Cookie"},
		AllowCredentials: true,
	}))

	log.Println("🔧 Initializing dependencies...")

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize candidate record store
	log.Println("📦 Connecting to candidate record store...")
	airtableClient := airtable.NewClient(&cfg.Airtable)
	candidateRepo := repository.NewCandidateRepository(airtableClient)

	// Transcript cache for re-analysis without re-upload
	transcripts := cache.NewMemoryStore()
	defer transcripts.Close()

	// Initialize audio engine
	log.Println("🎙️  Initializing audio engine...")
	session := media.NewSession(cfg.Media.FFmpegPath)
	defer session.Close()
	splitter := media.NewSplitter(session, cfg.Media.SegmentCount, cfg.Media.Bitrate, cfg.Media.SampleRate)

	// Initialize AI clients
	log.Println("🤖 Initializing AI components...")
	whisperClient := pkgai.NewWhisperClient(&cfg.OpenAI)
	chatClient := pkgai.NewChatClient(&cfg.OpenAI)
	analyzer := interview.NewAnalyzer(chatClient, logger)
	persister := interview.NewPersister(candidateRepo, logger)

	// Initialize interview pipeline service
	log.Println("🎧 Initializing interview pipeline...")
	interviewService := interview.NewService(
		candidateRepo,
		splitter,
		whisperClient,
		analyzer,
		persister,
		transcripts,
		cfg.Media.RunTimeout,
		logger,
	)

	// Initialize JWT manager
	log.Println("🔑 Initializing JWT manager...")
	jwtManager := jwt.NewManager(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	// Initialize services
	log.Println("✨ Initializing services...")
	authService := auth.NewService(&cfg.Auth, jwtManager, logger)
	candidateService := candidate.NewService(candidateRepo, candidate.PlainTextExtractor{}, logger)
	shareService := sharelink.NewService(candidateRepo, logger)

	// Initialize handlers
	log.Println("🚀 Initializing handlers...")
	authHandler := handler.NewAuth(authService, jwtManager, logger)
	candidateHandler := handler.NewCandidate(candidateService, logger)
	kanbanHandler := handler.NewKanban(candidateService, logger)
	interviewHandler := handler.NewInterview(interviewService, logger)
	shareHandler := handler.NewShareLink(shareService, logger)

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	requireAuth := httpmw.RequireAuth(jwtManager, logger)

	router := handler.NewRouter(cfg, authHandler, candidateHandler, kanbanHandler, interviewHandler, shareHandler, requireAuth)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
