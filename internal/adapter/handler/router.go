package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/haulhire/crm/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg              *config.Config
	authHandler      *Auth
	candidateHandler *Candidate
	kanbanHandler    *Kanban
	interviewHandler *Interview
	shareHandler     *ShareLink
	requireAuth      echo.MiddlewareFunc
}

// NewRouter creates a new router with all handlers
func NewRouter(
	cfg *config.Config,
	authHandler *Auth,
	candidateHandler *Candidate,
	kanbanHandler *Kanban,
	interviewHandler *Interview,
	shareHandler *ShareLink,
	requireAuth echo.MiddlewareFunc,
) *Router {
	return &Router{
		cfg:              cfg,
		authHandler:      authHandler,
		candidateHandler: candidateHandler,
		kanbanHandler:    kanbanHandler,
		interviewHandler: interviewHandler,
		shareHandler:     shareHandler,
		requireAuth:      requireAuth,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// API v1 group
	v1 := e.Group("/v1")

	rt.setupAuthRoutes(v1)
	rt.setupCandidateRoutes(v1)
	rt.setupKanbanRoutes(v1)
	rt.setupShareRoutes(v1)
}

// setupAuthRoutes configures authentication routes
func (rt *Router) setupAuthRoutes(g *echo.Group) {
	authGroup := g.Group("/auth")

	authGroup.POST("/login", rt.authHandler.Login)
	authGroup.POST("/refresh", rt.authHandler.Refresh)
	authGroup.POST("/logout", rt.authHandler.Logout)
	authGroup.GET("/me", rt.authHandler.Me)
}

// setupCandidateRoutes configures the candidate CRUD and interview
// pipeline routes. Everything here requires a valid session.
func (rt *Router) setupCandidateRoutes(g *echo.Group) {
	candidateGroup := g.Group("/candidates", rt.requireAuth)

	candidateGroup.GET("", rt.candidateHandler.List)
	candidateGroup.POST("", rt.candidateHandler.Create)
	candidateGroup.GET("/:id", rt.candidateHandler.Get)
	candidateGroup.PUT("/:id", rt.candidateHandler.Update)

	candidateGroup.POST("/:id/summary", rt.candidateHandler.CreateSummary)
	candidateGroup.PUT("/:id/summary", rt.candidateHandler.UpdateSummary)

	candidateGroup.POST("/:id/interview", rt.interviewHandler.Process)
	candidateGroup.GET("/:id/interview", rt.interviewHandler.Status)
	candidateGroup.DELETE("/:id/interview", rt.interviewHandler.Cancel)
	candidateGroup.POST("/:id/interview/reanalyze", rt.interviewHandler.Reanalyze)
	candidateGroup.GET("/:id/interview/transcript", rt.interviewHandler.Transcript)

	candidateGroup.POST("/:id/share-link", rt.shareHandler.Generate)
}

// setupKanbanRoutes configures pipeline board routes
func (rt *Router) setupKanbanRoutes(g *echo.Group) {
	kanbanGroup := g.Group("/kanban", rt.requireAuth)

	kanbanGroup.GET("/board", rt.kanbanHandler.Board)
	kanbanGroup.POST("/:id/move", rt.kanbanHandler.Move)
}

// setupShareRoutes configures the public shared-profile route. Token
// validation happens in the service, so no auth middleware here.
func (rt *Router) setupShareRoutes(g *echo.Group) {
	g.GET("/shared-profile/:token", rt.shareHandler.Resolve)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
	})
}
