package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/davidrios/cinemap/internal/handler"
	"github.com/davidrios/cinemap/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication routes.  Unauthenticated token
// operations live under /v1/auth; /v1/me runs behind JWTAuth.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// /refresh rotates the refresh token; /refresh-access reuses it.
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout authenticates via the request body or Authorization header
	// itself, so it stays outside the JWT middleware.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}

// RegisterRecords registers the marker, movie and screening room endpoints.
// Reads are public; creates, updates and deletes require a valid access
// token, whose email claim becomes the record owner.
func RegisterRecords(e *echo.Echo, m *handler.MarkerHandler, mv *handler.MovieHandler, r *handler.RoomHandler, jwtSecret string) {
	// Public reads.
	e.GET("/v1/markers", m.List)
	e.GET("/v1/markers/:id", m.Get)
	e.GET("/v1/movies", mv.List)
	e.GET("/v1/movies/:id", mv.Get)
	e.GET("/v1/rooms", r.List)
	e.GET("/v1/rooms/:id", r.Get)

	// Authenticated mutations.
	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))

	auth.POST("/markers", m.Create)
	auth.PUT("/markers/:id", m.Update)
	auth.DELETE("/markers/:id", m.Delete)

	auth.POST("/movies", mv.Create)
	auth.PUT("/movies/:id", mv.Update)
	auth.DELETE("/movies/:id", mv.Delete)

	auth.POST("/rooms", r.Create)
	auth.PUT("/rooms/:id", r.Update)
	auth.DELETE("/rooms/:id", r.Delete)
}
