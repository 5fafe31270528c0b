package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/davidrios/cinemap/internal/middleware"
	"github.com/davidrios/cinemap/internal/service"
)

// MovieHandler exposes the movie CRUD endpoints.
type MovieHandler struct {
	Movies *service.MovieService
}

func NewMovieHandler(s *service.MovieService) *MovieHandler {
	return &MovieHandler{Movies: s}
}

// Create handles POST /v1/movies.  The body is a multipart form with
// "title" and an optional "poster" file.
func (h *MovieHandler) Create(c echo.Context) error {
	poster, posterType, err := readUpload(c, "poster")
	if err != nil {
		return writeServiceError(c, err)
	}
	in := service.MovieInput{
		Title:      c.FormValue("title"),
		Poster:     poster,
		PosterType: posterType,
	}
	m, err := h.Movies.Create(c.Request().Context(), middleware.CallerEmail(c), in)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, m)
}

// Update handles PUT /v1/movies/:id.  Omitting the poster keeps the
// stored one.
func (h *MovieHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "record not found"})
	}
	poster, posterType, err := readUpload(c, "poster")
	if err != nil {
		return writeServiceError(c, err)
	}
	in := service.MovieInput{
		Title:      c.FormValue("title"),
		Poster:     poster,
		PosterType: posterType,
	}
	m, err := h.Movies.Update(c.Request().Context(), middleware.CallerEmail(c), id, in)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, m)
}

// Delete handles DELETE /v1/movies/:id.
func (h *MovieHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "record not found"})
	}
	if err := h.Movies.Delete(c.Request().Context(), middleware.CallerEmail(c), id); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "record deleted"})
}

// Get handles GET /v1/movies/:id.
func (h *MovieHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "record not found"})
	}
	m, err := h.Movies.Get(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, m)
}

// List handles GET /v1/movies.
func (h *MovieHandler) List(c echo.Context) error {
	ms, err := h.Movies.List(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, ms)
}
