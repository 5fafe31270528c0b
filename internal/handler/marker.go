package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/davidrios/cinemap/internal/middleware"
	"github.com/davidrios/cinemap/internal/service"
)

// MarkerHandler exposes the marker CRUD endpoints.  Reads are public;
// mutations run behind JWTAuth and derive the caller identity from the
// token's email claim.
type MarkerHandler struct {
	Markers *service.MarkerService
}

func NewMarkerHandler(s *service.MarkerService) *MarkerHandler {
	return &MarkerHandler{Markers: s}
}

// Create handles POST /v1/markers.  The body is a multipart form with
// "name", "place" and an optional "image" file.
func (h *MarkerHandler) Create(c echo.Context) error {
	image, imageType, err := readUpload(c, "image")
	if err != nil {
		return writeServiceError(c, err)
	}
	in := service.MarkerInput{
		Name:      c.FormValue("name"),
		Place:     c.FormValue("place"),
		Image:     image,
		ImageType: imageType,
	}
	m, err := h.Markers.Create(c.Request().Context(), middleware.CallerEmail(c), in)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, m)
}

// Update handles PUT /v1/markers/:id with the same form fields as Create.
// Omitting the image keeps the stored one.
func (h *MarkerHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "record not found"})
	}
	image, imageType, err := readUpload(c, "image")
	if err != nil {
		return writeServiceError(c, err)
	}
	in := service.MarkerInput{
		Name:      c.FormValue("name"),
		Place:     c.FormValue("place"),
		Image:     image,
		ImageType: imageType,
	}
	m, err := h.Markers.Update(c.Request().Context(), middleware.CallerEmail(c), id, in)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, m)
}

// Delete handles DELETE /v1/markers/:id.
func (h *MarkerHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "record not found"})
	}
	if err := h.Markers.Delete(c.Request().Context(), middleware.CallerEmail(c), id); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "record deleted"})
}

// Get handles GET /v1/markers/:id.
func (h *MarkerHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "record not found"})
	}
	m, err := h.Markers.Get(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, m)
}

// List handles GET /v1/markers.  With "lat" and "lon" query parameters it
// narrows the result to the bounding box around that point; either
// parameter alone, or an unparseable value, is a 400.
func (h *MarkerHandler) List(c echo.Context) error {
	latStr := strings.TrimSpace(c.QueryParam("lat"))
	lonStr := strings.TrimSpace(c.QueryParam("lon"))

	if latStr == "" && lonStr == "" {
		ms, err := h.Markers.List(c.Request().Context())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(http.StatusOK, ms)
	}
	if latStr == "" || lonStr == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"errors": []string{"lat and lon must be provided together"}})
	}
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"errors": []string{"lat must be a number"}})
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"errors": []string{"lon must be a number"}})
	}

	ms, err := h.Markers.ListNear(c.Request().Context(), lat, lon)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, ms)
}
