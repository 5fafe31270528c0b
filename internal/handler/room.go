package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/davidrios/cinemap/internal/middleware"
	"github.com/davidrios/cinemap/internal/service"
)

// RoomHandler exposes the screening room CRUD endpoints.  Rooms carry no
// file upload, so the body can be a plain form or JSON.
type RoomHandler struct {
	Rooms *service.RoomService
}

func NewRoomHandler(s *service.RoomService) *RoomHandler {
	return &RoomHandler{Rooms: s}
}

type roomReq struct {
	Name    string `json:"name" form:"name"`
	Address string `json:"address" form:"address"`
}

// Create handles POST /v1/rooms.
func (h *RoomHandler) Create(c echo.Context) error {
	var req roomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"errors": []string{"invalid body"}})
	}
	in := service.RoomInput{Name: req.Name, Address: req.Address}
	r, err := h.Rooms.Create(c.Request().Context(), middleware.CallerEmail(c), in)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, r)
}

// Update handles PUT /v1/rooms/:id.
func (h *RoomHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "record not found"})
	}
	var req roomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"errors": []string{"invalid body"}})
	}
	in := service.RoomInput{Name: req.Name, Address: req.Address}
	r, err := h.Rooms.Update(c.Request().Context(), middleware.CallerEmail(c), id, in)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, r)
}

// Delete handles DELETE /v1/rooms/:id.
func (h *RoomHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "record not found"})
	}
	if err := h.Rooms.Delete(c.Request().Context(), middleware.CallerEmail(c), id); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "record deleted"})
}

// Get handles GET /v1/rooms/:id.
func (h *RoomHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "record not found"})
	}
	r, err := h.Rooms.Get(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, r)
}

// List handles GET /v1/rooms.
func (h *RoomHandler) List(c echo.Context) error {
	rs, err := h.Rooms.List(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, rs)
}
