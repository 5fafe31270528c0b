package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/davidrios/cinemap/internal/repository"
	"github.com/davidrios/cinemap/internal/service"
)

// maxUploadBytes caps the size of a single image upload.
const maxUploadBytes = 10 << 20 // 10 MiB

// parseID reads the :id path parameter as an unsigned integer.
func parseID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(strings.TrimSpace(c.Param("id")), 10, 64)
}

// readUpload extracts the named file from a multipart form, returning its
// bytes and declared content type.  A missing file is not an error: the
// services treat an empty payload as "no image submitted".
func readUpload(c echo.Context, field string) ([]byte, string, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, "", nil
		}
		// echo surfaces "no such file" from the multipart reader directly
		if strings.Contains(err.Error(), "no such file") {
			return nil, "", nil
		}
		return nil, "", err
	}
	if fh.Size > maxUploadBytes {
		return nil, "", echo.NewHTTPError(http.StatusRequestEntityTooLarge, "file too large")
	}
	f, err := fh.Open()
	if err != nil {
		return nil, "", err
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes+1))
	if err != nil {
		return nil, "", err
	}
	if int64(len(data)) > maxUploadBytes {
		return nil, "", echo.NewHTTPError(http.StatusRequestEntityTooLarge, "file too large")
	}
	return data, uploadContentType(fh), nil
}

func uploadContentType(fh *multipart.FileHeader) string {
	if ct := fh.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// writeServiceError translates the service error taxonomy into HTTP
// responses: validation failures are 400 with every message, missing
// identity is 401, ownership mismatch is 403, unknown ids are 404 and
// collaborator failures are 500 with a dependency-specific message.
func writeServiceError(c echo.Context, err error) error {
	var ve *service.ValidationError
	if errors.As(err, &ve) {
		return c.JSON(http.StatusBadRequest, echo.Map{"errors": ve.Errors})
	}
	if errors.Is(err, service.ErrUnauthenticated) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}
	if errors.Is(err, service.ErrForbidden) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not the owner of this record"})
	}
	if errors.Is(err, repository.ErrMarkerNotFound) ||
		errors.Is(err, repository.ErrMovieNotFound) ||
		errors.Is(err, repository.ErrRoomNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "record not found"})
	}
	var de *service.DependencyError
	if errors.As(err, &de) {
		msg := "internal error"
		switch de.Dependency {
		case service.DepGeocoder:
			msg = "could not resolve the place location"
		case service.DepStorage:
			msg = "could not upload the image"
		case service.DepStore:
			msg = "database error"
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": msg})
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return err
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}
