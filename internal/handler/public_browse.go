// This file defines the unauthenticated browse API.  Guests can see the
// storefront listing and read comment threads without logging in; the
// external player reference and the aggregate counters are filtered out of
// the responses.
package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"ppvstore/internal/catalog"
	"ppvstore/internal/model"
)

// PublicHandler serves sanitized catalog data for guest browsing.
type PublicHandler struct {
	Catalog *catalog.Store
}

// PublicVideo is a catalog entry as exposed to guests.
type PublicVideo struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Thumbnail   string       `json:"thumbnail"`
	Price       float64      `json:"price"`
	Status      model.Status `json:"status"`
}

// ListVideos returns the catalog in insertion order as an "items" array.
func (h *PublicHandler) ListVideos(c echo.Context) error {
	items := h.Catalog.List()
	out := make([]PublicVideo, 0, len(items))
	for _, v := range items {
		out = append(out, PublicVideo{
			ID:          v.ID,
			Title:       v.Title,
			Description: v.Description,
			Thumbnail:   v.Thumbnail,
			Price:       v.Price,
			Status:      v.Status,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// ListComments returns a video's comment thread, most recent first.
func (h *PublicHandler) ListComments(c echo.Context) error {
	id := c.Param("id")
	if _, ok := h.Catalog.Get(id); !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "video not found"})
	}
	thread, err := h.Catalog.Comments(id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load comments"})
	}
	if thread == nil {
		thread = []model.Comment{}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": thread})
}
