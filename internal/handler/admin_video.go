package handler // admin-scoped catalog management handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"ppvstore/internal/catalog"
	"ppvstore/internal/model"
)

// AdminHandler manages the catalog.  Route middleware guarantees the
// caller holds the admin role; the catalog store itself performs no role
// checks.
type AdminHandler struct {
	Catalog *catalog.Store
}

func NewAdminHandler(cat *catalog.Store) *AdminHandler {
	if cat == nil {
		panic("nil catalog passed to NewAdminHandler")
	}
	return &AdminHandler{Catalog: cat}
}

// videoReq binds the admin form.  YouTubeRef accepts a full URL or a bare
// identifier; the store resolves it and falls back to the raw input.
type videoReq struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	YouTubeRef  string  `json:"youtube_ref"`
	Thumbnail   string  `json:"thumbnail"`
	Price       float64 `json:"price"`
	Status      string  `json:"status"` // live | upcoming | available
}

// CreateVideo handles POST /v1/videos.  The new entry gets a fresh
// identifier, zero aggregate counters and lands at the end of the listing.
func (h *AdminHandler) CreateVideo(c echo.Context) error {
	var req videoReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
	}
	status := model.Status(strings.ToLower(strings.TrimSpace(req.Status)))
	if req.Status != "" && !status.Valid() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}

	v, err := h.Catalog.Create(catalog.Fields{
		Title:       req.Title,
		Description: req.Description,
		YouTubeRef:  req.YouTubeRef,
		Thumbnail:   req.Thumbnail,
		Price:       req.Price,
		Status:      status,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create video"})
	}
	return c.JSON(http.StatusCreated, v)
}

// UpdateVideo handles PUT/PATCH /v1/videos/:id.  Omitted fields keep their
// current value; the identifier is immutable.
func (h *AdminHandler) UpdateVideo(c echo.Context) error {
	id := c.Param("id")
	cur, ok := h.Catalog.Get(id)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "video not found"})
	}

	var body struct {
		Title       *string  `json:"title"`
		Description *string  `json:"description"`
		YouTubeRef  *string  `json:"youtube_ref"`
		Thumbnail   *string  `json:"thumbnail"`
		Price       *float64 `json:"price"`
		Status      *string  `json:"status"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	f := catalog.Fields{
		Title:       cur.Title,
		Description: cur.Description,
		YouTubeRef:  cur.YouTubeID,
		Thumbnail:   cur.Thumbnail,
		Price:       cur.Price,
		Status:      cur.Status,
	}
	if body.Title != nil && strings.TrimSpace(*body.Title) != "" {
		f.Title = strings.TrimSpace(*body.Title)
	}
	if body.Description != nil {
		f.Description = *body.Description
	}
	if body.YouTubeRef != nil {
		f.YouTubeRef = *body.YouTubeRef
		if body.Thumbnail == nil {
			f.Thumbnail = "" // let the store re-derive it from the new reference
		}
	}
	if body.Thumbnail != nil {
		f.Thumbnail = *body.Thumbnail
	}
	if body.Price != nil {
		f.Price = *body.Price
	}
	if body.Status != nil {
		status := model.Status(strings.ToLower(strings.TrimSpace(*body.Status)))
		if !status.Valid() {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
		}
		f.Status = status
	}

	v, found, err := h.Catalog.Update(id, f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	if !found {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "video not found"})
	}
	return c.JSON(http.StatusOK, v)
}

// DeleteVideo handles DELETE /v1/videos/:id.  Deleting an unknown ID is a
// no-op and still answers 204, mirroring the store contract.
func (h *AdminHandler) DeleteVideo(c echo.Context) error {
	if err := h.Catalog.Delete(c.Param("id")); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// monthRevenue is one point of the static demo revenue series.
type monthRevenue struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
}

// Stats handles GET /v1/admin/stats.  Totals are read from the stored
// aggregate counters; the monthly series and the user total are static
// demo figures, since revenue is mock data with no derivation from
// price and purchases.
func (h *AdminHandler) Stats(c echo.Context) error {
	items := h.Catalog.List()
	var revenue float64
	var views, purchases uint64
	for _, v := range items {
		revenue += v.Revenue
		views += v.Views
		purchases += v.Purchases
	}
	return c.JSON(http.StatusOK, echo.Map{
		"total_videos":    len(items),
		"total_revenue":   revenue,
		"total_views":     views,
		"total_purchases": purchases,
		"total_users":     530,
		"monthly_revenue": []monthRevenue{
			{Month: "Jan", Revenue: 1200},
			{Month: "Feb", Revenue: 1900},
			{Month: "Mar", Revenue: 1500},
			{Month: "Apr", Revenue: 2800},
			{Month: "May", Revenue: 3200},
			{Month: "Jun", Revenue: 4244.7},
		},
	})
}
