package handler

import (
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"

	"ppvstore/internal/catalog"
	"ppvstore/internal/model"
	"ppvstore/internal/queue"
	queue_publisher "ppvstore/internal/service"
	"ppvstore/internal/session"
	"ppvstore/internal/view"
)

// ViewerHandler serves the gated video detail plus the purchase and
// comment flows.  Detail access goes through the view gate so an
// unauthenticated request is pointed at the login screen with the original
// destination preserved; purchase and comment sit behind JWT middleware.
type ViewerHandler struct {
	Sessions *session.Store
	Catalog  *catalog.Store
	Gate     *view.Gate
}

func NewViewerHandler(s *session.Store, cat *catalog.Store, g *view.Gate) *ViewerHandler {
	if s == nil || cat == nil || g == nil {
		panic("nil dependency passed to NewViewerHandler")
	}
	return &ViewerHandler{Sessions: s, Catalog: cat, Gate: g}
}

// videoDetail is the full record returned to a session allowed to watch.
type videoDetail struct {
	model.Video
	EmbedURL  string `json:"embed_url"`
	Purchased bool   `json:"purchased"`
}

// GetVideo handles GET /v1/videos/:id.  The gate resolves the transition:
// guests are redirected to login with the destination recorded for resume,
// authenticated sessions must have purchased the video (admins bypass the
// purchase check, mirroring the storefront's player gate).
func (h *ViewerHandler) GetVideo(c echo.Context) error {
	id := c.Param("id")
	st := h.Gate.Navigate(view.State{Screen: view.VideoDetail, VideoID: id})
	if st.Screen == view.Login {
		return c.JSON(http.StatusUnauthorized, echo.Map{
			"error":    "please log in to view this video",
			"redirect": view.Path(st),
			"from":     view.Path(view.State{Screen: view.VideoDetail, VideoID: id}),
		})
	}

	v, ok := h.Catalog.Get(id)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "video not found"})
	}

	purchased := h.Sessions.HasPurchased(id)
	if !purchased && !h.Sessions.IsAdmin() {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "you have not paid for this video"})
	}

	return c.JSON(http.StatusOK, videoDetail{
		Video:     v,
		EmbedURL:  "https://www.youtube.com/embed/" + v.YouTubeID,
		Purchased: purchased,
	})
}

// Purchase handles POST /v1/videos/:id/purchase.  It mutates only the
// session's purchase set; the video's aggregate counters are untouched.
// Re-purchasing an owned video is a harmless no-op.
func (h *ViewerHandler) Purchase(c echo.Context) error {
	id := c.Param("id")
	v, ok := h.Catalog.Get(id)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "video not found"})
	}

	h.Sessions.Purchase(id)

	u, ok := h.Sessions.Current()
	if !ok {
		// Valid token but no session record (e.g. logged out elsewhere):
		// the store treated the purchase as a no-op.
		return c.JSON(http.StatusOK, echo.Map{"purchased": false})
	}

	// Fire-and-forget: a broker outage must not fail the purchase.
	_ = queue_publisher.PublishPurchaseConfirmed(c.Request().Context(), queue.PurchaseConfirmedEvent{
		AccountID:   u.ID,
		Email:       u.Email,
		VideoID:     v.ID,
		VideoTitle:  v.Title,
		Price:       v.Price,
		PurchasedAt: time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusOK, echo.Map{"purchased": true, "video_id": v.ID})
}

// MyPurchases handles GET /v1/my/purchases and lists the session's
// purchased video IDs.
func (h *ViewerHandler) MyPurchases(c echo.Context) error {
	u, ok := h.Sessions.Current()
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "no active session"})
	}
	ids := make([]string, 0, len(u.Purchased))
	for id := range u.Purchased {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return c.JSON(http.StatusOK, echo.Map{"items": ids})
}

// AddComment handles POST /v1/videos/:id/comments.  The author is the
// session email from the verified token; blank text is rejected with the
// user-facing prompt and leaves the thread unchanged.
func (h *ViewerHandler) AddComment(c echo.Context) error {
	id := c.Param("id")
	if _, ok := h.Catalog.Get(id); !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "video not found"})
	}
	var body struct {
		Text string `json:"text"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	author, _ := c.Get("email").(string)

	cm, err := h.Catalog.AddComment(id, author, body.Text)
	if err != nil {
		if errors.Is(err, catalog.ErrEmptyComment) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "please enter a comment"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to save comment"})
	}
	return c.JSON(http.StatusCreated, cm)
}
