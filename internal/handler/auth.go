package handler

import (
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"ppvstore/internal/config"
	"ppvstore/internal/model"
	"ppvstore/internal/session"
	"ppvstore/internal/utils"
	"ppvstore/internal/view"
)

// AuthHandler bundles dependencies for the login and logout endpoints.
type AuthHandler struct {
	Cfg      config.Config
	Sessions *session.Store
	Gate     *view.Gate
}

func NewAuthHandler(cfg config.Config, s *session.Store, g *view.Gate) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Sessions: s, Gate: g}
}

// ----- DTOs -----

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Admin    bool   `json:"admin"` // request the admin account check
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}

type userPart struct {
	ID        string   `json:"id"`
	Email     string   `json:"email"`
	Role      string   `json:"role"`
	Purchased []string `json:"purchased"`
}

type authResp struct {
	User     userPart  `json:"user"`
	Access   tokenPart `json:"access"`
	Redirect string    `json:"redirect"` // where the client should land next
}

func toUserPart(u model.User) userPart {
	ids := make([]string, 0, len(u.Purchased))
	for id := range u.Purchased {
		ids = append(ids, id)
	}
	sort.Strings(ids) // the set is unordered; sort for a stable response
	return userPart{ID: u.ID, Email: u.Email, Role: u.Role, Purchased: ids}
}

// Login verifies a credential pair against the session store and issues an
// access token.  The redirect field resumes the destination that forced
// the login, when there is one.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}

	u, ok := h.Sessions.Login(req.Email, req.Password, req.Admin)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Email, u.Role, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
	}

	next := h.Gate.LoginSucceeded()
	return c.JSON(http.StatusOK, authResp{
		User:     toUserPart(u),
		Access:   tokenPart{Token: access.Token, Expires: access.Exp},
		Redirect: view.Path(next),
	})
}

// Logout clears the session record and returns the router to home.
func (h *AuthHandler) Logout(c echo.Context) error {
	h.Sessions.Logout()
	h.Gate.Navigate(view.State{Screen: view.Home})
	return c.NoContent(http.StatusNoContent)
}

// Me returns the authenticated session's identity and purchase set.
func (h *AuthHandler) Me(c echo.Context) error {
	u, ok := h.Sessions.Current()
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "no active session"})
	}
	return c.JSON(http.StatusOK, toUserPart(u))
}
