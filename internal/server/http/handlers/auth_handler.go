package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/restomart/internal/domain/errors"
	"github.com/polkiloo/restomart/internal/domain/model"
	"github.com/polkiloo/restomart/internal/server/http/dto"
	"github.com/polkiloo/restomart/internal/server/http/middleware"
)

// AuthHandler processes operator accounts, login and navigation.
type AuthHandler struct {
	facade AuthFacade
}

// NewAuthHandler creates AuthHandler instance.
func NewAuthHandler(facade AuthFacade) *AuthHandler {
	return &AuthHandler{facade: facade}
}

// Register handles POST /api/user/register. Only admins reach it.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	role := model.ParseRole(req.Role)
	user, err := h.facade.Register(c.Request.Context(), CurrentPrincipal(c), req.Login, req.Password, role)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidCredentials):
			c.Status(http.StatusBadRequest)
		case errors.Is(err, domainErrors.ErrAlreadyExists):
			c.Status(http.StatusConflict)
		case errors.Is(err, domainErrors.ErrForbidden):
			c.Status(http.StatusForbidden)
		default:
			_ = c.Error(err)
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, toUserResponse(model.Principal{UserID: user.ID, Login: user.Login, Role: user.Role}))
}

// Login handles POST /api/user/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	user, token, err := h.facade.Authenticate(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidCredentials):
			c.Status(http.StatusUnauthorized)
		default:
			_ = c.Error(err)
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	middleware.SetAuthCookie(c, token)
	c.JSON(http.StatusOK, toUserResponse(model.Principal{UserID: user.ID, Login: user.Login, Role: user.Role}))
}

// Navigation handles GET /api/user/navigation.
func (h *AuthHandler) Navigation(c *gin.Context) {
	c.JSON(http.StatusOK, toUserResponse(CurrentPrincipal(c)))
}

// Logout handles POST /api/user/logout and discards the operator's open selection.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.facade.Logout(CurrentPrincipal(c).UserID)
	middleware.ClearAuthCookie(c)
	c.Status(http.StatusNoContent)
}

func toUserResponse(p model.Principal) dto.UserResponse {
	links := model.Navigation(p.Role)
	nav := make([]dto.NavLink, 0, len(links))
	for _, l := range links {
		nav = append(nav, dto.NavLink{Label: l.Label, Path: l.Path})
	}
	return dto.UserResponse{ID: p.UserID, Login: p.Login, Role: string(p.Role), Navigation: nav}
}
