// Package handler exposes the auth, user and tag services over HTTP/JSON.
package handler

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/Miraines/MoonyAndStarry/tag-service/internal/adapters/transport/http/dto"
	"github.com/Miraines/MoonyAndStarry/tag-service/internal/adapters/transport/http/middleware"
	authsvc "github.com/Miraines/MoonyAndStarry/tag-service/internal/app/auth/service"
	tagsvc "github.com/Miraines/MoonyAndStarry/tag-service/internal/app/tag/service"
	usersvc "github.com/Miraines/MoonyAndStarry/tag-service/internal/app/user/service"
	customErrors "github.com/Miraines/MoonyAndStarry/tag-service/internal/domain/errors"
	"github.com/Miraines/MoonyAndStarry/tag-service/internal/domain/model"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HealthCheck reports whether a backing dependency is reachable.
type HealthCheck func(ctx context.Context) error

type Handler struct {
	auth   authsvc.Service
	users  usersvc.Service
	tags   tagsvc.Service
	log    *zap.Logger
	health map[string]HealthCheck
}

func New(auth authsvc.Service, users usersvc.Service, tags tagsvc.Service, log *zap.Logger, health map[string]HealthCheck) *Handler {
	return &Handler{auth: auth, users: users, tags: tags, log: log, health: health}
}

func (h *Handler) Signup(c *gin.Context) {
	var body dto.SignupDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.log.Info("/signup", zap.String("user", digest(body.Email)))

	pair, err := h.auth.Signup(c.Request.Context(), body)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewTokenPair(pair))
}

func (h *Handler) Login(c *gin.Context) {
	var body dto.LoginDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	identifier := body.Email
	if identifier == "" {
		identifier = body.Nickname
	}
	h.log.Info("/login", zap.String("user", digest(identifier)))

	pair, err := h.auth.Login(c.Request.Context(), body)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewTokenPair(pair))
}

func (h *Handler) Refresh(c *gin.Context) {
	var body dto.RefreshDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		// malformed bodies carry no redeemable token
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	pair, err := h.auth.Refresh(c.Request.Context(), body)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewTokenPair(pair))
}

func (h *Handler) GetUser(c *gin.Context) {
	u, err := h.users.Get(c.Request.Context(), middleware.CurrentUser(c).ID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUser(u))
}

func (h *Handler) EditUser(c *gin.Context) {
	var body dto.EditUserDTO
	if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	u, err := h.users.Edit(c.Request.Context(), middleware.CurrentUser(c).ID, body)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUser(u))
}

func (h *Handler) DeleteUser(c *gin.Context) {
	if err := h.users.Delete(c.Request.Context(), middleware.CurrentUser(c).ID); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ListTags(c *gin.Context) {
	var q dto.ListTagsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	page := model.Page{Offset: 0, Length: tagsvc.DefaultLength}
	if q.Offset != nil {
		page.Offset = *q.Offset
	}
	if q.Length != nil {
		page.Length = *q.Length
	}

	tags, page, err := h.tags.List(c.Request.Context(), page, q.SortBy)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPage(dto.NewTags(tags), page.Offset, page.Length))
}

func (h *Handler) GetTag(c *gin.Context) {
	id, ok := tagID(c)
	if !ok {
		return
	}
	t, err := h.tags.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewTag(t))
}

func (h *Handler) CreateTag(c *gin.Context) {
	var body dto.CreateTagDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	t, err := h.tags.Create(c.Request.Context(), middleware.CurrentUser(c).ID, body)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewTag(t))
}

func (h *Handler) CreateTags(c *gin.Context) {
	var body []dto.CreateTagDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tags, err := h.tags.CreateMany(c.Request.Context(), middleware.CurrentUser(c).ID, body)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewTags(tags))
}

func (h *Handler) EditTag(c *gin.Context) {
	id, ok := tagID(c)
	if !ok {
		return
	}
	var body dto.EditTagDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	t, err := h.tags.Edit(c.Request.Context(), middleware.CurrentUser(c).ID, id, body)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewTag(t))
}

func (h *Handler) DeleteTag(c *gin.Context) {
	id, ok := tagID(c)
	if !ok {
		return
	}
	if err := h.tags.Delete(c.Request.Context(), middleware.CurrentUser(c).ID, id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	checks := gin.H{}
	healthy := true
	for name, check := range h.health {
		if err := check(ctx); err != nil {
			h.log.Warn("health check failed", zap.String("dependency", name), zap.Error(err))
			checks[name] = "down"
			healthy = false
			continue
		}
		checks[name] = "up"
	}

	status, code := "ok", http.StatusOK
	if !healthy {
		status, code = "degraded", http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{"status": status, "checks": checks, "time": time.Now().Unix()})
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case customErrors.IsInvalidArgument(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case customErrors.IsUnauthenticated(err):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
	case customErrors.IsInvalidToken(err):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
	case customErrors.IsUserNotFound(err):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
	case customErrors.IsInvalidCredentials(err):
		c.JSON(http.StatusForbidden, gin.H{"error": "invalid credentials"})
	case customErrors.IsAlreadyExists(err):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case customErrors.IsForbidden(err):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case customErrors.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func tagID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tag id"})
		return 0, false
	}
	return id, true
}

func digest(s string) string {
	return fmt.Sprintf("%x", sha256.Sum256([]byte(s)))
}
