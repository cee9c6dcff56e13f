package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	customErrors "github.com/Miraines/MoonyAndStarry/tag-service/internal/domain/errors"
	"github.com/Miraines/MoonyAndStarry/tag-service/internal/domain/model"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const userKey = "current_user"

type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (model.User, error)
}

// RequireUser resolves the bearer token to a stored user or aborts with 401.
func RequireUser(auth Authenticator, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			return
		}

		user, err := auth.Authenticate(c.Request.Context(), token)
		switch {
		case errors.Is(err, customErrors.ErrUnauthenticated):
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			return
		case err != nil:
			log.Error("authenticate", zap.Error(err), zap.String("request_id", RequestIDFrom(c)))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

// CurrentUser is only valid behind RequireUser.
func CurrentUser(c *gin.Context) model.User {
	u, _ := c.MustGet(userKey).(model.User)
	return u
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
