package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pathways-hq/pathways/internal/auth"
	"github.com/pathways-hq/pathways/internal/config"
	"github.com/pathways-hq/pathways/internal/logger"
	"github.com/pathways-hq/pathways/internal/types"
)

// AuthenticateMiddleware accepts either an API key in the configured header
// or a JWT bearer token, and binds the authenticated user ID and roles onto
// the request context for downstream handlers.
func AuthenticateMiddleware(cfg *config.Configuration, log *logger.Logger) gin.HandlerFunc {
	provider := auth.NewProvider(cfg)

	return func(c *gin.Context) {
		if key := c.GetHeader(cfg.Auth.APIKey.Header); key != "" {
			authenticateAPIKey(c, cfg, log, key)
			return
		}
		authenticateBearer(c, provider, log)
	}
}

func authenticateAPIKey(c *gin.Context, cfg *config.Configuration, log *logger.Logger, key string) {
	userID, valid := auth.ValidateAPIKey(cfg, key)
	if !valid || userID == "" {
		log.Debugw("rejected api key")
		abortUnauthorized(c, "Invalid API key")
		return
	}

	bindIdentity(c, userID, nil, "")
	c.Next()
}

func authenticateBearer(c *gin.Context, provider auth.Provider, log *logger.Logger) {
	header := c.GetHeader(types.HeaderAuthorization)
	if header == "" {
		abortUnauthorized(c, "Unauthorized")
		return
	}

	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		abortUnauthorized(c, "Invalid authorization header format")
		return
	}

	claims, err := provider.ValidateToken(c.Request.Context(), token)
	if err != nil {
		log.Errorw("failed to validate token", "error", err)
		abortUnauthorized(c, "Invalid token")
		return
	}
	if claims == nil || claims.UserID == "" {
		abortUnauthorized(c, "Invalid token claims")
		return
	}

	bindIdentity(c, claims.UserID, claims.Roles, token)
	c.Next()
}

func bindIdentity(c *gin.Context, userID string, roles []string, token string) {
	ctx := context.WithValue(c.Request.Context(), types.CtxUserID, userID)
	if roles != nil {
		ctx = context.WithValue(ctx, types.CtxRoles, roles)
	}
	if token != "" {
		ctx = context.WithValue(ctx, types.CtxJWT, token)
	}
	c.Request = c.Request.WithContext(ctx)
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.JSON(http.StatusUnauthorized, gin.H{"error": msg})
	c.Abort()
}
