package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/devarsh/task-manager-api/internal/auth"
	"github.com/devarsh/task-manager-api/internal/constants"
	"github.com/devarsh/task-manager-api/internal/models"
	"github.com/devarsh/task-manager-api/internal/repository"
	"github.com/devarsh/task-manager-api/internal/response"
)

// RequireAuth verifies the bearer token on the Authorization header and
// loads the subject user. A missing header, an expired or malformed token,
// an unknown subject, and a deactivated account all answer with the same
// 401 so nothing about account state leaks.
func RequireAuth(tokens *auth.TokenManager, userRepo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenString == "" {
			response.Unauthorized(c, "Authentication required")
			c.Abort()
			return
		}

		userID, err := tokens.Verify(tokenString)
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		user, err := userRepo.FindByID(userID)
		if err != nil || !user.IsActive {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, user.ID)
		c.Set(constants.ContextKeyUser, *user)
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	id, ok := userID.(uint64)
	return id, ok
}

// GetCurrentUser retrieves the authenticated user loaded by RequireAuth
func GetCurrentUser(c *gin.Context) (models.User, bool) {
	value, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return models.User{}, false
	}

	user, ok := value.(models.User)
	return user, ok
}
