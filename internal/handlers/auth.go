package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devarsh/task-manager-api/internal/auth"
	"github.com/devarsh/task-manager-api/internal/constants"
	"github.com/devarsh/task-manager-api/internal/dto"
	"github.com/devarsh/task-manager-api/internal/middleware"
	"github.com/devarsh/task-manager-api/internal/response"
	"github.com/devarsh/task-manager-api/internal/services"
	"github.com/devarsh/task-manager-api/internal/validation"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService   *services.AuthService
	tokens        *auth.TokenManager
	secureCookies bool
}

// NewAuthHandler creates a new AuthHandler. secureCookies should be true in
// production so the auth cookie is only sent over HTTPS.
func NewAuthHandler(authService *services.AuthService, tokens *auth.TokenManager, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		tokens:        tokens,
		secureCookies: secureCookies,
	}
}

// Register creates a new account and issues a token for it.
func (h *AuthHandler) Register(c *gin.Context) {
	type RegisterRequest struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if errs := validation.ValidateRegistration(req.Name, req.Email, req.Password); len(errs) > 0 {
		response.ValidationFailed(c, errs)
		return
	}

	user, err := h.authService.Register(services.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			response.Conflict(c, "An account with this email already exists")
			return
		}
		response.InternalError(c, "Error registering user")
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		response.InternalError(c, "Error registering user")
		return
	}

	h.setAuthCookie(c, token)
	response.Created(c, "User registered successfully", dto.AuthPayload{
		User:  dto.ToUserDTO(*user),
		Token: token,
	})
}

// Login authenticates a user and issues a token.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if errs := validation.ValidateLogin(req.Email, req.Password); len(errs) > 0 {
		response.ValidationFailed(c, errs)
		return
	}

	user, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			response.Unauthorized(c, "Invalid credentials")
		case errors.Is(err, services.ErrAccountDeactivated):
			response.Unauthorized(c, "Account is deactivated")
		default:
			response.InternalError(c, "Error logging in")
		}
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		response.InternalError(c, "Error logging in")
		return
	}

	h.setAuthCookie(c, token)
	response.OK(c, "Login successful", dto.AuthPayload{
		User:  dto.ToUserDTO(*user),
		Token: token,
	})
}

// Verify confirms the bearer token and returns its user. The heavy lifting
// happens in RequireAuth; reaching this handler means the token checked out.
func (h *AuthHandler) Verify(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	response.OK(c, "", dto.UserPayload{User: dto.ToUserDTO(user)})
}

// Logout clears the auth cookie. The token itself stays valid until its
// natural expiry; there is no server-side revocation list.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(constants.AuthCookieName, "", -1, "/", "", h.secureCookies, false)
	response.OK(c, "Logged out successfully", nil)
}

// GetProfile returns the authenticated user's profile.
func (h *AuthHandler) GetProfile(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	response.OK(c, "", dto.UserPayload{User: dto.ToUserDTO(user)})
}

// UpdateProfile applies optional name/email/picture changes to the
// authenticated user.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	type UpdateProfileRequest struct {
		Name           *string `json:"name"`
		Email          *string `json:"email"`
		ProfilePicture *string `json:"profile_picture"`
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if errs := validation.ValidateProfileUpdate(req.Name, req.Email); len(errs) > 0 {
		response.ValidationFailed(c, errs)
		return
	}

	user, err := h.authService.UpdateProfile(userID, services.UpdateProfileInput{
		Name:           req.Name,
		Email:          req.Email,
		ProfilePicture: req.ProfilePicture,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmailTaken):
			response.Conflict(c, "An account with this email already exists")
		case errors.Is(err, services.ErrUserNotFound):
			response.NotFound(c, "User not found")
		default:
			response.InternalError(c, "Error updating profile")
		}
		return
	}

	response.OK(c, "Profile updated successfully", dto.UserPayload{User: dto.ToUserDTO(*user)})
}

func (h *AuthHandler) setAuthCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteStrictMode)
	// HttpOnly stays off: the browser client reads this cookie to restore
	// its session, matching the token-in-cookie contract of the web UI.
	c.SetCookie(constants.AuthCookieName, token, int(constants.TokenTTL.Seconds()), "/", "", h.secureCookies, false)
}
