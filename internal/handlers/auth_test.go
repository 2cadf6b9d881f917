package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/devarsh/task-manager-api/internal/auth"
	"github.com/devarsh/task-manager-api/internal/constants"
	"github.com/devarsh/task-manager-api/internal/database"
	"github.com/devarsh/task-manager-api/internal/middleware"
	"github.com/devarsh/task-manager-api/internal/models"
	"github.com/devarsh/task-manager-api/internal/repository"
	"github.com/devarsh/task-manager-api/internal/services"
)

// envelope mirrors the API response shape for decoding in tests.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  []string        `json:"errors"`
}

type authTestEnv struct {
	db          *gorm.DB
	router      *gin.Engine
	authService *services.AuthService
	tokens      *auth.TokenManager
}

func setupAuthTestEnv(t *testing.T) authTestEnv {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.User{}, &models.Task{})
	require.NoError(t, err)

	database.SetDB(db)

	userRepo := repository.NewUserRepository(db)
	authService := services.NewAuthService(userRepo)
	tokens := auth.NewTokenManager("test-secret")
	handler := NewAuthHandler(authService, tokens, false)

	requireAuth := middleware.RequireAuth(tokens, userRepo)

	r := gin.New()
	r.POST("/api/auth/register", handler.Register)
	r.POST("/api/auth/login", handler.Login)
	r.GET("/api/auth/verify", requireAuth, handler.Verify)
	r.POST("/api/auth/logout", requireAuth, handler.Logout)
	r.GET("/api/auth/profile", requireAuth, handler.GetProfile)
	r.PUT("/api/auth/profile", requireAuth, handler.UpdateProfile)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return authTestEnv{
		db:          db,
		router:      r,
		authService: authService,
		tokens:      tokens,
	}
}

func (env authTestEnv) request(t *testing.T, method, url string, payload any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(encoded)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, url, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestAuthHandler_Register(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := env.request(t, http.MethodPost, "/api/auth/register", map[string]string{
		"name":     "Ann Lee",
		"email":    "Ann@Example.com",
		"password": "Secret1pass",
	}, "")

	require.Equal(t, http.StatusCreated, w.Code)

	resp := decodeEnvelope(t, w)
	require.True(t, resp.Success)

	var payload struct {
		User  map[string]any `json:"user"`
		Token string         `json:"token"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &payload))
	require.NotEmpty(t, payload.Token)
	require.Equal(t, "Ann Lee", payload.User["name"])
	// Email identity is case-insensitive; it is stored lower-cased.
	require.Equal(t, "ann@example.com", payload.User["email"])

	// The issued token must verify and bind to the new user.
	userID, err := env.tokens.Verify(payload.Token)
	require.NoError(t, err)

	var user models.User
	require.NoError(t, env.db.First(&user, userID).Error)
	require.Equal(t, "ann@example.com", user.Email)
	require.NotEqual(t, "Secret1pass", user.PasswordHash)

	// A 7-day auth cookie accompanies the response.
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	require.Equal(t, constants.AuthCookieName, cookies[0].Name)
	require.Equal(t, payload.Token, cookies[0].Value)
	require.Equal(t, http.SameSiteStrictMode, cookies[0].SameSite)
}

func TestAuthHandler_Register_WeakPassword(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := env.request(t, http.MethodPost, "/api/auth/register", map[string]string{
		"name":     "Ann",
		"email":    "ann@x.com",
		"password": "abc",
	}, "")

	require.Equal(t, http.StatusBadRequest, w.Code)

	resp := decodeEnvelope(t, w)
	require.False(t, resp.Success)
	require.Equal(t, "Validation failed", resp.Message)
	require.Contains(t, resp.Errors, "Password must be at least 6 characters long")
	require.Contains(t, resp.Errors, "Password must contain at least one uppercase letter, one lowercase letter, and one number")

	var count int64
	env.db.Model(&models.User{}).Count(&count)
	require.Zero(t, count, "validation failure must short-circuit before any write")
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, err := env.authService.Register(services.RegisterInput{
		Name: "Ann", Email: "ann@x.com", Password: "Secret1pass",
	})
	require.NoError(t, err)

	w := env.request(t, http.MethodPost, "/api/auth/register", map[string]string{
		"name":     "Other Ann",
		"email":    "ANN@X.COM",
		"password": "Secret1pass",
	}, "")

	require.Equal(t, http.StatusConflict, w.Code)
}

func TestAuthHandler_Login_FailureIsGeneric(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, err := env.authService.Register(services.RegisterInput{
		Name: "Real User", Email: "realuser@x.com", Password: "Secret1pass",
	})
	require.NoError(t, err)

	unknownEmail := env.request(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email": "nouser@x.com", "password": "whatever",
	}, "")
	wrongPassword := env.request(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email": "realuser@x.com", "password": "wrongpass",
	}, "")

	require.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	require.Equal(t, http.StatusUnauthorized, wrongPassword.Code)

	// Identical message for both: nothing may reveal whether the email exists.
	require.Equal(t, decodeEnvelope(t, unknownEmail).Message, decodeEnvelope(t, wrongPassword).Message)
}

func TestAuthHandler_Login_StampsLastLogin(t *testing.T) {
	env := setupAuthTestEnv(t)

	user, err := env.authService.Register(services.RegisterInput{
		Name: "Ann", Email: "ann@x.com", Password: "Secret1pass",
	})
	require.NoError(t, err)
	require.Nil(t, user.LastLogin)

	w := env.request(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email": "ann@x.com", "password": "Secret1pass",
	}, "")
	require.Equal(t, http.StatusOK, w.Code)

	var reloaded models.User
	require.NoError(t, env.db.First(&reloaded, user.ID).Error)
	require.NotNil(t, reloaded.LastLogin)
}

func TestAuthHandler_Login_DeactivatedAccount(t *testing.T) {
	env := setupAuthTestEnv(t)

	user, err := env.authService.Register(services.RegisterInput{
		Name: "Ann", Email: "ann@x.com", Password: "Secret1pass",
	})
	require.NoError(t, err)
	env.db.Model(&models.User{}).Where("id = ?", user.ID).Update("is_active", false)

	w := env.request(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email": "ann@x.com", "password": "Secret1pass",
	}, "")

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "Account is deactivated", decodeEnvelope(t, w).Message)
}

func TestAuthHandler_Verify(t *testing.T) {
	env := setupAuthTestEnv(t)

	user, err := env.authService.Register(services.RegisterInput{
		Name: "Ann", Email: "ann@x.com", Password: "Secret1pass",
	})
	require.NoError(t, err)

	token, err := env.tokens.Issue(user.ID)
	require.NoError(t, err)

	w := env.request(t, http.MethodGet, "/api/auth/verify", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeEnvelope(t, w)
	var payload struct {
		User map[string]any `json:"user"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &payload))
	require.Equal(t, "ann@x.com", payload.User["email"])
}

func TestAuthHandler_Verify_BadTokens(t *testing.T) {
	env := setupAuthTestEnv(t)

	missing := env.request(t, http.MethodGet, "/api/auth/verify", nil, "")
	garbage := env.request(t, http.MethodGet, "/api/auth/verify", nil, "not-a-token")

	require.Equal(t, http.StatusUnauthorized, missing.Code)
	require.Equal(t, http.StatusUnauthorized, garbage.Code)

	// Token bound to a subject that does not exist fails the same way.
	orphan, err := env.tokens.Issue(9999)
	require.NoError(t, err)
	unknown := env.request(t, http.MethodGet, "/api/auth/verify", nil, orphan)
	require.Equal(t, http.StatusUnauthorized, unknown.Code)
}

func TestAuthHandler_Logout_ClearsCookieOnly(t *testing.T) {
	env := setupAuthTestEnv(t)

	user, err := env.authService.Register(services.RegisterInput{
		Name: "Ann", Email: "ann@x.com", Password: "Secret1pass",
	})
	require.NoError(t, err)

	token, err := env.tokens.Issue(user.ID)
	require.NoError(t, err)

	w := env.request(t, http.MethodPost, "/api/auth/logout", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	require.Equal(t, constants.AuthCookieName, cookies[0].Name)
	require.Negative(t, cookies[0].MaxAge)

	// Stateless tokens are not revoked; the same token still verifies.
	after := env.request(t, http.MethodGet, "/api/auth/verify", nil, token)
	require.Equal(t, http.StatusOK, after.Code)
}

func TestAuthHandler_UpdateProfile(t *testing.T) {
	env := setupAuthTestEnv(t)

	user, err := env.authService.Register(services.RegisterInput{
		Name: "Ann", Email: "ann@x.com", Password: "Secret1pass",
	})
	require.NoError(t, err)

	token, err := env.tokens.Issue(user.ID)
	require.NoError(t, err)

	w := env.request(t, http.MethodPut, "/api/auth/profile", map[string]string{
		"name": "Ann Lee",
	}, token)
	require.Equal(t, http.StatusOK, w.Code)

	var reloaded models.User
	require.NoError(t, env.db.First(&reloaded, user.ID).Error)
	require.Equal(t, "Ann Lee", reloaded.Name)
	require.Equal(t, "ann@x.com", reloaded.Email, "absent fields stay untouched")
}

func TestAuthHandler_UpdateProfile_EmailConflict(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, err := env.authService.Register(services.RegisterInput{
		Name: "Bob", Email: "bob@x.com", Password: "Secret1pass",
	})
	require.NoError(t, err)

	user, err := env.authService.Register(services.RegisterInput{
		Name: "Ann", Email: "ann@x.com", Password: "Secret1pass",
	})
	require.NoError(t, err)

	token, err := env.tokens.Issue(user.ID)
	require.NoError(t, err)

	w := env.request(t, http.MethodPut, "/api/auth/profile", map[string]string{
		"email": "bob@x.com",
	}, token)
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestAuthHandler_UpdateProfile_InvalidName(t *testing.T) {
	env := setupAuthTestEnv(t)

	user, err := env.authService.Register(services.RegisterInput{
		Name: "Ann", Email: "ann@x.com", Password: "Secret1pass",
	})
	require.NoError(t, err)

	token, err := env.tokens.Issue(user.ID)
	require.NoError(t, err)

	w := env.request(t, http.MethodPut, "/api/auth/profile", map[string]string{
		"name": "Ann2",
	}, token)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, decodeEnvelope(t, w).Errors, "Name cannot contain numbers")
}
