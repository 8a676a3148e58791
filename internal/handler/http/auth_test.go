package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/kerjakita/kerjakita-backend-go/internal/domain/auth"
	"github.com/kerjakita/kerjakita-backend-go/internal/domain/user"
	"github.com/kerjakita/kerjakita-backend-go/internal/pkg/jwt"
	authService "github.com/kerjakita/kerjakita-backend-go/internal/service/auth"
)

const (
	handlerTestAccessExp  = "1h"
	handlerTestRefreshExp = "24h"
	handlerTestSecret     = "test-secret-key-for-jwt"
)

type fakeUserRepo struct {
	byEmail map[string]user.User
	nextID  int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]user.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, u user.User) (user.User, error) {
	f.nextID++
	u.ID = "user-" + strconv.Itoa(f.nextID)
	f.byEmail[u.Email] = u
	return u, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) SetProfileID(_ context.Context, userID, profileID string) error {
	for email, u := range f.byEmail {
		if u.ID == userID {
			u.ProfileID = &profileID
			f.byEmail[email] = u
			return nil
		}
	}
	return user.ErrUserNotFound
}

func seedUser(t *testing.T, repo *fakeUserRepo, email, password string, role user.Role) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)
	_, err = repo.Create(context.Background(), user.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	})
	require.NoError(t, err)
}

func newTestAuthHandler(repo *fakeUserRepo) AuthHandler {
	jwtSvc := jwt.NewJWTService(handlerTestSecret, handlerTestAccessExp, handlerTestRefreshExp)
	authSvc := authService.NewAuthService(repo, jwtSvc)
	return NewAuthHandler(jwtSvc, authSvc)
}

func TestAuthHandler_Register_Success(t *testing.T) {
	handler := newTestAuthHandler(newFakeUserRepo())

	registerReq := auth.RegisterRequest{
		Email:    "mira@example.com",
		Password: "SecurePass123",
		Role:     "JOBSEEKER",
	}
	body, _ := json.Marshal(registerReq)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.Register(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	err := json.NewDecoder(w.Body).Decode(&resp)
	assert.NoError(t, err)
	assert.True(t, resp["success"].(bool))

	data := resp["data"].(map[string]interface{})
	assert.NotEmpty(t, data["access_token"])
	assert.Equal(t, "JOBSEEKER", data["role"])
	assert.Equal(t, false, data["has_profile"])

	// Refresh token travels in a cookie, never in the body
	assert.NotContains(t, data, "refresh_token")
	cookies := w.Result().Cookies()
	var refreshTokenCookie *http.Cookie
	for _, cookie := range cookies {
		if cookie.Name == "refresh_token" {
			refreshTokenCookie = cookie
			break
		}
	}
	require.NotNil(t, refreshTokenCookie)
	assert.NotEmpty(t, refreshTokenCookie.Value)
	assert.True(t, refreshTokenCookie.HttpOnly)
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "taken@example.com", "password123", user.RoleJobseeker)
	handler := newTestAuthHandler(repo)

	registerReq := auth.RegisterRequest{
		Email:    "taken@example.com",
		Password: "SecurePass123",
		Role:     "JOBSEEKER",
	}
	body, _ := json.Marshal(registerReq)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.Register(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)

	var resp map[string]interface{}
	err := json.NewDecoder(w.Body).Decode(&resp)
	assert.NoError(t, err)
	assert.False(t, resp["success"].(bool))
}

func TestAuthHandler_Register_AdminRoleRejected(t *testing.T) {
	handler := newTestAuthHandler(newFakeUserRepo())

	registerReq := auth.RegisterRequest{
		Email:    "sneaky@example.com",
		Password: "SecurePass123",
		Role:     "ADMIN",
	}
	body, _ := json.Marshal(registerReq)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.Register(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestAuthHandler_Register_InvalidJSON(t *testing.T) {
	handler := newTestAuthHandler(newFakeUserRepo())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader([]byte("invalid json")))
	w := httptest.NewRecorder()

	handler.Register(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Login_Success(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "rudi@example.com", "password123", user.RoleRecruiter)
	handler := newTestAuthHandler(repo)

	loginReq := auth.LoginRequest{
		Email:    "rudi@example.com",
		Password: "password123",
	}
	body, _ := json.Marshal(loginReq)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.Login(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	err := json.NewDecoder(w.Body).Decode(&resp)
	assert.NoError(t, err)
	assert.True(t, resp["success"].(bool))

	data := resp["data"].(map[string]interface{})
	assert.NotEmpty(t, data["access_token"])
	assert.Equal(t, "RECRUITER", data["role"])

	cookies := w.Result().Cookies()
	var refreshTokenCookie *http.Cookie
	for _, cookie := range cookies {
		if cookie.Name == "refresh_token" {
			refreshTokenCookie = cookie
			break
		}
	}
	require.NotNil(t, refreshTokenCookie)
	assert.NotEmpty(t, refreshTokenCookie.Value)
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "rudi@example.com", "password123", user.RoleRecruiter)
	handler := newTestAuthHandler(repo)

	loginReq := auth.LoginRequest{
		Email:    "rudi@example.com",
		Password: "wrongpassword",
	}
	body, _ := json.Marshal(loginReq)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.Login(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var resp map[string]interface{}
	err := json.NewDecoder(w.Body).Decode(&resp)
	assert.NoError(t, err)
	assert.False(t, resp["success"].(bool))
}

func TestAuthHandler_Login_UnknownEmail(t *testing.T) {
	handler := newTestAuthHandler(newFakeUserRepo())

	loginReq := auth.LoginRequest{
		Email:    "nobody@example.com",
		Password: "password123",
	}
	body, _ := json.Marshal(loginReq)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.Login(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_RefreshToken_FromCookie(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "mira@example.com", "password123", user.RoleJobseeker)
	handler := newTestAuthHandler(repo)

	// Login first to obtain the refresh cookie
	loginBody, _ := json.Marshal(auth.LoginRequest{Email: "mira@example.com", Password: "password123"})
	loginReq := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(loginBody))
	loginW := httptest.NewRecorder()
	handler.Login(loginW, loginReq)
	require.Equal(t, http.StatusCreated, loginW.Code)

	var refreshTokenCookie *http.Cookie
	for _, cookie := range loginW.Result().Cookies() {
		if cookie.Name == "refresh_token" {
			refreshTokenCookie = cookie
			break
		}
	}
	require.NotNil(t, refreshTokenCookie)

	refreshReq := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", nil)
	refreshReq.AddCookie(refreshTokenCookie)
	refreshW := httptest.NewRecorder()

	handler.RefreshToken(refreshW, refreshReq)

	assert.Equal(t, http.StatusCreated, refreshW.Code)

	var resp map[string]interface{}
	err := json.NewDecoder(refreshW.Body).Decode(&resp)
	assert.NoError(t, err)
	assert.True(t, resp["success"].(bool))
	data := resp["data"].(map[string]interface{})
	assert.NotEmpty(t, data["access_token"])
}

func TestAuthHandler_RefreshToken_InvalidToken(t *testing.T) {
	handler := newTestAuthHandler(newFakeUserRepo())

	refreshBody, _ := json.Marshal(auth.RefreshTokenRequest{RefreshToken: "invalid-token"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", bytes.NewReader(refreshBody))
	w := httptest.NewRecorder()

	handler.RefreshToken(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Logout_RevokesRefreshToken(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "mira@example.com", "password123", user.RoleJobseeker)
	handler := newTestAuthHandler(repo)

	loginBody, _ := json.Marshal(auth.LoginRequest{Email: "mira@example.com", Password: "password123"})
	loginReq := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(loginBody))
	loginW := httptest.NewRecorder()
	handler.Login(loginW, loginReq)
	require.Equal(t, http.StatusCreated, loginW.Code)

	var refreshTokenCookie *http.Cookie
	for _, cookie := range loginW.Result().Cookies() {
		if cookie.Name == "refresh_token" {
			refreshTokenCookie = cookie
			break
		}
	}
	require.NotNil(t, refreshTokenCookie)

	logoutReq := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	logoutReq.AddCookie(refreshTokenCookie)
	logoutW := httptest.NewRecorder()

	handler.Logout(logoutW, logoutReq)

	assert.Equal(t, http.StatusOK, logoutW.Code)

	// Cookie is cleared
	var clearedCookie *http.Cookie
	for _, cookie := range logoutW.Result().Cookies() {
		if cookie.Name == "refresh_token" {
			clearedCookie = cookie
			break
		}
	}
	require.NotNil(t, clearedCookie)
	assert.Empty(t, clearedCookie.Value)

	// Revoked token can no longer refresh
	refreshReq := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", nil)
	refreshReq.AddCookie(refreshTokenCookie)
	refreshW := httptest.NewRecorder()
	handler.RefreshToken(refreshW, refreshReq)
	assert.Equal(t, http.StatusUnauthorized, refreshW.Code)
}

func TestAuthHandler_ResponseFormat(t *testing.T) {
	handler := newTestAuthHandler(newFakeUserRepo())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader([]byte("invalid")))
	w := httptest.NewRecorder()

	handler.Login(w, req)

	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var resp map[string]interface{}
	err := json.NewDecoder(w.Body).Decode(&resp)
	assert.NoError(t, err)
	assert.Contains(t, resp, "success")
	assert.False(t, resp["success"].(bool))
}
