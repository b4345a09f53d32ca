package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/aaravmahajanofficial/storefront/internal/api/handlers"
	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/services/mocks"
)

func setupUserTest() (*mocks.UserService, *handlers.UserHandler) {
	mockUserService := new(mocks.UserService)
	return mockUserService, handlers.NewUserHandler(mockUserService)
}

func jsonRequest(t *testing.T, method, url string, body any) *http.Request {
	t.Helper()

	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(method, url, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")

	return req
}

func TestRegisterHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		mockUserService, userHandler := setupUserTest()
		reqBody := models.RegisterRequest{Email: "ana@example.com", Password: "secret1", Name: "Ana"}
		resp := &models.AuthResponse{User: models.UserSummary{ID: uuid.New(), Email: "ana@example.com", Name: "Ana"}, Token: "jwt"}
		mockUserService.On("Register", mock.Anything, &reqBody).Return(resp, nil).Once()
		recorder := httptest.NewRecorder()

		// Act
		userHandler.Register()(recorder, jsonRequest(t, http.MethodPost, "/api/auth/register", reqBody))

		// Assert
		assert.Equal(t, http.StatusCreated, recorder.Code)

		var got models.AuthResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
		assert.Equal(t, *resp, got)
		mockUserService.AssertExpectations(t)
	})

	t.Run("Failure - Short password", func(t *testing.T) {
		mockUserService, userHandler := setupUserTest()
		recorder := httptest.NewRecorder()

		userHandler.Register()(recorder, jsonRequest(t, http.MethodPost, "/api/auth/register",
			models.RegisterRequest{Email: "ana@example.com", Password: "123", Name: "Ana"}))

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		resp := decodeError(t, recorder)
		assert.Equal(t, "Invalid input data", resp.Error)
		assert.Contains(t, resp.Details, "Field Password must be at least 6")
		mockUserService.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Malformed JSON", func(t *testing.T) {
		_, userHandler := setupUserTest()
		recorder := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewBufferString(`{"email":`))

		userHandler.Register()(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("Failure - Duplicate", func(t *testing.T) {
		mockUserService, userHandler := setupUserTest()
		mockUserService.On("Register", mock.Anything, mock.Anything).Return(nil, appErrors.DuplicateEntryError("Email already registered")).Once()
		recorder := httptest.NewRecorder()

		userHandler.Register()(recorder, jsonRequest(t, http.MethodPost, "/api/auth/register",
			models.RegisterRequest{Email: "ana@example.com", Password: "secret1", Name: "Ana"}))

		assert.Equal(t, http.StatusConflict, recorder.Code)
	})
}

func TestLoginHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockUserService, userHandler := setupUserTest()
		resp := &models.AuthResponse{User: models.UserSummary{ID: uuid.New(), Email: "juan@example.com"}, Token: "jwt"}
		mockUserService.On("Login", mock.Anything, mock.MatchedBy(func(r *models.LoginRequest) bool {
			return r.Email == "juan@example.com" && r.Password == "password123"
		})).Return(resp, nil).Once()
		recorder := httptest.NewRecorder()

		userHandler.Login()(recorder, jsonRequest(t, http.MethodPost, "/api/auth/login",
			models.LoginRequest{Email: "juan@example.com", Password: "password123"}))

		assert.Equal(t, http.StatusOK, recorder.Code)
		mockUserService.AssertExpectations(t)
	})

	t.Run("Failure - Invalid credentials", func(t *testing.T) {
		mockUserService, userHandler := setupUserTest()
		mockUserService.On("Login", mock.Anything, mock.Anything).Return(nil, appErrors.UnauthorizedError("Invalid email or password")).Once()
		recorder := httptest.NewRecorder()

		userHandler.Login()(recorder, jsonRequest(t, http.MethodPost, "/api/auth/login",
			models.LoginRequest{Email: "juan@example.com", Password: "nope"}))

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("Failure - Rate limited", func(t *testing.T) {
		mockUserService, userHandler := setupUserTest()
		mockUserService.On("Login", mock.Anything, mock.Anything).
			Return(nil, appErrors.TooManyRequestsError("Too many login attempts. Please try again later.").WithDetail("Retry after 60 seconds")).Once()
		recorder := httptest.NewRecorder()

		userHandler.Login()(recorder, jsonRequest(t, http.MethodPost, "/api/auth/login",
			models.LoginRequest{Email: "juan@example.com", Password: "x"}))

		assert.Equal(t, http.StatusTooManyRequests, recorder.Code)
		assert.Equal(t, []string{"Retry after 60 seconds"}, decodeError(t, recorder).Details)
	})
}

func TestProfile(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockUserService, userHandler := setupUserTest()
		req, claims := createAuthenticatedRequest(http.MethodGet, "/api/auth/me", nil)
		mockUserService.On("GetUserByID", mock.Anything, claims.UserID).
			Return(&models.User{ID: claims.UserID, Email: claims.Email, Name: "Ana", Password: "hash"}, nil).Once()
		recorder := httptest.NewRecorder()

		userHandler.Profile()(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.NotContains(t, recorder.Body.String(), "hash")
		assert.JSONEq(t, `{"id":"`+claims.UserID.String()+`","email":"test@example.com","name":"Ana"}`, recorder.Body.String())
	})

	t.Run("Failure - Unauthenticated", func(t *testing.T) {
		_, userHandler := setupUserTest()
		recorder := httptest.NewRecorder()

		userHandler.Profile()(recorder, httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}
