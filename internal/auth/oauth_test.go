package auth

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"jobtrack-backend/internal/model"
	"jobtrack-backend/internal/utilities"
)

func TestGoogleLogin_NewUser(t *testing.T) {
	mockUser := model.GoogleUserInfo{
		GID:     "google_test_123",
		Email:   "new.seeker@example.com",
		Name:    "New Seeker",
		Picture: "https://example.com/photo.jpg",
	}
	mockServer := NewMockOAuth2Server([]model.GoogleUserInfo{mockUser})
	defer mockServer.Close()

	handler := NewOauthLoginHandler(testDB, mockServer.Config, mockServer.MockInfoEndpoint)

	authCode, err := mockServer.GetAuthCode(mockUser.GID)
	assert.NoError(t, err)

	body := map[string]string{"code": authCode}
	rec, resp, err := utilities.SimulateAPICall(handler.GoogleLoginHandler, "/auth/google", http.MethodPost, body)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code, "Expected 201 Created for new user")
	assert.NotNil(t, resp["access_token"], "Access token should be present")
	assert.NotNil(t, resp["user"], "User data should be present")
	assert.True(t, mockServer.IsUserTokenExchanged(mockUser.GID))

	var createdUser model.User
	err = testDB.Where("google_id = ?", mockUser.GID).First(&createdUser).Error
	assert.NoError(t, err)
	assert.Equal(t, mockUser.Email, *createdUser.Email)
	assert.Equal(t, mockUser.Email, createdUser.Username)
}

func TestGoogleLogin_ExistingUser(t *testing.T) {
	email := "existing@example.com"
	existingUser := model.User{
		Username: "existing_google_user",
		Email:    &email,
		GoogleID: "google_existing_123",
	}
	assert.NoError(t, testDB.Create(&existingUser).Error)

	mockUser := model.GoogleUserInfo{
		GID:   "google_existing_123",
		Email: email,
		Name:  "Existing User",
	}
	mockServer := NewMockOAuth2Server([]model.GoogleUserInfo{mockUser})
	defer mockServer.Close()

	handler := NewOauthLoginHandler(testDB, mockServer.Config, mockServer.MockInfoEndpoint)

	authCode, err := mockServer.GetAuthCode(mockUser.GID)
	assert.NoError(t, err)

	body := map[string]string{"code": authCode}
	rec, resp, err := utilities.SimulateAPICall(handler.GoogleLoginHandler, "/auth/google", http.MethodPost, body)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code, "Expected 200 OK for existing user")
	assert.NotNil(t, resp["access_token"])

	// same Google account must not create a second user row
	var count int64
	testDB.Model(&model.User{}).Where("google_id = ?", mockUser.GID).Count(&count)
	assert.Equal(t, int64(1), count, "Should have exactly one user with this Google ID")
}

func TestGoogleLogin_InvalidAuthCode(t *testing.T) {
	mockUser := model.GoogleUserInfo{
		GID:   "google_test",
		Email: "test@example.com",
	}
	mockServer := NewMockOAuth2Server([]model.GoogleUserInfo{mockUser})
	defer mockServer.Close()

	handler := NewOauthLoginHandler(testDB, mockServer.Config, mockServer.MockInfoEndpoint)

	body := map[string]string{"code": "invalid_auth_code_12345"}
	rec, _, err := utilities.SimulateAPICall(handler.GoogleLoginHandler, "/auth/google", http.MethodPost, body)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "Should return 400 for invalid auth code")
	assert.False(t, mockServer.IsUserTokenExchanged(mockUser.GID))
}

func TestGoogleLogin_MissingAuthCode(t *testing.T) {
	mockServer := NewMockOAuth2Server([]model.GoogleUserInfo{})
	defer mockServer.Close()

	handler := NewOauthLoginHandler(testDB, mockServer.Config, mockServer.MockInfoEndpoint)

	body := map[string]string{}
	rec, _, err := utilities.SimulateAPICall(handler.GoogleLoginHandler, "/auth/google", http.MethodPost, body)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "Should return 400 for missing auth code")
}

func TestCallback_EchoesCode(t *testing.T) {
	handler := NewOauthLoginHandler(testDB, nil, "")

	rec, resp, err := utilities.SimulateAPICall(handler.Callback, "/auth/google/callback?code=abc123", http.MethodGet, nil)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "abc123", resp["code"])
}
