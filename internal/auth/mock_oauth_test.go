package auth

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"golang.org/x/oauth2"

	"jobtrack-backend/internal/model"
)

// MockOAuth2Server fakes Google's token and userinfo endpoints so the OAuth
// login flow can run against local HTTP servers.
type MockOAuth2Server struct {
	Config           *oauth2.Config
	MockInfoEndpoint string

	server *httptest.Server

	mu        sync.Mutex
	users     map[string]model.GoogleUserInfo // auth code -> user
	exchanged map[string]bool                 // google id -> token was exchanged
	tokens    map[string]string               // access token -> google id
}

// NewMockOAuth2Server registers the given users, each reachable through the
// auth code returned by GetAuthCode.
func NewMockOAuth2Server(users []model.GoogleUserInfo) *MockOAuth2Server {
	m := &MockOAuth2Server{
		users:     make(map[string]model.GoogleUserInfo),
		exchanged: make(map[string]bool),
		tokens:    make(map[string]string),
	}
	for _, u := range users {
		m.users["code-for-"+u.GID] = u
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/token", m.handleToken)
	mux.HandleFunc("/userinfo", m.handleUserInfo)
	m.server = httptest.NewServer(mux)

	m.Config = &oauth2.Config{
		ClientID:     "mock-client",
		ClientSecret: "mock-secret",
		RedirectURL:  "http://localhost/callback",
		Endpoint: oauth2.Endpoint{
			AuthURL:  m.server.URL + "/auth",
			TokenURL: m.server.URL + "/token",
		},
	}
	m.MockInfoEndpoint = m.server.URL + "/userinfo"
	return m
}

// GetAuthCode returns the auth code that resolves to the registered user.
func (m *MockOAuth2Server) GetAuthCode(gid string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	code := "code-for-" + gid
	if _, ok := m.users[code]; !ok {
		return "", fmt.Errorf("no registered user with google id %q", gid)
	}
	return code, nil
}

// IsUserTokenExchanged reports whether the user's auth code went through the
// token endpoint.
func (m *MockOAuth2Server) IsUserTokenExchanged(gid string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.exchanged[gid]
}

// Close shuts the fake endpoints down.
func (m *MockOAuth2Server) Close() {
	m.server.Close()
}

func (m *MockOAuth2Server) handleToken(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	code := r.FormValue("code")

	m.mu.Lock()
	user, ok := m.users[code]
	if !ok {
		m.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
		return
	}
	accessToken := "token-for-" + user.GID
	m.exchanged[user.GID] = true
	m.tokens[accessToken] = user.GID
	m.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"access_token": accessToken,
		"token_type":   "Bearer",
		"expires_in":   3600,
	})
}

func (m *MockOAuth2Server) handleUserInfo(w http.ResponseWriter, r *http.Request) {
	accessToken := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")

	m.mu.Lock()
	gid, ok := m.tokens[accessToken]
	m.mu.Unlock()
	if !ok {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	m.mu.Lock()
	var user model.GoogleUserInfo
	for _, u := range m.users {
		if u.GID == gid {
			user = u
			break
		}
	}
	m.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(user)
}
