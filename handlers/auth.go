package handlers

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"costreports/config"
)

const sessionCookie = "costreports_session"

// SessionStore keeps login sessions in memory. Sessions are the only state
// shared across requests; the store is safe for concurrent use and nothing
// in it touches report data.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]time.Time
	ttl      time.Duration
}

// NewSessionStore creates a store whose sessions expire after ttl.
func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]time.Time),
		ttl:      ttl,
	}
}

// Create registers a new session and returns its token.
func (s *SessionStore) Create() string {
	token := uuid.NewString()
	s.mu.Lock()
	s.sessions[token] = time.Now().Add(s.ttl)
	s.mu.Unlock()
	return token
}

// Valid reports whether the token names a live session, pruning it if
// expired.
func (s *SessionStore) Valid(token string) bool {
	if token == "" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	expiry, ok := s.sessions[token]
	if !ok {
		return false
	}
	if time.Now().After(expiry) {
		delete(s.sessions, token)
		return false
	}
	return true
}

// Delete removes a session.
func (s *SessionStore) Delete(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// HandleLogin serves the login form and checks credentials on POST.
func HandleLogin(cfg *config.Config, store *SessionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeLoginPage(w, "")
			return
		}

		username := r.FormValue("username")
		password := r.FormValue("password")

		if !checkCredentials(cfg, username, password) {
			logrus.WithField("user", username).Warn("failed login attempt")
			w.WriteHeader(http.StatusUnauthorized)
			writeLoginPage(w, "Invalid credentials")
			return
		}

		token := store.Create()
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookie,
			Value:    token,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		http.Redirect(w, r, "/", http.StatusFound)
	}
}

// HandleLogout drops the session and returns to the login page.
func HandleLogout(store *SessionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie(sessionCookie); err == nil {
			store.Delete(c.Value)
		}
		http.SetCookie(w, &http.Cookie{
			Name:   sessionCookie,
			Value:  "",
			Path:   "/",
			MaxAge: -1,
		})
		http.Redirect(w, r, "/login", http.StatusFound)
	}
}

func checkCredentials(cfg *config.Config, username, password string) bool {
	if cfg.AdminPasswordHash == "" {
		logrus.Error("login rejected: admin_password_hash is not configured")
		return false
	}
	if username != cfg.AdminUser {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(cfg.AdminPasswordHash), []byte(password)) == nil
}
