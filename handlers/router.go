package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"costreports/config"
)

// NewRouter wires the full HTTP surface: login, the tool launcher, and both
// report endpoints behind session auth.
func NewRouter(cfg *config.Config) *mux.Router {
	store := NewSessionStore(cfg.SessionTTL())

	r := mux.NewRouter()
	r.Use(RequestLogger)

	r.HandleFunc("/login", HandleLogin(cfg, store)).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/logout", HandleLogout(store)).Methods(http.MethodGet)

	protected := r.PathPrefix("/").Subrouter()
	protected.Use(RequireAuth(store))
	protected.HandleFunc("/", HandleHome()).Methods(http.MethodGet)
	protected.HandleFunc("/tool1", HandleSummaryReport(cfg)).Methods(http.MethodPost)
	protected.HandleFunc("/tool2", HandleDetailsReport(cfg)).Methods(http.MethodPost)

	return r
}
