package v1 // import "github.com/Xunop/gutenbrowse/internal/api/v1"

import (
	"net/http"

	"github.com/Xunop/gutenbrowse/internal/middleware"
	"github.com/Xunop/gutenbrowse/internal/search"
	"github.com/Xunop/gutenbrowse/internal/session"
	"github.com/gorilla/mux"
)

type Handler struct {
	sessions *session.Manager
	fetcher  search.Fetcher
}

// NewHandler is a constructor for the v1.Handler
func NewHandler(sessions *session.Manager, fetcher search.Fetcher) *Handler {
	return &Handler{
		sessions: sessions,
		fetcher:  fetcher,
	}
}

func Server(router *mux.Router, handler *Handler) {
	sr := router.PathPrefix("/api/v1").Subrouter()
	sr.Use(middleware.HandleCORS)
	sr.Methods(http.MethodOptions).HandlerFunc(func(http.ResponseWriter, *http.Request) {})

	sr.HandleFunc("/state", handler.getState).Methods(http.MethodGet)
	sr.HandleFunc("/books", handler.listBooks).Methods(http.MethodGet)
}
