package v1

import (
	"net/http"

	"github.com/Xunop/gutenbrowse/internal/http/response"
	"github.com/Xunop/gutenbrowse/internal/model"
	"github.com/Xunop/gutenbrowse/internal/queryparam"
	"github.com/Xunop/gutenbrowse/internal/search"
)

type stateResponse struct {
	// Params is the filter decoded from the request query string.
	Params  model.FilterState `json:"params"`
	Session search.Snapshot   `json:"session"`
}

// getState reports the session's last response without creating a session.
func (h *Handler) getState(w http.ResponseWriter, r *http.Request) {
	params := queryparam.FromURL(r.URL)
	state := stateResponse{Params: queryparam.FilterFromStore(params)}
	if c, ok := h.sessions.Peek(r); ok {
		state.Session = c.Snapshot()
	}
	response.OK(w, r, state)
}
