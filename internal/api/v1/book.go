package v1

import (
	"net/http"

	"github.com/Xunop/gutenbrowse/internal/http/response"
	"github.com/Xunop/gutenbrowse/internal/log"
	"github.com/Xunop/gutenbrowse/internal/model"
	"github.com/Xunop/gutenbrowse/internal/queryparam"
	"go.uber.org/zap"
)

type bookList struct {
	Count     int          `json:"count"`
	Page      string       `json:"page"`
	PageCount int          `json:"page_count"`
	Results   []model.Book `json:"results"`
}

// listBooks runs one search with the filters of the query string. It does not
// touch any session.
func (h *Handler) listBooks(w http.ResponseWriter, r *http.Request) {
	filter := queryparam.FilterFromStore(queryparam.FromURL(r.URL))

	resp, err := h.fetcher.Search(r.Context(), filter)
	if err != nil {
		log.Warn("Error listing books", zap.Any("filter", filter), zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	results := resp.Results
	if results == nil {
		results = []model.Book{}
	}
	response.OK(w, r, bookList{
		Count:     resp.Count,
		Page:      filter.Page,
		PageCount: model.PageCount(resp.Count),
		Results:   results,
	})
}
