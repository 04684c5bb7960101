// Package web renders the single browsing view and handles its form posts.
//
// Every post edits the address-bar query string and answers with a 303
// redirect to "/?<query>", so the URL stays the only record of the filters.
package web // import "github.com/Xunop/gutenbrowse/internal/web"

import (
	"bytes"
	"html/template"
	"net/http"
	"net/url"

	"github.com/Xunop/gutenbrowse/internal/http/request"
	"github.com/Xunop/gutenbrowse/internal/http/response"
	"github.com/Xunop/gutenbrowse/internal/log"
	"github.com/Xunop/gutenbrowse/internal/model"
	"github.com/Xunop/gutenbrowse/internal/queryparam"
	"github.com/Xunop/gutenbrowse/internal/search"
	"github.com/Xunop/gutenbrowse/internal/session"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type Handler struct {
	sessions  *session.Manager
	templates *template.Template
}

// NewHandler parses the embedded templates.
func NewHandler(sessions *session.Manager) (*Handler, error) {
	tpl, err := parseTemplates()
	if err != nil {
		return nil, errors.Wrap(err, "unable to parse templates")
	}
	return &Handler{sessions: sessions, templates: tpl}, nil
}

func Server(router *mux.Router, handler *Handler) {
	router.HandleFunc("/", handler.showView).Methods(http.MethodGet, http.MethodHead).Name("view")
	router.HandleFunc("/search", handler.submitSearch).Methods(http.MethodPost).Name("search")
	router.HandleFunc("/params", handler.changeParams).Methods(http.MethodPost).Name("params")
	router.HandleFunc("/page", handler.changePage).Methods(http.MethodPost).Name("page")
	router.HandleFunc("/subject", handler.clickSubject).Methods(http.MethodPost).Name("subject")
}

type actions struct {
	Search  string
	Params  string
	Page    string
	Subject string
}

type viewData struct {
	Filter            model.FilterState
	SortValue         string
	SelectedLanguages map[string]bool
	SortOptions       []model.Option
	LanguageOptions   []model.Option
	CopyrightOptions  []model.Option
	Actions           actions
	Snapshot          search.Snapshot
	Loading           bool
	Failed            bool
	ShowGrid          bool
	// ResultsFor links to the filters the shown results were fetched with,
	// set only when they differ from the address bar.
	ResultsFor string
}

// withURLValues appends an option for every value that has none, so that the
// form posts back what the address bar holds.
func withURLValues(options []model.Option, values []string, label func(string) string) []model.Option {
	out := options
	for _, v := range values {
		if v == "" || hasOption(options, v) {
			continue
		}
		if len(out) == len(options) {
			out = append([]model.Option(nil), options...)
		}
		out = append(out, model.Option{Value: v, Label: label(v)})
	}
	return out
}

// languageOptions lists the address-bar languages first, in their order, so a
// post sends them back unchanged, then the remaining known languages.
func languageOptions(codes []string) []model.Option {
	out := make([]model.Option, 0, len(codes)+len(model.LanguageOptions))
	seen := make(map[string]bool)
	for _, code := range codes {
		if !seen[code] {
			seen[code] = true
			out = append(out, model.Option{Value: code, Label: model.LanguageName(code)})
		}
	}
	for _, o := range model.LanguageOptions {
		if !seen[o.Value] {
			out = append(out, o)
		}
	}
	return out
}

func hasOption(options []model.Option, value string) bool {
	for _, o := range options {
		if o.Value == value {
			return true
		}
	}
	return false
}

func rawLabel(v string) string { return v }

func actionURL(path, query string) string {
	if query == "" {
		return path
	}
	return path + "?" + query
}

// paramStore wraps a copy of the request URL so that writes never touch r.
func paramStore(r *http.Request) *queryparam.URLStore {
	u := *r.URL
	return queryparam.FromURL(&u)
}

func redirect(w http.ResponseWriter, r *http.Request, params queryparam.Store) {
	http.Redirect(w, r, actionURL("/", params.Encode()), http.StatusSeeOther)
}

// showView renders the filters found in the URL and the last response of the
// session. It never fetches.
func (h *Handler) showView(w http.ResponseWriter, r *http.Request) {
	params := paramStore(r)
	filter := queryparam.FilterFromStore(params)
	snapshot := h.sessions.Controller(w, r).Snapshot()

	languages := model.SplitLanguages(filter.Languages)
	data := viewData{
		Filter:            filter,
		SortValue:         filter.Sort,
		SelectedLanguages: make(map[string]bool),
		SortOptions:       withURLValues(model.SortOptions, []string{filter.Sort}, rawLabel),
		LanguageOptions:   languageOptions(languages),
		CopyrightOptions:  withURLValues(model.CopyrightOptions, []string{filter.Copyright}, rawLabel),
		Snapshot:          snapshot,
		Loading:           snapshot.Status == search.StatusLoading,
		Failed:            snapshot.Failed,
	}
	if data.SortValue == "" {
		data.SortValue = model.DefaultSort
	}
	for _, code := range languages {
		data.SelectedLanguages[code] = true
	}
	query := params.Encode()
	data.Actions = actions{
		Search:  actionURL("/search", query),
		Params:  actionURL("/params", query),
		Page:    actionURL("/page", query),
		Subject: actionURL("/subject", query),
	}
	data.ShowGrid = !data.Loading && !data.Failed && snapshot.Response != nil
	// Sessions are shared by every tab, so the last response may belong to
	// another tab's search or to filters edited since.
	if data.ShowGrid && snapshot.Filter != filter {
		data.ResultsFor = actionURL("/", queryparam.QueryString(snapshot.Filter))
	}

	var buf bytes.Buffer
	if err := h.templates.ExecuteTemplate(&buf, "view", data); err != nil {
		response.ServerError(w, r, errors.Wrap(err, "unable to render view"))
		return
	}

	builder := response.New(w, r)
	builder.WithHeader("Content-Type", "text/html; charset=utf-8")
	builder.WithoutCache()
	builder.WithBody(buf.Bytes())
	builder.Write()
}

// applySearchForm writes every field of the filter form into params. The
// posted form is the complete filter: a missing field clears its key. The
// view renders every address-bar value as a selectable option, so an
// untouched form posts the address bar back as it was.
func applySearchForm(c *search.Controller, params queryparam.Store, form url.Values) {
	for _, key := range model.FilterKeys {
		var value string
		switch key {
		case model.KeyPage:
			continue
		case model.KeyLanguages:
			value = model.JoinLanguages(form[key])
		default:
			value = form.Get(key)
		}
		// The form shows the default sort when none is set; posting it back
		// must not write it.
		if key == model.KeySort && value == model.DefaultSort && !params.Has(model.KeySort) {
			continue
		}
		c.OnFieldChange(params, key, value)
	}
}

func logFetchError(r *http.Request, err error) {
	if err == nil || errors.Is(err, search.ErrStale) {
		return
	}
	log.Debug("Search request failed",
		zap.String("request_id", request.RequestID(r)),
		zap.Error(err))
}

func (h *Handler) submitSearch(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		response.BadRequest(w, r, err)
		return
	}

	params := paramStore(r)
	c := h.sessions.Controller(w, r)
	applySearchForm(c, params, r.PostForm)
	logFetchError(r, c.OnSearch(r.Context(), params))
	redirect(w, r, params)
}

// changeParams edits the address bar without fetching. A "key" field names a
// single query key whose "value" is written; otherwise the whole filter form
// is applied.
func (h *Handler) changeParams(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		response.BadRequest(w, r, err)
		return
	}

	params := paramStore(r)
	c := h.sessions.Controller(w, r)

	key := r.PostForm.Get("key")
	if key == "" {
		applySearchForm(c, params, r.PostForm)
		redirect(w, r, params)
		return
	}
	if !model.IsFilterKey(key) {
		response.BadRequest(w, r, errors.Errorf("unknown query key %q", key))
		return
	}

	value := r.PostForm.Get("value")
	if key == model.KeyLanguages {
		value = model.JoinLanguages(r.PostForm["value"])
	}
	c.OnFieldChange(params, key, value)
	redirect(w, r, params)
}

func (h *Handler) changePage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		response.BadRequest(w, r, err)
		return
	}

	params := paramStore(r)
	c := h.sessions.Controller(w, r)
	logFetchError(r, c.OnPageChange(r.Context(), params, r.PostForm.Get("page")))
	redirect(w, r, params)
}

func (h *Handler) clickSubject(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		response.BadRequest(w, r, err)
		return
	}

	subject := r.PostForm.Get("subject")
	if subject == "" {
		response.BadRequest(w, r, errors.New("missing subject"))
		return
	}

	params := paramStore(r)
	c := h.sessions.Controller(w, r)
	logFetchError(r, c.OnSubjectClick(r.Context(), params, subject))
	redirect(w, r, params)
}
