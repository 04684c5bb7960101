package queryparam

import (
	"net/url"

	"github.com/Xunop/gutenbrowse/internal/model"
)

// Encode converts a FilterState to API query parameters. A field is included
// iff it is non-empty. Values are passed through untouched: a reversed year
// range or a non-numeric year is the API's problem.
func Encode(f model.FilterState) url.Values {
	q := url.Values{}
	for _, kv := range f.Fields() {
		if kv[1] != "" {
			q.Set(kv[0], kv[1])
		}
	}
	return q
}

// QueryString is Encode followed by url.Values.Encode.
func QueryString(f model.FilterState) string {
	return Encode(f).Encode()
}

// FilterFromStore reads the current FilterState. Page defaults to "1".
func FilterFromStore(s Store) model.FilterState {
	f := model.FilterState{
		Search:          s.Get(model.KeySearch),
		AuthorYearStart: s.Get(model.KeyAuthorYearStart),
		AuthorYearEnd:   s.Get(model.KeyAuthorYearEnd),
		Copyright:       s.Get(model.KeyCopyright),
		Languages:       s.Get(model.KeyLanguages),
		Sort:            s.Get(model.KeySort),
		Topic:           s.Get(model.KeyTopic),
		Page:            s.Get(model.KeyPage),
	}
	if f.Page == "" {
		f.Page = model.DefaultPage
	}
	return f
}

// Apply writes every field of f into s. Empty fields remove their key.
func Apply(s Store, f model.FilterState) {
	for _, kv := range f.Fields() {
		s.Set(kv[0], kv[1])
	}
}
