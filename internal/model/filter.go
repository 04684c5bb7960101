package model

// Query keys, spelled exactly as the Gutendex API and the address bar expect them.
const (
	KeySearch          = "search"
	KeyAuthorYearStart = "author_year_start"
	KeyAuthorYearEnd   = "author_year_end"
	KeyCopyright       = "copyright"
	KeyLanguages       = "languages"
	KeySort            = "sort"
	KeyTopic           = "topic"
	KeyPage            = "page"
)

// FilterKeys lists every query key in the order they appear on the form.
var FilterKeys = []string{
	KeySearch,
	KeyAuthorYearStart,
	KeyAuthorYearEnd,
	KeyTopic,
	KeyLanguages,
	KeySort,
	KeyCopyright,
	KeyPage,
}

// IsFilterKey reports whether key is one of FilterKeys.
func IsFilterKey(key string) bool {
	for _, k := range FilterKeys {
		if k == key {
			return true
		}
	}
	return false
}

// DefaultPage is used when no page is present in the address bar.
const DefaultPage = "1"

// FilterState is the set of user-chosen search, sort and pagination values.
// An empty field is unset; no value is validated.
type FilterState struct {
	Search          string `json:"search,omitempty"`
	AuthorYearStart string `json:"author_year_start,omitempty"`
	AuthorYearEnd   string `json:"author_year_end,omitempty"`
	Copyright       string `json:"copyright,omitempty"`
	Languages       string `json:"languages,omitempty"`
	Sort            string `json:"sort,omitempty"`
	Topic           string `json:"topic,omitempty"`
	Page            string `json:"page,omitempty"`
}

// Fields returns the state as key/value pairs in FilterKeys order.
func (f FilterState) Fields() [][2]string {
	return [][2]string{
		{KeySearch, f.Search},
		{KeyAuthorYearStart, f.AuthorYearStart},
		{KeyAuthorYearEnd, f.AuthorYearEnd},
		{KeyTopic, f.Topic},
		{KeyLanguages, f.Languages},
		{KeySort, f.Sort},
		{KeyCopyright, f.Copyright},
		{KeyPage, f.Page},
	}
}

// Field returns the value stored under a query key.
func (f FilterState) Field(key string) string {
	for _, kv := range f.Fields() {
		if kv[0] == key {
			return kv[1]
		}
	}
	return ""
}

// ItemsPerPage is fixed by Gutendex and cannot be configured.
const ItemsPerPage = 32

// PageCount returns how many pages count results span.
func PageCount(count int) int {
	if count <= 0 {
		return 0
	}
	return (count + ItemsPerPage - 1) / ItemsPerPage
}
