package model // import "github.com/Xunop/gutenbrowse/internal/model"

// Person is an author or translator as returned by Gutendex.
type Person struct {
	Name      string `json:"name"`
	BirthYear *int   `json:"birth_year"`
	DeathYear *int   `json:"death_year"`
}

// Book is a single Gutendex result. Fields are read-only for us.
type Book struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Subjects    []string `json:"subjects"`
	Authors     []Person `json:"authors"`
	Translators []Person `json:"translators"`
	Bookshelves []string `json:"bookshelves"`
	Languages   []string `json:"languages"`
	// Copyright is nil when Gutendex does not know.
	Copyright     *bool             `json:"copyright"`
	MediaType     string            `json:"media_type"`
	Formats       map[string]string `json:"formats"`
	DownloadCount int               `json:"download_count"`
}

// Thumbnail returns the cover image URL, if any.
func (b Book) Thumbnail() string {
	return b.Formats["image/jpeg"]
}

// SearchResponse is the body of GET /books.
// Next and Previous are cursors we keep but never follow; paging goes through the page parameter.
type SearchResponse struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []Book  `json:"results"`
}
