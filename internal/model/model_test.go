package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageCount(t *testing.T) {
	cases := map[int]int{
		0:  0,
		1:  1,
		31: 1,
		32: 1,
		33: 2,
		65: 3,
		-4: 0,
	}
	for count, want := range cases {
		assert.Equal(t, want, PageCount(count), "count=%d", count)
	}
}

func TestLanguageName(t *testing.T) {
	assert.Equal(t, "Finnish", LanguageName("fi"))
	assert.Equal(t, "Spanish", LanguageName("es"))
	assert.Equal(t, "not a code!", LanguageName("not a code!"))
}

func TestSplitJoinLanguages(t *testing.T) {
	assert.Equal(t, []string{"en", "fr"}, SplitLanguages("en,,fr, "))
	assert.Nil(t, SplitLanguages(""))
	assert.Equal(t, "en,de", JoinLanguages([]string{"en", "", "de"}))
	assert.Equal(t, "", JoinLanguages(nil))
}

func TestFilterStateField(t *testing.T) {
	f := FilterState{Topic: "Fiction", Page: "2"}
	assert.Equal(t, "Fiction", f.Field(KeyTopic))
	assert.Equal(t, "2", f.Field(KeyPage))
	assert.Equal(t, "", f.Field("unknown"))
	assert.True(t, IsFilterKey(KeyAuthorYearEnd))
	assert.False(t, IsFilterKey("author"))
}

func TestDecodeGutendexBook(t *testing.T) {
	body := `{
	  "count": 1, "next": null, "previous": null,
	  "results": [{
	    "id": 84, "title": "Frankenstein",
	    "subjects": ["Horror tales", "Science fiction"],
	    "authors": [{"name": "Shelley, Mary Wollstonecraft", "birth_year": 1797, "death_year": 1851}],
	    "translators": [],
	    "bookshelves": ["Gothic Fiction"],
	    "languages": ["en"],
	    "copyright": false,
	    "media_type": "Text",
	    "formats": {"image/jpeg": "https://www.gutenberg.org/cache/epub/84/pg84.cover.medium.jpg"},
	    "download_count": 95137
	  }]
	}`

	var resp SearchResponse
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	require.Len(t, resp.Results, 1)

	book := resp.Results[0]
	assert.Nil(t, resp.Next)
	assert.Equal(t, 84, book.ID)
	require.NotNil(t, book.Copyright)
	assert.False(t, *book.Copyright)
	require.NotNil(t, book.Authors[0].BirthYear)
	assert.Equal(t, 1797, *book.Authors[0].BirthYear)
	assert.Equal(t, "https://www.gutenberg.org/cache/epub/84/pg84.cover.medium.jpg", book.Thumbnail())
}
