package model

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Option is a value/label pair shown in a select control.
type Option struct {
	Value string
	Label string
}

// DefaultSort is what the form shows when no sort is set. It is not written
// to the address bar until the user picks it.
const DefaultSort = "popular"

var SortOptions = []Option{
	{Value: "ascending", Label: "Ascending by ID"},
	{Value: "descending", Label: "Descending by ID"},
	{Value: "popular", Label: "Most to least popular"},
}

var LanguageOptions = []Option{
	{Value: "en", Label: "English"},
	{Value: "fr", Label: "French"},
	{Value: "fi", Label: "Finnish"},
	{Value: "de", Label: "German"},
}

// CopyrightOptions is tri-state so that "unset" survives a plain form post.
var CopyrightOptions = []Option{
	{Value: "", Label: "Any copyright status"},
	{Value: "true", Label: "Books with existing copyrights"},
	{Value: "false", Label: "Public domain only"},
}

// LanguageName returns a human readable name for an ISO 639 code.
func LanguageName(code string) string {
	for _, o := range LanguageOptions {
		if o.Value == code {
			return o.Label
		}
	}
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	if name := display.English.Languages().Name(tag); name != "" {
		return name
	}
	return code
}

// SplitLanguages splits the comma-joined languages value, dropping empty items.
func SplitLanguages(languages string) []string {
	var out []string
	for _, l := range strings.Split(languages, ",") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

// JoinLanguages is the inverse of SplitLanguages.
func JoinLanguages(codes []string) string {
	return strings.Join(SplitLanguages(strings.Join(codes, ",")), ",")
}
