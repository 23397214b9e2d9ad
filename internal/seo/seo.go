package seo

import "net/url"

type Meta struct {
	Title       string
	Description string
	Canonical   string
	Alternates  []Alternate
}

// Alternate is a hreflang link to a localized variant of the current page.
type Alternate struct {
	Href     string
	Hreflang string
}

// Alternates builds hreflang links for every supported language of page.
func Alternates(page string, langs []string) []Alternate {
	out := make([]Alternate, 0, len(langs))
	for _, l := range langs {
		out = append(out, Alternate{Href: CanonicalFor(page, l), Hreflang: l})
	}
	return out
}

// CanonicalFor returns the canonical URL path for a page in a language.
func CanonicalFor(page, lang string) string {
	q := url.Values{}
	q.Set("page", page)
	q.Set("lang", lang)
	return "/?" + q.Encode()
}
