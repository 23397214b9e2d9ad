package handlers

import (
	"html/template"

	"lankasabha.org/council-web/internal/archive"
	"lankasabha.org/council-web/internal/content"
	"lankasabha.org/council-web/internal/format"
	"lankasabha.org/council-web/internal/i18n"
	"lankasabha.org/council-web/internal/nav"
	"lankasabha.org/council-web/internal/seo"
)

// PageData is the layout view model shared by all full-page renders.
type PageData struct {
	Title        string
	Lang         string
	Page         string
	CouncilName  string
	PaymentLabel string
	SEO          seo.Meta
	Analytics    Analytics

	Nav   []nav.Node
	Langs []LangOption

	Header template.HTML
	Footer template.HTML

	Content ContentData
	Archive *ArchiveData

	JSONLD []template.JS

	// pre-resolved UI strings for the layout
	Labels map[string]string
}

// ContentData carries the content container's state: either a rendered body,
// an external-link notice, or an error panel.
type ContentData struct {
	Title    string
	Body     template.HTML
	Updated  string
	External string // external URL to open in a new tab
	Error    *ErrorPanel
}

// ErrorPanel is the visible in-page failure message with a retry suggestion.
type ErrorPanel struct {
	Title string
	Body  string
	Retry string
}

// LangOption is one entry of the language selector.
type LangOption struct {
	Code   string
	Label  string
	Href   string
	Active bool
}

// ArchiveData wraps an archive view with its resolved labels.
type ArchiveData struct {
	View   archive.View
	Label  string
	Titles map[string]string
}

// BuildPageData assembles the layout model for page in lang using doc's
// navigation and the bundle's labels.
func BuildPageData(bundle *i18n.Bundle, doc *nav.Document, page, lang string) PageData {
	d := PageData{
		Lang:   lang,
		Page:   page,
		Langs:  BuildLangOptions(bundle, page, lang),
		Labels: uiLabels(bundle, lang),
	}
	if doc != nil {
		d.CouncilName = doc.Name
		d.PaymentLabel = doc.Payment
		d.Nav = nav.Build(doc.Items, page, lang)
		d.Title = doc.Name
		d.JSONLD = []template.JS{
			template.JS(seo.JSON(seo.GovernmentOrganization(doc.Name, "/"))),
		}
		if page == content.HomePage {
			d.JSONLD = append(d.JSONLD, template.JS(seo.JSON(seo.WebSite(doc.Name, "/"))))
		}
	}
	d.SEO = seo.Meta{
		Title:      d.Title,
		Canonical:  seo.CanonicalFor(page, lang),
		Alternates: seo.Alternates(page, bundle.Supported()),
	}
	return d
}

// BuildLangOptions builds the language selector with the active language
// marked; each entry links to the current page in that language.
func BuildLangOptions(bundle *i18n.Bundle, page, lang string) []LangOption {
	langs := bundle.Supported()
	out := make([]LangOption, 0, len(langs))
	for _, l := range langs {
		out = append(out, LangOption{
			Code:   l,
			Label:  bundle.Label(l),
			Href:   seo.CanonicalFor(page, l),
			Active: l == lang,
		})
	}
	return out
}

// BuildErrorPanel resolves the localized error panel copy.
func BuildErrorPanel(bundle *i18n.Bundle, lang string) *ErrorPanel {
	return &ErrorPanel{
		Title: bundle.T(lang, "error.title"),
		Body:  bundle.T(lang, "error.body"),
		Retry: bundle.T(lang, "error.retry"),
	}
}

// BuildArchiveData resolves an archive view's label keys against the bundle.
func BuildArchiveData(bundle *i18n.Bundle, view archive.View, lang string) *ArchiveData {
	titles := map[string]string{}
	for _, e := range view.Entries {
		titles[e.TitleKey] = bundle.T(lang, e.TitleKey)
	}
	return &ArchiveData{
		View:   view,
		Label:  bundle.T(lang, view.LabelKey),
		Titles: titles,
	}
}

// BuildContentData maps a loaded page to the content container model.
func BuildContentData(bundle *i18n.Bundle, page content.Page) ContentData {
	d := ContentData{
		Title: page.Title,
		Body:  template.HTML(page.HTML),
	}
	if !page.Updated.IsZero() {
		d.Updated = bundle.T(page.Lang, "content.updated") + " " + format.FmtDate(page.Updated, page.Lang)
	}
	return d
}

func uiLabels(bundle *i18n.Bundle, lang string) map[string]string {
	keys := []string{
		"menu.open", "menu.close", "external.title", "external.body",
		"content.updated", "footer.copyright",
	}
	m := make(map[string]string, len(keys))
	for _, k := range keys {
		m[k] = bundle.T(lang, k)
	}
	return m
}
