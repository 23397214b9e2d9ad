package main

import (
	"errors"
	"log"
	"net/http"

	"golang.org/x/sync/errgroup"

	"lankasabha.org/council-web/internal/content"
	"lankasabha.org/council-web/internal/handlers"
	mw "lankasabha.org/council-web/internal/middleware"
	"lankasabha.org/council-web/internal/nav"
	"lankasabha.org/council-web/internal/seo"
)

// HomeHandler renders the full layout for the requested page and language.
// Navigation and content load concurrently; each branch keeps its own error
// so one failure does not discard the other's result.
func HomeHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	lang := mw.Lang(r)
	page := mw.Page(r)
	external := content.IsExternalURL(page)

	var (
		doc     *nav.Document
		pg      content.Page
		navErr  error
		pageErr error
	)
	g := new(errgroup.Group)
	g.Go(func() error {
		doc, navErr = navStore.Get(ctx, lang)
		return nil
	})
	if !external {
		g.Go(func() error {
			pg, pageErr = contentLoader.Get(ctx, page, lang)
			return nil
		})
	}
	_ = g.Wait()

	if navErr != nil {
		log.Printf("web: navigation %s: %v", lang, navErr)
	}

	data := handlers.BuildPageData(i18nBundle, doc, page, lang)
	data.Analytics = analytics
	data.Header = sectionHeader
	data.Footer = sectionFooter

	code := http.StatusOK
	switch {
	case external:
		// external URLs are never fetched; the content container shows a
		// new-tab link and page state stays untouched
		data.Content = handlers.ContentData{
			Title:    data.Labels["external.title"],
			External: page,
		}
	case pageErr != nil:
		log.Printf("web: content %s/%s: %v", lang, page, pageErr)
		data.Content = handlers.ContentData{Error: handlers.BuildErrorPanel(i18nBundle, lang)}
		if errors.Is(pageErr, content.ErrNotFound) {
			code = http.StatusNotFound
		}
	default:
		data.Content = handlers.BuildContentData(i18nBundle, pg)
		if data.Content.Title != "" && data.CouncilName != "" {
			data.Title = data.Content.Title + " | " + data.CouncilName
		}
	}
	render(w, r, "base", code, data)
}

// PageFragHandler serves the content container alone for htmx navigation.
// Successful renders push the canonical page URL onto browser history;
// external links and failures do not.
func PageFragHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	lang := mw.Lang(r)
	page := mw.Page(r)

	if content.IsExternalURL(page) {
		data := handlers.ContentData{
			Title:    i18nBundle.T(lang, "external.title"),
			External: page,
		}
		render(w, r, "content_frag", http.StatusOK, fragData(data, lang))
		return
	}

	pg, err := contentLoader.Get(ctx, page, lang)
	if err != nil {
		log.Printf("web: content %s/%s: %v", lang, page, err)
		data := handlers.ContentData{Error: handlers.BuildErrorPanel(i18nBundle, lang)}
		render(w, r, "content_frag", http.StatusOK, fragData(data, lang))
		return
	}

	mw.PushURL(w, seo.CanonicalFor(page, lang))
	render(w, r, "content_frag", http.StatusOK, fragData(handlers.BuildContentData(i18nBundle, pg), lang))
}

// contentFragView is the view model for the bare content container.
type contentFragView struct {
	Content handlers.ContentData
	Labels  map[string]string
}

func fragData(data handlers.ContentData, lang string) contentFragView {
	return contentFragView{
		Content: data,
		Labels: map[string]string{
			"external.title": i18nBundle.T(lang, "external.title"),
			"external.body":  i18nBundle.T(lang, "external.body"),
		},
	}
}
