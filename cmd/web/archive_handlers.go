package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"lankasabha.org/council-web/internal/archive"
	"lankasabha.org/council-web/internal/handlers"
	mw "lankasabha.org/council-web/internal/middleware"
)

// ArchiveSectionHandler renders one historical-record section with a single
// year visible. Selecting a year swaps the section container; the matching
// year control comes back marked active.
func ArchiveSectionHandler(w http.ResponseWriter, r *http.Request) {
	section := chi.URLParam(r, "section")
	lang := mw.Lang(r)
	year, _ := strconv.Atoi(r.URL.Query().Get("year"))

	view, err := archive.Build(section, year, lang)
	if err != nil {
		if errors.Is(err, archive.ErrUnknownSection) {
			mw.WriteError(w, r, http.StatusNotFound, "unknown archive section")
			return
		}
		mw.WriteError(w, r, http.StatusInternalServerError, "archive unavailable")
		return
	}
	render(w, r, "archive_section", http.StatusOK, handlers.BuildArchiveData(i18nBundle, view, lang))
}
