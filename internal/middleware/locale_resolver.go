package middleware

import (
	"net/http"
	"strings"

	"lankasabha.org/council-web/internal/i18n"
)

// LangCookie persists the visitor's last-used language.
const LangCookie = "lang"

// Locale resolves the active language for the request and keeps the
// preference cookie in sync.
//
// Resolution order: `lang` query parameter, preference cookie,
// Accept-Language, bundle fallback. Invalid values are discarded at each
// step, so the resolved language is always a member of the supported set.
// The resolved language is persisted immediately as the new preference.
func Locale(bundle *i18n.Bundle) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := bundle.Normalize(r.URL.Query().Get("lang"))
			stored := ""
			if c, err := r.Cookie(LangCookie); err == nil {
				stored = bundle.Normalize(c.Value)
			}
			if lang == "" {
				lang = stored
			}
			if lang == "" {
				lang = bundle.Resolve(r.Header.Get("Accept-Language"))
			}
			if lang != stored {
				http.SetCookie(w, &http.Cookie{
					Name:     LangCookie,
					Value:    lang,
					Path:     "/",
					MaxAge:   365 * 24 * 3600,
					SameSite: http.SameSiteLaxMode,
				})
			}
			w.Header().Set("Content-Language", lang)
			next.ServeHTTP(w, r.WithContext(WithLang(r.Context(), lang)))
		})
	}
}

// Lang returns the resolved language for the request, defaulting to the
// site default when the middleware did not run.
func Lang(r *http.Request) string {
	if l := LangFromContext(r.Context()); l != "" {
		return l
	}
	return i18n.DefaultLang
}

// Page returns the requested page identifier from the `page` query
// parameter, defaulting to the home page. No validation happens here;
// invalid pages surface as load errors.
func Page(r *http.Request) string {
	p := strings.TrimSpace(r.URL.Query().Get("page"))
	if p == "" {
		return "home"
	}
	return p
}

// VaryLocale sets Vary header for Accept-Language on dynamic responses
func VaryLocale(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// append to existing Vary if any
		w.Header().Add("Vary", "Accept-Language")
		next.ServeHTTP(w, r)
	})
}
