package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"lankasabha.org/council-web/internal/content"
	"lankasabha.org/council-web/internal/handlers"
	"lankasabha.org/council-web/internal/i18n"
	mw "lankasabha.org/council-web/internal/middleware"
	"lankasabha.org/council-web/internal/nav"
)

// config comes from COUNCIL_WEB_* environment variables; flags override.
type config struct {
	Addr         string `env:"COUNCIL_WEB_ADDR"`
	Port         string `env:"COUNCIL_WEB_PORT"`
	TemplatesDir string `env:"COUNCIL_WEB_TEMPLATES" envDefault:"templates"`
	PublicDir    string `env:"COUNCIL_WEB_PUBLIC" envDefault:"public"`
	ContentDir   string `env:"COUNCIL_WEB_CONTENT" envDefault:"content"`
	LocalesDir   string `env:"COUNCIL_WEB_LOCALES" envDefault:"locales"`
	OriginURL    string `env:"COUNCIL_WEB_ORIGIN"`
	Dev          bool   `env:"COUNCIL_WEB_DEV"`
}

var (
	templatesDir = "templates"
	publicDir    = "public"
	// devMode reparses templates on each request
	devMode   bool
	tmplCache *template.Template

	i18nBundle    *i18n.Bundle
	contentClient *content.Client
	contentLoader *content.Loader
	navStore      *nav.Store
	analytics     handlers.Analytics

	// header/footer section fragments, loaded once at startup
	sectionHeader template.HTML
	sectionFooter template.HTML
)

func main() {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("parse env: %v", err)
	}

	// Port resolution: prefer COUNCIL_WEB_PORT, then PORT, else 8080
	port := cfg.Port
	if port == "" {
		port = os.Getenv("PORT")
	}
	if port == "" {
		port = "8080"
	}
	addr := cfg.Addr
	if addr == "" {
		addr = ":" + port
	}
	flag.StringVar(&addr, "addr", addr, "HTTP listen address")
	flag.StringVar(&cfg.TemplatesDir, "templates", cfg.TemplatesDir, "templates directory")
	flag.StringVar(&cfg.PublicDir, "public", cfg.PublicDir, "public assets directory")
	flag.StringVar(&cfg.ContentDir, "content", cfg.ContentDir, "site content directory")
	flag.StringVar(&cfg.LocalesDir, "locales", cfg.LocalesDir, "locale dictionaries directory")
	flag.StringVar(&cfg.OriginURL, "origin", cfg.OriginURL, "upstream content origin base URL (optional)")
	flag.Parse()

	templatesDir = cfg.TemplatesDir
	publicDir = cfg.PublicDir
	devMode = cfg.Dev || os.Getenv("DEV") != ""

	if !devMode {
		// Parse templates once in production
		tc, err := parseTemplates()
		if err != nil {
			log.Fatalf("parse templates: %v", err)
		}
		tmplCache = tc
	}

	var err error
	i18nBundle, err = i18n.Load(cfg.LocalesDir, i18n.DefaultLang, i18n.SupportedLangs)
	if err != nil {
		log.Fatalf("load locales: %v", err)
	}

	contentClient = content.NewClient(cfg.OriginURL, cfg.ContentDir)
	contentLoader = content.NewLoader(contentClient)
	navStore = nav.NewStore(contentClient, i18n.DefaultLang)
	analytics = handlers.LoadAnalyticsFromEnv()

	loadSections(context.Background())

	r := newRouter()

	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("web listening on %s (devMode=%v)", addr, devMode)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("listen: %v", err)
	}
}

func newRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(mw.HTMX)
	r.Use(mw.Locale(i18nBundle))
	r.Use(mw.VaryLocale)
	r.Use(mw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	assets := http.StripPrefix("/assets", mw.AssetsWithCache("/assets", filepath.Join(publicDir, "assets")))
	r.Handle("/assets/*", assets)

	r.Get("/", HomeHandler)
	r.Get("/page", PageFragHandler)
	r.Get("/archive/{section}", ArchiveSectionHandler)
	return r
}

// loadSections fetches the shared header/footer fragments concurrently.
// A failure degrades to an empty fragment; the app keeps serving.
func loadSections(ctx context.Context) {
	g := new(errgroup.Group)
	g.Go(func() error {
		raw, err := contentClient.Resource(ctx, "sections/header.html")
		if err != nil {
			log.Printf("web: load header section: %v", err)
			return nil
		}
		sectionHeader = template.HTML(raw)
		return nil
	})
	g.Go(func() error {
		raw, err := contentClient.Resource(ctx, "sections/footer.html")
		if err != nil {
			log.Printf("web: load footer section: %v", err)
			return nil
		}
		sectionFooter = template.HTML(raw)
		return nil
	})
	_ = g.Wait()
}

func parseTemplates() (*template.Template, error) {
	funcMap := template.FuncMap{
		"now": time.Now,
	}
	// Recursively discover and parse all .tmpl files. Note: ParseGlob doesn't support **.
	var files []string
	if err := filepath.WalkDir(templatesDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(d.Name(), ".tmpl") {
			files = append(files, path)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no templates found under %s", templatesDir)
	}
	return template.New("_root").Funcs(funcMap).ParseFiles(files...)
}

// render executes a named template into a buffer first so template failures
// surface as a clean 500 instead of a torn response. In dev mode, templates
// are reparsed on each request.
func render(w http.ResponseWriter, r *http.Request, name string, code int, data any) {
	var t *template.Template
	if devMode {
		tc, err := parseTemplates()
		if err != nil {
			http.Error(w, fmt.Sprintf("template parse error: %v", err), http.StatusInternalServerError)
			return
		}
		t = tc
	} else {
		t = tmplCache
	}
	if t == nil {
		http.Error(w, "template not initialized", http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name, data); err != nil {
		http.Error(w, fmt.Sprintf("template exec error: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	_, _ = buf.WriteTo(w)
}
