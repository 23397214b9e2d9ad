package content

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when a requested site resource does not exist.
var ErrNotFound = errors.New("content: not found")

const (
	// HomePage is the page served when no identifier is given.
	HomePage = "home"

	defaultContentDir = "content"
)

// markdownPages names the logical pages stored as markdown source. Everything
// else resolves to an HTML fragment of the same name.
var markdownPages = map[string]struct{}{
	"about":   {},
	"contact": {},
}

// Client reads site resources from an upstream content origin when one is
// configured, falling back to the local content directory.
type Client struct {
	baseURL string
	http    *http.Client
	dir     string
}

// NewClient constructs a Client. baseURL may be empty, in which case all
// resources come from the local directory.
func NewClient(baseURL, dir string) *Client {
	baseURL = strings.TrimSpace(baseURL)
	dir = strings.TrimSpace(dir)
	if dir == "" {
		dir = defaultContentDir
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 5 * time.Second},
		dir:     dir,
	}
}

// Dir returns the configured local content directory.
func (c *Client) Dir() string {
	if c == nil || strings.TrimSpace(c.dir) == "" {
		return defaultContentDir
	}
	return c.dir
}

// Resource fetches a site resource by slash-separated relative path, e.g.
// "pages/ta/about.md" or "sections/header.html".
func (c *Client) Resource(ctx context.Context, relPath string) ([]byte, error) {
	if c != nil && c.baseURL != "" {
		raw, err := c.fetchRemote(ctx, relPath)
		if err == nil {
			return raw, nil
		}
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		// transport trouble; fall through to the local copy
	}
	return c.readLocal(relPath)
}

func (c *Client) fetchRemote(ctx context.Context, relPath string) ([]byte, error) {
	endpoint, err := url.JoinPath(c.baseURL, relPath)
	if err != nil {
		return nil, fmt.Errorf("content: join path %s: %w", relPath, err)
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: 5 * time.Second}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("content: build request %s: %w", relPath, err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("content: fetch %s: %w", relPath, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("content: fetch %s: status %d", relPath, resp.StatusCode)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("content: read %s: %w", relPath, err)
	}
	return raw, nil
}

func (c *Client) readLocal(relPath string) ([]byte, error) {
	file := filepath.Join(c.Dir(), filepath.FromSlash(relPath))
	raw, err := os.ReadFile(file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("content: read %s: %w", relPath, err)
	}
	return raw, nil
}

// Page is a content page rendered to its final HTML.
type Page struct {
	ID       string
	Lang     string
	Title    string
	Summary  string
	HTML     string
	Updated  time.Time
	Markdown bool
}

type frontMatter struct {
	Title   string `yaml:"title"`
	Summary string `yaml:"summary"`
	Updated string `yaml:"updated"`
}

// Loader resolves page identifiers to files, converts markdown sources, and
// caches the final HTML under a composite language+page key. Each combination
// is fetched at most once per process; entries are never evicted.
type Loader struct {
	client *Client
	md     goldmark.Markdown
	policy *bluemonday.Policy

	mu    sync.RWMutex
	pages map[string]Page
}

// NewLoader builds a Loader over client.
func NewLoader(client *Client) *Loader {
	return &Loader{
		client: client,
		md:     goldmark.New(goldmark.WithExtensions(extension.GFM)),
		policy: bluemonday.UGCPolicy(),
		pages:  map[string]Page{},
	}
}

// CacheKey is the composite cache key for a language and page identifier.
func CacheKey(lang, id string) string {
	return lang + "-" + id
}

// FileFor resolves a logical page identifier to its source file name.
func FileFor(id string) string {
	if _, ok := markdownPages[id]; ok {
		return id + ".md"
	}
	return id + ".html"
}

// Get returns the rendered page for id in lang, fetching and converting it on
// first use. External URLs are never valid identifiers here; callers must
// check IsExternalURL before calling.
func (l *Loader) Get(ctx context.Context, id, lang string) (Page, error) {
	id = sanitizeID(id)
	if id == "" {
		return Page{}, ErrNotFound
	}
	key := CacheKey(lang, id)
	l.mu.RLock()
	page, ok := l.pages[key]
	l.mu.RUnlock()
	if ok {
		return page, nil
	}

	page, err := l.fetch(ctx, id, lang)
	if err != nil {
		return Page{}, err
	}

	l.mu.Lock()
	if cached, ok := l.pages[key]; ok {
		page = cached
	} else {
		l.pages[key] = page
	}
	l.mu.Unlock()
	return page, nil
}

func (l *Loader) fetch(ctx context.Context, id, lang string) (Page, error) {
	file := FileFor(id)
	raw, err := l.client.Resource(ctx, "pages/"+lang+"/"+file)
	if err != nil {
		return Page{}, err
	}

	page := Page{ID: id, Lang: lang, Markdown: strings.HasSuffix(file, ".md")}
	if !page.Markdown {
		// HTML fragments are used byte-for-byte
		page.HTML = string(raw)
		page.Title = prettifyID(id)
		return page, nil
	}

	fm, body := splitFrontMatter(string(raw))
	front := frontMatter{}
	if strings.TrimSpace(fm) != "" {
		if err := yaml.Unmarshal([]byte(fm), &front); err != nil {
			return Page{}, fmt.Errorf("content: parse front matter %s: %w", file, err)
		}
	}
	var buf bytes.Buffer
	if err := l.md.Convert([]byte(body), &buf); err != nil {
		return Page{}, fmt.Errorf("content: convert %s: %w", file, err)
	}
	page.HTML = l.policy.Sanitize(buf.String())
	page.Title = strings.TrimSpace(front.Title)
	page.Summary = strings.TrimSpace(front.Summary)
	page.Updated = parseDate(front.Updated)
	if page.Title == "" {
		page.Title = prettifyID(id)
	}
	return page, nil
}

// IsExternalURL reports whether id is an absolute http/https URL. Such
// identifiers are never fetched as content.
func IsExternalURL(id string) bool {
	id = strings.TrimSpace(strings.ToLower(id))
	return strings.HasPrefix(id, "http://") || strings.HasPrefix(id, "https://")
}

func sanitizeID(id string) string {
	id = strings.TrimSpace(strings.ToLower(id))
	id = strings.Trim(id, "/")
	if id == "" {
		return ""
	}
	if strings.Contains(id, "..") {
		return ""
	}
	if strings.ContainsAny(id, "/\\") {
		return ""
	}
	return id
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimLeft(input, "\ufeff")
	lines := strings.Split(input, "\n")
	if len(lines) == 0 {
		return "", ""
	}
	if strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			fm := strings.Join(lines[1:i], "\n")
			body := strings.Join(lines[i+1:], "\n")
			return fm, strings.TrimLeft(body, "\n\r")
		}
	}
	return "", input
}

func parseDate(v string) time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02",
		"2006/01/02",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

func prettifyID(id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return id
	}
	parts := strings.Split(id, "-")
	for i, part := range parts {
		if part == "" {
			continue
		}
		runes := []rune(part)
		runes[0] = asciiUpper(runes[0])
		parts[i] = string(runes)
	}
	return strings.Join(parts, " ")
}

func asciiUpper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}
