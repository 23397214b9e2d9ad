package nav

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"strings"
	"sync"
)

// Document is the per-language navigation document decoded from
// static/lang/{lang}.json.
type Document struct {
	Name    string `json:"name"`
	Payment string `json:"payment"`
	Items   []Item `json:"nav"`
}

// Item is one menu entry. Entries carrying SubMenu render as dropdowns;
// nesting is recursive with no depth limit.
type Item struct {
	Text    string `json:"text"`
	Link    string `json:"link,omitempty"`
	SubMenu []Item `json:"sub_menu,omitempty"`
}

// Source supplies raw site resources by slash-separated relative path.
type Source interface {
	Resource(ctx context.Context, relPath string) ([]byte, error)
}

// Store loads and caches navigation documents. Each language is fetched at
// most once per process; entries are never evicted.
type Store struct {
	source   Source
	fallback string

	mu   sync.RWMutex
	docs map[string]*Document
}

// NewStore builds a Store reading documents from source, retrying once with
// fallbackLang when a language's document cannot be loaded.
func NewStore(source Source, fallbackLang string) *Store {
	return &Store{
		source:   source,
		fallback: fallbackLang,
		docs:     map[string]*Document{},
	}
}

// Get returns the navigation document for lang. A load failure for a
// non-fallback language triggers exactly one attempt against the fallback
// language; if that also fails the error is returned with no further
// escalation. Whatever document is obtained is cached under the requested
// language so the failure path runs at most once.
func (s *Store) Get(ctx context.Context, lang string) (*Document, error) {
	s.mu.RLock()
	doc, ok := s.docs[lang]
	s.mu.RUnlock()
	if ok {
		return doc, nil
	}

	doc, err := s.load(ctx, lang)
	if err != nil {
		if lang == s.fallback {
			return nil, err
		}
		log.Printf("nav: load %s: %v; retrying with %s", lang, err, s.fallback)
		doc, err = s.load(ctx, s.fallback)
		if err != nil {
			return nil, err
		}
	}

	s.mu.Lock()
	if cached, ok := s.docs[lang]; ok {
		doc = cached
	} else {
		s.docs[lang] = doc
	}
	s.mu.Unlock()
	return doc, nil
}

func (s *Store) load(ctx context.Context, lang string) (*Document, error) {
	raw, err := s.source.Resource(ctx, "static/lang/"+lang+".json")
	if err != nil {
		return nil, fmt.Errorf("nav: load %s: %w", lang, err)
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("nav: decode %s: %w", lang, err)
	}
	return &doc, nil
}

// Node is a render-ready menu entry. Leaf nodes carry link targets; nodes
// with Children render as a dropdown toggle plus a nested list.
type Node struct {
	Text     string
	Href     string
	FragHref string // htmx endpoint for local links
	External bool
	Active   bool
	Children []Node
}

// Build maps document items to render nodes for the given page and language.
// External links (absolute http/https URLs) keep their URL and are marked for
// new-tab isolation; local links point back at the site with page and
// language carried as query parameters. The recursion has no depth limit.
func Build(items []Item, page, lang string) []Node {
	nodes := make([]Node, 0, len(items))
	for _, it := range items {
		n := Node{Text: it.Text}
		switch {
		case len(it.SubMenu) > 0:
			n.Children = Build(it.SubMenu, page, lang)
			for _, c := range n.Children {
				if c.Active {
					n.Active = true
					break
				}
			}
		case IsExternal(it.Link):
			n.Href = it.Link
			n.External = true
		default:
			q := url.Values{}
			q.Set("page", it.Link)
			q.Set("lang", lang)
			n.Href = "/?" + q.Encode()
			n.FragHref = "/page?" + q.Encode()
			n.Active = it.Link == page
		}
		nodes = append(nodes, n)
	}
	return nodes
}

// IsExternal reports whether link is an absolute http/https URL, i.e. leaves
// the site instead of naming a local page.
func IsExternal(link string) bool {
	link = strings.TrimSpace(strings.ToLower(link))
	return strings.HasPrefix(link, "http://") || strings.HasPrefix(link, "https://")
}
