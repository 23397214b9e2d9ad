package nav

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type stubSource struct {
	docs  map[string][]byte
	calls []string
}

func (s *stubSource) Resource(_ context.Context, relPath string) ([]byte, error) {
	s.calls = append(s.calls, relPath)
	raw, ok := s.docs[relPath]
	if !ok {
		return nil, errors.New("missing")
	}
	return raw, nil
}

const siDoc = `{"name":"සභාව","payment":"ගෙවීම්","nav":[{"text":"මුල් පිටුව","link":"home"}]}`

func TestStoreLoadsOncePerLanguage(t *testing.T) {
	src := &stubSource{docs: map[string][]byte{
		"static/lang/si.json": []byte(siDoc),
	}}
	store := NewStore(src, "si")

	d1, err := store.Get(context.Background(), "si")
	require.NoError(t, err)
	require.Equal(t, "සභාව", d1.Name)

	d2, err := store.Get(context.Background(), "si")
	require.NoError(t, err)
	require.Same(t, d1, d2)
	require.Len(t, src.calls, 1, "second Get must be served from cache")
}

func TestStoreFallsBackExactlyOnce(t *testing.T) {
	src := &stubSource{docs: map[string][]byte{
		"static/lang/si.json": []byte(siDoc),
	}}
	store := NewStore(src, "si")

	doc, err := store.Get(context.Background(), "en")
	require.NoError(t, err)
	require.Equal(t, "සභාව", doc.Name, "fallback document should be served")
	require.Equal(t, []string{"static/lang/en.json", "static/lang/si.json"}, src.calls)

	// the fallback result is cached under the requested language
	_, err = store.Get(context.Background(), "en")
	require.NoError(t, err)
	require.Len(t, src.calls, 2)
}

func TestStoreFallbackFailureNotEscalated(t *testing.T) {
	src := &stubSource{docs: map[string][]byte{}}
	store := NewStore(src, "si")

	_, err := store.Get(context.Background(), "ta")
	require.Error(t, err)
	require.Equal(t, []string{"static/lang/ta.json", "static/lang/si.json"}, src.calls)
}

func TestBuildClassifiesLinks(t *testing.T) {
	items := []Item{
		{Text: "Home", Link: "home"},
		{Text: "Portal", Link: "https://www.gov.lk"},
		{Text: "Services", SubMenu: []Item{
			{Text: "Certificates", Link: "services"},
			{Text: "Taxes", SubMenu: []Item{
				{Text: "Rates", Link: "rates"},
			}},
		}},
	}

	nodes := Build(items, "rates", "ta")
	require.Len(t, nodes, 3)

	home := nodes[0]
	require.Equal(t, "/?lang=ta&page=home", home.Href)
	require.Equal(t, "/page?lang=ta&page=home", home.FragHref)
	require.False(t, home.External)
	require.False(t, home.Active)

	portal := nodes[1]
	require.True(t, portal.External)
	require.Equal(t, "https://www.gov.lk", portal.Href)
	require.Empty(t, portal.FragHref)

	services := nodes[2]
	require.Len(t, services.Children, 2)
	require.True(t, services.Active, "active state bubbles up through submenus")
	taxes := services.Children[1]
	require.Len(t, taxes.Children, 1)
	require.True(t, taxes.Children[0].Active)
}

func TestBuildItemWithoutSubMenuIsLeaf(t *testing.T) {
	nodes := Build([]Item{{Text: "About", Link: "about"}}, "about", "si")
	require.Len(t, nodes, 1)
	require.Empty(t, nodes[0].Children)
	require.True(t, nodes[0].Active)
}

func TestIsExternal(t *testing.T) {
	require.True(t, IsExternal("https://example.org"))
	require.True(t, IsExternal("HTTP://example.org"))
	require.False(t, IsExternal("about"))
	require.False(t, IsExternal("pages/about"))
	require.False(t, IsExternal(""))
}
