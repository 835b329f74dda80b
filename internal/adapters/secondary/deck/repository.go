package deck

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/fredcamaral/webdeck/internal/domain/entities"
	"github.com/fredcamaral/webdeck/internal/domain/ports"
)

// Repository loads decks from disk, choosing a parser by file extension:
// .yaml/.yml deck files or .md/.markdown link lists.
type Repository struct {
	sanitizer *bluemonday.Policy
	titler    cases.Caser
}

// NewRepository creates a deck repository
func NewRepository() *Repository {
	return &Repository{
		// Titles come from user-edited files and end up in stage overlays;
		// strip every tag rather than reason about which are safe.
		sanitizer: bluemonday.StrictPolicy(),
		titler:    cases.Title(language.English),
	}
}

// Load reads, parses, and validates the deck at path
func (r *Repository) Load(ctx context.Context, path string) (*entities.Deck, error) {
	data, err := os.ReadFile(path) // #nosec G304 - path is the user's deck file
	if err != nil {
		return nil, fmt.Errorf("reading deck %s: %w", path, err)
	}

	var deck *entities.Deck
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		deck, err = parseYAML(data)
	case ".md", ".markdown":
		deck, err = r.parseMarkdown(data)
	default:
		return nil, fmt.Errorf("unsupported deck format %q (want .yaml, .yml, .md, or .markdown)", filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("parsing deck %s: %w", path, err)
	}

	r.polishTitles(deck)

	if err := deck.Validate(); err != nil {
		return nil, fmt.Errorf("invalid deck %s: %w", path, err)
	}

	return deck, nil
}

// parseYAML decodes a YAML deck file
func parseYAML(data []byte) (*entities.Deck, error) {
	var deck entities.Deck
	if err := yaml.Unmarshal(data, &deck); err != nil {
		return nil, fmt.Errorf("decoding YAML: %w", err)
	}
	return &deck, nil
}

// polishTitles sanitizes slide titles and derives one from the URL host when
// a slide has none
func (r *Repository) polishTitles(deck *entities.Deck) {
	deck.Title = strings.TrimSpace(r.sanitizer.Sanitize(deck.Title))

	for i := range deck.Slides {
		slide := &deck.Slides[i]
		slide.Title = strings.TrimSpace(r.sanitizer.Sanitize(slide.Title))
		if slide.Title == "" {
			slide.Title = r.hostTitle(slide.URL)
		}
	}
}

// hostTitle derives a display title from a URL: the first host label,
// title-cased ("https://docs.example.com/x" becomes "Docs")
func (r *Repository) hostTitle(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return ""
	}

	host := strings.TrimPrefix(u.Hostname(), "www.")
	label, _, _ := strings.Cut(host, ".")
	return r.titler.String(label)
}

var _ ports.DeckRepository = (*Repository)(nil)
