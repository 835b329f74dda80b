package deck

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/fredcamaral/webdeck/internal/domain/entities"
)

// parseMarkdown builds a deck from a markdown document: every link becomes a
// slide in document order, with the link text as its title. The first
// top-level heading, if any, becomes the deck title. This lets people keep a
// deck as the same bookmark list they would write anyway.
func (r *Repository) parseMarkdown(data []byte) (*entities.Deck, error) {
	doc := goldmark.New().Parser().Parse(text.NewReader(data))

	deck := &entities.Deck{}

	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading:
			if node.Level == 1 && deck.Title == "" {
				deck.Title = strings.TrimSpace(string(node.Text(data)))
			}

		case *ast.Link:
			deck.Slides = append(deck.Slides, entities.Slide{
				URL:   string(node.Destination),
				Title: strings.TrimSpace(string(node.Text(data))),
			})
			return ast.WalkSkipChildren, nil

		case *ast.AutoLink:
			deck.Slides = append(deck.Slides, entities.Slide{
				URL: string(node.URL(data)),
			})
		}

		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking markdown: %w", err)
	}

	return deck, nil
}
