package ports

import (
	"context"

	"github.com/fredcamaral/webdeck/internal/domain/entities"
)

// DeckRepository loads decks from storage
type DeckRepository interface {
	// Load reads and validates the deck at path
	Load(ctx context.Context, path string) (*entities.Deck, error)
}
