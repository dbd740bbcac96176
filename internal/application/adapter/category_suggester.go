package adapter

import (
	"context"

	"github.com/pocketwatch/backend/internal/domain/entity"
)

// CategorySuggester is an optional AI-backed fallback consulted when the
// keyword classifier cannot place a title. Implementations must only return
// categories from the fixed set.
type CategorySuggester interface {
	// IsAvailable reports whether the suggester is configured and usable.
	IsAvailable() bool

	// Suggest returns a category for the given title.
	Suggest(ctx context.Context, title string) (entity.Category, error)
}
