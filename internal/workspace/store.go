package workspace

import "context"

// Store is the backend the palette talks to. Implementations must be safe
// for concurrent use: the catalog is loaded from a background command while
// the UI keeps running.
type Store interface {
	// Snapshot loads everything the catalog needs for the current project.
	Snapshot(ctx context.Context) (Snapshot, error)

	// CreateProject creates a project and makes it current.
	CreateProject(ctx context.Context, title string) (string, error)
	SaveCard(ctx context.Context, card Card) (Card, error)
	SaveBlueprint(ctx context.Context, bp Blueprint) (Blueprint, error)
	SaveChapter(ctx context.Context, ch Chapter) (Chapter, error)

	// OpenChapter makes id the chapter that pin operations apply to.
	OpenChapter(ctx context.Context, id string) error
	// Chapter returns the open chapter, or ErrNoChapter.
	Chapter(ctx context.Context) (Chapter, error)

	PinTechnique(ctx context.Context, item PinnedItem) error
	UnpinTechnique(ctx context.Context, id string) error
	PinCategory(ctx context.Context, item PinnedItem) error
	UnpinCategory(ctx context.Context, id string) error
}
