package ports

import (
	"context"
	"image"
	"time"
)

// SetInfo describes one icon set without loading its images.
type SetInfo struct {
	Ref       string    // namespaced reference, e.g. "default:animals"
	Name      string    // display name
	Count     int       // number of usable icons
	CreatedAt time.Time // zero when the set has no metadata
}

// Icon is one decoded, preprocessed symbol image.
type Icon struct {
	Name  string
	Image image.Image
}

// IconStore provides access to icon sets.
type IconStore interface {
	// ListSets returns every known set across all namespaces.
	ListSets(ctx context.Context) ([]SetInfo, error)
	// LoadSet decodes and preprocesses every icon in the referenced
	// set, in a stable order.
	LoadSet(ctx context.Context, ref string) ([]Icon, error)
	// CreateSet stores a new user set from raw encoded images keyed by
	// filename.
	CreateSet(ctx context.Context, name string, files map[string][]byte) (SetInfo, error)
	// DeleteSet removes a user set. Default sets cannot be deleted.
	DeleteSet(ctx context.Context, ref string) error
}
