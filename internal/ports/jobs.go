package ports

import (
	"context"
	"time"
)

// Job records one completed generation run and its artifacts.
type Job struct {
	ID             string    `json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	NSymbols       int       `json:"n_symbols"`
	NCards         int       `json:"n_cards"`
	SymbolsPerCard int       `json:"symbols_per_card"`
	IconSet        string    `json:"icon_set"`
	CardShape      string    `json:"card_shape"`
	CardSize       int       `json:"card_size"`
	Layout         string    `json:"layout"`
	PDFPath        string    `json:"pdf_path"`
	PNGPaths       []string  `json:"png_paths,omitempty"`
}

// JobStore persists job metadata.
type JobStore interface {
	Save(ctx context.Context, job Job) error
	Get(ctx context.Context, id string) (Job, error)
	// List returns up to limit jobs, newest first.
	List(ctx context.Context, limit int) ([]Job, error)
	// Delete removes job metadata only; artifact cleanup belongs to the
	// exporter.
	Delete(ctx context.Context, id string) error
}
