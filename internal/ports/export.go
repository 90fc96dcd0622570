package ports

import (
	"context"

	"github.com/istinmth/dobble-generator/internal/domain"
)

// CardShape selects the card face drawn by the exporter.
type CardShape string

const (
	ShapeCircle CardShape = "circle"
	ShapeSquare CardShape = "square"
)

// ResolveCardShape maps a raw shape string to a CardShape, defaulting
// to circle.
func ResolveCardShape(raw string) CardShape {
	if raw == string(ShapeSquare) {
		return ShapeSquare
	}
	return ShapeCircle
}

// ExportRequest carries everything needed to render one deck to disk.
type ExportRequest struct {
	JobID     string
	Deck      domain.Deck
	Icons     []Icon // one per symbol id, indexed by symbol
	Shape     CardShape
	Mode      domain.LayoutMode
	Pixels    int // card side length; 0 uses the exporter default
	ExportPNG bool
}

// ExportResult lists the artifacts written for a job.
type ExportResult struct {
	PDFPath  string
	PNGPaths []string
}

// Exporter renders a deck into card images and a printable PDF.
type Exporter interface {
	Export(ctx context.Context, req ExportRequest) (ExportResult, error)
	// Remove deletes the artifacts a previous Export produced.
	Remove(ctx context.Context, res ExportResult) error
}
