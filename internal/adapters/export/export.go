// Package export renders decks into printable artifacts: one PNG per
// card face and an A4 PDF sheet, written under a shared exports
// directory.
package export

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/istinmth/dobble-generator/internal/domain"
	"github.com/istinmth/dobble-generator/internal/ports"
)

// Renderer implements ports.Exporter on top of the local filesystem.
type Renderer struct {
	dir    string
	pixels int
	packer *domain.Packer
	rng    domain.RNG
	logger *slog.Logger
}

// NewRenderer creates the exports directory if needed. pixels is the
// default side length of a rendered card face; requests may override
// it. rng drives per-card jitter and may be nil.
func NewRenderer(dir string, pixels int, packer *domain.Packer, rng domain.RNG, logger *slog.Logger) (*Renderer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create exports dir: %w", err)
	}
	return &Renderer{
		dir:    dir,
		pixels: pixels,
		packer: packer,
		rng:    rng,
		logger: logger,
	}, nil
}

// Export rasterizes every card in the deck, always producing the PDF
// sheet and, when requested, one PNG per card.
func (r *Renderer) Export(ctx context.Context, req ports.ExportRequest) (ports.ExportResult, error) {
	var res ports.ExportResult

	pixels := r.pixels
	if req.Pixels > 0 {
		pixels = req.Pixels
	}

	cards := make([]*image.NRGBA, 0, len(req.Deck.Cards))
	for i, symbols := range req.Deck.Cards {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		layout := r.packer.Pack(len(symbols), req.Mode)
		if layout == nil {
			return res, fmt.Errorf("no layout for %d symbols on card %d", len(symbols), i)
		}
		cards = append(cards, renderCard(symbols, req.Icons, layout, req.Shape, pixels, r.rng))
	}

	pdfPath := filepath.Join(r.dir, req.JobID+".pdf")
	if err := writePDF(pdfPath, cards); err != nil {
		return res, fmt.Errorf("write pdf: %w", err)
	}
	res.PDFPath = pdfPath

	if req.ExportPNG {
		for i, card := range cards {
			p := filepath.Join(r.dir, fmt.Sprintf("%s_card_%d.png", req.JobID, i+1))
			if err := writePNG(p, card); err != nil {
				return res, fmt.Errorf("write card %d: %w", i+1, err)
			}
			res.PNGPaths = append(res.PNGPaths, p)
		}
	}

	r.logger.Info("deck exported",
		"job_id", req.JobID,
		"cards", len(cards),
		"pngs", len(res.PNGPaths))
	return res, nil
}

// Remove deletes the artifacts a previous Export produced. Missing
// files are not an error; a job may have been exported without PNGs.
func (r *Renderer) Remove(ctx context.Context, res ports.ExportResult) error {
	paths := append([]string{res.PDFPath}, res.PNGPaths...)
	for _, p := range paths {
		if p == "" {
			continue
		}
		if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("remove artifact %s: %w", filepath.Base(p), err)
		}
	}
	return nil
}

func writePNG(path string, img *image.NRGBA) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
