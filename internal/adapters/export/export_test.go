package export

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/istinmth/dobble-generator/internal/domain"
	"github.com/istinmth/dobble-generator/internal/ports"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func testIcons(n int) []ports.Icon {
	icons := make([]ports.Icon, n)
	for i := range icons {
		img := image.NewNRGBA(image.Rect(0, 0, 40, 40))
		c := color.NRGBA{R: uint8(40 * i), G: 80, B: 120, A: 255}
		for y := 0; y < 40; y++ {
			for x := 0; x < 40; x++ {
				img.SetNRGBA(x, y, c)
			}
		}
		icons[i] = ports.Icon{Name: fmt.Sprintf("icon-%d", i), Image: img}
	}
	return icons
}

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer(t.TempDir(), 200, domain.NewPacker(), nil, testLogger())
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	return r
}

func testDeck(t *testing.T) domain.Deck {
	t.Helper()
	deck, err := domain.GenerateDeck(7, false, nil)
	if err != nil {
		t.Fatalf("GenerateDeck: %v", err)
	}
	return deck
}

func TestExportWritesPDFAndPNGs(t *testing.T) {
	r := newTestRenderer(t)
	deck := testDeck(t)

	res, err := r.Export(context.Background(), ports.ExportRequest{
		JobID:     "job-1",
		Deck:      deck,
		Icons:     testIcons(deck.TotalSymbols),
		Shape:     ports.ShapeCircle,
		Mode:      domain.LayoutCircle,
		ExportPNG: true,
	})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	if filepath.Base(res.PDFPath) != "job-1.pdf" {
		t.Errorf("PDFPath = %q, want job-1.pdf", res.PDFPath)
	}
	info, err := os.Stat(res.PDFPath)
	if err != nil {
		t.Fatalf("stat pdf: %v", err)
	}
	if info.Size() == 0 {
		t.Error("pdf is empty")
	}

	if len(res.PNGPaths) != len(deck.Cards) {
		t.Fatalf("got %d pngs, want %d", len(res.PNGPaths), len(deck.Cards))
	}
	f, err := os.Open(res.PNGPaths[0])
	if err != nil {
		t.Fatalf("open png: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if img.Bounds().Dx() != 200 || img.Bounds().Dy() != 200 {
		t.Errorf("card size = %v, want 200x200", img.Bounds())
	}
}

func TestExportPDFOnly(t *testing.T) {
	r := newTestRenderer(t)
	deck := testDeck(t)

	res, err := r.Export(context.Background(), ports.ExportRequest{
		JobID: "job-2",
		Deck:  deck,
		Icons: testIcons(deck.TotalSymbols),
		Shape: ports.ShapeSquare,
		Mode:  domain.LayoutGrid,
	})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if len(res.PNGPaths) != 0 {
		t.Errorf("got %d pngs, want none", len(res.PNGPaths))
	}
}

func TestExportPixelOverride(t *testing.T) {
	r := newTestRenderer(t)
	deck := testDeck(t)

	res, err := r.Export(context.Background(), ports.ExportRequest{
		JobID:     "job-5",
		Deck:      deck,
		Icons:     testIcons(deck.TotalSymbols),
		Shape:     ports.ShapeCircle,
		Mode:      domain.LayoutCircle,
		Pixels:    120,
		ExportPNG: true,
	})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	f, err := os.Open(res.PNGPaths[0])
	if err != nil {
		t.Fatalf("open png: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if img.Bounds().Dx() != 120 {
		t.Errorf("card size = %d, want the requested 120", img.Bounds().Dx())
	}
}

func TestExportCanceledContext(t *testing.T) {
	r := newTestRenderer(t)
	deck := testDeck(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.Export(ctx, ports.ExportRequest{
		JobID: "job-3",
		Deck:  deck,
		Icons: testIcons(deck.TotalSymbols),
		Shape: ports.ShapeCircle,
		Mode:  domain.LayoutCircle,
	}); err == nil {
		t.Fatal("expected error from canceled context")
	}
}

func TestRemoveDeletesArtifacts(t *testing.T) {
	r := newTestRenderer(t)
	deck := testDeck(t)

	res, err := r.Export(context.Background(), ports.ExportRequest{
		JobID:     "job-4",
		Deck:      deck,
		Icons:     testIcons(deck.TotalSymbols),
		Shape:     ports.ShapeCircle,
		Mode:      domain.LayoutCircle,
		ExportPNG: true,
	})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	if err := r.Remove(context.Background(), res); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := os.Stat(res.PDFPath); !os.IsNotExist(err) {
		t.Errorf("pdf still present after Remove: %v", err)
	}
	for _, p := range res.PNGPaths {
		if _, err := os.Stat(p); !os.IsNotExist(err) {
			t.Errorf("png %s still present after Remove", filepath.Base(p))
		}
	}

	// Removing twice is fine, the files are simply gone.
	if err := r.Remove(context.Background(), res); err != nil {
		t.Fatalf("second Remove: %v", err)
	}
}

func TestRenderCardCircleMasksCorners(t *testing.T) {
	icons := testIcons(3)
	layout := domain.NewPacker().Pack(3, domain.LayoutCircle)
	img := renderCard([]int{0, 1, 2}, icons, layout, ports.ShapeCircle, 200, nil)

	corner := img.NRGBAAt(1, 1)
	if corner != cardBackground {
		t.Errorf("corner pixel = %v, want background after circle clip", corner)
	}
}

func TestRenderCardSquareBorder(t *testing.T) {
	icons := testIcons(3)
	layout := domain.NewPacker().Pack(3, domain.LayoutGrid)
	img := renderCard([]int{0, 1, 2}, icons, layout, ports.ShapeSquare, 200, nil)

	if got := img.NRGBAAt(1, 1); got != cardBorder {
		t.Errorf("edge pixel = %v, want border", got)
	}
	if got := img.NRGBAAt(100, 100); got == cardBorder {
		t.Error("center pixel painted with border color")
	}
}
