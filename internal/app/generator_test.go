package app_test

import (
	"context"
	"errors"
	"fmt"
	"image"
	"testing"

	"github.com/istinmth/dobble-generator/internal/app"
	"github.com/istinmth/dobble-generator/internal/domain"
	"github.com/istinmth/dobble-generator/internal/ports"
)

type mockIconStore struct {
	sets  []ports.SetInfo
	icons []ports.Icon
	err   error
}

func (m *mockIconStore) ListSets(_ context.Context) ([]ports.SetInfo, error) {
	return m.sets, m.err
}

func (m *mockIconStore) LoadSet(_ context.Context, _ string) ([]ports.Icon, error) {
	return m.icons, m.err
}

func (m *mockIconStore) CreateSet(_ context.Context, name string, _ map[string][]byte) (ports.SetInfo, error) {
	return ports.SetInfo{Ref: "user:" + name, Name: name}, m.err
}

func (m *mockIconStore) DeleteSet(_ context.Context, _ string) error {
	return m.err
}

type mockJobStore struct {
	saved   []ports.Job
	deleted []string
	job     ports.Job
	err     error
}

func (m *mockJobStore) Save(_ context.Context, job ports.Job) error {
	m.saved = append(m.saved, job)
	return m.err
}

func (m *mockJobStore) Get(_ context.Context, _ string) (ports.Job, error) {
	return m.job, m.err
}

func (m *mockJobStore) List(_ context.Context, _ int) ([]ports.Job, error) {
	return m.saved, m.err
}

func (m *mockJobStore) Delete(_ context.Context, id string) error {
	m.deleted = append(m.deleted, id)
	return m.err
}

type mockExporter struct {
	last    ports.ExportRequest
	removed []ports.ExportResult
	err     error
}

func (m *mockExporter) Export(_ context.Context, req ports.ExportRequest) (ports.ExportResult, error) {
	m.last = req
	if m.err != nil {
		return ports.ExportResult{}, m.err
	}
	return ports.ExportResult{PDFPath: req.JobID + ".pdf"}, nil
}

func (m *mockExporter) Remove(_ context.Context, res ports.ExportResult) error {
	m.removed = append(m.removed, res)
	return nil
}

func testIcons(n int) []ports.Icon {
	icons := make([]ports.Icon, n)
	for i := range icons {
		icons[i] = ports.Icon{
			Name:  fmt.Sprintf("icon_%03d", i),
			Image: image.NewNRGBA(image.Rect(0, 0, 4, 4)),
		}
	}
	return icons
}

func newService(icons *mockIconStore, jobs *mockJobStore, exp *mockExporter) *app.GeneratorService {
	return app.NewGeneratorService(icons, jobs, exp, domain.NewPacker(), nil)
}

func TestGenerate_HappyPath(t *testing.T) {
	icons := &mockIconStore{icons: testIcons(7)}
	jobs := &mockJobStore{}
	exp := &mockExporter{}
	svc := newService(icons, jobs, exp)

	resp, err := svc.Generate(context.Background(), app.GenerateRequest{
		NSymbols: 7,
		IconSet:  "default:test",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Job.NCards != 7 || resp.Job.SymbolsPerCard != 3 {
		t.Errorf("job summary %+v, want 7 cards of 3 symbols", resp.Job)
	}
	if resp.TotalSymbols != 7 || resp.Order != 2 {
		t.Errorf("got %d symbols at order %d, want 7 at 2", resp.TotalSymbols, resp.Order)
	}
	if len(jobs.saved) != 1 {
		t.Fatalf("saved %d jobs, want 1", len(jobs.saved))
	}
	if jobs.saved[0].PDFPath != jobs.saved[0].ID+".pdf" {
		t.Errorf("job PDF path %q not wired from exporter", jobs.saved[0].PDFPath)
	}
	if len(exp.last.Icons) != 7 {
		t.Errorf("exporter got %d icons, want 7", len(exp.last.Icons))
	}
}

func TestGenerate_SymbolsPerCardOverride(t *testing.T) {
	icons := &mockIconStore{icons: testIcons(13)}
	svc := newService(icons, &mockJobStore{}, &mockExporter{})

	// 4 symbols per card means order 3, hence 13 cards and 13 symbols,
	// regardless of NSymbols.
	resp, err := svc.Generate(context.Background(), app.GenerateRequest{
		NSymbols:       100,
		SymbolsPerCard: 4,
		IconSet:        "default:test",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Job.SymbolsPerCard != 4 || resp.Job.NCards != 13 {
		t.Errorf("job summary %+v, want 13 cards of 4 symbols", resp.Job)
	}
}

func TestGenerate_CardLimit(t *testing.T) {
	icons := &mockIconStore{icons: testIcons(13)}
	svc := newService(icons, &mockJobStore{}, &mockExporter{})

	resp, err := svc.Generate(context.Background(), app.GenerateRequest{
		NSymbols: 13,
		NCards:   5,
		IconSet:  "default:test",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Job.NCards != 5 {
		t.Errorf("got %d cards, want 5", resp.Job.NCards)
	}
}

func TestGenerate_InsufficientIcons(t *testing.T) {
	icons := &mockIconStore{icons: testIcons(3)}
	svc := newService(icons, &mockJobStore{}, &mockExporter{})

	_, err := svc.Generate(context.Background(), app.GenerateRequest{
		NSymbols: 7,
		IconSet:  "default:test",
	})
	if !errors.Is(err, domain.ErrInsufficientIcons) {
		t.Fatalf("got %v, want ErrInsufficientIcons", err)
	}
}

func TestGenerate_SetNotFound(t *testing.T) {
	icons := &mockIconStore{err: domain.ErrSetNotFound}
	svc := newService(icons, &mockJobStore{}, &mockExporter{})

	_, err := svc.Generate(context.Background(), app.GenerateRequest{
		NSymbols: 7,
		IconSet:  "default:missing",
	})
	if !errors.Is(err, domain.ErrSetNotFound) {
		t.Fatalf("got %v, want ErrSetNotFound", err)
	}
}

func TestDeleteJob_RemovesArtifactsFirst(t *testing.T) {
	jobs := &mockJobStore{job: ports.Job{
		ID:       "abc",
		PDFPath:  "abc.pdf",
		PNGPaths: []string{"abc_card_0.png"},
	}}
	exp := &mockExporter{}
	svc := newService(&mockIconStore{}, jobs, exp)

	if err := svc.DeleteJob(context.Background(), "abc"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(exp.removed) != 1 || exp.removed[0].PDFPath != "abc.pdf" {
		t.Errorf("artifacts not removed: %+v", exp.removed)
	}
	if len(jobs.deleted) != 1 || jobs.deleted[0] != "abc" {
		t.Errorf("metadata not deleted: %v", jobs.deleted)
	}
}

func TestLayout_ModeFallback(t *testing.T) {
	svc := newService(&mockIconStore{}, &mockJobStore{}, &mockExporter{})

	if got := svc.Layout(8, "circle"); len(got) != 8 {
		t.Errorf("circle layout has %d slots, want 8", len(got))
	}
	if got := svc.Layout(9, "grid"); len(got) != 9 {
		t.Errorf("grid layout has %d slots, want 9", len(got))
	}
}
