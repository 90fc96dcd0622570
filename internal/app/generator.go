package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/istinmth/dobble-generator/internal/domain"
	"github.com/istinmth/dobble-generator/internal/ports"
)

// GenerateRequest is the application-level input (no HTTP types).
type GenerateRequest struct {
	NSymbols       int
	NCards         int // 0 keeps every card the plane yields
	SymbolsPerCard int // when > 0, overrides NSymbols
	IconSet        string
	CardShape      string
	CardSize       int // rendered card side in pixels; 0 uses the exporter default
	LayoutMode     string
	Shuffle        bool
	ExportPNG      bool
}

// GenerateResponse is the application-level output.
type GenerateResponse struct {
	Job          ports.Job
	TotalSymbols int
	Order        int
}

// GeneratorService orchestrates deck math, icon lookup, rendering and
// job persistence.
type GeneratorService struct {
	icons    ports.IconStore
	jobs     ports.JobStore
	exporter ports.Exporter
	packer   *domain.Packer
	rng      domain.RNG
}

func NewGeneratorService(icons ports.IconStore, jobs ports.JobStore, exporter ports.Exporter, packer *domain.Packer, rng domain.RNG) *GeneratorService {
	return &GeneratorService{
		icons:    icons,
		jobs:     jobs,
		exporter: exporter,
		packer:   packer,
		rng:      rng,
	}
}

// Generate runs the full pipeline: deck construction, icon assignment,
// rendering, and job persistence.
func (s *GeneratorService) Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, error) {
	nSymbols := req.NSymbols
	if req.SymbolsPerCard > 0 {
		// A card with k symbols needs a plane of order k-1, which in
		// turn carries (k-1)²+(k-1)+1 symbols.
		order := req.SymbolsPerCard - 1
		nSymbols = order*order + order + 1
	}

	deck, err := domain.GenerateDeck(nSymbols, req.Shuffle, s.rng)
	if err != nil {
		return GenerateResponse{}, fmt.Errorf("generate deck: %w", err)
	}

	if req.NCards > 0 && req.NCards < len(deck.Cards) {
		deck, err = domain.LimitDeck(deck, req.NCards)
		if err != nil {
			return GenerateResponse{}, fmt.Errorf("limit deck: %w", err)
		}
	}

	icons, err := s.icons.LoadSet(ctx, req.IconSet)
	if err != nil {
		return GenerateResponse{}, fmt.Errorf("load icon set: %w", err)
	}
	assigned, err := assignIcons(deck, icons, req.Shuffle, s.rng)
	if err != nil {
		return GenerateResponse{}, err
	}

	jobID := uuid.NewString()
	res, err := s.exporter.Export(ctx, ports.ExportRequest{
		JobID:     jobID,
		Deck:      deck,
		Icons:     assigned,
		Shape:     ports.ResolveCardShape(req.CardShape),
		Mode:      domain.ResolveLayoutMode(req.LayoutMode),
		Pixels:    req.CardSize,
		ExportPNG: req.ExportPNG,
	})
	if err != nil {
		return GenerateResponse{}, fmt.Errorf("export deck: %w", err)
	}

	job := ports.Job{
		ID:             jobID,
		CreatedAt:      time.Now().UTC(),
		NSymbols:       deck.TotalSymbols,
		NCards:         len(deck.Cards),
		SymbolsPerCard: deck.Params.SymbolsPerCard,
		IconSet:        req.IconSet,
		CardShape:      string(ports.ResolveCardShape(req.CardShape)),
		CardSize:       req.CardSize,
		Layout:         string(domain.ResolveLayoutMode(req.LayoutMode)),
		PDFPath:        res.PDFPath,
		PNGPaths:       res.PNGPaths,
	}
	if err := s.jobs.Save(ctx, job); err != nil {
		return GenerateResponse{}, fmt.Errorf("save job: %w", err)
	}

	return GenerateResponse{
		Job:          job,
		TotalSymbols: deck.TotalSymbols,
		Order:        deck.Params.Order,
	}, nil
}

// Layout exposes slot packing for a single card face.
func (s *GeneratorService) Layout(n int, mode string) domain.Layout {
	return s.packer.Pack(n, domain.ResolveLayoutMode(mode))
}

// SolveParams previews the plane a symbol count would produce.
func (s *GeneratorService) SolveParams(nSymbols int) (domain.PlaneParams, error) {
	return domain.SolveParams(nSymbols)
}

func (s *GeneratorService) ListSets(ctx context.Context) ([]ports.SetInfo, error) {
	return s.icons.ListSets(ctx)
}

func (s *GeneratorService) CreateSet(ctx context.Context, name string, files map[string][]byte) (ports.SetInfo, error) {
	return s.icons.CreateSet(ctx, name, files)
}

func (s *GeneratorService) DeleteSet(ctx context.Context, ref string) error {
	return s.icons.DeleteSet(ctx, ref)
}

func (s *GeneratorService) GetJob(ctx context.Context, id string) (ports.Job, error) {
	return s.jobs.Get(ctx, id)
}

func (s *GeneratorService) ListJobs(ctx context.Context, limit int) ([]ports.Job, error) {
	return s.jobs.List(ctx, limit)
}

// DeleteJob removes a job's artifacts and then its metadata.
func (s *GeneratorService) DeleteJob(ctx context.Context, id string) error {
	job, err := s.jobs.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.exporter.Remove(ctx, ports.ExportResult{PDFPath: job.PDFPath, PNGPaths: job.PNGPaths}); err != nil {
		return fmt.Errorf("remove artifacts: %w", err)
	}
	return s.jobs.Delete(ctx, id)
}

// assignIcons maps each symbol id to one icon. Symbols never share an
// icon: a set with fewer icons than symbols is rejected outright.
func assignIcons(deck domain.Deck, icons []ports.Icon, shuffle bool, rng domain.RNG) ([]ports.Icon, error) {
	if len(icons) < deck.TotalSymbols {
		return nil, fmt.Errorf("%w: need %d, have %d", domain.ErrInsufficientIcons, deck.TotalSymbols, len(icons))
	}

	idx := make([]int, len(icons))
	for i := range idx {
		idx[i] = i
	}
	if shuffle && rng != nil {
		for i := len(idx) - 1; i > 0; i-- {
			j := rng.Intn(i + 1)
			idx[i], idx[j] = idx[j], idx[i]
		}
	}

	out := make([]ports.Icon, deck.TotalSymbols)
	for sym := 0; sym < deck.TotalSymbols; sym++ {
		out[sym] = icons[idx[sym]]
	}
	return out, nil
}
