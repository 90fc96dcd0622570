package http

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/istinmth/dobble-generator/internal/app"
	"github.com/istinmth/dobble-generator/internal/domain"
	"github.com/istinmth/dobble-generator/internal/ports"
)

// exportsPrefix is where the server mounts the exports directory; job
// artifact paths are rewritten to URLs under it.
const exportsPrefix = "/exports"

const maxUploadBytes = 10 << 20 // per icon file

type Handler struct {
	svc *app.GeneratorService
}

func NewHandler(svc *app.GeneratorService) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Register(e *echo.Echo) {
	e.GET("/healthz", h.Healthz)
	e.GET("/v1/params", h.Params)
	e.GET("/v1/layout", h.Layout)
	e.GET("/v1/sets", h.ListSets)
	e.POST("/v1/sets", h.CreateSet)
	e.DELETE("/v1/sets/:ref", h.DeleteSet)
	e.POST("/v1/generate", h.Generate)
	e.GET("/v1/jobs", h.ListJobs)
	e.GET("/v1/jobs/:id", h.GetJob)
	e.DELETE("/v1/jobs/:id", h.DeleteJob)
}

func (h *Handler) Healthz(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (h *Handler) Params(c echo.Context) error {
	n, err := strconv.Atoi(c.QueryParam("symbols"))
	if err != nil || n < 1 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "symbols must be a positive integer"})
	}
	params, err := h.svc.SolveParams(n)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, ParamsResp{
		Order:          params.Order,
		SymbolsPerCard: params.SymbolsPerCard,
		TotalCards:     params.TotalCards,
	})
}

func (h *Handler) Layout(c echo.Context) error {
	n, err := strconv.Atoi(c.QueryParam("n"))
	if err != nil || n < 1 || n > 100 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "n must be an integer between 1 and 100"})
	}
	mode := domain.ResolveLayoutMode(c.QueryParam("mode"))
	return c.JSON(http.StatusOK, LayoutResp{
		Mode:  string(mode),
		Slots: h.svc.Layout(n, string(mode)),
	})
}

func (h *Handler) ListSets(c echo.Context) error {
	sets, err := h.svc.ListSets(c.Request().Context())
	if err != nil {
		return mapError(c, err)
	}
	out := make([]SetResp, len(sets))
	for i, s := range sets {
		out[i] = toSetResp(s)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) CreateSet(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "expected multipart form with icon files"})
	}

	name := c.FormValue("name")
	if name == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "name is required"})
	}

	files := make(map[string][]byte)
	for _, headers := range form.File {
		for _, fh := range headers {
			if fh.Size > maxUploadBytes {
				return c.JSON(http.StatusBadRequest, ErrorResponse{Error: fh.Filename + " exceeds the 10MB limit"})
			}
			f, err := fh.Open()
			if err != nil {
				return mapError(c, err)
			}
			data, err := io.ReadAll(f)
			f.Close()
			if err != nil {
				return mapError(c, err)
			}
			files[fh.Filename] = data
		}
	}
	if len(files) == 0 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "at least one icon file is required"})
	}

	info, err := h.svc.CreateSet(c.Request().Context(), name, files)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusCreated, toSetResp(info))
}

func (h *Handler) DeleteSet(c echo.Context) error {
	if err := h.svc.DeleteSet(c.Request().Context(), c.Param("ref")); err != nil {
		return mapError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) Generate(c echo.Context) error {
	start := time.Now()

	var req GenerateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid JSON body"})
	}
	if req.NSymbols < 1 && req.SymbolsPerCard < 1 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "n_symbols or symbols_per_card is required"})
	}
	if req.NSymbols > 5000 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "n_symbols must be at most 5000"})
	}
	if req.SymbolsPerCard > 70 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "symbols_per_card must be at most 70"})
	}
	if req.CardSize != 0 && (req.CardSize < 100 || req.CardSize > 4000) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "card_size must be between 100 and 4000 pixels"})
	}
	if req.IconSet == "" {
		req.IconSet = "default:classic"
	}

	shuffle := true
	if req.Shuffle != nil {
		shuffle = *req.Shuffle
	}

	resp, err := h.svc.Generate(c.Request().Context(), app.GenerateRequest{
		NSymbols:       req.NSymbols,
		NCards:         req.NCards,
		SymbolsPerCard: req.SymbolsPerCard,
		IconSet:        req.IconSet,
		CardShape:      req.CardShape,
		CardSize:       req.CardSize,
		LayoutMode:     req.Layout,
		Shuffle:        shuffle,
		ExportPNG:      req.ExportPNG,
	})
	if err != nil {
		return mapError(c, err)
	}

	requestID, _ := c.Get("request_id").(string)

	return c.JSON(http.StatusCreated, GenerateResp{
		Job:          toJobResp(resp.Job),
		Order:        resp.Order,
		TotalSymbols: resp.TotalSymbols,
		Meta: MetaResp{
			RequestID: requestID,
			LatencyMS: time.Since(start).Milliseconds(),
		},
	})
}

func (h *Handler) ListJobs(c echo.Context) error {
	limit := 50
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 500 {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "limit must be an integer between 1 and 500"})
		}
		limit = parsed
	}

	jobs, err := h.svc.ListJobs(c.Request().Context(), limit)
	if err != nil {
		return mapError(c, err)
	}
	out := make([]JobResp, len(jobs))
	for i, j := range jobs {
		out[i] = toJobResp(j)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) GetJob(c echo.Context) error {
	job, err := h.svc.GetJob(c.Request().Context(), c.Param("id"))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, toJobResp(job))
}

func (h *Handler) DeleteJob(c echo.Context) error {
	if err := h.svc.DeleteJob(c.Request().Context(), c.Param("id")); err != nil {
		return mapError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func toSetResp(s ports.SetInfo) SetResp {
	out := SetResp{
		Ref:   s.Ref,
		Name:  s.Name,
		Count: s.Count,
	}
	if !s.CreatedAt.IsZero() {
		t := s.CreatedAt
		out.CreatedAt = &t
	}
	return out
}

func toJobResp(j ports.Job) JobResp {
	out := JobResp{
		ID:             j.ID,
		CreatedAt:      j.CreatedAt,
		NSymbols:       j.NSymbols,
		NCards:         j.NCards,
		SymbolsPerCard: j.SymbolsPerCard,
		IconSet:        j.IconSet,
		CardShape:      j.CardShape,
		CardSize:       j.CardSize,
		Layout:         j.Layout,
		PDFURL:         artifactURL(j.PDFPath),
	}
	for _, p := range j.PNGPaths {
		out.PNGURLs = append(out.PNGURLs, artifactURL(p))
	}
	return out
}

// artifactURL rewrites a filesystem artifact path into the URL the
// static exports route serves it under.
func artifactURL(path string) string {
	if path == "" {
		return ""
	}
	return exportsPrefix + "/" + filepath.Base(path)
}

func mapError(c echo.Context, err error) error {
	requestID, _ := c.Get("request_id").(string)

	var inv *domain.InvariantError
	switch {
	case errors.Is(err, domain.ErrSetNotFound), errors.Is(err, domain.ErrJobNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrInvalidSetRef),
		errors.Is(err, domain.ErrInsufficientIcons),
		errors.Is(err, domain.ErrNoValidOrder),
		errors.Is(err, domain.ErrInvalidOrder):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.As(err, &inv):
		slog.Error("deck verification failure",
			"request_id", requestID,
			"card_a", inv.CardA,
			"card_b", inv.CardB,
			"shared", inv.Shared)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "deck verification failure"})
	default:
		slog.Error("internal error", "request_id", requestID, "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
