package http

import (
	"time"

	"github.com/istinmth/dobble-generator/internal/domain"
)

// GenerateReq is the JSON body for POST /v1/generate.
type GenerateReq struct {
	NSymbols       int    `json:"n_symbols"`
	NCards         int    `json:"n_cards"`
	SymbolsPerCard int    `json:"symbols_per_card"`
	IconSet        string `json:"icon_set"`
	CardShape      string `json:"card_shape"`
	CardSize       int    `json:"card_size"`
	Layout         string `json:"layout"`
	Shuffle        *bool  `json:"shuffle"`
	ExportPNG      bool   `json:"export_png"`
}

// GenerateResp is returned by POST /v1/generate.
type GenerateResp struct {
	Job          JobResp  `json:"job"`
	Order        int      `json:"order"`
	TotalSymbols int      `json:"total_symbols"`
	Meta         MetaResp `json:"meta"`
}

// JobResp is the JSON shape of one generation job.
type JobResp struct {
	ID             string    `json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	NSymbols       int       `json:"n_symbols"`
	NCards         int       `json:"n_cards"`
	SymbolsPerCard int       `json:"symbols_per_card"`
	IconSet        string    `json:"icon_set"`
	CardShape      string    `json:"card_shape"`
	CardSize       int       `json:"card_size"`
	Layout         string    `json:"layout"`
	PDFURL         string    `json:"pdf_url"`
	PNGURLs        []string  `json:"png_urls,omitempty"`
}

// SetResp describes one icon set.
type SetResp struct {
	Ref       string     `json:"ref"`
	Name      string     `json:"name"`
	Count     int        `json:"count"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// ParamsResp previews the projective plane behind a symbol count.
type ParamsResp struct {
	Order          int `json:"order"`
	SymbolsPerCard int `json:"symbols_per_card"`
	TotalCards     int `json:"total_cards"`
}

// LayoutResp is returned by GET /v1/layout.
type LayoutResp struct {
	Mode  string        `json:"mode"`
	Slots []domain.Slot `json:"slots"`
}

type MetaResp struct {
	RequestID string `json:"request_id"`
	LatencyMS int64  `json:"latency_ms"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
