package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nurpe/outvoice/internal/config"
	"github.com/nurpe/outvoice/internal/layout"
	"github.com/nurpe/outvoice/internal/model"
)

type PDFGenerator interface {
	Generate(doc layout.Document) ([]byte, error)
}

type ExcelGenerator interface {
	Generate(proposal model.Proposal) ([]byte, error)
}

type ExportService struct {
	proposals     *ProposalService
	pdf           PDFGenerator
	excel         ExcelGenerator
	defaultFormat layout.PageFormat
	log           zerolog.Logger
}

func NewExportService(proposals *ProposalService, pdf PDFGenerator, excel ExcelGenerator, cfg *config.Config, log zerolog.Logger) *ExportService {
	return &ExportService{
		proposals:     proposals,
		pdf:           pdf,
		excel:         excel,
		defaultFormat: layout.ParseFormat(cfg.Export.DefaultFormat),
		log:           log,
	}
}

type ExportOptions struct {
	Filename    string
	Format      string
	Orientation string
}

type ExportResult struct {
	FileName    string
	Content     []byte
	ContentType string
}

// ExportPDF paginates the proposal and renders it to PDF. Export either
// yields a complete document or fails as a whole: any rendering failure
// surfaces as the single ErrExportFailed, never partial output.
func (s *ExportService) ExportPDF(ctx context.Context, principal model.Principal, id uuid.UUID, opts ExportOptions) (result *ExportResult, err error) {
	proposal, err := s.proposals.Get(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			s.log.Error().Interface("panic", r).Str("proposal_id", id.String()).Msg("pdf export panicked")
			result, err = nil, ErrExportFailed
		}
	}()

	format := s.defaultFormat
	if opts.Format != "" {
		format = layout.ParseFormat(opts.Format)
	}
	orientation := proposal.Orientation
	if opts.Orientation != "" {
		orientation = parseOrientation(opts.Orientation)
	}
	if orientation == "" {
		orientation = model.OrientationPortrait
	}

	// Export always works on a freshly recalculated snapshot.
	recomputePricing(proposal)

	geom := layout.NewGeometry(format, orientation)
	doc := layout.NewEngine(geom).Layout(*proposal)

	content, err := s.pdf.Generate(doc)
	if err != nil {
		s.log.Error().Err(err).Str("proposal_id", id.String()).Msg("pdf generation failed")
		return nil, ErrExportFailed
	}

	return &ExportResult{
		FileName:    buildFileName(opts.Filename, proposal.Title, ".pdf"),
		Content:     content,
		ContentType: "application/pdf",
	}, nil
}

// ExportExcel renders the proposal's pricing data as an XLSX workbook.
func (s *ExportService) ExportExcel(ctx context.Context, principal model.Principal, id uuid.UUID, opts ExportOptions) (*ExportResult, error) {
	proposal, err := s.proposals.Get(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	recomputePricing(proposal)

	content, err := s.excel.Generate(*proposal)
	if err != nil {
		s.log.Error().Err(err).Str("proposal_id", id.String()).Msg("workbook generation failed")
		return nil, ErrExportFailed
	}

	return &ExportResult{
		FileName:    buildFileName(opts.Filename, proposal.Title, ".xlsx"),
		Content:     content,
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	}, nil
}

// buildFileName picks the explicit filename when given, otherwise derives
// "{title}{ext}". Characters that break Content-Disposition or filesystems
// are replaced; the title itself is otherwise kept as-is.
func buildFileName(explicit, title, ext string) string {
	if explicit != "" {
		return sanitizeFileName(explicit)
	}
	base := strings.TrimSpace(title)
	if base == "" {
		base = "proposal"
	}
	return sanitizeFileName(base + ext)
}

func sanitizeFileName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r < 0x20, strings.ContainsRune(`/\:*?"<>|`, r):
			b.WriteByte('-')
		default:
			b.WriteRune(r)
		}
	}
	return strings.Trim(b.String(), " -")
}

func parseOrientation(raw string) model.Orientation {
	if strings.EqualFold(strings.TrimSpace(raw), string(model.OrientationLandscape)) {
		return model.OrientationLandscape
	}
	return model.OrientationPortrait
}
