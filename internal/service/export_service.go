package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/Jain-Tirth/OpportuneX/internal/models"
	appErrors "github.com/Jain-Tirth/OpportuneX/pkg/errors"
	"github.com/Jain-Tirth/OpportuneX/pkg/export"
)

type eventLister interface {
	ListAll(ctx context.Context) ([]models.Event, error)
}

// ExportService renders the stored event feed as a download.
type ExportService struct {
	events eventLister
	csv    *export.CSVExporter
	pdf    *export.PDFExporter
	logger *zap.Logger
}

// NewExportService constructs the service.
func NewExportService(events eventLister, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		events: events,
		csv:    export.NewCSVExporter(),
		pdf:    export.NewPDFExporter(),
		logger: logger,
	}
}

// ExportResult carries rendered bytes plus response metadata.
type ExportResult struct {
	Content     []byte
	ContentType string
	Filename    string
}

var exportHeaders = []string{"Title", "Host", "Type", "Start", "End", "Deadline", "Tags", "URL"}

// Export renders the full event list in the requested format.
func (s *ExportService) Export(ctx context.Context, format string) (*ExportResult, error) {
	events, err := s.events.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	dataset := eventDataset(events)

	switch strings.ToLower(format) {
	case "", "csv":
		content, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return &ExportResult{Content: content, ContentType: "text/csv", Filename: "events.csv"}, nil
	case "pdf":
		content, err := s.pdf.Render(dataset, "Upcoming Hackathons")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return &ExportResult{Content: content, ContentType: "application/pdf", Filename: "events.pdf"}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported export format")
	}
}

func eventDataset(events []models.Event) export.Dataset {
	rows := make([]map[string]string, 0, len(events))
	for _, ev := range events {
		rows = append(rows, map[string]string{
			"Title":    ev.Title,
			"Host":     ev.HostedBy,
			"Type":     ev.Type,
			"Start":    derefDate(ev.StartDate),
			"End":      derefDate(ev.EndDate),
			"Deadline": derefDate(ev.Deadline),
			"Tags":     strings.Join(ev.Tags, ", "),
			"URL":      ev.RedirectURL,
		})
	}
	return export.Dataset{Headers: exportHeaders, Rows: rows}
}

func derefDate(d *string) string {
	if d == nil {
		return ""
	}
	return *d
}
