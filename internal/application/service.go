package application

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/bnema/qa-inspector/internal/domain"
	"github.com/bnema/qa-inspector/internal/ports"
)

// DocumentService covers the read side of the inspector and document
// registration.
type DocumentService struct {
	repo       ports.DocumentRepository
	rasterizer ports.PageRasterizer
	resolver   ports.ResourceResolver
	audit      ports.AuditLog
}

func NewDocumentService(repo ports.DocumentRepository, rasterizer ports.PageRasterizer, resolver ports.ResourceResolver, audit ports.AuditLog) *DocumentService {
	return &DocumentService{
		repo:       repo,
		rasterizer: rasterizer,
		resolver:   resolver,
		audit:      audit,
	}
}

// Register stores a document, counting its pages through the rasterizer.
// Re-registering an id keeps its verdicts.
func (s *DocumentService) Register(ctx context.Context, cmd RegisterDocumentCommand) (domain.Document, error) {
	document := domain.Document{
		ID:       domain.DocumentID(strings.TrimSpace(string(cmd.ID))),
		Name:     strings.TrimSpace(cmd.Name),
		Handle:   strings.TrimSpace(cmd.Handle),
		Verdicts: domain.NewVerdicts(),
	}
	if err := document.Validate(); err != nil {
		return domain.Document{}, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}

	existing, err := s.repo.GetByID(ctx, document.ID)
	switch {
	case err == nil:
		document.Verdicts = existing.Verdicts
	case !errors.Is(err, domain.ErrDocumentNotFound):
		return domain.Document{}, fmt.Errorf("get document by id: %w", err)
	}

	pages, err := s.rasterizer.PageCount(ctx, document.Handle)
	if err != nil {
		return domain.Document{}, fmt.Errorf("count document pages: %w", err)
	}
	document.PageCount = pages

	if err := s.repo.Save(ctx, document); err != nil {
		return domain.Document{}, fmt.Errorf("save document: %w", err)
	}

	return document, nil
}

func (s *DocumentService) Get(ctx context.Context, id domain.DocumentID) (domain.Document, error) {
	document, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Document{}, fmt.Errorf("get document by id: %w", err)
	}
	return document, nil
}

func (s *DocumentService) GetStatus(ctx context.Context, id domain.DocumentID) (DocumentStatus, error) {
	document, err := s.Get(ctx, id)
	if err != nil {
		return DocumentStatus{}, err
	}

	return statusFromDocument(document), nil
}

func (s *DocumentService) GetStatusAll(ctx context.Context) ([]DocumentStatus, error) {
	documents, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	statuses := make([]DocumentStatus, 0, len(documents))
	for _, document := range documents {
		statuses = append(statuses, statusFromDocument(document))
	}

	return statuses, nil
}

// Locate resolves a location the document can be downloaded from.
func (s *DocumentService) Locate(ctx context.Context, id domain.DocumentID) (*url.URL, error) {
	document, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	location, err := s.resolver.DownloadableLocation(ctx, document.Handle)
	if err != nil {
		return nil, fmt.Errorf("resolve document location: %w", err)
	}
	return location, nil
}

func (s *DocumentService) AuditTrail(ctx context.Context, id domain.DocumentID) ([]domain.AuditEntry, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	entries, err := s.audit.ListByDocument(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	return entries, nil
}

func statusFromDocument(document domain.Document) DocumentStatus {
	verdicts := document.Verdicts.Normalize()
	document.Verdicts = verdicts

	return DocumentStatus{
		Document: document,
		Stages: []StageView{
			{
				Stage:     domain.StageDelivery,
				Status:    string(verdicts.Delivery.Status),
				ActorName: verdicts.Delivery.ActorName,
				Timestamp: verdicts.Delivery.Timestamp,
			},
			toStageView(domain.StageDocumental, verdicts.Documental),
			toStageView(domain.StagePhysical, verdicts.Physical),
		},
		FullyApproved: verdicts.FullyApproved(),
	}
}

func toStageView(stage domain.Stage, record domain.StageRecord) StageView {
	record = record.Clone()
	return StageView{
		Stage:        stage,
		Status:       string(record.Status),
		ActorName:    record.ActorName,
		Timestamp:    record.Timestamp,
		Flags:        record.Flags,
		Observations: record.Observations,
		Evidence:     record.EvidenceRefs,
	}
}
