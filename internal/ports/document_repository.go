package ports

import (
	"context"

	"github.com/bnema/qa-inspector/internal/domain"
)

type DocumentRepository interface {
	GetByID(ctx context.Context, id domain.DocumentID) (domain.Document, error)
	List(ctx context.Context) ([]domain.Document, error)
	Save(ctx context.Context, document domain.Document) error
	// PersistMetadata merges patch into the stored verdicts of document id.
	PersistMetadata(ctx context.Context, id domain.DocumentID, patch domain.MetadataPatch) error
}
