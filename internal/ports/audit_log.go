package ports

import (
	"context"

	"github.com/bnema/qa-inspector/internal/domain"
)

type AuditLog interface {
	Append(ctx context.Context, entry domain.AuditEntry) error
	ListByDocument(ctx context.Context, id domain.DocumentID) ([]domain.AuditEntry, error)
}
