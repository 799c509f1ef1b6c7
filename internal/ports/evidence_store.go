package ports

import (
	"context"
	"io"

	"github.com/bnema/qa-inspector/internal/domain"
)

type EvidenceStore interface {
	Upload(ctx context.Context, file domain.EvidenceFile) (domain.EvidenceRef, error)
	Open(ctx context.Context, ref domain.EvidenceRef) (io.ReadCloser, error)
	Delete(ctx context.Context, ref domain.EvidenceRef) error
}
