package chain

import (
	"context"
	"errors"
	"fmt"
	"io"

	filestore "github.com/bnema/qa-inspector/internal/adapters/evidence/file"
	"github.com/bnema/qa-inspector/internal/domain"
	"github.com/bnema/qa-inspector/internal/ports"
)

// Store writes evidence to a primary backend, usually a shared mount, and
// falls back to a secondary one when the primary is unavailable.
type Store struct {
	primary  ports.EvidenceStore
	fallback ports.EvidenceStore
}

var _ ports.EvidenceStore = (*Store)(nil)

var (
	errNilPrimaryStore  = errors.New("primary evidence store is nil")
	errNilFallbackStore = errors.New("fallback evidence store is nil")
)

func NewStore(primary ports.EvidenceStore, fallback ports.EvidenceStore) *Store {
	store, err := NewStoreChecked(primary, fallback)
	if err != nil {
		panic(err)
	}

	return store
}

func NewStoreChecked(primary ports.EvidenceStore, fallback ports.EvidenceStore) (*Store, error) {
	if primary == nil {
		return nil, errNilPrimaryStore
	}
	if fallback == nil {
		return nil, errNilFallbackStore
	}

	return &Store{primary: primary, fallback: fallback}, nil
}

func NewSharedFirstWithLocalFallback(sharedRoot, localRoot string) (*Store, error) {
	return NewStoreChecked(filestore.NewStore(sharedRoot), filestore.NewStore(localRoot))
}

// Upload only falls back when the primary failed before consuming the
// content, since a partially read stream cannot be replayed.
func (s *Store) Upload(ctx context.Context, file domain.EvidenceFile) (domain.EvidenceRef, error) {
	content := &trackingReader{r: file.Content}
	if file.Content != nil {
		file.Content = content
	}

	ref, err := s.primary.Upload(ctx, file)
	if err == nil {
		return ref, nil
	}
	if shouldSkipFallback(err) || content.read {
		return "", err
	}

	fallbackRef, fallbackErr := s.fallback.Upload(ctx, file)
	if fallbackErr == nil {
		return fallbackRef, nil
	}

	return "", fmt.Errorf("primary backend upload failed: %w; fallback backend upload failed: %w", err, fallbackErr)
}

func (s *Store) Open(ctx context.Context, ref domain.EvidenceRef) (io.ReadCloser, error) {
	reader, err := s.primary.Open(ctx, ref)
	if err == nil {
		return reader, nil
	}
	if shouldSkipFallback(err) {
		return nil, err
	}

	fallbackReader, fallbackErr := s.fallback.Open(ctx, ref)
	if fallbackErr == nil {
		return fallbackReader, nil
	}

	return nil, fmt.Errorf("primary backend open failed: %w; fallback backend open failed: %w", err, fallbackErr)
}

// Delete removes ref from both backends because the store does not know
// which one accepted the upload.
func (s *Store) Delete(ctx context.Context, ref domain.EvidenceRef) error {
	err := s.primary.Delete(ctx, ref)
	if shouldSkipFallback(err) {
		return err
	}

	fallbackErr := s.fallback.Delete(ctx, ref)
	if err == nil && fallbackErr == nil {
		return nil
	}

	var errs []error
	if err != nil {
		errs = append(errs, fmt.Errorf("primary backend delete failed: %w", err))
	}
	if fallbackErr != nil {
		errs = append(errs, fmt.Errorf("fallback backend delete failed: %w", fallbackErr))
	}
	return errors.Join(errs...)
}

func shouldSkipFallback(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

type trackingReader struct {
	r    io.Reader
	read bool
}

func (t *trackingReader) Read(p []byte) (int, error) {
	n, err := t.r.Read(p)
	if n > 0 {
		t.read = true
	}
	return n, err
}
