package file

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bnema/qa-inspector/internal/domain"
	"github.com/bnema/qa-inspector/internal/ports"
	"github.com/google/uuid"
)

const (
	storeDirMode    = 0o700
	evidenceFileMod = 0o600
	defaultExt      = ".bin"
)

// Store keeps evidence files under <root>/<document>/<uuid><ext>. The
// returned reference is the path relative to root.
type Store struct {
	root  string
	newID func() string
	mu    sync.RWMutex
}

var _ ports.EvidenceStore = (*Store)(nil)

func NewStore(root string) *Store {
	return &Store{root: filepath.Clean(root), newID: uuid.NewString}
}

func (s *Store) Root() string {
	return s.root
}

func (s *Store) Upload(ctx context.Context, file domain.EvidenceFile) (domain.EvidenceRef, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if file.Content == nil {
		return "", fmt.Errorf("%w: evidence %q has no content", domain.ErrValidation, file.Name)
	}

	ref, err := s.refFor(file)
	if err != nil {
		return "", err
	}
	path, err := s.pathForRef(ref)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), storeDirMode); err != nil {
		return "", fmt.Errorf("create evidence directory: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(path), ".upload-*")
	if err != nil {
		return "", fmt.Errorf("create temp evidence file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := io.Copy(tempFile, contextReader{ctx: ctx, r: file.Content}); err != nil {
		_ = tempFile.Close()
		return "", fmt.Errorf("write evidence %q: %w", file.Name, err)
	}
	if err := tempFile.Chmod(evidenceFileMod); err != nil {
		_ = tempFile.Close()
		return "", fmt.Errorf("chmod evidence %q: %w", file.Name, err)
	}
	if err := tempFile.Close(); err != nil {
		return "", fmt.Errorf("close evidence %q: %w", file.Name, err)
	}
	if err := os.Rename(tempName, path); err != nil {
		return "", fmt.Errorf("store evidence %q: %w", file.Name, err)
	}

	cleanup = false
	return ref, nil
}

func (s *Store) Open(ctx context.Context, ref domain.EvidenceRef) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := s.pathForRef(ref)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrEvidenceNotFound, ref)
		}
		return nil, fmt.Errorf("open evidence %q: %w", ref, err)
	}

	return f, nil
}

func (s *Store) Delete(ctx context.Context, ref domain.EvidenceRef) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := s.pathForRef(ref)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err = os.Remove(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete evidence %q: %w", ref, err)
	}

	return nil
}

func (s *Store) refFor(file domain.EvidenceFile) (domain.EvidenceRef, error) {
	document := strings.TrimSpace(string(file.DocumentID))
	if document == "" {
		return "", fmt.Errorf("%w: evidence %q has no document", domain.ErrValidation, file.Name)
	}

	return domain.EvidenceRef(document + "/" + s.newID() + extensionFor(file)), nil
}

func (s *Store) pathForRef(ref domain.EvidenceRef) (string, error) {
	trimmed := strings.TrimSpace(string(ref))
	if trimmed == "" {
		return "", errors.New("evidence reference is empty")
	}

	cleaned := filepath.Clean(filepath.FromSlash(trimmed))
	if filepath.IsAbs(cleaned) || strings.HasPrefix(cleaned, "..") || cleaned == "." {
		return "", fmt.Errorf("invalid evidence reference %q", ref)
	}

	return filepath.Join(s.root, cleaned), nil
}

func extensionFor(file domain.EvidenceFile) string {
	if ext := strings.ToLower(filepath.Ext(file.Name)); ext != "" {
		return ext
	}
	if file.ContentType != "" {
		if exts, err := mime.ExtensionsByType(file.ContentType); err == nil && len(exts) > 0 {
			return exts[0]
		}
	}
	return defaultExt
}

// contextReader stops a long copy once ctx is done.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
