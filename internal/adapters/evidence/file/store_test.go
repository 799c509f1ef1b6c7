package file

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bnema/qa-inspector/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedIDs(ids ...string) func() string {
	next := 0
	return func() string {
		id := ids[next]
		next++
		return id
	}
}

func TestStoreUploadOpenRoundTripAndPermissions(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store := NewStore(root)
	store.newID = fixedIDs("7f3c")

	ref, err := store.Upload(context.Background(), domain.EvidenceFile{
		DocumentID: "doc-1",
		Name:       "Seal.JPG",
		Content:    strings.NewReader("jpeg bytes"),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.EvidenceRef("doc-1/7f3c.jpg"), ref)

	reader, err := store.Open(context.Background(), ref)
	require.NoError(t, err)
	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	require.NoError(t, reader.Close())
	assert.Equal(t, "jpeg bytes", string(data))

	info, err := os.Stat(filepath.Join(root, "doc-1", "7f3c.jpg"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(evidenceFileMod), info.Mode().Perm())
}

func TestStoreUploadDerivesExtension(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		file domain.EvidenceFile
		want string
	}{
		{name: "from name", file: domain.EvidenceFile{Name: "box.png"}, want: ".png"},
		{name: "from content type", file: domain.EvidenceFile{Name: "capture", ContentType: "image/png"}, want: ".png"},
		{name: "unknown", file: domain.EvidenceFile{Name: "capture"}, want: ".bin"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, extensionFor(tc.file))
		})
	}
}

func TestStoreUploadRejectsIncompleteFiles(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())

	_, err := store.Upload(context.Background(), domain.EvidenceFile{Name: "a.jpg", Content: strings.NewReader("x")})
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = store.Upload(context.Background(), domain.EvidenceFile{DocumentID: "doc-1", Name: "a.jpg"})
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestStoreRejectsInvalidReferences(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	testCases := []struct {
		name    string
		ref     domain.EvidenceRef
		wantErr string
	}{
		{name: "empty", ref: "", wantErr: "evidence reference is empty"},
		{name: "whitespace", ref: "   ", wantErr: "evidence reference is empty"},
		{name: "absolute", ref: "/etc/passwd", wantErr: "invalid evidence reference"},
		{name: "traversal", ref: "../escape.jpg", wantErr: "invalid evidence reference"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := store.Open(context.Background(), tc.ref)
			require.Error(t, err)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestStoreOpenMissingEvidence(t *testing.T) {
	t.Parallel()

	_, err := NewStore(t.TempDir()).Open(context.Background(), "doc-1/missing.jpg")
	require.ErrorIs(t, err, domain.ErrEvidenceNotFound)
}

func TestStoreDeleteIsIdempotentWhenEvidenceMissing(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	ref, err := store.Upload(context.Background(), domain.EvidenceFile{DocumentID: "doc-1", Name: "a.jpg", Content: strings.NewReader("x")})
	require.NoError(t, err)

	require.NoError(t, store.Delete(context.Background(), ref))
	require.NoError(t, store.Delete(context.Background(), ref))

	_, err = store.Open(context.Background(), ref)
	require.ErrorIs(t, err, domain.ErrEvidenceNotFound)
}

func TestStoreUploadCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewStore(t.TempDir()).Upload(ctx, domain.EvidenceFile{DocumentID: "doc-1", Name: "a.jpg", Content: strings.NewReader("x")})
	require.ErrorIs(t, err, context.Canceled)
}
