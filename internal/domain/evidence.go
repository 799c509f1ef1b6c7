package domain

import "io"

// EvidenceFile is a supporting file awaiting upload, typically a photograph
// of the physical batch.
type EvidenceFile struct {
	DocumentID  DocumentID
	Name        string
	ContentType string
	Content     io.Reader
}
