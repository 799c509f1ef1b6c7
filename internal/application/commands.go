package application

import (
	"github.com/bnema/qa-inspector/internal/domain"
)

type RegisterDocumentCommand struct {
	ID     domain.DocumentID
	Name   string
	Handle string
}

// UploadProgress receives the number of finished evidence uploads out of
// total. It is called from upload goroutines.
type UploadProgress func(done, total int)

type SendDeliveryCommand struct {
	Actor string
}

type ApproveCommand struct {
	Stage    domain.Stage
	Actor    string
	Evidence []domain.EvidenceFile
	Progress UploadProgress
}

type RejectCommand struct {
	Stage        domain.Stage
	Flags        []string
	Observations string
	Actor        string
	Evidence     []domain.EvidenceFile
	Progress     UploadProgress
}

type AttachEvidenceCommand struct {
	Actor    string
	Files    []domain.EvidenceFile
	Progress UploadProgress
}
