package application

import (
	"time"

	"github.com/bnema/qa-inspector/internal/domain"
)

type StageView struct {
	Stage        domain.Stage
	Status       string
	ActorName    string
	Timestamp    time.Time
	Flags        []string
	Observations string
	Evidence     []domain.EvidenceRef
}

type DocumentStatus struct {
	Document      domain.Document
	Stages        []StageView
	FullyApproved bool
}
