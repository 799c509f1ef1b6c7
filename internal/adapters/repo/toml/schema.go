package toml

import "fmt"

const (
	currentDocumentsSchemaVersion = 1
	currentAuditSchemaVersion     = 1
)

type documentsFileSchema struct {
	Version   int              `toml:"version"`
	Documents []documentSchema `toml:"documents"`
}

func (s *documentsFileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentDocumentsSchemaVersion
	}
}

func (s documentsFileSchema) validateVersion() error {
	if s.Version > currentDocumentsSchemaVersion {
		return fmt.Errorf("unsupported documents schema version %d (current %d)", s.Version, currentDocumentsSchemaVersion)
	}

	return nil
}

type documentSchema struct {
	ID        string         `toml:"id"`
	Name      string         `toml:"name"`
	Handle    string         `toml:"handle"`
	PageCount int            `toml:"page_count"`
	Verdicts  verdictsSchema `toml:"verdicts"`
}

type verdictsSchema struct {
	Delivery   deliverySchema `toml:"delivery"`
	Documental stageSchema    `toml:"documental"`
	Physical   stageSchema    `toml:"physical"`
}

type deliverySchema struct {
	Status    string `toml:"status"`
	ActorName string `toml:"actor_name,omitempty"`
	Timestamp string `toml:"timestamp,omitempty"`
}

type stageSchema struct {
	Status       string   `toml:"status"`
	Flags        []string `toml:"flags,omitempty"`
	Observations string   `toml:"observations,omitempty"`
	ActorName    string   `toml:"actor_name,omitempty"`
	Timestamp    string   `toml:"timestamp,omitempty"`
	EvidenceRefs []string `toml:"evidence_refs,omitempty"`
}

type auditFileSchema struct {
	Version int                `toml:"version"`
	Entries []auditEntrySchema `toml:"entries"`
}

func (s *auditFileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentAuditSchemaVersion
	}
}

func (s auditFileSchema) validateVersion() error {
	if s.Version > currentAuditSchemaVersion {
		return fmt.Errorf("unsupported audit schema version %d (current %d)", s.Version, currentAuditSchemaVersion)
	}

	return nil
}

type auditEntrySchema struct {
	ID           string   `toml:"id"`
	DocumentID   string   `toml:"document_id"`
	Stage        string   `toml:"stage"`
	Action       string   `toml:"action"`
	ActorName    string   `toml:"actor_name"`
	At           string   `toml:"at"`
	Flags        []string `toml:"flags,omitempty"`
	Observations string   `toml:"observations,omitempty"`
	EvidenceRefs []string `toml:"evidence_refs,omitempty"`
}
