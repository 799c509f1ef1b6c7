package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/bnema/qa-inspector/internal/config"
	"github.com/bnema/qa-inspector/internal/domain"
	"github.com/bnema/qa-inspector/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const auditFileName = "audit.toml"

// AuditRepository is an append-only audit trail kept in a TOML file.
type AuditRepository struct {
	path string
	mu   *sync.RWMutex
}

var _ ports.AuditLog = (*AuditRepository)(nil)

func NewAuditRepository(cfg *viper.Viper) (*AuditRepository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	path, err := resolvePath(cfg.GetString(config.AuditPathKey), auditFileName)
	if err != nil {
		return nil, err
	}

	return &AuditRepository{path: path, mu: lockForPath(path)}, nil
}

func (r *AuditRepository) Append(ctx context.Context, entry domain.AuditEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if entry.ID == "" || entry.DocumentID == "" {
		return fmt.Errorf("%w: audit entry needs an id and a document", domain.ErrValidation)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	for _, existing := range file.Entries {
		if existing.ID == entry.ID {
			return fmt.Errorf("audit entry %s already recorded", entry.ID)
		}
	}
	file.Entries = append(file.Entries, toAuditSchema(entry))

	return writeTOMLFile(r.path, file)
}

// ListByDocument returns the entries of id in the order they were appended.
func (r *AuditRepository) ListByDocument(ctx context.Context, id domain.DocumentID) ([]domain.AuditEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}

	entries := make([]domain.AuditEntry, 0)
	for _, entry := range file.Entries {
		if entry.DocumentID == string(id) {
			entries = append(entries, fromAuditSchema(entry))
		}
	}

	return entries, nil
}

func (r *AuditRepository) readSchema() (auditFileSchema, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return auditFileSchema{Version: currentAuditSchemaVersion}, nil
		}
		return auditFileSchema{}, fmt.Errorf("read audit file: %w", err)
	}

	var file auditFileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return auditFileSchema{}, fmt.Errorf("decode audit file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return auditFileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func toAuditSchema(entry domain.AuditEntry) auditEntrySchema {
	return auditEntrySchema{
		ID:           entry.ID,
		DocumentID:   string(entry.DocumentID),
		Stage:        string(entry.Stage),
		Action:       string(entry.Action),
		ActorName:    entry.ActorName,
		At:           formatTime(entry.At),
		Flags:        append([]string(nil), entry.Flags...),
		Observations: entry.Observations,
		EvidenceRefs: fromEvidenceRefs(entry.EvidenceRefs),
	}
}

func fromAuditSchema(schema auditEntrySchema) domain.AuditEntry {
	return domain.AuditEntry{
		ID:           schema.ID,
		DocumentID:   domain.DocumentID(schema.DocumentID),
		Stage:        domain.Stage(schema.Stage),
		Action:       domain.AuditAction(schema.Action),
		ActorName:    schema.ActorName,
		At:           parseTime(schema.At),
		Flags:        append([]string(nil), schema.Flags...),
		Observations: schema.Observations,
		EvidenceRefs: toEvidenceRefs(schema.EvidenceRefs),
	}
}
