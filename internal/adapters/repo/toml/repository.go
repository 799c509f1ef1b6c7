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

const documentsFileName = "documents.toml"

// Repository stores documents and their verdict metadata in one TOML file.
type Repository struct {
	documentsPath string
	mu            *sync.RWMutex
}

var _ ports.DocumentRepository = (*Repository)(nil)

func NewRepository(cfg *viper.Viper) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	path, err := resolvePath(cfg.GetString(config.DocumentsPathKey), documentsFileName)
	if err != nil {
		return nil, err
	}

	return &Repository{documentsPath: path, mu: lockForPath(path)}, nil
}

func (r *Repository) Save(ctx context.Context, document domain.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	encoded := toSchema(document)
	updated := false
	for i := range file.Documents {
		if file.Documents[i].ID == encoded.ID {
			file.Documents[i] = encoded
			updated = true
			break
		}
	}
	if !updated {
		file.Documents = append(file.Documents, encoded)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return writeTOMLFile(r.documentsPath, file)
}

// PersistMetadata merges patch into the stored verdicts of id. Records the
// patch leaves nil are kept as stored.
func (r *Repository) PersistMetadata(ctx context.Context, id domain.DocumentID, patch domain.MetadataPatch) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if patch.Empty() {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	idx := -1
	for i := range file.Documents {
		if file.Documents[i].ID == string(id) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: %s", domain.ErrDocumentNotFound, id)
	}

	document := fromSchema(file.Documents[idx])
	document.Verdicts = patch.Apply(document.Verdicts)
	file.Documents[idx] = toSchema(document)

	if err := ctx.Err(); err != nil {
		return err
	}

	return writeTOMLFile(r.documentsPath, file)
}

func (r *Repository) GetByID(ctx context.Context, id domain.DocumentID) (domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return domain.Document{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return domain.Document{}, err
	}

	for _, entry := range file.Documents {
		if entry.ID == string(id) {
			return fromSchema(entry), nil
		}
	}

	return domain.Document{}, domain.ErrDocumentNotFound
}

func (r *Repository) List(ctx context.Context) ([]domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}

	documents := make([]domain.Document, 0, len(file.Documents))
	for _, entry := range file.Documents {
		documents = append(documents, fromSchema(entry))
	}

	return documents, nil
}

func (r *Repository) readSchema() (documentsFileSchema, error) {
	data, err := os.ReadFile(r.documentsPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return documentsFileSchema{Version: currentDocumentsSchemaVersion}, nil
		}
		return documentsFileSchema{}, fmt.Errorf("read documents file: %w", err)
	}

	var file documentsFileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return documentsFileSchema{}, fmt.Errorf("decode documents file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return documentsFileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func toSchema(document domain.Document) documentSchema {
	verdicts := document.Verdicts.Normalize()

	return documentSchema{
		ID:        string(document.ID),
		Name:      document.Name,
		Handle:    document.Handle,
		PageCount: document.PageCount,
		Verdicts: verdictsSchema{
			Delivery: deliverySchema{
				Status:    string(verdicts.Delivery.Status),
				ActorName: verdicts.Delivery.ActorName,
				Timestamp: formatTime(verdicts.Delivery.Timestamp),
			},
			Documental: toStageSchema(verdicts.Documental),
			Physical:   toStageSchema(verdicts.Physical),
		},
	}
}

func fromSchema(document documentSchema) domain.Document {
	verdicts := domain.Verdicts{
		Delivery: domain.DeliveryRecord{
			Status:    domain.DeliveryStatus(document.Verdicts.Delivery.Status),
			ActorName: document.Verdicts.Delivery.ActorName,
			Timestamp: parseTime(document.Verdicts.Delivery.Timestamp),
		},
		Documental: fromStageSchema(document.Verdicts.Documental),
		Physical:   fromStageSchema(document.Verdicts.Physical),
	}

	return domain.Document{
		ID:        domain.DocumentID(document.ID),
		Name:      document.Name,
		Handle:    document.Handle,
		PageCount: document.PageCount,
		Verdicts:  verdicts.Normalize(),
	}
}

func toStageSchema(record domain.StageRecord) stageSchema {
	return stageSchema{
		Status:       string(record.Status),
		Flags:        append([]string(nil), record.Flags...),
		Observations: record.Observations,
		ActorName:    record.ActorName,
		Timestamp:    formatTime(record.Timestamp),
		EvidenceRefs: fromEvidenceRefs(record.EvidenceRefs),
	}
}

func fromStageSchema(schema stageSchema) domain.StageRecord {
	return domain.StageRecord{
		Status:       domain.StageStatus(schema.Status),
		Flags:        append([]string(nil), schema.Flags...),
		Observations: schema.Observations,
		ActorName:    schema.ActorName,
		Timestamp:    parseTime(schema.Timestamp),
		EvidenceRefs: toEvidenceRefs(schema.EvidenceRefs),
	}
}

func fromEvidenceRefs(refs []domain.EvidenceRef) []string {
	if len(refs) == 0 {
		return nil
	}

	encoded := make([]string, 0, len(refs))
	for _, ref := range refs {
		encoded = append(encoded, string(ref))
	}
	return encoded
}

func toEvidenceRefs(refs []string) []domain.EvidenceRef {
	if len(refs) == 0 {
		return nil
	}

	decoded := make([]domain.EvidenceRef, 0, len(refs))
	for _, ref := range refs {
		decoded = append(decoded, domain.EvidenceRef(ref))
	}
	return decoded
}
