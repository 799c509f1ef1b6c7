package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/bnema/qa-inspector/internal/domain"
	"github.com/bnema/qa-inspector/internal/metrics"
	"github.com/bnema/qa-inspector/internal/ports"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// VerdictService drives the audit stages of a document. Every transition is
// persisted before the caller's local state may change: preconditions are
// checked on the document handed in, evidence is uploaded, the metadata
// patch is saved, and only then is the new Verdicts value returned.
type VerdictService struct {
	repo     ports.DocumentRepository
	evidence ports.EvidenceStore
	audit    ports.AuditLog
	clock    ports.Clock
	metrics  *metrics.Metrics
	logger   *zap.Logger
	newID    func() string
}

type transition func(current domain.Verdicts, refs []domain.EvidenceRef, at time.Time) (domain.Verdicts, error)

func NewVerdictService(repo ports.DocumentRepository, evidence ports.EvidenceStore, audit ports.AuditLog, clock ports.Clock, m *metrics.Metrics, logger *zap.Logger) *VerdictService {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &VerdictService{
		repo:     repo,
		evidence: evidence,
		audit:    audit,
		clock:    clock,
		metrics:  m,
		logger:   logger,
		newID:    uuid.NewString,
	}
}

func (s *VerdictService) SendDelivery(ctx context.Context, document domain.Document, cmd SendDeliveryCommand) (domain.Verdicts, error) {
	return s.commit(ctx, document, domain.StageDelivery, domain.AuditActionDeliverySent, cmd.Actor, nil, nil,
		func(current domain.Verdicts, _ []domain.EvidenceRef, at time.Time) (domain.Verdicts, error) {
			return current.SendDelivery(cmd.Actor, at)
		})
}

func (s *VerdictService) Approve(ctx context.Context, document domain.Document, cmd ApproveCommand) (domain.Verdicts, error) {
	if err := validateEvidenceStage(cmd.Stage, cmd.Evidence); err != nil {
		return document.Verdicts, err
	}

	action := domain.AuditActionApproved
	if cmd.Stage == domain.StageDelivery {
		action = domain.AuditActionDeliverySent
	}

	return s.commit(ctx, document, cmd.Stage, action, cmd.Actor, cmd.Evidence, cmd.Progress,
		func(current domain.Verdicts, refs []domain.EvidenceRef, at time.Time) (domain.Verdicts, error) {
			next, err := withEvidence(current, refs)
			if err != nil {
				return current, err
			}
			return next.Approve(cmd.Stage, cmd.Actor, at)
		})
}

func (s *VerdictService) Reject(ctx context.Context, document domain.Document, cmd RejectCommand) (domain.Verdicts, error) {
	if err := validateEvidenceStage(cmd.Stage, cmd.Evidence); err != nil {
		return document.Verdicts, err
	}

	return s.commit(ctx, document, cmd.Stage, domain.AuditActionRejected, cmd.Actor, cmd.Evidence, cmd.Progress,
		func(current domain.Verdicts, refs []domain.EvidenceRef, at time.Time) (domain.Verdicts, error) {
			next, err := withEvidence(current, refs)
			if err != nil {
				return current, err
			}
			return next.Reject(cmd.Stage, cmd.Flags, cmd.Observations, cmd.Actor, at)
		})
}

// AttachPhysicalEvidence uploads files against the pending physical stage
// without deciding it. Delivery must already be sent: evidence sent before
// delivery is refused with domain.ErrDeliveryPending.
func (s *VerdictService) AttachPhysicalEvidence(ctx context.Context, document domain.Document, cmd AttachEvidenceCommand) (domain.Verdicts, error) {
	if len(cmd.Files) == 0 {
		return document.Verdicts, fmt.Errorf("%w: no evidence files", domain.ErrValidation)
	}

	return s.commit(ctx, document, domain.StagePhysical, domain.AuditActionEvidenceAttached, cmd.Actor, cmd.Files, cmd.Progress,
		func(current domain.Verdicts, refs []domain.EvidenceRef, _ time.Time) (domain.Verdicts, error) {
			return current.AttachEvidence(refs)
		})
}

func (s *VerdictService) commit(ctx context.Context, document domain.Document, stage domain.Stage, action domain.AuditAction, actor string, files []domain.EvidenceFile, progress UploadProgress, apply transition) (domain.Verdicts, error) {
	current := document.Verdicts.Normalize()
	if strings.TrimSpace(actor) == "" {
		return current, fmt.Errorf("%w: actor is required", domain.ErrValidation)
	}

	at := s.clock.Now().UTC()
	if _, err := apply(current, nil, at); err != nil {
		return current, err
	}

	refs, err := s.uploadEvidence(ctx, document.ID, files, progress)
	if err != nil {
		return current, fmt.Errorf("%w: upload evidence: %w", domain.ErrPersistence, err)
	}

	next, err := apply(current, refs, at)
	if err != nil {
		return current, errors.Join(err, s.discardEvidence(ctx, refs))
	}

	if err := s.repo.PersistMetadata(ctx, document.ID, next.Patch(stage)); err != nil {
		persistErr := fmt.Errorf("%w: persist %s verdict: %w", domain.ErrPersistence, stage, err)
		if cleanupErr := s.discardEvidence(ctx, refs); cleanupErr != nil {
			return current, fmt.Errorf("persist %s verdict and discard uploaded evidence: %w", stage, errors.Join(persistErr, cleanupErr))
		}
		return current, persistErr
	}

	s.record(ctx, document.ID, stage, action, actor, at, next, refs)
	return next, nil
}

func (s *VerdictService) record(ctx context.Context, id domain.DocumentID, stage domain.Stage, action domain.AuditAction, actor string, at time.Time, next domain.Verdicts, refs []domain.EvidenceRef) {
	entry := domain.AuditEntry{
		ID:           s.newID(),
		DocumentID:   id,
		Stage:        stage,
		Action:       action,
		ActorName:    strings.TrimSpace(actor),
		At:           at,
		EvidenceRefs: refs,
	}

	status := string(next.Delivery.Status)
	if record, err := next.Record(stage); err == nil {
		status = string(record.Status)
		if action == domain.AuditActionRejected {
			entry.Flags = record.Flags
			entry.Observations = record.Observations
		}
	}

	s.metrics.IncrementVerdictTransition(string(stage), status)
	s.logger.Info("verdict persisted",
		zap.String("document_id", string(id)),
		zap.String("stage", string(stage)),
		zap.String("action", string(action)),
		zap.String("status", status),
		zap.String("actor", entry.ActorName),
		zap.Int("evidence", len(refs)),
	)

	if s.audit == nil {
		return
	}
	// The verdict is already saved; a lost audit line must not undo it.
	if err := s.audit.Append(ctx, entry); err != nil {
		s.logger.Error("append audit entry",
			zap.String("document_id", string(id)),
			zap.String("stage", string(stage)),
			zap.Error(err),
		)
	}
}

func (s *VerdictService) uploadEvidence(ctx context.Context, id domain.DocumentID, files []domain.EvidenceFile, progress UploadProgress) ([]domain.EvidenceRef, error) {
	if len(files) == 0 {
		return nil, nil
	}
	if progress == nil {
		progress = func(int, int) {}
	}

	total := len(files)
	progress(0, total)

	var finished atomic.Int32
	refs := make([]domain.EvidenceRef, total)
	g, gctx := errgroup.WithContext(ctx)
	for i, file := range files {
		file.DocumentID = id
		g.Go(func() error {
			start := time.Now()
			ref, err := s.evidence.Upload(gctx, file)
			s.metrics.ObserveEvidenceUploadLatency(time.Since(start))
			if err != nil {
				s.metrics.IncrementEvidenceUpload("failed")
				return fmt.Errorf("upload %s: %w", file.Name, err)
			}
			s.metrics.IncrementEvidenceUpload("ok")
			refs[i] = ref
			progress(int(finished.Add(1)), total)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		uploaded := make([]domain.EvidenceRef, 0, len(refs))
		for _, ref := range refs {
			if ref != "" {
				uploaded = append(uploaded, ref)
			}
		}
		if cleanupErr := s.discardEvidence(ctx, uploaded); cleanupErr != nil {
			return nil, errors.Join(err, cleanupErr)
		}
		return nil, err
	}

	return refs, nil
}

// discardEvidence deletes uploads that will never be referenced. It runs
// even when ctx is already canceled.
func (s *VerdictService) discardEvidence(ctx context.Context, refs []domain.EvidenceRef) error {
	cleanupCtx := context.WithoutCancel(ctx)

	var errs error
	for _, ref := range refs {
		if err := s.evidence.Delete(cleanupCtx, ref); err != nil {
			errs = errors.Join(errs, fmt.Errorf("delete evidence %s: %w", ref, err))
			continue
		}
		s.metrics.IncrementEvidenceUpload("compensated")
	}
	return errs
}

func validateEvidenceStage(stage domain.Stage, files []domain.EvidenceFile) error {
	if len(files) > 0 && stage != domain.StagePhysical {
		return fmt.Errorf("%w: evidence is only accepted on the physical stage", domain.ErrValidation)
	}
	return nil
}

func withEvidence(current domain.Verdicts, refs []domain.EvidenceRef) (domain.Verdicts, error) {
	if len(refs) == 0 {
		return current, nil
	}
	return current.AttachEvidence(refs)
}
