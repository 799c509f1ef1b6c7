package application

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bnema/qa-inspector/internal/domain"
	"github.com/bnema/qa-inspector/internal/metrics"
	"github.com/bnema/qa-inspector/internal/ports/mocks"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var verdictTime = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

type verdictFixture struct {
	service  *VerdictService
	repo     *mocks.MockDocumentRepository
	evidence *mocks.MockEvidenceStore
	audit    *mocks.MockAuditLog
	metrics  *metrics.Metrics
	logs     *observer.ObservedLogs
}

func newVerdictFixture(t *testing.T) verdictFixture {
	t.Helper()

	repo := mocks.NewMockDocumentRepository(t)
	evidence := mocks.NewMockEvidenceStore(t)
	audit := mocks.NewMockAuditLog(t)
	clock := mocks.NewMockClock(t)
	clock.EXPECT().Now().Return(verdictTime).Maybe()

	core, logs := observer.New(zapcore.DebugLevel)
	m := metrics.New()
	service := NewVerdictService(repo, evidence, audit, clock, m, zap.New(core))
	service.newID = func() string { return "audit-1" }

	return verdictFixture{service: service, repo: repo, evidence: evidence, audit: audit, metrics: m, logs: logs}
}

func deliveredDocument() domain.Document {
	document := testDocument()
	document.Verdicts = domain.NewVerdicts()
	document.Verdicts.Delivery = domain.DeliveryRecord{Status: domain.DeliverySent, ActorName: "ana", Timestamp: verdictTime.Add(-time.Hour)}
	return document
}

func evidenceFile(name string) domain.EvidenceFile {
	return domain.EvidenceFile{Name: name, ContentType: "image/jpeg", Content: strings.NewReader("jpeg bytes of " + name)}
}

func TestVerdictSendDeliveryPersistsThenAudits(t *testing.T) {
	t.Parallel()

	f := newVerdictFixture(t)
	document := testDocument()

	var persisted atomic.Bool
	f.repo.EXPECT().PersistMetadata(mockAnyContext(), domain.DocumentID("doc-1"), domain.MetadataPatch{
		Delivery: &domain.DeliveryRecord{Status: domain.DeliverySent, ActorName: "ana", Timestamp: verdictTime},
	}).RunAndReturn(func(context.Context, domain.DocumentID, domain.MetadataPatch) error {
		persisted.Store(true)
		return nil
	})
	f.audit.EXPECT().Append(mockAnyContext(), domain.AuditEntry{
		ID:         "audit-1",
		DocumentID: "doc-1",
		Stage:      domain.StageDelivery,
		Action:     domain.AuditActionDeliverySent,
		ActorName:  "ana",
		At:         verdictTime,
	}).Run(func(context.Context, domain.AuditEntry) {
		assert.True(t, persisted.Load(), "audit entry written before metadata")
	}).Return(nil)

	next, err := f.service.SendDelivery(context.Background(), document, SendDeliveryCommand{Actor: "ana"})
	require.NoError(t, err)
	assert.Equal(t, domain.DeliverySent, next.Delivery.Status)
	assert.Equal(t, domain.DeliveryNotSent, document.Verdicts.Normalize().Delivery.Status)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.VerdictTransitions.WithLabelValues("delivery", "sent")))
}

func TestVerdictSecondDeliveryIsRefused(t *testing.T) {
	t.Parallel()

	f := newVerdictFixture(t)
	_, err := f.service.SendDelivery(context.Background(), deliveredDocument(), SendDeliveryCommand{Actor: "ana"})
	require.ErrorIs(t, err, domain.ErrStageClosed)
}

func TestVerdictRejectWithoutReasonNeverReachesPersistence(t *testing.T) {
	t.Parallel()

	f := newVerdictFixture(t)
	document := deliveredDocument()

	next, err := f.service.Reject(context.Background(), document, RejectCommand{
		Stage:        domain.StageDocumental,
		Flags:        []string{"  ", ""},
		Observations: " \n",
		Actor:        "ana",
	})
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, domain.StageStatusPending, next.Documental.Status)
}

func TestVerdictStagesGatedByDelivery(t *testing.T) {
	t.Parallel()

	f := newVerdictFixture(t)
	ctx := context.Background()

	for _, stage := range []domain.Stage{domain.StageDocumental, domain.StagePhysical} {
		_, err := f.service.Approve(ctx, testDocument(), ApproveCommand{Stage: stage, Actor: "ana"})
		require.ErrorIs(t, err, domain.ErrDeliveryPending, "approve %s", stage)

		_, err = f.service.Reject(ctx, testDocument(), RejectCommand{Stage: stage, Flags: []string{"torn seal"}, Actor: "ana"})
		require.ErrorIs(t, err, domain.ErrDeliveryPending, "reject %s", stage)
	}

	_, err := f.service.AttachPhysicalEvidence(ctx, testDocument(), AttachEvidenceCommand{Actor: "ana", Files: []domain.EvidenceFile{evidenceFile("a.jpg")}})
	require.ErrorIs(t, err, domain.ErrDeliveryPending)
}

func TestVerdictRequiresActor(t *testing.T) {
	t.Parallel()

	f := newVerdictFixture(t)
	_, err := f.service.Approve(context.Background(), deliveredDocument(), ApproveCommand{Stage: domain.StageDocumental, Actor: "  "})
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestVerdictEvidenceOnlyOnPhysicalStage(t *testing.T) {
	t.Parallel()

	f := newVerdictFixture(t)
	_, err := f.service.Approve(context.Background(), deliveredDocument(), ApproveCommand{
		Stage:    domain.StageDocumental,
		Actor:    "ana",
		Evidence: []domain.EvidenceFile{evidenceFile("a.jpg")},
	})
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestVerdictPhysicalRejectUploadsEvidenceInParallel(t *testing.T) {
	t.Parallel()

	f := newVerdictFixture(t)
	document := deliveredDocument()

	f.evidence.EXPECT().Upload(mockAnyContext(), mock.AnythingOfType("domain.EvidenceFile")).
		RunAndReturn(func(_ context.Context, file domain.EvidenceFile) (domain.EvidenceRef, error) {
			assert.Equal(t, domain.DocumentID("doc-1"), file.DocumentID)
			return domain.EvidenceRef("doc-1/" + file.Name), nil
		}).Times(2)

	wantRecord := domain.StageRecord{
		Status:       domain.StageStatusRejected,
		Flags:        []string{"torn seal", "wrong count"},
		Observations: "two crates short",
		ActorName:    "ana",
		Timestamp:    verdictTime,
		EvidenceRefs: []domain.EvidenceRef{"doc-1/front.jpg", "doc-1/back.jpg"},
	}
	f.repo.EXPECT().PersistMetadata(mockAnyContext(), domain.DocumentID("doc-1"), domain.MetadataPatch{Physical: &wantRecord}).Return(nil)
	f.audit.EXPECT().Append(mockAnyContext(), mock.MatchedBy(func(entry domain.AuditEntry) bool {
		return entry.Action == domain.AuditActionRejected &&
			entry.Stage == domain.StagePhysical &&
			entry.Observations == "two crates short" &&
			len(entry.Flags) == 2 &&
			len(entry.EvidenceRefs) == 2
	})).Return(nil)

	next, err := f.service.Reject(context.Background(), document, RejectCommand{
		Stage:        domain.StagePhysical,
		Flags:        []string{" torn seal ", "wrong count", "torn seal"},
		Observations: "  two crates short ",
		Actor:        "ana",
		Evidence:     []domain.EvidenceFile{evidenceFile("front.jpg"), evidenceFile("back.jpg")},
	})
	require.NoError(t, err)
	assert.Equal(t, wantRecord, next.Physical)
	assert.Equal(t, domain.StageStatusPending, next.Documental.Status)
	assert.Equal(t, 2.0, testutil.ToFloat64(f.metrics.EvidenceUploads.WithLabelValues("ok")))
}

func TestVerdictReportsUploadProgress(t *testing.T) {
	t.Parallel()

	f := newVerdictFixture(t)
	f.evidence.EXPECT().Upload(mockAnyContext(), mock.AnythingOfType("domain.EvidenceFile")).
		RunAndReturn(func(_ context.Context, file domain.EvidenceFile) (domain.EvidenceRef, error) {
			return domain.EvidenceRef("doc-1/" + file.Name), nil
		}).Times(3)
	f.repo.EXPECT().PersistMetadata(mockAnyContext(), domain.DocumentID("doc-1"), mock.AnythingOfType("domain.MetadataPatch")).Return(nil)
	f.audit.EXPECT().Append(mockAnyContext(), mock.AnythingOfType("domain.AuditEntry")).Return(nil)

	var (
		mu      sync.Mutex
		reports []int
	)
	_, err := f.service.AttachPhysicalEvidence(context.Background(), deliveredDocument(), AttachEvidenceCommand{
		Actor: "ana",
		Files: []domain.EvidenceFile{evidenceFile("a.jpg"), evidenceFile("b.jpg"), evidenceFile("c.jpg")},
		Progress: func(done, total int) {
			mu.Lock()
			defer mu.Unlock()
			assert.Equal(t, 3, total)
			reports = append(reports, done)
		},
	})
	require.NoError(t, err)

	sort.Ints(reports)
	assert.Equal(t, []int{0, 1, 2, 3}, reports)
}

func TestVerdictPartialUploadFailureDiscardsUploadedEvidence(t *testing.T) {
	t.Parallel()

	f := newVerdictFixture(t)
	uploadErr := errors.New("bucket quota exceeded")

	f.evidence.EXPECT().Upload(mockAnyContext(), mock.AnythingOfType("domain.EvidenceFile")).
		RunAndReturn(func(_ context.Context, file domain.EvidenceFile) (domain.EvidenceRef, error) {
			if file.Name == "bad.jpg" {
				return "", uploadErr
			}
			return domain.EvidenceRef("doc-1/" + file.Name), nil
		}).Times(2)
	f.evidence.EXPECT().Delete(mockAnyContext(), domain.EvidenceRef("doc-1/good.jpg")).Return(nil).Once()

	document := deliveredDocument()
	next, err := f.service.Approve(context.Background(), document, ApproveCommand{
		Stage:    domain.StagePhysical,
		Actor:    "ana",
		Evidence: []domain.EvidenceFile{evidenceFile("good.jpg"), evidenceFile("bad.jpg")},
	})
	require.ErrorIs(t, err, domain.ErrPersistence)
	require.ErrorIs(t, err, uploadErr)
	assert.Equal(t, domain.StageStatusPending, next.Physical.Status)
	assert.Empty(t, next.Physical.EvidenceRefs)
}

func TestVerdictPersistFailureLeavesStateAndDiscardsEvidence(t *testing.T) {
	t.Parallel()

	f := newVerdictFixture(t)
	persistErr := errors.New("metadata endpoint returned 503")

	f.evidence.EXPECT().Upload(mockAnyContext(), mock.AnythingOfType("domain.EvidenceFile")).Return(domain.EvidenceRef("doc-1/a.jpg"), nil).Once()
	f.repo.EXPECT().PersistMetadata(mockAnyContext(), domain.DocumentID("doc-1"), mock.AnythingOfType("domain.MetadataPatch")).Return(persistErr)
	f.evidence.EXPECT().Delete(mockAnyContext(), domain.EvidenceRef("doc-1/a.jpg")).Return(nil).Once()

	document := deliveredDocument()
	next, err := f.service.Approve(context.Background(), document, ApproveCommand{
		Stage:    domain.StagePhysical,
		Actor:    "ana",
		Evidence: []domain.EvidenceFile{evidenceFile("a.jpg")},
	})
	require.ErrorIs(t, err, domain.ErrPersistence)
	require.ErrorIs(t, err, persistErr)
	assert.Equal(t, document.Verdicts.Normalize(), next)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.EvidenceUploads.WithLabelValues("compensated")))
}

func TestVerdictPersistAndCleanupFailureJoinsErrors(t *testing.T) {
	t.Parallel()

	f := newVerdictFixture(t)
	persistErr := errors.New("metadata endpoint returned 503")
	deleteErr := errors.New("object locked")

	f.evidence.EXPECT().Upload(mockAnyContext(), mock.AnythingOfType("domain.EvidenceFile")).Return(domain.EvidenceRef("doc-1/a.jpg"), nil).Once()
	f.repo.EXPECT().PersistMetadata(mockAnyContext(), domain.DocumentID("doc-1"), mock.AnythingOfType("domain.MetadataPatch")).Return(persistErr)
	f.evidence.EXPECT().Delete(mockAnyContext(), domain.EvidenceRef("doc-1/a.jpg")).Return(deleteErr).Once()

	_, err := f.service.AttachPhysicalEvidence(context.Background(), deliveredDocument(), AttachEvidenceCommand{
		Actor: "ana",
		Files: []domain.EvidenceFile{evidenceFile("a.jpg")},
	})
	require.ErrorIs(t, err, domain.ErrPersistence)
	require.ErrorIs(t, err, persistErr)
	require.ErrorIs(t, err, deleteErr)
}

func TestVerdictAttachEvidenceKeepsPhysicalPending(t *testing.T) {
	t.Parallel()

	f := newVerdictFixture(t)
	f.evidence.EXPECT().Upload(mockAnyContext(), mock.AnythingOfType("domain.EvidenceFile")).Return(domain.EvidenceRef("doc-1/a.jpg"), nil).Once()
	f.repo.EXPECT().PersistMetadata(mockAnyContext(), domain.DocumentID("doc-1"), mock.AnythingOfType("domain.MetadataPatch")).Return(nil)
	f.audit.EXPECT().Append(mockAnyContext(), mock.AnythingOfType("domain.AuditEntry")).Return(nil)

	next, err := f.service.AttachPhysicalEvidence(context.Background(), deliveredDocument(), AttachEvidenceCommand{
		Actor: "ana",
		Files: []domain.EvidenceFile{evidenceFile("a.jpg")},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StageStatusPending, next.Physical.Status)
	assert.Equal(t, []domain.EvidenceRef{"doc-1/a.jpg"}, next.Physical.EvidenceRefs)

	_, err = f.service.AttachPhysicalEvidence(context.Background(), deliveredDocument(), AttachEvidenceCommand{Actor: "ana"})
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestVerdictAuditFailureIsLoggedNotReturned(t *testing.T) {
	t.Parallel()

	f := newVerdictFixture(t)
	f.repo.EXPECT().PersistMetadata(mockAnyContext(), domain.DocumentID("doc-1"), mock.AnythingOfType("domain.MetadataPatch")).Return(nil)
	f.audit.EXPECT().Append(mockAnyContext(), mock.AnythingOfType("domain.AuditEntry")).Return(errors.New("disk full"))

	next, err := f.service.Approve(context.Background(), deliveredDocument(), ApproveCommand{Stage: domain.StageDocumental, Actor: "ana"})
	require.NoError(t, err)
	assert.Equal(t, domain.StageStatusApproved, next.Documental.Status)

	entries := f.logs.FilterMessage("append audit entry").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "doc-1", entries[0].ContextMap()["document_id"])
}

func TestVerdictFullyApprovedInEitherOrder(t *testing.T) {
	t.Parallel()

	orders := [][]domain.Stage{
		{domain.StageDocumental, domain.StagePhysical},
		{domain.StagePhysical, domain.StageDocumental},
	}

	for _, order := range orders {
		t.Run(fmt.Sprintf("%s_then_%s", order[0], order[1]), func(t *testing.T) {
			t.Parallel()

			f := newVerdictFixture(t)
			f.repo.EXPECT().PersistMetadata(mockAnyContext(), domain.DocumentID("doc-1"), mock.AnythingOfType("domain.MetadataPatch")).Return(nil)
			f.audit.EXPECT().Append(mockAnyContext(), mock.AnythingOfType("domain.AuditEntry")).Return(nil)

			document := deliveredDocument()
			for i, stage := range order {
				assert.False(t, document.Verdicts.FullyApproved(), "before step %d", i)
				next, err := f.service.Approve(context.Background(), document, ApproveCommand{Stage: stage, Actor: "ana"})
				require.NoError(t, err)
				document.Verdicts = next
			}
			assert.True(t, document.Verdicts.FullyApproved())
		})
	}
}

func mockAnyContext() interface{} {
	return mock.Anything
}
