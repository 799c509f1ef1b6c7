package domain

import (
	"fmt"
	"strings"
	"time"
)

type Stage string

const (
	StageDelivery   Stage = "delivery"
	StageDocumental Stage = "documental"
	StagePhysical   Stage = "physical"
)

func ParseStage(raw string) (Stage, error) {
	switch stage := Stage(strings.ToLower(strings.TrimSpace(raw))); stage {
	case StageDelivery, StageDocumental, StagePhysical:
		return stage, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStage, raw)
	}
}

type StageStatus string

const (
	StageStatusPending  StageStatus = "pending"
	StageStatusApproved StageStatus = "approved"
	StageStatusRejected StageStatus = "rejected"
)

type DeliveryStatus string

const (
	DeliveryNotSent DeliveryStatus = "not_sent"
	DeliverySent    DeliveryStatus = "sent"
)

type EvidenceRef string

type DeliveryRecord struct {
	Status    DeliveryStatus
	ActorName string
	Timestamp time.Time
}

type StageRecord struct {
	Status       StageStatus
	Flags        []string
	Observations string
	ActorName    string
	Timestamp    time.Time
	// EvidenceRefs is only populated on the physical stage.
	EvidenceRefs []EvidenceRef
}

func (r StageRecord) Clone() StageRecord {
	r.Flags = append([]string(nil), r.Flags...)
	r.EvidenceRefs = append([]EvidenceRef(nil), r.EvidenceRefs...)
	return r
}

func (r StageRecord) normalized() StageRecord {
	if r.Status == "" {
		r.Status = StageStatusPending
	}
	return r
}

// Verdicts holds the three audit checkpoints of a document. Documental and
// physical are independent of each other; both are gated by delivery.
type Verdicts struct {
	Delivery   DeliveryRecord
	Documental StageRecord
	Physical   StageRecord
}

func NewVerdicts() Verdicts {
	return Verdicts{
		Delivery:   DeliveryRecord{Status: DeliveryNotSent},
		Documental: StageRecord{Status: StageStatusPending},
		Physical:   StageRecord{Status: StageStatusPending},
	}
}

// Normalize fills zero-valued statuses with their initial states.
func (v Verdicts) Normalize() Verdicts {
	if v.Delivery.Status == "" {
		v.Delivery.Status = DeliveryNotSent
	}
	v.Documental = v.Documental.normalized()
	v.Physical = v.Physical.normalized()
	return v
}

func (v Verdicts) FullyApproved() bool {
	return v.Documental.Status == StageStatusApproved && v.Physical.Status == StageStatusApproved
}

func (v Verdicts) Record(stage Stage) (StageRecord, error) {
	switch stage {
	case StageDocumental:
		return v.Documental.normalized(), nil
	case StagePhysical:
		return v.Physical.normalized(), nil
	default:
		return StageRecord{}, fmt.Errorf("%w: %q has no stage record", ErrUnknownStage, stage)
	}
}

// CanAct reports whether a decision may be taken on stage.
func (v Verdicts) CanAct(stage Stage) error {
	v = v.Normalize()

	if stage == StageDelivery {
		if v.Delivery.Status == DeliverySent {
			return fmt.Errorf("%w: delivery", ErrStageClosed)
		}
		return nil
	}

	record, err := v.Record(stage)
	if err != nil {
		return err
	}
	if v.Delivery.Status != DeliverySent {
		return fmt.Errorf("%w: %s requires delivery", ErrDeliveryPending, stage)
	}
	if record.Status != StageStatusPending {
		return fmt.Errorf("%w: %s is %s", ErrStageClosed, stage, record.Status)
	}

	return nil
}

func (v Verdicts) SendDelivery(actor string, at time.Time) (Verdicts, error) {
	if err := v.CanAct(StageDelivery); err != nil {
		return v, err
	}

	next := v.clone()
	next.Delivery = DeliveryRecord{Status: DeliverySent, ActorName: actor, Timestamp: at}
	return next, nil
}

func (v Verdicts) Approve(stage Stage, actor string, at time.Time) (Verdicts, error) {
	if stage == StageDelivery {
		return v.SendDelivery(actor, at)
	}
	if err := v.CanAct(stage); err != nil {
		return v, err
	}

	next := v.clone()
	record, _ := next.Record(stage)
	record.Status = StageStatusApproved
	record.ActorName = actor
	record.Timestamp = at
	next.set(stage, record)
	return next, nil
}

// Reject requires at least one non-blank flag or a non-blank observation.
func (v Verdicts) Reject(stage Stage, flags []string, observations, actor string, at time.Time) (Verdicts, error) {
	if stage == StageDelivery {
		return v, fmt.Errorf("%w: delivery cannot be rejected", ErrValidation)
	}

	cleanFlags := NormalizeFlags(flags)
	cleanObservations := strings.TrimSpace(observations)
	if len(cleanFlags) == 0 && cleanObservations == "" {
		return v, fmt.Errorf("%w: rejection needs a flag or an observation", ErrValidation)
	}
	if err := v.CanAct(stage); err != nil {
		return v, err
	}

	next := v.clone()
	record, _ := next.Record(stage)
	record.Status = StageStatusRejected
	record.Flags = cleanFlags
	record.Observations = cleanObservations
	record.ActorName = actor
	record.Timestamp = at
	next.set(stage, record)
	return next, nil
}

// AttachEvidence appends references to the physical stage without changing
// its status. Like any physical action it requires delivery to be sent.
func (v Verdicts) AttachEvidence(refs []EvidenceRef) (Verdicts, error) {
	if err := v.CanAct(StagePhysical); err != nil {
		return v, err
	}

	next := v.clone()
	next.Physical.EvidenceRefs = append(next.Physical.EvidenceRefs, refs...)
	return next, nil
}

// Patch returns the metadata patch describing stage as stored in v.
func (v Verdicts) Patch(stage Stage) MetadataPatch {
	v = v.Normalize()

	switch stage {
	case StageDelivery:
		record := v.Delivery
		return MetadataPatch{Delivery: &record}
	case StageDocumental:
		record := v.Documental.Clone()
		return MetadataPatch{Documental: &record}
	case StagePhysical:
		record := v.Physical.Clone()
		return MetadataPatch{Physical: &record}
	default:
		return MetadataPatch{}
	}
}

func (v Verdicts) clone() Verdicts {
	v = v.Normalize()
	v.Documental = v.Documental.Clone()
	v.Physical = v.Physical.Clone()
	return v
}

func (v *Verdicts) set(stage Stage, record StageRecord) {
	switch stage {
	case StageDocumental:
		v.Documental = record
	case StagePhysical:
		v.Physical = record
	}
}

// MetadataPatch carries the stage records to persist; nil fields are left
// unchanged by the store.
type MetadataPatch struct {
	Delivery   *DeliveryRecord
	Documental *StageRecord
	Physical   *StageRecord
}

func (p MetadataPatch) Apply(v Verdicts) Verdicts {
	next := v.clone()
	if p.Delivery != nil {
		next.Delivery = *p.Delivery
	}
	if p.Documental != nil {
		next.Documental = p.Documental.Clone()
	}
	if p.Physical != nil {
		next.Physical = p.Physical.Clone()
	}
	return next
}

func (p MetadataPatch) Empty() bool {
	return p.Delivery == nil && p.Documental == nil && p.Physical == nil
}

func NormalizeFlags(flags []string) []string {
	result := make([]string, 0, len(flags))
	seen := make(map[string]struct{}, len(flags))
	for _, flag := range flags {
		trimmed := strings.TrimSpace(flag)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		result = append(result, trimmed)
	}

	if len(result) == 0 {
		return nil
	}
	return result
}
