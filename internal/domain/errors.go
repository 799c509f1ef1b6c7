package domain

import "errors"

var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrEvidenceNotFound = errors.New("evidence not found")
	ErrPageOutOfRange   = errors.New("page out of range")
	ErrUnknownStage     = errors.New("unknown stage")

	// ErrDecodeFailure marks a page bitmap that could not be produced.
	ErrDecodeFailure = errors.New("page decode failure")
	// ErrPersistence marks a failed metadata save or evidence upload. Local
	// verdict state is left untouched and the action may be retried.
	ErrPersistence = errors.New("persistence failure")
	// ErrValidation marks a transition refused by a local precondition.
	ErrValidation = errors.New("validation failure")

	ErrDeliveryPending = errors.New("delivery not sent")
	ErrStageClosed     = errors.New("stage already decided")
)
