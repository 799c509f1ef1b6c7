package cmd

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/bnema/qa-inspector/internal/application"
	"github.com/bnema/qa-inspector/internal/domain"
	"github.com/spf13/cobra"
)

func newVerdictCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verdict",
		Short: "Record audit verdicts",
	}

	cmd.AddCommand(
		newVerdictDeliverCmd(app),
		newVerdictApproveCmd(app),
		newVerdictRejectCmd(app),
	)

	return cmd
}

func newVerdictDeliverCmd(app *app) *cobra.Command {
	var (
		documentID string
		actor      string
	)

	cmd := &cobra.Command{
		Use:   "deliver",
		Short: "Mark the document as delivered, opening the audit stages",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runVerdict(cmd, app, documentID, "Sending delivery...", func(ctx context.Context, document domain.Document, _ application.UploadProgress) error {
				_, err := app.verdicts.SendDelivery(ctx, document, application.SendDeliveryCommand{Actor: app.actor(actor)})
				return err
			})
		},
	}

	cmd.Flags().StringVar(&documentID, "document", "", "Document ID")
	cmd.Flags().StringVar(&actor, "actor", "", "Name recorded on the verdict (defaults to actor.name)")
	_ = cmd.MarkFlagRequired("document")

	return cmd
}

func newVerdictApproveCmd(app *app) *cobra.Command {
	var (
		documentID string
		stageName  string
		actor      string
		evidence   []string
	)

	cmd := &cobra.Command{
		Use:   "approve",
		Short: "Approve the documental or physical stage",
		RunE: func(cmd *cobra.Command, _ []string) error {
			stage, err := domain.ParseStage(stageName)
			if err != nil {
				return err
			}

			return runVerdict(cmd, app, documentID, "Saving approval...", func(ctx context.Context, document domain.Document, progress application.UploadProgress) error {
				return withEvidenceFiles(document.ID, evidence, func(files []domain.EvidenceFile) error {
					_, err := app.verdicts.Approve(ctx, document, application.ApproveCommand{
						Stage:    stage,
						Actor:    app.actor(actor),
						Evidence: files,
						Progress: progress,
					})
					return err
				})
			})
		},
	}

	cmd.Flags().StringVar(&documentID, "document", "", "Document ID")
	cmd.Flags().StringVar(&stageName, "stage", "", "Stage to approve (documental or physical)")
	cmd.Flags().StringVar(&actor, "actor", "", "Name recorded on the verdict (defaults to actor.name)")
	cmd.Flags().StringArrayVar(&evidence, "evidence", nil, "Evidence file to upload with a physical verdict (repeatable)")
	_ = cmd.MarkFlagRequired("document")
	_ = cmd.MarkFlagRequired("stage")

	return cmd
}

func newVerdictRejectCmd(app *app) *cobra.Command {
	var (
		documentID   string
		stageName    string
		actor        string
		flags        []string
		observations string
		evidence     []string
	)

	cmd := &cobra.Command{
		Use:   "reject",
		Short: "Reject the documental or physical stage with flags or observations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			stage, err := domain.ParseStage(stageName)
			if err != nil {
				return err
			}

			return runVerdict(cmd, app, documentID, "Saving rejection...", func(ctx context.Context, document domain.Document, progress application.UploadProgress) error {
				return withEvidenceFiles(document.ID, evidence, func(files []domain.EvidenceFile) error {
					_, err := app.verdicts.Reject(ctx, document, application.RejectCommand{
						Stage:        stage,
						Flags:        flags,
						Observations: observations,
						Actor:        app.actor(actor),
						Evidence:     files,
						Progress:     progress,
					})
					return err
				})
			})
		},
	}

	cmd.Flags().StringVar(&documentID, "document", "", "Document ID")
	cmd.Flags().StringVar(&stageName, "stage", "", "Stage to reject (documental or physical)")
	cmd.Flags().StringVar(&actor, "actor", "", "Name recorded on the verdict (defaults to actor.name)")
	cmd.Flags().StringArrayVar(&flags, "flag", nil, "Nonconformity flag (repeatable)")
	cmd.Flags().StringVar(&observations, "observations", "", "Free-text observations")
	cmd.Flags().StringArrayVar(&evidence, "evidence", nil, "Evidence file to upload with a physical verdict (repeatable)")
	_ = cmd.MarkFlagRequired("document")
	_ = cmd.MarkFlagRequired("stage")

	return cmd
}

// runVerdict loads the document, runs decide behind a progress spinner and
// prints the refreshed verdict board.
func runVerdict(cmd *cobra.Command, app *app, documentID, label string, decide func(context.Context, domain.Document, application.UploadProgress) error) error {
	document, err := app.documents.Get(cmd.Context(), domain.DocumentID(documentID))
	if err != nil {
		return err
	}

	persist := func(ctx context.Context, progress application.UploadProgress) error {
		return decide(ctx, document, progress)
	}
	if err := runPersistSpinner(cmd.Context(), cmd.ErrOrStderr(), label, persist); err != nil {
		return err
	}

	statuses, err := loadStatuses(cmd, app, documentID)
	if err != nil {
		return err
	}

	return writeStatusesOutput(cmd, app, statuses, false)
}

// withEvidenceFiles opens paths as evidence for document and closes them
// once use returns.
func withEvidenceFiles(document domain.DocumentID, paths []string, use func([]domain.EvidenceFile) error) (err error) {
	files := make([]domain.EvidenceFile, 0, len(paths))
	opened := make([]*os.File, 0, len(paths))
	defer func() {
		for _, f := range opened {
			if closeErr := f.Close(); closeErr != nil {
				err = errors.Join(err, fmt.Errorf("close evidence %s: %w", f.Name(), closeErr))
			}
		}
	}()

	for _, path := range paths {
		f, openErr := os.Open(path)
		if openErr != nil {
			return fmt.Errorf("open evidence: %w", openErr)
		}
		opened = append(opened, f)

		files = append(files, domain.EvidenceFile{
			DocumentID:  document,
			Name:        filepath.Base(path),
			ContentType: mime.TypeByExtension(filepath.Ext(path)),
			Content:     f,
		})
	}

	return use(files)
}
