package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/bnema/qa-inspector/internal/application"
	"github.com/bnema/qa-inspector/internal/domain"
	"github.com/spf13/cobra"
)

func newEvidenceCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "evidence",
		Short: "Manage physical-stage evidence",
	}

	cmd.AddCommand(
		newEvidenceAttachCmd(app),
		newEvidenceExportCmd(app),
	)

	return cmd
}

func newEvidenceAttachCmd(app *app) *cobra.Command {
	var (
		documentID string
		actor      string
		files      []string
	)

	cmd := &cobra.Command{
		Use:   "attach",
		Short: "Attach evidence to a pending physical stage",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runVerdict(cmd, app, documentID, "Uploading evidence...", func(ctx context.Context, document domain.Document, progress application.UploadProgress) error {
				return withEvidenceFiles(document.ID, files, func(evidence []domain.EvidenceFile) error {
					_, err := app.verdicts.AttachPhysicalEvidence(ctx, document, application.AttachEvidenceCommand{
						Actor:    app.actor(actor),
						Files:    evidence,
						Progress: progress,
					})
					return err
				})
			})
		},
	}

	cmd.Flags().StringVar(&documentID, "document", "", "Document ID")
	cmd.Flags().StringVar(&actor, "actor", "", "Name recorded on the audit trail (defaults to actor.name)")
	cmd.Flags().StringArrayVar(&files, "file", nil, "Evidence file (repeatable)")
	_ = cmd.MarkFlagRequired("document")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func newEvidenceExportCmd(app *app) *cobra.Command {
	var (
		ref string
		out string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Copy a stored evidence file out of the evidence store",
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			reader, err := app.evidence.Open(cmd.Context(), domain.EvidenceRef(ref))
			if err != nil {
				return err
			}
			defer func() {
				if closeErr := reader.Close(); closeErr != nil {
					err = errors.Join(err, fmt.Errorf("close evidence: %w", closeErr))
				}
			}()

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create output file: %w", err)
			}
			if _, err := io.Copy(f, reader); err != nil {
				_ = f.Close()
				return fmt.Errorf("copy evidence: %w", err)
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("close output file: %w", err)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "exported %s to %s\n", ref, out)
			return err
		},
	}

	cmd.Flags().StringVar(&ref, "ref", "", "Evidence reference as shown by the audit log")
	cmd.Flags().StringVar(&out, "out", "", "Destination file")
	_ = cmd.MarkFlagRequired("ref")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}
