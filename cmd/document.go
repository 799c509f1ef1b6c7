package cmd

import (
	"encoding/json"
	"fmt"

	verdictview "github.com/bnema/qa-inspector/internal/adapters/render/verdict"
	"github.com/bnema/qa-inspector/internal/application"
	"github.com/bnema/qa-inspector/internal/domain"
	"github.com/spf13/cobra"
)

func newDocumentCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "document",
		Short: "Register and inspect documents",
	}

	cmd.AddCommand(
		newDocumentAddCmd(app),
		newDocumentListCmd(app),
		newDocumentShowCmd(app),
		newDocumentLocateCmd(app),
	)

	return cmd
}

func newDocumentAddCmd(app *app) *cobra.Command {
	var (
		id     string
		name   string
		handle string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a document or update its handle",
		RunE: func(cmd *cobra.Command, _ []string) error {
			document, err := app.documents.Register(cmd.Context(), application.RegisterDocumentCommand{
				ID:     domain.DocumentID(id),
				Name:   name,
				Handle: handle,
			})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "registered %s (%d pages)\n", document.ID, document.PageCount)
			return err
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Document ID")
	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&handle, "handle", "", "Page directory or image file backing the document")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("handle")

	return cmd
}

func newDocumentListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered documents",
		RunE: func(cmd *cobra.Command, _ []string) error {
			statuses, err := app.documents.GetStatusAll(cmd.Context())
			if err != nil {
				return err
			}

			for _, status := range statuses {
				ready := ""
				if status.FullyApproved {
					ready = "\tapproved"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d pages%s\n", status.Document.ID, status.Document.DisplayName(), status.Document.PageCount, ready)
			}

			return nil
		},
	}
}

func newDocumentShowCmd(app *app) *cobra.Command {
	var (
		documentID string
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the verdict board of one or every document",
		RunE: func(cmd *cobra.Command, _ []string) error {
			statuses, err := loadStatuses(cmd, app, documentID)
			if err != nil {
				return err
			}

			return writeStatusesOutput(cmd, app, statuses, asJSON)
		},
	}

	cmd.Flags().StringVar(&documentID, "document", "", "Document ID (all documents when empty)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print statuses as JSON")

	return cmd
}

func newDocumentLocateCmd(app *app) *cobra.Command {
	var documentID string

	cmd := &cobra.Command{
		Use:   "locate",
		Short: "Print a downloadable location for the document",
		RunE: func(cmd *cobra.Command, _ []string) error {
			location, err := app.documents.Locate(cmd.Context(), domain.DocumentID(documentID))
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), location.String())
			return err
		},
	}

	cmd.Flags().StringVar(&documentID, "document", "", "Document ID")
	_ = cmd.MarkFlagRequired("document")

	return cmd
}

func loadStatuses(cmd *cobra.Command, app *app, documentID string) ([]application.DocumentStatus, error) {
	if documentID == "" {
		return app.documents.GetStatusAll(cmd.Context())
	}

	status, err := app.documents.GetStatus(cmd.Context(), domain.DocumentID(documentID))
	if err != nil {
		return nil, err
	}

	return []application.DocumentStatus{status}, nil
}

func writeStatusesOutput(cmd *cobra.Command, app *app, statuses []application.DocumentStatus, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(statuses)
	}

	rendered, err := app.boardRenderer(statuses, verdictview.RenderOptions{Now: app.now()})
	if err != nil {
		return fmt.Errorf("render verdicts: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}
