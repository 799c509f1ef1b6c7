package cmd

import (
	"encoding/json"
	"fmt"

	verdictview "github.com/bnema/qa-inspector/internal/adapters/render/verdict"
	"github.com/bnema/qa-inspector/internal/domain"
	"github.com/spf13/cobra"
)

func newAuditCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Inspect the audit trail",
	}

	cmd.AddCommand(newAuditLogCmd(app))

	return cmd
}

func newAuditLogCmd(app *app) *cobra.Command {
	var (
		documentID string
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "log",
		Short: "List every recorded verdict transition of a document",
		RunE: func(cmd *cobra.Command, _ []string) error {
			document, err := app.documents.Get(cmd.Context(), domain.DocumentID(documentID))
			if err != nil {
				return err
			}

			entries, err := app.documents.AuditTrail(cmd.Context(), document.ID)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			}

			rendered, err := app.auditRenderer(document, entries, verdictview.RenderOptions{Now: app.now()})
			if err != nil {
				return fmt.Errorf("render audit trail: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().StringVar(&documentID, "document", "", "Document ID")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print entries as JSON")
	_ = cmd.MarkFlagRequired("document")

	return cmd
}
