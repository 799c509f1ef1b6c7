package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/bnema/qa-inspector/internal/application"
	"github.com/bnema/qa-inspector/internal/domain"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newMarkupCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "markup",
		Short: "Draw on document pages",
	}

	cmd.AddCommand(newMarkupReplayCmd(app))

	return cmd
}

func newMarkupReplayCmd(app *app) *cobra.Command {
	var (
		documentID string
		scriptPath string
		out        string
	)

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Replay a recorded markup script and export the resulting page as PNG",
		RunE: func(cmd *cobra.Command, _ []string) error {
			script, err := readReplayScript(scriptPath)
			if err != nil {
				return err
			}

			document, err := app.documents.Get(cmd.Context(), domain.DocumentID(documentID))
			if err != nil {
				return err
			}

			session, err := app.newSession()
			if err != nil {
				return err
			}
			defer session.Close()

			if err := session.Open(cmd.Context(), document); err != nil {
				return err
			}
			if err := session.Replay(cmd.Context(), script); err != nil {
				return err
			}

			if err := writePagePNG(cmd, session, out); err != nil {
				return err
			}

			page := session.CurrentPage()
			strokes := len(session.Annotations().Strokes(page))
			app.logger.Info("markup exported",
				zap.String("document_id", string(document.ID)),
				zap.Int("page", page),
				zap.Int("strokes", strokes),
				zap.String("out", out),
			)

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "exported page %d of %s with %d strokes to %s\n", page, document.ID, strokes, out)
			return err
		},
	}

	cmd.Flags().StringVar(&documentID, "document", "", "Document ID")
	cmd.Flags().StringVar(&scriptPath, "script", "", "TOML markup script")
	cmd.Flags().StringVar(&out, "out", "", "PNG file receiving the annotated page")
	_ = cmd.MarkFlagRequired("document")
	_ = cmd.MarkFlagRequired("script")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func readReplayScript(path string) (application.ReplayScript, error) {
	f, err := os.Open(path)
	if err != nil {
		return application.ReplayScript{}, fmt.Errorf("open markup script: %w", err)
	}
	defer func() { _ = f.Close() }()

	return application.ParseReplayScript(f)
}

func writePagePNG(cmd *cobra.Command, session *application.DocumentSession, out string) (err error) {
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close output file: %w", closeErr))
		}
	}()

	return session.ExportCurrentPageAsImage(cmd.Context(), f)
}
