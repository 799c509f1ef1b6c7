package cmd

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/bnema/qa-inspector/internal/application"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPersistViewShowsUploadCounts(t *testing.T) {
	t.Parallel()

	var model tea.Model = newPersistView("Saving approval...")
	assert.Contains(t, model.View(), "Saving approval...")

	model, _ = model.Update(uploadProgressMsg{done: 2, total: 3})
	assert.Contains(t, model.View(), "Uploading evidence 2/3...")

	model, _ = model.Update(uploadProgressMsg{done: 3, total: 3})
	assert.Contains(t, model.View(), "Saving approval...")

	model, cmd := model.Update(persistFinishedMsg{})
	require.NotNil(t, cmd)
	assert.Empty(t, model.View())
}

func TestRunPersistSpinnerReturnsPersistResult(t *testing.T) {
	t.Parallel()

	var reports []int
	err := runPersistSpinner(context.Background(), &bytes.Buffer{}, "Uploading evidence...", func(_ context.Context, progress application.UploadProgress) error {
		for done := 0; done <= 2; done++ {
			progress(done, 2)
			reports = append(reports, done)
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, reports)

	saveErr := errors.New("disk full")
	err = runPersistSpinner(context.Background(), &bytes.Buffer{}, "Saving rejection...", func(context.Context, application.UploadProgress) error {
		return saveErr
	})
	require.ErrorIs(t, err, saveErr)
}
