package e2e

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmokeFlow(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)
	pages := writePagesFixture(t)

	stdout, stderr, err := runQI(t, binaryPath, home,
		"document", "add",
		"--id", "doc-1",
		"--name", "Batch 42",
		"--handle", pages,
	)
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "registered doc-1 (1 pages)")

	_, stderr, err = runQI(t, binaryPath, home, "verdict", "deliver", "--document", "doc-1", "--actor", "ana")
	require.NoError(t, err, "stderr: %s", stderr)

	_, stderr, err = runQI(t, binaryPath, home, "verdict", "approve", "--document", "doc-1", "--stage", "documental", "--actor", "ana")
	require.NoError(t, err, "stderr: %s", stderr)

	stdout, stderr, err = runQI(t, binaryPath, home, "verdict", "approve", "--document", "doc-1", "--stage", "physical", "--actor", "bo")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "[fully approved]")

	stdout, stderr, err = runQI(t, binaryPath, home, "audit", "log", "--document", "doc-1")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "entries: 3")
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "qi-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/qi")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build qi binary: %s", string(output))
	return binaryPath
}

func runQI(t *testing.T, binaryPath, home string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(os.Environ(), "HOME="+home)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func repoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}

func writePagesFixture(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	page := image.NewRGBA(image.Rect(0, 0, 64, 64))
	draw.Draw(page, page.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	f, err := os.Create(filepath.Join(dir, "page-1.png"))
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, page))
	require.NoError(t, f.Close())

	return dir
}
