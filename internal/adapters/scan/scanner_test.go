package scan

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestScanFileAnchorWithCompanions(t *testing.T) {
	t.Parallel()

	content := strings.Join([]string{
		"export function render() {",
		"// @agent: agent-modules-core",
		"// @timestamp: 2026-08-30T14:00:00Z",
		"// @task: TRACK-B-MODULES.md#B1.2",
		"// @notes: rewired exports",
		"}",
	}, "\n")
	path := writeFile(t, t.TempDir(), "fx-view.ts", content)

	scanner := NewScanner(io.Discard)
	annotations := scanner.ScanFile(path)

	require.Len(t, annotations, 1)
	ann := annotations[0]
	assert.Equal(t, path, ann.FilePath)
	assert.Equal(t, 2, ann.LineNumber)
	assert.Equal(t, "agent-modules-core", ann.AgentName)
	assert.Equal(t, "2026-08-30T14:00:00Z", ann.Timestamp)
	assert.Equal(t, "TRACK-B-MODULES.md#B1.2", ann.TaskRef)
	assert.Equal(t, "rewired exports", ann.Notes)
}

func TestScanFileAnchorWithoutCompanions(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "plain.ts", "// @agent: foo\n")

	scanner := NewScanner(io.Discard)
	annotations := scanner.ScanFile(path)

	require.Len(t, annotations, 1)
	assert.Equal(t, "foo", annotations[0].AgentName)
	assert.Empty(t, annotations[0].Timestamp)
	assert.Empty(t, annotations[0].TaskRef)
	assert.Empty(t, annotations[0].Notes)
}

func TestScanFileCompanionOutsideWindowIgnored(t *testing.T) {
	t.Parallel()

	content := strings.Join([]string{
		"// @agent: foo",
		"line",
		"line",
		"line",
		"line",
		"// @timestamp: 2026-08-30T14:00:00Z",
	}, "\n")
	path := writeFile(t, t.TempDir(), "far.ts", content)

	scanner := NewScanner(io.Discard)
	annotations := scanner.ScanFile(path)

	require.Len(t, annotations, 1)
	assert.Empty(t, annotations[0].Timestamp)
}

func TestScanFileFirstCompanionMatchWins(t *testing.T) {
	t.Parallel()

	content := strings.Join([]string{
		"// @agent: foo",
		"// @notes: first",
		"// @notes: second",
	}, "\n")
	path := writeFile(t, t.TempDir(), "dupe.ts", content)

	scanner := NewScanner(io.Discard)
	annotations := scanner.ScanFile(path)

	require.Len(t, annotations, 1)
	assert.Equal(t, "first", annotations[0].Notes)
}

func TestScanFileMultipleAnchors(t *testing.T) {
	t.Parallel()

	content := strings.Join([]string{
		"// @agent: agent-one",
		"code",
		"// @agent: agent-two",
		"// @task: TRACK-C-CLI.md#C.1",
	}, "\n")
	path := writeFile(t, t.TempDir(), "multi.ts", content)

	scanner := NewScanner(io.Discard)
	annotations := scanner.ScanFile(path)

	require.Len(t, annotations, 2)
	assert.Equal(t, "agent-one", annotations[0].AgentName)
	assert.Equal(t, 1, annotations[0].LineNumber)
	assert.Equal(t, "agent-two", annotations[1].AgentName)
	assert.Equal(t, "TRACK-C-CLI.md#C.1", annotations[1].TaskRef)
}

func TestScanFileIsIdempotent(t *testing.T) {
	t.Parallel()

	content := strings.Join([]string{
		"// @agent: agent-one",
		"// @timestamp: 2026-08-30T14:00:00Z",
		"code",
		"-- @agent: agent-persistence",
	}, "\n")
	path := writeFile(t, t.TempDir(), "twice.sql", content)

	scanner := NewScanner(io.Discard)
	first := scanner.ScanFile(path)
	second := scanner.ScanFile(path)

	assert.Equal(t, first, second)
}

func TestScanFileUnreadableYieldsNothingAndWarns(t *testing.T) {
	t.Parallel()

	warn := &bytes.Buffer{}
	scanner := NewScanner(warn)

	annotations := scanner.ScanFile(filepath.Join(t.TempDir(), "does-not-exist.ts"))

	assert.Nil(t, annotations)
	assert.Contains(t, warn.String(), "warning: scan")
}

func TestRebuildIndexWalksAndFilters(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	annotated := writeFile(t, root, "src/fx-view.ts", "// @agent: agent-modules-core\n")
	writeFile(t, root, "src/clean.ts", "nothing here\n")
	writeFile(t, root, "node_modules/dep/index.ts", "// @agent: agent-ghost\n")
	writeFile(t, root, "image.png", "// @agent: agent-binary\n")

	scanner := NewScanner(io.Discard)
	walker := NewWalker(scanner, []string{".ts"}, []string{"node_modules"})

	index, err := walker.RebuildIndex(root)
	require.NoError(t, err)

	require.Len(t, index, 1)
	require.Contains(t, index, annotated)
	assert.Equal(t, "agent-modules-core", index[annotated][0].AgentName)
}

func TestRebuildIndexIdempotent(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "a.ts", "// @agent: agent-one\n// @notes: note\n")
	writeFile(t, root, "b.ts", "// @agent: agent-two\n")

	scanner := NewScanner(io.Discard)
	walker := NewWalker(scanner, []string{".ts"}, nil)

	first, err := walker.RebuildIndex(root)
	require.NoError(t, err)
	second, err := walker.RebuildIndex(root)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first, 2)
}
