package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matchdesk/ordermatch/internal/core/domain"
)

func TestExtractCmd_Use(t *testing.T) {
	assert.Equal(t, "extract <file.pdf>", extractCmd.Use)
}

func TestExtractCmd_RequiresExactlyOneArg(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"extract"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestExtractCmd_LoadsDraft(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	path := filepath.Join(t.TempDir(), "order.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0644))

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"extract", path})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "Extracted 2 line items")
	assert.Contains(t, buf.String(), "Bolt M6")
	assert.Contains(t, buf.String(), "Washer M6")
	assert.Equal(t, 2, draftService.Len())
	assert.Equal(t, domain.PhaseExtract, workflowService.Phase())
}

func TestExtractCmd_MissingFile(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"extract", filepath.Join(t.TempDir(), "missing.pdf")})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Equal(t, 0, draftService.Len())
	assert.Equal(t, domain.PhaseUpload, workflowService.Phase())
}
