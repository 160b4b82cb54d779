package pdf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertMarkdownToPDF(t *testing.T) {
	tests := []struct {
		name       string
		setupFile  func(t *testing.T) string
		wantErrMsg string
	}{
		{
			name: "invalid extension",
			setupFile: func(t *testing.T) string {
				return "report.txt"
			},
			wantErrMsg: "input file must have .md extension",
		},
		{
			name: "file not found",
			setupFile: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "nonexistent.md")
			},
			wantErrMsg: "os.ReadFile",
		},
		{
			name: "successful conversion",
			setupFile: func(t *testing.T) string {
				mdPath := filepath.Join(t.TempDir(), "report.md")
				content := []byte("# Practice Report\n\n| Tense | Accuracy |\n|---|---|\n| Past Simple | 50.0% |\n")
				require.NoError(t, os.WriteFile(mdPath, content, 0644))
				return mdPath
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pdfPath, err := ConvertMarkdownToPDF(tt.setupFile(t))
			if tt.wantErrMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrMsg)
				return
			}

			require.NoError(t, err)
			assert.True(t, filepath.IsAbs(pdfPath))
			assert.Equal(t, ".pdf", filepath.Ext(pdfPath))
			assert.FileExists(t, pdfPath)
		})
	}
}

func TestRender(t *testing.T) {
	pdfPath := filepath.Join(t.TempDir(), "nested", "report.pdf")
	require.NoError(t, Render([]byte("# Title\n\nBody\n"), pdfPath))

	info, err := os.Stat(pdfPath)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}
