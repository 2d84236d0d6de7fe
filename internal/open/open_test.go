package open

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zuo-Peng/meshlog/internal/record"
)

func TestFirstErrorLine(t *testing.T) {
	dir := t.TempDir()
	withErr := filepath.Join(dir, "a.log")
	clean := filepath.Join(dir, "b.log")
	require.NoError(t, os.WriteFile(withErr, []byte("ok\nok\nError: boom\nError: again\n"), 0o644))
	require.NoError(t, os.WriteFile(clean, []byte("ok\n"), 0o644))

	assert.Equal(t, 3, FirstErrorLine(withErr))
	assert.Equal(t, 1, FirstErrorLine(clean))
	assert.Equal(t, 1, FirstErrorLine(filepath.Join(dir, "missing.log")))
}

func TestEditorCommand(t *testing.T) {
	tests := []struct {
		editor string
		want   []string
	}{
		{"vim", []string{"vim", "+7", "/x.log"}},
		{"/usr/bin/nvim", []string{"/usr/bin/nvim", "+7", "/x.log"}},
		{"code", []string{"code", "--goto", "/x.log:7"}},
		{"less", []string{"less", "+7", "/x.log"}},
		{"nano", []string{"nano", "/x.log"}},
	}

	for _, tt := range tests {
		t.Run(tt.editor, func(t *testing.T) {
			assert.Equal(t, tt.want, EditorCommand(tt.editor, "/x.log", 7).Args)
		})
	}
}

func TestOpenLogMissingFile(t *testing.T) {
	err := OpenLog(record.Unified{LogPath: filepath.Join(t.TempDir(), "gone.log")})
	assert.ErrorContains(t, err, "file not found")
}
