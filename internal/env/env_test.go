package env

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	in := `
# comment
TRISPIN_SCENE=assets/scenes/demo.yaml
export TRISPIN_FPS = 30
QUOTED="a #b"
SINGLE='x'
TRAILING=on # enable
=novalue
broken line
`
	vars, err := Parse(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"TRISPIN_SCENE": "assets/scenes/demo.yaml",
		"TRISPIN_FPS":   "30",
		"QUOTED":        "a #b",
		"SINGLE":        "x",
		"TRAILING":      "on",
	}, vars)
}

func TestLoadKeepsExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("TRISPIN_ENV_A=file\nTRISPIN_ENV_B=file\n"), 0644))
	t.Setenv("TRISPIN_ENV_A", "shell")
	t.Setenv("TRISPIN_ENV_B", "")
	require.NoError(t, os.Unsetenv("TRISPIN_ENV_B"))

	require.NoError(t, Load(path))
	assert.Equal(t, "shell", os.Getenv("TRISPIN_ENV_A"))
	assert.Equal(t, "file", os.Getenv("TRISPIN_ENV_B"))
}

func TestLoadMissing(t *testing.T) {
	assert.NoError(t, Load(filepath.Join(t.TempDir(), "nope.env")))
}
