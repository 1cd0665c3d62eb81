package engineconfig

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// EngineConfigPath is the default path to the engine config file, relative to the process working directory.
const EngineConfigPath = "config/engine.json"

// Shader names accepted in EnginePrefs.Shader.
const (
	ShaderColor   = "def"
	ShaderTexture = "tex"
)

// EnginePrefs holds engine-only preferences (window, overlays, active shader, file locations).
// Persisted across runs. The scene itself lives in the YAML file named by ScenePath.
type EnginePrefs struct {
	WindowWidth  int32  `json:"window_width"`
	WindowHeight int32  `json:"window_height"`
	Fullscreen   bool   `json:"fullscreen"`
	TargetFPS    int32  `json:"target_fps"`
	ShowFPS      bool   `json:"show_fps"`
	GridVisible  bool   `json:"grid_visible"`
	Shader       string `json:"shader"`
	ScenePath    string `json:"scene_path,omitempty"`
	LogPath      string `json:"log_path,omitempty"`
	WatchMeshes  bool   `json:"watch_meshes"`

	// ConsoleFont is a font search term resolved under assets/fonts. Empty = raylib default font.
	ConsoleFont string `json:"console_font,omitempty"`
}

// Default returns default engine preferences: 1024x1024 window, 60 FPS, textured shader, overlays off.
func Default() EnginePrefs {
	return EnginePrefs{
		WindowWidth:  1024,
		WindowHeight: 1024,
		Fullscreen:   false,
		TargetFPS:    60,
		ShowFPS:      false,
		GridVisible:  false,
		Shader:       ShaderTexture,
		ScenePath:    "assets/scenes/default.yaml",
		LogPath:      "logs/trispin.txt",
		WatchMeshes:  true,
	}
}

// Load reads engine preferences from path. If the file is missing or invalid,
// returns Default() and does not create a file. Fields absent from the file keep their defaults.
func Load(path string) (EnginePrefs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), nil
	}
	p := Default()
	if err := json.Unmarshal(data, &p); err != nil {
		return Default(), nil
	}
	p.normalize()
	return p, nil
}

// Save writes engine preferences to path, creating the parent directory if needed.
func Save(path string, p EnginePrefs) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "\t")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyEnv overrides preferences from TRISPIN_* environment variables (see .env.example).
// Unparseable numeric or boolean values are ignored.
func ApplyEnv(p *EnginePrefs) {
	if v, ok := os.LookupEnv("TRISPIN_SCENE"); ok && v != "" {
		p.ScenePath = v
	}
	if v, ok := os.LookupEnv("TRISPIN_LOG"); ok && v != "" {
		p.LogPath = v
	}
	if v, ok := os.LookupEnv("TRISPIN_SHADER"); ok && v != "" {
		p.Shader = strings.ToLower(v)
	}
	envInt("TRISPIN_WIDTH", &p.WindowWidth)
	envInt("TRISPIN_HEIGHT", &p.WindowHeight)
	envInt("TRISPIN_FPS", &p.TargetFPS)
	envBool("TRISPIN_FULLSCREEN", &p.Fullscreen)
	envBool("TRISPIN_SHOW_FPS", &p.ShowFPS)
	envBool("TRISPIN_WATCH", &p.WatchMeshes)
	p.normalize()
}

func (p *EnginePrefs) normalize() {
	d := Default()
	if p.WindowWidth <= 0 {
		p.WindowWidth = d.WindowWidth
	}
	if p.WindowHeight <= 0 {
		p.WindowHeight = d.WindowHeight
	}
	if p.TargetFPS <= 0 {
		p.TargetFPS = d.TargetFPS
	}
	if p.Shader != ShaderColor && p.Shader != ShaderTexture {
		p.Shader = d.Shader
	}
}

func envInt(key string, dst *int32) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return
	}
	n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 32)
	if err != nil {
		return
	}
	*dst = int32(n)
}

func envBool(key string, dst *bool) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return
	}
	*dst = b
}
