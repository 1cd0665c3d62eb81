// Package app wires configuration, the scene, the console and the renderer into the frame loop.
package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"

	"trispin/internal/commands"
	"trispin/internal/controls"
	"trispin/internal/debug"
	"trispin/internal/engineconfig"
	"trispin/internal/env"
	"trispin/internal/fonts"
	"trispin/internal/graphics"
	"trispin/internal/logger"
	"trispin/internal/meshfile"
	"trispin/internal/render"
	"trispin/internal/scene"
	"trispin/internal/scenefile"
	"trispin/internal/terminal"
	"trispin/internal/watch"
)

const (
	title = "TriSpin"
	// fontLoadSize is the glyph atlas size; text is drawn at 20px.
	fontLoadSize = 40
)

// Options are the command-line inputs. Empty ScenePath uses the one from the engine config.
type Options struct {
	ConfigPath string
	ScenePath  string
	EnvPath    string
}

// App holds the session state. Everything except the watcher goroutine runs on the window thread.
type App struct {
	configPath string
	prefs      engineconfig.EnginePrefs
	log        *logger.Logger

	scenePath string
	scene     *scene.Scene
	frame     *scene.Frame
	elapsed   float32

	reg     *commands.Registry
	term    *terminal.Terminal
	dbg     *debug.Debug
	rnd     *render.Renderer
	watcher *watch.Watcher
	font    rl.Font
}

// New loads .env, engine preferences and the scene. No window or GPU resources are created yet.
func New(opts Options) (*App, error) {
	if err := env.Load(opts.EnvPath); err != nil {
		return nil, err
	}
	configPath := opts.ConfigPath
	if configPath == "" {
		configPath = engineconfig.EngineConfigPath
	}
	prefs, err := engineconfig.Load(configPath)
	if err != nil {
		return nil, err
	}
	engineconfig.ApplyEnv(&prefs)
	if opts.ScenePath != "" {
		prefs.ScenePath = opts.ScenePath
	}

	a := &App{
		configPath: configPath,
		prefs:      prefs,
		log:        logger.New(prefs.LogPath),
		scenePath:  prefs.ScenePath,
		dbg:        debug.New(),
		reg:        commands.NewRegistry(),
	}
	a.dbg.ShowFPS = prefs.ShowFPS
	if err := a.loadScene(); err != nil {
		return nil, err
	}
	a.term = terminal.New(a.log, a.reg)
	a.term.OnToggle = func(open bool) {
		if open {
			rl.EnableCursor()
		} else {
			rl.DisableCursor()
		}
	}
	a.registerCommands()

	if prefs.WatchMeshes {
		w, err := watch.New(func(err error) { a.log.Logf("watch: %v", err) })
		if err != nil {
			a.log.Logf("mesh hot reload disabled: %v", err)
		} else {
			a.watcher = w
			a.watchMeshes()
		}
	}
	return a, nil
}

// loadScene builds the scene from scenePath. A missing file falls back to the built-in demo scene.
func (a *App) loadScene() error {
	doc, err := scenefile.Load(a.scenePath)
	if errors.Is(err, fs.ErrNotExist) {
		a.log.Logf("scene %s not found, using default scene", a.scenePath)
		doc, err = scenefile.Default(), nil
	}
	if err != nil {
		return err
	}
	s, reports, err := scenefile.Build(doc, filepath.Dir(a.scenePath))
	if err != nil {
		return err
	}
	for _, r := range reports {
		a.logDiagnostics(r.Path, r.Diagnostics)
	}
	if a.scene != nil && a.rnd != nil {
		for _, v := range a.scene.Volumes {
			a.rnd.Forget(v)
		}
	}
	a.scene = s
	a.elapsed = 0
	return nil
}

func (a *App) watchMeshes() {
	if a.watcher == nil {
		return
	}
	for _, v := range a.scene.Meshes() {
		if err := a.watcher.Add(v.Source); err != nil {
			a.log.Logf("watch %s: %v", v.Source, err)
		}
	}
}

// reloadMeshes re-parses the mesh volumes whose source is in paths, or all of them when paths is nil.
func (a *App) reloadMeshes(paths []string) int {
	want := make(map[string]bool, len(paths))
	for _, p := range paths {
		want[p] = true
	}
	n := 0
	for _, v := range a.scene.Meshes() {
		abs, err := filepath.Abs(v.Source)
		if err != nil {
			abs = v.Source
		}
		if paths != nil && !want[abs] {
			continue
		}
		next, diags := meshfile.Load(v.Source)
		a.logDiagnostics(v.Source, diags)
		v.Replace(next)
		a.log.Logf("reloaded %s: %d vertices, %d triangles", v.Source, v.VertexCount(), v.IndexCount()/3)
		n++
	}
	return n
}

func (a *App) logDiagnostics(path string, diags meshfile.Diagnostics) {
	if len(diags) == 0 {
		return
	}
	a.log.Logf("mesh %s: %d problems", path, len(diags))
	for _, d := range diags {
		a.log.Log("  " + d.String())
	}
}

// Run opens the window and blocks until it is closed.
func (a *App) Run() error {
	defer a.close()
	opts := graphics.Options{
		Title:      title,
		Width:      a.prefs.WindowWidth,
		Height:     a.prefs.WindowHeight,
		Fullscreen: a.prefs.Fullscreen,
		TargetFPS:  a.prefs.TargetFPS,
	}
	return graphics.Run(opts, a.init, a.update, a.draw)
}

func (a *App) init() error {
	rnd, err := render.New(a.log, render.TextureDir)
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	a.rnd = rnd
	if slot, ok := render.ParseShaderSlot(a.prefs.Shader); ok {
		a.rnd.SetShader(slot)
	}
	a.rnd.GridVisible = a.prefs.GridVisible
	if a.prefs.ConsoleFont != "" {
		if err := a.setFont(a.prefs.ConsoleFont); err != nil {
			a.log.Logf("font %q: %v", a.prefs.ConsoleFont, err)
		}
	}
	rl.DisableCursor()
	a.log.Logf("scene %s: %d volumes; ESC opens the console, try \"cmd help\"", a.scenePath, len(a.scene.Volumes))
	return nil
}

// update runs the per-frame pipeline: console, hot reload, input, camera, animation, aggregation.
func (a *App) update(dt float32) {
	a.term.Update()

	if a.watcher != nil {
		if changed := a.watcher.Poll(); len(changed) > 0 {
			a.reloadMeshes(changed)
		}
	}

	if !a.term.IsOpen() {
		if rl.IsKeyReleased(rl.KeyX) {
			a.rnd.NextShader()
		}
		controls.Apply(a.scene.Camera, sampleInput())
	}

	a.elapsed += dt
	a.scene.Update(a.elapsed)
	if h := rl.GetScreenHeight(); h > 0 {
		a.scene.Projection.Aspect = float32(rl.GetScreenWidth()) / float32(h)
	}
	a.frame = a.scene.Frame()

	vertices, triangles := a.frame.Stats()
	a.dbg.SetStats(vertices, triangles, a.rnd.Shader().String())
}

func (a *App) draw() {
	if a.frame != nil {
		a.rnd.Draw(a.frame, a.scene.Camera, a.scene.Projection)
	}
	a.term.Draw()
	a.dbg.Draw()
}

func sampleInput() controls.State {
	delta := rl.GetMouseDelta()
	return controls.State{
		Forward: rl.IsKeyDown(rl.KeyW),
		Back:    rl.IsKeyDown(rl.KeyS),
		Left:    rl.IsKeyDown(rl.KeyA),
		Right:   rl.IsKeyDown(rl.KeyD),
		Down:    rl.IsKeyDown(rl.KeyQ),
		Up:      rl.IsKeyDown(rl.KeyE),
		MouseDX: delta.X,
		MouseDY: delta.Y,
		Look:    rl.IsWindowFocused() && rl.IsCursorHidden(),
	}
}

// setFont loads the font matching search from assets/fonts for the console and overlays.
func (a *App) setFont(search string) error {
	path, err := fonts.Find(fonts.Dir, search)
	if err != nil {
		return err
	}
	font := rl.LoadFontEx(path, fontLoadSize, nil)
	if !rl.IsFontValid(font) {
		return fmt.Errorf("cannot load %s", path)
	}
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	a.unloadFont()
	a.font = font
	a.term.SetFont(font)
	a.dbg.SetFont(font)
	a.prefs.ConsoleFont = search
	a.log.Logf("font: %s", path)
	return nil
}

func (a *App) unloadFont() {
	if a.font.Texture.ID != 0 {
		rl.UnloadFont(a.font)
		a.font = rl.Font{}
	}
}

func (a *App) close() {
	a.unloadFont()
	if a.watcher != nil {
		_ = a.watcher.Close()
	}
	if a.rnd != nil {
		a.rnd.Close()
	}
}

// savePrefs copies the live settings into the preferences and writes them.
func (a *App) savePrefs() error {
	a.prefs.ShowFPS = a.dbg.ShowFPS
	a.prefs.GridVisible = a.rnd.GridVisible
	a.prefs.Shader = a.rnd.Shader().String()
	a.prefs.ScenePath = a.scenePath
	return engineconfig.Save(a.configPath, a.prefs)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
