package app

import (
	"fmt"
	"path/filepath"

	"trispin/internal/commands"
	"trispin/internal/fonts"
	"trispin/internal/render"
	"trispin/internal/scenefile"
)

// registerCommands adds the console commands. Output goes to the log, which the console shows.
func (a *App) registerCommands() {
	shaderFS := commands.NewFlagSet("shader")
	shaderName := shaderFS.String("name", "", "shader to use: def or tex")
	a.reg.Register("shader", "switch shader (--name def|tex, default: next)", shaderFS, func([]string) error {
		if *shaderName == "" {
			a.rnd.NextShader()
		} else {
			slot, ok := render.ParseShaderSlot(*shaderName)
			if !ok {
				return fmt.Errorf("unknown shader %q", *shaderName)
			}
			a.rnd.SetShader(slot)
		}
		a.log.Logf("shader: %s", a.rnd.Shader())
		return nil
	})

	camFS := commands.NewFlagSet("camera")
	speed := camFS.Float64("speed", 0, "move speed per key press")
	sensitivity := camFS.Float64("sensitivity", 0, "radians per pixel of pointer movement")
	reset := camFS.Bool("reset", false, "return to the start position")
	a.reg.Register("camera", "show or change the camera (--speed, --sensitivity, --reset)", camFS, func([]string) error {
		c := a.scene.Camera
		if *reset {
			c.Reset()
		}
		if *speed > 0 {
			c.MoveSpeed = float32(*speed)
		}
		if *sensitivity > 0 {
			c.MouseSensitivity = float32(*sensitivity)
		}
		a.log.Logf("camera: pos %.2f yaw %.3f pitch %.3f speed %.3f sensitivity %.4f",
			c.Position, c.Yaw, c.Pitch, c.MoveSpeed, c.MouseSensitivity)
		return nil
	})

	fpsFS := commands.NewFlagSet("fps")
	mem := fpsFS.Bool("mem", false, "toggle the heap overlay instead")
	a.reg.Register("fps", "toggle the FPS overlay (--mem for heap size)", fpsFS, func([]string) error {
		if *mem {
			a.dbg.ShowMemAlloc = !a.dbg.ShowMemAlloc
		} else {
			a.dbg.ShowFPS = !a.dbg.ShowFPS
		}
		return nil
	})

	a.reg.Register("stats", "toggle the geometry overlay and log frame totals", commands.NewFlagSet("stats"), func([]string) error {
		a.dbg.ShowStats = !a.dbg.ShowStats
		if a.frame != nil {
			v, t := a.frame.Stats()
			a.log.Logf("stats: %d volumes, %d vertices, %d triangles", len(a.frame.Draws), v, t)
		}
		return nil
	})

	a.reg.Register("grid", "toggle the ground grid", commands.NewFlagSet("grid"), func([]string) error {
		a.rnd.GridVisible = !a.rnd.GridVisible
		return nil
	})

	reloadFS := commands.NewFlagSet("reload")
	whole := reloadFS.Bool("scene", false, "rebuild the whole scene from its file")
	textures := reloadFS.Bool("textures", false, "also reload textures from assets/textures")
	a.reg.Register("reload", "re-read mesh files (--scene to rebuild the scene, --textures for images)", reloadFS, func([]string) error {
		if *textures {
			a.rnd.ForgetTextures()
			a.log.Log("textures will reload on next draw")
		}
		if *whole {
			if err := a.loadScene(); err != nil {
				return err
			}
			a.watchMeshes()
			a.log.Logf("scene %s: %d volumes", a.scenePath, len(a.scene.Volumes))
			return nil
		}
		a.log.Logf("reloaded %d meshes", a.reloadMeshes(nil))
		return nil
	})

	sceneFS := commands.NewFlagSet("scene")
	load := sceneFS.String("load", "", "switch to another scene file")
	save := sceneFS.String("save", "", "write the current scene to a file")
	a.reg.Register("scene", "load or save a scene file (--load path | --save path)", sceneFS, func([]string) error {
		switch {
		case *load != "":
			if !fileExists(*load) {
				return fmt.Errorf("no such scene: %s", *load)
			}
			prev := a.scenePath
			a.scenePath = *load
			if err := a.loadScene(); err != nil {
				a.scenePath = prev
				return err
			}
			a.watchMeshes()
			a.log.Logf("scene %s: %d volumes", a.scenePath, len(a.scene.Volumes))
		case *save != "":
			doc := scenefile.Snapshot(a.scene, filepath.Dir(*save))
			if err := scenefile.Save(*save, doc); err != nil {
				return err
			}
			a.log.Logf("saved scene to %s", *save)
		default:
			a.log.Logf("scene: %s", a.scenePath)
		}
		return nil
	})

	fontFS := commands.NewFlagSet("font")
	fontName := fontFS.String("name", "", "font to use, matched against files in assets/fonts")
	a.reg.Register("font", "list fonts or switch the console font (--name N)", fontFS, func([]string) error {
		if *fontName != "" {
			return a.setFont(*fontName)
		}
		list, err := fonts.ScanDir(fonts.Dir)
		if err != nil {
			return err
		}
		if len(list) == 0 {
			a.log.Logf("no fonts in %s", fonts.Dir)
		}
		for _, f := range list {
			a.log.Log("  " + f)
		}
		return nil
	})

	a.reg.Register("save", "save engine preferences", commands.NewFlagSet("save"), func([]string) error {
		if err := a.savePrefs(); err != nil {
			return err
		}
		a.log.Logf("saved preferences to %s", a.configPath)
		return nil
	})
}
