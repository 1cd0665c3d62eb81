package main

import (
	"flag"
	"fmt"
	"os"

	"trispin/internal/app"
	"trispin/internal/engineconfig"
)

func main() {
	var opts app.Options
	flag.StringVar(&opts.ConfigPath, "config", engineconfig.EngineConfigPath, "engine preferences (JSON)")
	flag.StringVar(&opts.ScenePath, "scene", "", "scene file (YAML); overrides the config")
	flag.StringVar(&opts.EnvPath, "env", ".env", "environment file")
	flag.Parse()

	a, err := app.New(opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, "trispin:", err)
		os.Exit(1)
	}
	if err := a.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "trispin:", err)
		os.Exit(1)
	}
}
