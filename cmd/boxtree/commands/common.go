package commands

import (
	"flag"
	"fmt"

	"github.com/agiangrant/boxtree"
	"github.com/agiangrant/boxtree/retained"
)

// sceneFlags are shared by every command that builds a scene.
type sceneFlags struct {
	config        *string
	dpi           *float64
	width, height *float64
	logLevel      *string
}

func addSceneFlags(fs *flag.FlagSet) *sceneFlags {
	return &sceneFlags{
		config:   fs.String("config", "boxtree.toml", "Path to engine configuration"),
		dpi:      fs.Float64("dpi", 0, "Override display DPI on both axes"),
		width:    fs.Float64("width", 0, "Override surface width"),
		height:   fs.Float64("height", 0, "Override surface height"),
		logLevel: fs.String("log-level", "", "Override debug.log_level (debug, info, warn, error)"),
	}
}

// build loads config and scene, applies overrides and builds the scene.
// Style errors are returned alongside a usable engine.
func (f *sceneFlags) build(fs *flag.FlagSet) (*boxtree.Engine, retained.SurfaceHandle, error) {
	if fs.NArg() != 1 {
		return nil, 0, fmt.Errorf("%s: expected exactly one scene file", fs.Name())
	}

	cfg, err := boxtree.LoadConfig(*f.config)
	if err != nil {
		return nil, 0, err
	}
	if *f.dpi > 0 {
		cfg.DPI.X, cfg.DPI.Y = float32(*f.dpi), float32(*f.dpi)
	}
	if *f.logLevel != "" {
		cfg.Debug.LogLevel = *f.logLevel
	}

	sc, err := boxtree.LoadScene(fs.Arg(0))
	if err != nil {
		return nil, 0, err
	}
	if *f.width > 0 {
		sc.Surface.Width = float32(*f.width)
	}
	if *f.height > 0 {
		sc.Surface.Height = float32(*f.height)
	}

	engine, err := boxtree.NewEngine(cfg)
	if err != nil {
		return nil, 0, err
	}
	s, err := engine.BuildScene(sc)
	if s == 0 {
		engine.Shutdown()
		return nil, 0, err
	}
	return engine, s, err
}
