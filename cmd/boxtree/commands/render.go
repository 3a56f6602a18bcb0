package commands

import (
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Render implements 'boxtree render'.
func Render(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	output := fs.String("o", "", "Output PNG path (default: scene name with .png)")
	strict := fs.Bool("strict", false, "Fail on style errors instead of warning")
	flags := addSceneFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	engine, s, err := flags.build(fs)
	if engine == nil {
		return err
	}
	defer engine.Shutdown()
	if err != nil {
		if *strict {
			return err
		}
		fmt.Fprintf(out, "⚠ %v\n", err)
	}

	path := *output
	if path == "" {
		scene := fs.Arg(0)
		path = strings.TrimSuffix(scene, filepath.Ext(scene)) + ".png"
	}
	if err := engine.SavePNG(s, path); err != nil {
		return err
	}

	w, h := engine.Context().SurfaceSize(s)
	fmt.Fprintf(out, "✓ Wrote %s (%gx%g, %d elements)\n", path, w, h, engine.Context().ElementCount())
	return nil
}
