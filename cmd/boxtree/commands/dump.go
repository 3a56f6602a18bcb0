package commands

import (
	"flag"
	"fmt"
	"io"
)

// Dump implements 'boxtree dump'.
func Dump(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("dump", flag.ContinueOnError)
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
		fmt.Fprintf(out, "⚠ %v\n", err)
	}
	return engine.DumpLayout(out, s)
}
