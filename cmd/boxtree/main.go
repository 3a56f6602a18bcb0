package main

import (
	"fmt"
	"os"

	"github.com/agiangrant/boxtree"
	"github.com/agiangrant/boxtree/cmd/boxtree/commands"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "render":
		err = commands.Render(args, os.Stdout)
	case "dump":
		err = commands.Dump(args, os.Stdout)
	case "version", "-v", "--version":
		fmt.Printf("boxtree version %s\n", boxtree.Version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`boxtree - retained layout engine CLI

Usage: boxtree <command> [options] <scene.toml>

Commands:
  render   Lay out a scene and write it as PNG
  dump     Lay out a scene and print the element rectangles
  version  Print version information
  help     Show this help message

Examples:
  boxtree render -o out.png scene.toml
  boxtree render -dpi 192 scene.toml
  boxtree dump -width 640 scene.toml

Configuration:
  Engine defaults are read from boxtree.toml in the current directory.
  Use -config to point at another file.`)
}
