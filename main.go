package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ardanlabs/pybindgen/config"
	"github.com/ardanlabs/pybindgen/generator"
	"github.com/ardanlabs/pybindgen/parser"
)

func main() {
	headerPath := flag.String("header", "", "Path to C header file")
	configPath := flag.String("config", "", "Path to curated YAML configuration")
	outputDir := flag.String("output", ".", "Output directory for generated Python files")
	libName := flag.String("lib", "", "Library name (e.g., 'mylib' for libmylib.so)")
	flag.Parse()

	if *headerPath == "" {
		fmt.Fprintln(os.Stderr, "error: -header flag is required")
		flag.Usage()
		os.Exit(1)
	}

	if *libName == "" {
		base := filepath.Base(*headerPath)
		ext := filepath.Ext(base)
		*libName = base[:len(base)-len(ext)]
	}

	headerData, err := os.ReadFile(*headerPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading header: %v\n", err)
		os.Exit(1)
	}

	feed, err := parser.Parse(string(headerData))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error parsing header: %v\n", err)
		os.Exit(1)
	}

	cfg := config.Default()
	if *configPath != "" {
		cfg, err = config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	gen := generator.New(*libName, cfg, feed)

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "error creating output directory: %v\n", err)
		os.Exit(1)
	}

	files, warnings, err := gen.Generate()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error generating code: %v\n", err)
		os.Exit(1)
	}

	for _, warning := range warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", warning)
	}

	for filename, content := range files {
		path := filepath.Join(*outputDir, filename)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "error writing %s: %v\n", filename, err)
			os.Exit(1)
		}
		fmt.Printf("Generated: %s\n", path)
	}
}
