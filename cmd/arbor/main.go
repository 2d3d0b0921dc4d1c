package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/arbor/internal/config"
	"github.com/jask/arbor/internal/export"
	"github.com/jask/arbor/internal/layout"
	"github.com/jask/arbor/internal/tree"
	"github.com/jask/arbor/internal/tui"
	"github.com/jask/arbor/internal/viewport"
)

func main() {
	renderMode := flag.String("render", "", "one-shot render instead of the interactive view: svg or d3")
	outPath := flag.String("o", "", "output path for -render (default stdout)")
	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatalf("usage: arbor [-render svg|d3 [-o out]] <tree.json|tree.yaml>")
	}
	path := flag.Arg(0)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	raw, err := tree.Load(path)
	if err != nil {
		log.Fatalf("load tree: %v", err)
	}

	if *renderMode != "" {
		if err := renderOnce(cfg, raw, *renderMode, *outPath); err != nil {
			log.Fatalf("render: %v", err)
		}
		return
	}

	app, err := tui.New(cfg, path, raw)
	if err != nil {
		log.Fatalf("%v", err)
	}
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}

// renderOnce lays the tree out once and writes the chosen export format.
func renderOnce(cfg config.Config, raw []tree.RawNode, mode, outPath string) error {
	nodes := tree.Annotate(raw)
	root, err := tree.Root(nodes)
	if err != nil {
		return err
	}

	opts := layout.Defaults()
	if cfg.Tree.Orientation == string(layout.Vertical) {
		opts.Orientation = layout.Vertical
	}
	opts.DepthFactor = cfg.Tree.DepthFactor
	opts.InitialDepth = cfg.Tree.InitialDepth
	positioned, links := layout.New(opts).Layout(root)

	vp := viewport.New(cfg.Viewport.TranslateX, cfg.Viewport.TranslateY,
		cfg.Viewport.ScaleMin, cfg.Viewport.ScaleMax)

	var w io.Writer = os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create %s: %w", outPath, err)
		}
		defer f.Close()
		w = f
	}

	switch mode {
	case "svg":
		return export.WriteSVG(w, positioned, links, export.SVGOptions{
			PathFunc:  export.PathFunc(cfg.Tree.PathFunc),
			Transform: vp.Transform(),
		})
	case "d3":
		payload := export.BuildD3(positioned, links, export.PathFunc(cfg.Tree.PathFunc), vp.Transform())
		return export.WriteD3(w, payload)
	default:
		return fmt.Errorf("unknown render mode %q (want svg or d3)", mode)
	}
}
