package main

import (
	"bytes"
	"fmt"
	"go/ast"
	"log"
	"os"

	"github.com/cs-au-dk/dataflow/analysis/cfg"
	"github.com/cs-au-dk/dataflow/analysis/constprop"
	"github.com/cs-au-dk/dataflow/analysis/dataflow"
	"github.com/cs-au-dk/dataflow/pkgutil"
	"github.com/cs-au-dk/dataflow/utils"
	"github.com/cs-au-dk/dataflow/utils/dot"

	"golang.org/x/tools/go/packages"
)

var (
	opts = utils.Opts()
	task = opts.Task()
)

func main() {
	utils.ParseArgs()

	pkgs, err := pkgutil.LoadPackages(pkgutil.LoadConfig{
		Dir:          opts.Dir(),
		IncludeTests: opts.IncludeTests(),
	}, "./...")
	if err != nil {
		log.Println("Failed pkgutil.LoadPackages")
		log.Println(err)
		os.Exit(1)
	}

	pkg, fun := findFunction(pkgs, opts.Function())
	if fun == nil {
		log.Fatalf("No function named %q in the loaded packages", opts.Function())
	}

	g := cfg.FromFunc(pkg.Fset, fun)

	switch {
	case task.IsCfgToDot():
		cfgToDot(g)
	case task.IsConstProp():
		constProp(pkg, g)
	}
}

// findFunction locates the declaration of the named function across
// the loaded packages. Function names need not be fully qualified.
func findFunction(pkgs []*packages.Package, name string) (*packages.Package, *ast.FuncDecl) {
	for _, pkg := range pkgs {
		for _, file := range pkg.Syntax {
			for _, decl := range file.Decls {
				if fd, ok := decl.(*ast.FuncDecl); ok &&
					fd.Name.Name == name && fd.Body != nil {
					return pkg, fd
				}
			}
		}
	}
	return nil, nil
}

func cfgToDot(g *cfg.Graph) {
	out := opts.Output()
	if out == "" {
		out = g.Fun().Name.Name
	}

	var buf bytes.Buffer
	if err := g.Visualize().WriteDot(&buf); err != nil {
		log.Fatalln("Failed to encode the control-flow graph:", err)
	}

	img, err := dot.DotToImage(out, opts.OutputFormat(), buf.Bytes())
	if err != nil {
		log.Fatalln("Failed to render the control-flow graph:", err)
	}
	utils.VerbosePrint("Wrote %s\n", img)
}

// constProp runs the constant propagation analysis on the targeted
// function and prints the lattice element before every statement.
func constProp(pkg *packages.Package, g *cfg.Graph) {
	if pkg.TypesInfo == nil {
		log.Fatalln("No type information for the targeted function")
	}

	results := dataflow.Run(g, constprop.Analysis(pkg.TypesInfo), g.AllPoints())

	fmt.Printf("Constant propagation results for %s:\n", g.Fun().Name.Name)
	results.ForEachOrdered(func(p cfg.Point, el constprop.Value) {
		n := g.NodeAt(p)
		pos := g.FileSet().Position(n.Pos())
		fmt.Printf("%s:%-4d %-30s %s\n", pos.Filename, pos.Line, cfg.NodeString(g.FileSet(), n), el)
	})
}
