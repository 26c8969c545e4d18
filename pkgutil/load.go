package pkgutil

import (
	"fmt"
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"path/filepath"

	"golang.org/x/tools/go/packages"
)

// LoadConfig is a structure according to which Go package loading is
// configured. Dir is the root of the module to load; if IncludeTests
// is true, package loading will also expose test functions.
type LoadConfig struct {
	Dir          string
	IncludeTests bool
}

// loadMode avoids deprecation warnings from using packages.LoadAllSyntax.
// It sets all packages.Need* options.
const loadMode packages.LoadMode = packages.NeedName | packages.NeedFiles | packages.NeedCompiledGoFiles |
	packages.NeedImports | packages.NeedTypes | packages.NeedTypesSizes | packages.NeedSyntax |
	packages.NeedTypesInfo | packages.NeedDeps

func parseFile(fset *token.FileSet, filename string, src []byte) (*ast.File, error) {
	const mode = parser.AllErrors | parser.ParseComments
	return parser.ParseFile(fset, filename, src, mode)
}

// LoadPackages loads the AST and type information of the packages
// matched by the query, rooted at the configured directory.
func LoadPackages(cfg LoadConfig, query string) ([]*packages.Package, error) {
	dir, err := filepath.Abs(cfg.Dir)
	if err != nil {
		return nil, err
	}

	config := &packages.Config{
		Mode:      loadMode,
		Tests:     cfg.IncludeTests,
		Dir:       dir,
		ParseFile: parseFile,
	}

	pkgs, err := packages.Load(config, query)
	if err != nil {
		return nil, err
	}
	if packages.PrintErrors(pkgs) > 0 {
		return nil, fmt.Errorf("errors encountered while loading %q", query)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no packages matched %q", query)
	}
	return pkgs, nil
}

// SourcePackage is a single type-checked source file, loaded without
// touching the file system. It is mainly useful for testing.
type SourcePackage struct {
	Fset *token.FileSet
	File *ast.File
	Pkg  *types.Package
	Info *types.Info
}

// LoadSource parses and type-checks a package given as a string.
// Imports are resolved against the compiler's export data, so the
// source may only import standard library packages.
func LoadSource(source string) (*SourcePackage, error) {
	fset := token.NewFileSet()
	file, err := parseFile(fset, "testpackage/main.go", []byte(source))
	if err != nil {
		return nil, err
	}

	info := &types.Info{
		Types: make(map[ast.Expr]types.TypeAndValue),
		Defs:  make(map[*ast.Ident]types.Object),
		Uses:  make(map[*ast.Ident]types.Object),
	}
	conf := types.Config{Importer: importer.Default()}
	pkg, err := conf.Check("testpackage", fset, []*ast.File{file}, info)
	if err != nil {
		return nil, err
	}

	return &SourcePackage{Fset: fset, File: file, Pkg: pkg, Info: info}, nil
}

// FindFunc locates the declaration of the named function in the file.
func (p *SourcePackage) FindFunc(name string) *ast.FuncDecl {
	for _, decl := range p.File.Decls {
		if fd, ok := decl.(*ast.FuncDecl); ok && fd.Name.Name == name {
			return fd
		}
	}
	return nil
}
