package scan

import (
	"context"
	"fmt"
	"go/ast"
	gotoken "go/token"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/erraggy/oasgen/marker"
	"github.com/erraggy/oasgen/oaserrors"
	"github.com/erraggy/oasgen/oaslog"
)

// Definition is a type that declares a definition through a directive.
type Definition struct {
	// Declaration is the declaration without its factory.
	Declaration marker.Declaration
	// PkgPath and PkgName identify the declaring package.
	PkgPath string
	PkgName string
	// TypeName is the unqualified declaring type.
	TypeName string
	// HasFactory reports whether the type declares the factory method of
	// its kind, e.g. BuildSchema.
	HasFactory bool
}

// HandlerMarker is a usage directive attached to a handler type, handler
// method or handler function.
type HandlerMarker struct {
	// HandlerType is the qualified type or function name.
	HandlerType string
	// Method is empty for type and function level markers.
	Method      string
	Declaration marker.Declaration
}

// Route is a "//openapi:route METHOD PATH" directive.
type Route struct {
	Method      string
	Path        string
	Handler     marker.Identity
	Collections []string
}

// Result is everything found by a scan, in package, file and source order.
type Result struct {
	Definitions []Definition
	Markers     []HandlerMarker
	Routes      []Route
}

func (r *Result) merge(other *Result) {
	r.Definitions = append(r.Definitions, other.Definitions...)
	r.Markers = append(r.Markers, other.Markers...)
	r.Routes = append(r.Routes, other.Routes...)
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithDir sets the directory packages are loaded from and locations are
// reported relative to. Defaults to ".".
func WithDir(dir string) Option {
	return func(s *Scanner) {
		s.dir = dir
	}
}

// WithLogger sets the logger. The default discards all output.
func WithLogger(l oaslog.Logger) Option {
	return func(s *Scanner) {
		s.logger = l
	}
}

// Scanner finds oasgen directives in Go source.
type Scanner struct {
	dir    string
	logger oaslog.Logger
}

// New returns a Scanner.
func New(opts ...Option) *Scanner {
	s := &Scanner{dir: "."}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = oaslog.OrNop(s.logger)
	return s
}

// Scan loads the packages matching patterns (default "./...") and
// collects their directives.
func (s *Scanner) Scan(ctx context.Context, patterns ...string) (*Result, error) {
	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}
	fset := gotoken.NewFileSet()
	cfg := &packages.Config{
		Context: ctx,
		Mode:    packages.NeedName | packages.NeedFiles | packages.NeedSyntax,
		Dir:     s.dir,
		Fset:    fset,
	}
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("scan: loading packages: %w", err)
	}
	slices.SortFunc(pkgs, func(a, b *packages.Package) int { return strings.Compare(a.PkgPath, b.PkgPath) })

	res := &Result{}
	for _, pkg := range pkgs {
		if len(pkg.Errors) > 0 {
			return nil, fmt.Errorf("scan: %w", &oaserrors.DiscoveryError{
				Scope:   pkg.PkgPath,
				Message: "package has errors",
				Cause:   pkg.Errors[0],
			})
		}
		found, err := s.ScanFiles(pkg.PkgPath, pkg.Name, fset, pkg.Syntax)
		if err != nil {
			return nil, err
		}
		s.logger.Debug("scanned package", "package", pkg.PkgPath,
			"definitions", len(found.Definitions), "markers", len(found.Markers), "routes", len(found.Routes))
		res.merge(found)
	}
	return res, nil
}

// ScanFiles collects the directives of the parsed files of one package.
func (s *Scanner) ScanFiles(pkgPath, pkgName string, fset *gotoken.FileSet, files []*ast.File) (*Result, error) {
	files = slices.Clone(files)
	slices.SortFunc(files, func(a, b *ast.File) int {
		return strings.Compare(fset.Position(a.Pos()).Filename, fset.Position(b.Pos()).Filename)
	})

	methods := make(map[string][]string)
	for _, f := range files {
		for _, decl := range f.Decls {
			if fn, ok := decl.(*ast.FuncDecl); ok && fn.Recv != nil {
				recv := receiverType(fn)
				methods[recv] = append(methods[recv], fn.Name.Name)
			}
		}
	}

	p := &pkgScan{
		scanner: s,
		pkgPath: pkgPath,
		pkgName: pkgName,
		fset:    fset,
		methods: methods,
		res:     &Result{},
	}
	for _, f := range files {
		for _, decl := range f.Decls {
			var err error
			switch d := decl.(type) {
			case *ast.GenDecl:
				err = p.genDecl(d)
			case *ast.FuncDecl:
				err = p.funcDecl(d)
			}
			if err != nil {
				return nil, fmt.Errorf("scan: %w", err)
			}
		}
	}
	return p.res, nil
}

type pkgScan struct {
	scanner *Scanner
	pkgPath string
	pkgName string
	fset    *gotoken.FileSet
	methods map[string][]string
	res     *Result
}

func (p *pkgScan) qualify(name string) string {
	return p.pkgPath + "." + name
}

func (p *pkgScan) location(pos gotoken.Pos) string {
	position := p.fset.Position(pos)
	file := position.Filename
	if abs, err := filepath.Abs(p.scanner.dir); err == nil {
		if rel, err := filepath.Rel(abs, file); err == nil && !strings.HasPrefix(rel, "..") {
			file = rel
		}
	}
	return fmt.Sprintf("%s:%d", filepath.ToSlash(file), position.Line)
}

type located struct {
	Directive
	pos gotoken.Pos
}

func (p *pkgScan) directives(groups ...*ast.CommentGroup) ([]located, error) {
	var out []located
	for _, g := range groups {
		if g == nil {
			continue
		}
		for _, c := range g.List {
			d, ok, err := ParseDirective(c.Text)
			if !ok {
				continue
			}
			if err != nil {
				return nil, p.fail(c.Pos(), "", "invalid directive", err)
			}
			out = append(out, located{Directive: d, pos: c.Pos()})
		}
	}
	return out, nil
}

func (p *pkgScan) fail(pos gotoken.Pos, kind, msg string, cause error) error {
	return &oaserrors.DiscoveryError{
		Scope:    p.pkgPath,
		Kind:     kind,
		Location: p.location(pos),
		Message:  msg,
		Cause:    cause,
	}
}

func (p *pkgScan) genDecl(gd *ast.GenDecl) error {
	if gd.Tok != gotoken.TYPE {
		return nil
	}
	for _, spec := range gd.Specs {
		ts := spec.(*ast.TypeSpec)
		groups := []*ast.CommentGroup{ts.Doc}
		if len(gd.Specs) == 1 {
			groups = append(groups, gd.Doc)
		}
		dirs, err := p.directives(groups...)
		if err != nil {
			return err
		}
		typeName := ts.Name.Name
		id := marker.Identity{Type: p.qualify(typeName)}
		for _, d := range dirs {
			id.Location = p.location(d.pos)
			if d.Name == RouteDirective {
				return p.fail(d.pos, "", "route directive must be on a method or function", nil)
			}
			kind, ok := marker.ParseKind(d.Name)
			if !ok {
				return p.fail(d.pos, d.Name, "unknown directive", nil)
			}
			decl := declaration(kind, id, d.Directive)
			if decl.IsUsage() || kind == marker.KindOperation {
				decl.Level = marker.LevelClass
				p.res.Markers = append(p.res.Markers, HandlerMarker{HandlerType: id.Type, Declaration: decl})
				continue
			}
			decl.Level = marker.LevelClass
			p.res.Definitions = append(p.res.Definitions, Definition{
				Declaration: decl,
				PkgPath:     p.pkgPath,
				PkgName:     p.pkgName,
				TypeName:    typeName,
				HasFactory:  slices.Contains(p.methods[typeName], FactoryMethod(kind)),
			})
		}
	}
	return nil
}

func (p *pkgScan) funcDecl(fn *ast.FuncDecl) error {
	dirs, err := p.directives(fn.Doc)
	if err != nil || len(dirs) == 0 {
		return err
	}
	var handlerType, method string
	if fn.Recv != nil {
		handlerType, method = p.qualify(receiverType(fn)), fn.Name.Name
	} else {
		handlerType = p.qualify(fn.Name.Name)
	}
	handler := marker.Identity{Type: handlerType, Method: method, Location: p.location(fn.Pos())}

	for _, d := range dirs {
		if d.Name == RouteDirective {
			if len(d.Args) != 2 {
				return p.fail(d.pos, "", "route directive needs a method and a path", nil)
			}
			p.res.Routes = append(p.res.Routes, Route{
				Method:      strings.ToUpper(d.Args[0]),
				Path:        d.Args[1],
				Handler:     handler,
				Collections: splitList(d.Attrs["collections"]),
			})
			continue
		}
		kind, ok := marker.ParseKind(d.Name)
		if !ok {
			return p.fail(d.pos, d.Name, "unknown directive", nil)
		}
		decl := declaration(kind, marker.Identity{Type: handlerType, Method: method, Location: p.location(d.pos)}, d.Directive)
		if !decl.IsUsage() && kind != marker.KindOperation {
			return p.fail(d.pos, d.Name, "definitions must be declared on types; name the definition to use it here", nil)
		}
		decl.Level = marker.LevelClass
		if method != "" {
			decl.Level = marker.LevelMethod
		}
		p.res.Markers = append(p.res.Markers, HandlerMarker{HandlerType: handlerType, Method: method, Declaration: decl})
	}
	return nil
}

// declaration converts a directive. The first positional argument names
// the referenced definition; name and collections have dedicated fields.
func declaration(kind marker.Kind, id marker.Identity, d Directive) marker.Declaration {
	decl := marker.Declaration{ID: id, Kind: kind}
	if len(d.Args) > 0 {
		decl.Ref = d.Args[0]
	}
	for k, v := range d.Attrs {
		switch k {
		case "name":
			decl.Name = v
		case "collections":
			decl.Collections = splitList(v)
		default:
			if decl.Attrs == nil {
				decl.Attrs = make(map[string]any)
			}
			decl.Attrs[k] = v
		}
	}
	return decl
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func receiverType(fn *ast.FuncDecl) string {
	if fn.Recv == nil || len(fn.Recv.List) == 0 {
		return ""
	}
	expr := fn.Recv.List[0].Type
	for {
		switch t := expr.(type) {
		case *ast.StarExpr:
			expr = t.X
		case *ast.ParenExpr:
			expr = t.X
		case *ast.IndexExpr:
			expr = t.X
		case *ast.IndexListExpr:
			expr = t.X
		case *ast.Ident:
			return t.Name
		default:
			return ""
		}
	}
}

// FactoryMethod returns the method a type implements to build the body
// of a definition of kind, e.g. "BuildSchema".
func FactoryMethod(kind marker.Kind) string {
	switch kind {
	case marker.KindSchema:
		return "BuildSchema"
	case marker.KindResponse:
		return "BuildResponse"
	case marker.KindRequestBody:
		return "BuildRequestBody"
	case marker.KindCallback:
		return "BuildCallback"
	case marker.KindSecurityScheme:
		return "BuildSecurityScheme"
	case marker.KindParameters:
		return "BuildParameters"
	case marker.KindTag:
		return "BuildTag"
	case marker.KindExtension:
		return "BuildExtension"
	}
	return ""
}
