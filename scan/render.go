package scan

import (
	"bytes"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"
	"text/template"

	"golang.org/x/tools/imports"

	"github.com/erraggy/oasgen/marker"
	"github.com/erraggy/oasgen/oaserrors"
)

// GeneratedHeader is the first line of every rendered file.
const GeneratedHeader = "// Code generated by oasgen scan. DO NOT EDIT."

// Target describes the package the registration code is written into.
type Target struct {
	// Package is the package name of the generated file.
	Package string
	// ImportPath is the import path of that package. Definitions declared
	// in it are referenced without a qualifier.
	ImportPath string
}

var fileTemplate = template.Must(template.New("registry").Parse(`{{.Header}}

package {{.Package}}

import (
	"github.com/erraggy/oasgen/discovery"
	"github.com/erraggy/oasgen/marker"
	"github.com/erraggy/oasgen/routes"
{{- range .Imports}}
	{{.Alias}} {{printf "%q" .Path}}
{{- end}}
)

// Declarations returns the definitions declared by oasgen directives.
func Declarations() []marker.Declaration {
	return []marker.Declaration{
{{- range .Declarations}}
		{{.}},
{{- end}}
	}
}

// Source returns a discovery source serving Declarations.
func Source() *discovery.StaticSource {
	return discovery.NewStaticSource(Declarations()...)
}

// Routes registers the directive routes and handler markers on t.
func Routes(t *routes.Table) *routes.Table {
{{- range .Attachments}}
	{{.}}
{{- end}}
{{- range .Routes}}
	{{.}}
{{- end}}
	return t
}
`))

type importSpec struct {
	Alias string
	Path  string
}

type fileData struct {
	Header       string
	Package      string
	Imports      []importSpec
	Declarations []string
	Attachments  []string
	Routes       []string
}

// Render writes Go source registering the scan result: a Declarations
// function, a discovery Source, and a Routes function for a routes.Table.
// The output is formatted.
func Render(w io.Writer, res *Result, target Target) error {
	if target.Package == "" {
		return fmt.Errorf("scan: %w", &oaserrors.ConfigError{Option: "package", Message: "package name is required"})
	}
	data := fileData{Header: GeneratedHeader, Package: target.Package}

	aliases := make(map[string]string)
	used := map[string]bool{"discovery": true, "marker": true, "routes": true}
	for _, def := range res.Definitions {
		if !def.HasFactory || def.PkgPath == target.ImportPath {
			continue
		}
		if def.PkgName == "main" {
			return fmt.Errorf("scan: %w", &oaserrors.DiscoveryError{
				Scope:    def.PkgPath,
				Kind:     string(def.Declaration.Kind),
				Location: def.Declaration.ID.Location,
				Message:  "definition types in package main cannot be imported",
			})
		}
		if _, ok := aliases[def.PkgPath]; ok {
			continue
		}
		alias := def.PkgName
		for n := 2; used[alias]; n++ {
			alias = def.PkgName + strconv.Itoa(n)
		}
		used[alias] = true
		aliases[def.PkgPath] = alias
		data.Imports = append(data.Imports, importSpec{Alias: alias, Path: def.PkgPath})
	}
	slices.SortFunc(data.Imports, func(a, b importSpec) int { return strings.Compare(a.Path, b.Path) })

	for _, def := range res.Definitions {
		factory := ""
		if def.HasFactory {
			typ := def.TypeName
			if alias, ok := aliases[def.PkgPath]; ok {
				typ = alias + "." + typ
			}
			factory = "new(" + typ + ")"
		}
		data.Declarations = append(data.Declarations, declarationLiteral(def.Declaration, factory))
	}
	for _, m := range res.Markers {
		data.Attachments = append(data.Attachments, fmt.Sprintf("t.Attach(%q, %q, marker.Declaration%s)",
			m.HandlerType, m.Method, declarationLiteral(m.Declaration, "")))
	}
	for _, r := range res.Routes {
		call := fmt.Sprintf("t.Handle(%q, %q, %s)", r.Method, r.Path, identityLiteral(r.Handler))
		if len(r.Collections) > 0 {
			call += ".In(" + quoteAll(r.Collections) + ")"
		}
		data.Routes = append(data.Routes, call)
	}

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, data); err != nil {
		return fmt.Errorf("scan: rendering: %w", err)
	}
	src, err := imports.Process("", buf.Bytes(), nil)
	if err != nil {
		return fmt.Errorf("scan: formatting generated code: %w", err)
	}
	_, err = w.Write(src)
	return err
}

var kindConsts = map[marker.Kind]string{
	marker.KindSchema:         "marker.KindSchema",
	marker.KindResponse:       "marker.KindResponse",
	marker.KindRequestBody:    "marker.KindRequestBody",
	marker.KindCallback:       "marker.KindCallback",
	marker.KindSecurityScheme: "marker.KindSecurityScheme",
	marker.KindParameters:     "marker.KindParameters",
	marker.KindTag:            "marker.KindTag",
	marker.KindExtension:      "marker.KindExtension",
	marker.KindOperation:      "marker.KindOperation",
}

var levelConsts = map[marker.Level]string{
	marker.LevelClass:  "marker.LevelClass",
	marker.LevelMethod: "marker.LevelMethod",
}

func declarationLiteral(d marker.Declaration, factory string) string {
	fields := []string{
		"ID: " + identityLiteral(d.ID),
		"Kind: " + kindConsts[d.Kind],
	}
	if d.Name != "" {
		fields = append(fields, "Name: "+strconv.Quote(d.Name))
	}
	if d.Ref != "" {
		fields = append(fields, "Ref: "+strconv.Quote(d.Ref))
	}
	if lvl, ok := levelConsts[d.Level]; ok {
		fields = append(fields, "Level: "+lvl)
	}
	if len(d.Attrs) > 0 {
		var attrs []string
		for _, k := range slices.Sorted(maps.Keys(d.Attrs)) {
			attrs = append(attrs, fmt.Sprintf("%q: %q", k, fmt.Sprint(d.Attrs[k])))
		}
		fields = append(fields, "Attrs: map[string]any{"+strings.Join(attrs, ", ")+"}")
	}
	if len(d.Collections) > 0 {
		fields = append(fields, "Collections: []string{"+quoteAll(d.Collections)+"}")
	}
	if factory != "" {
		fields = append(fields, "Factory: "+factory)
	}
	return "{" + strings.Join(fields, ", ") + "}"
}

func identityLiteral(id marker.Identity) string {
	fields := []string{"Type: " + strconv.Quote(id.Type)}
	if id.Method != "" {
		fields = append(fields, "Method: "+strconv.Quote(id.Method))
	}
	if id.Location != "" {
		fields = append(fields, "Location: "+strconv.Quote(id.Location))
	}
	return "marker.Identity{" + strings.Join(fields, ", ") + "}"
}

func quoteAll(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = strconv.Quote(v)
	}
	return strings.Join(quoted, ", ")
}
