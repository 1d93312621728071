package paths

import (
	"fmt"
	"slices"

	"github.com/erraggy/oasgen/marker"
	"github.com/erraggy/oasgen/oas"
	"github.com/erraggy/oasgen/oaserrors"
	"github.com/erraggy/oasgen/oaslog"
	"github.com/erraggy/oasgen/routes"
)

// DefaultResponseDescription describes the response added to operations
// that declare none.
const DefaultResponseDescription = "Default response"

const defaultStatus = "200"

// operationBuilder assembles one operation. Each slot is filled by the
// highest-precedence marker that provides it.
type operationBuilder struct {
	location string // "METHOD /template"
	template string
	refs     Refs
	logger   oaslog.Logger
}

func (b *operationBuilder) build(markers []marker.Declaration) (*oas.Operation, error) {
	markers = ordered(markers)
	op := &oas.Operation{}

	var meta *marker.Declaration
	if metas := ofKind(markers, marker.KindOperation); len(metas) > 0 {
		meta = &metas[0]
		b.applyMeta(op, *meta)
	}

	var err error
	if op.Parameters, err = b.parameters(ofKind(markers, marker.KindParameters)); err != nil {
		return nil, err
	}
	if op.RequestBody, err = b.requestBody(ofKind(markers, marker.KindRequestBody)); err != nil {
		return nil, err
	}
	if op.Responses, err = b.responses(ofKind(markers, marker.KindResponse)); err != nil {
		return nil, err
	}
	if op.Security, err = b.security(markers); err != nil {
		return nil, err
	}
	if op.Callbacks, err = b.callbacks(ofKind(markers, marker.KindCallback)); err != nil {
		return nil, err
	}
	if op.Extra, err = b.extensions(ofKind(markers, marker.KindExtension)); err != nil {
		return nil, err
	}
	op.Tags = b.tags(meta, ofKind(markers, marker.KindTag))

	for _, m := range markers {
		switch m.Kind {
		case marker.KindSchema:
			b.logger.Debug("ignoring schema marker on route", "route", b.location, "id", m.ID.String())
		}
	}
	return op, nil
}

func (b *operationBuilder) applyMeta(op *oas.Operation, m marker.Declaration) {
	op.OperationID = m.Attr("id")
	if op.OperationID == "" {
		op.OperationID = m.Attr("operationId")
	}
	op.Summary = m.Attr("summary")
	op.Description = m.Attr("description")
	op.Deprecated = m.Flag("deprecated")
}

func (b *operationBuilder) unresolved(kind marker.Kind, name, field string) error {
	section := kind.Section()
	ref := ""
	if section != "" {
		ref = kind.Ref(name)
	} else {
		section = string(kind)
	}
	return &oaserrors.UnresolvedReferenceError{
		Ref:      ref,
		Kind:     section,
		Name:     name,
		Location: b.location,
		Field:    field,
	}
}

func (b *operationBuilder) invalid(m marker.Declaration, msg string) error {
	return &oaserrors.ConfigError{
		Option:  string(m.Kind),
		Value:   m.ID.String(),
		Message: fmt.Sprintf("%s: %s", b.location, msg),
	}
}

// parameters collects parameters keyed by location and name, then adds a
// required string path parameter for every undeclared placeholder. Path
// parameters come first, in template order.
func (b *operationBuilder) parameters(markers []marker.Declaration) ([]*oas.Parameter, error) {
	type slot struct{ in, name string }
	seen := make(map[slot]bool)
	var params []*oas.Parameter

	for _, m := range markers {
		list, err := b.parameterList(m)
		if err != nil {
			return nil, err
		}
		for _, p := range list {
			if p == nil {
				continue
			}
			k := slot{in: p.In, name: p.Name}
			if seen[k] {
				continue
			}
			seen[k] = true
			if p.In == oas.ParamInPath {
				p.Required = true
			}
			params = append(params, p)
		}
	}

	placeholders := routes.Placeholders(b.template)
	for _, name := range placeholders {
		if !seen[slot{in: oas.ParamInPath, name: name}] {
			params = append(params, &oas.Parameter{
				Name:     name,
				In:       oas.ParamInPath,
				Required: true,
				Schema:   &oas.Schema{Type: "string"},
			})
		}
	}

	rank := func(p *oas.Parameter) int {
		if p.In != oas.ParamInPath {
			return len(placeholders) + 1
		}
		if i := slices.Index(placeholders, p.Name); i >= 0 {
			return i
		}
		return len(placeholders)
	}
	slices.SortStableFunc(params, func(a, c *oas.Parameter) int {
		return rank(a) - rank(c)
	})
	return params, nil
}

func (b *operationBuilder) parameterList(m marker.Declaration) ([]*oas.Parameter, error) {
	factory := m.Factory
	if m.Ref != "" {
		def, ok := b.refs.definition(marker.KindParameters, m.Ref)
		if !ok {
			return nil, b.unresolved(marker.KindParameters, m.Ref, "parameters")
		}
		factory = def.Factory
		if factory == nil {
			m = def
		}
	}
	if factory == nil {
		// A single parameter described by attributes.
		if name := m.Attr("name"); name != "" {
			return []*oas.Parameter{parameterFromAttrs(m)}, nil
		}
		return nil, b.invalid(m, "parameters marker has no factory, reference or name")
	}
	pf, ok := factory.(marker.ParametersFactory)
	if !ok {
		return nil, b.invalid(m, fmt.Sprintf("parameters factory is %T, want marker.ParametersFactory", factory))
	}
	params, err := pf.BuildParameters()
	if err != nil {
		return nil, fmt.Errorf("%s: building parameters of %s: %w", b.location, m.ID, err)
	}
	return params, nil
}

func parameterFromAttrs(m marker.Declaration) *oas.Parameter {
	p := &oas.Parameter{
		Name:        m.Attr("name"),
		In:          m.Attr("in"),
		Description: m.Attr("description"),
		Required:    m.Flag("required"),
		Deprecated:  m.Flag("deprecated"),
	}
	if p.In == "" {
		p.In = oas.ParamInQuery
	}
	typ := m.Attr("type")
	if typ == "" {
		typ = "string"
	}
	p.Schema = &oas.Schema{Type: typ, Format: m.Attr("format")}
	return p
}

func (b *operationBuilder) requestBody(markers []marker.Declaration) (*oas.RequestBody, error) {
	if len(markers) == 0 {
		return nil, nil
	}
	m := markers[0]
	if m.Ref != "" {
		if !b.refs.Tables.Has(marker.KindRequestBody, m.Ref) {
			return nil, b.unresolved(marker.KindRequestBody, m.Ref, "requestBody")
		}
		return &oas.RequestBody{Ref: oas.RequestBodyRef(m.Ref)}, nil
	}
	if m.Factory == nil {
		return nil, b.invalid(m, "request body marker has no factory or reference")
	}
	rf, ok := m.Factory.(marker.RequestBodyFactory)
	if !ok {
		return nil, b.invalid(m, fmt.Sprintf("request body factory is %T, want marker.RequestBodyFactory", m.Factory))
	}
	body, err := rf.BuildRequestBody()
	if err != nil {
		return nil, fmt.Errorf("%s: building request body of %s: %w", b.location, m.ID, err)
	}
	return body, nil
}

// responses fills one slot per status code. The status comes from the
// marker, then from the referenced definition, then defaults to 200.
func (b *operationBuilder) responses(markers []marker.Declaration) (*oas.Responses, error) {
	out := &oas.Responses{Codes: make(map[string]*oas.Response)}

	for _, m := range markers {
		status := m.Attr("status")
		var resp *oas.Response

		switch {
		case m.Ref != "":
			if !b.refs.Tables.Has(marker.KindResponse, m.Ref) {
				return nil, b.unresolved(marker.KindResponse, m.Ref, "responses")
			}
			if status == "" {
				if def, ok := b.refs.definition(marker.KindResponse, m.Ref); ok {
					status = def.Attr("status")
				}
			}
			resp = &oas.Response{Ref: oas.ResponseRef(m.Ref)}
		case m.Factory != nil:
			rf, ok := m.Factory.(marker.ResponseFactory)
			if !ok {
				return nil, b.invalid(m, fmt.Sprintf("response factory is %T, want marker.ResponseFactory", m.Factory))
			}
			built, err := rf.BuildResponse()
			if err != nil {
				return nil, fmt.Errorf("%s: building response of %s: %w", b.location, m.ID, err)
			}
			resp = built
		case m.Has("description"):
			resp = &oas.Response{Description: m.Attr("description")}
		default:
			return nil, b.invalid(m, "response marker has no factory, reference or description")
		}

		if status == "" {
			status = defaultStatus
		}
		if status == "default" {
			if out.Default == nil {
				out.Default = resp
			}
			continue
		}
		if _, taken := out.Codes[status]; !taken {
			out.Codes[status] = resp
		}
	}

	if out.Default == nil && len(out.Codes) == 0 {
		out.Default = &oas.Response{Description: DefaultResponseDescription}
	}
	if len(out.Codes) == 0 {
		out.Codes = nil
	}
	return out, nil
}

// security returns the requirements of the most specific tier that
// declares any: scheme markers and the security attribute of operation
// markers at that level (and group depth) are combined, one requirement
// per scheme. An explicitly empty security attribute in that tier
// disables authentication.
func (b *operationBuilder) security(markers []marker.Declaration) ([]oas.SecurityRequirement, error) {
	var sources []marker.Declaration
	for _, m := range markers {
		switch {
		case m.Kind == marker.KindOperation && m.Has("security"):
			sources = append(sources, m)
		case m.Kind == marker.KindSecurityScheme:
			if m.Ref == "" {
				b.logger.Debug("ignoring security scheme definition on route", "route", b.location, "id", m.ID.String())
				continue
			}
			sources = append(sources, m)
		}
	}
	if len(sources) == 0 {
		return nil, nil
	}

	var reqs []oas.SecurityRequirement
	seen := make(map[string]bool)
	add := func(name string, scopes []string) error {
		if seen[name] {
			return nil
		}
		if !b.refs.Tables.Has(marker.KindSecurityScheme, name) {
			return b.unresolved(marker.KindSecurityScheme, name, "security")
		}
		seen[name] = true
		if scopes == nil {
			scopes = []string{}
		}
		reqs = append(reqs, oas.SecurityRequirement{name: scopes})
		return nil
	}

	tier := sources[0]
	metaSeen := false
	for _, m := range sources {
		if !sameTier(tier, m) {
			break
		}
		if m.Kind == marker.KindOperation {
			if metaSeen {
				continue
			}
			metaSeen = true
			names, _ := m.List("security")
			if len(names) == 0 {
				return []oas.SecurityRequirement{{}}, nil
			}
			for _, name := range names {
				if err := add(name, nil); err != nil {
					return nil, err
				}
			}
			continue
		}
		scopes, _ := m.List("scopes")
		if err := add(m.Ref, scopes); err != nil {
			return nil, err
		}
	}
	return reqs, nil
}

// tags lists the operation marker's tags, then tag markers, each name once.
func (b *operationBuilder) tags(meta *marker.Declaration, markers []marker.Declaration) []string {
	var tags []string
	add := func(name string) {
		if name != "" && !slices.Contains(tags, name) {
			tags = append(tags, name)
		}
	}
	if meta != nil {
		names, _ := meta.List("tags")
		for _, name := range names {
			add(name)
		}
	}
	for _, m := range markers {
		switch {
		case m.Ref != "":
			add(m.Ref)
		case m.Name != "":
			add(m.Name)
		default:
			add(m.Attr("name"))
		}
	}
	return tags
}

func (b *operationBuilder) callbacks(markers []marker.Declaration) (map[string]*oas.Callback, error) {
	if len(markers) == 0 {
		return nil, nil
	}
	out := make(map[string]*oas.Callback)
	for _, m := range markers {
		event := m.Attr("event")
		var cb *oas.Callback

		if m.Ref != "" {
			if !b.refs.Tables.Has(marker.KindCallback, m.Ref) {
				return nil, b.unresolved(marker.KindCallback, m.Ref, "callbacks")
			}
			if event == "" {
				event = m.Ref
			}
			cb = &oas.Callback{Ref: oas.CallbackRef(m.Ref)}
		} else {
			cf, ok := m.Factory.(marker.CallbackFactory)
			if !ok {
				return nil, b.invalid(m, "callback marker needs a reference or a marker.CallbackFactory")
			}
			if event == "" {
				return nil, b.invalid(m, "inline callback needs an event attribute")
			}
			built, err := cf.BuildCallback()
			if err != nil {
				return nil, fmt.Errorf("%s: building callback of %s: %w", b.location, m.ID, err)
			}
			cb = built
		}
		if _, taken := out[event]; !taken {
			out[event] = cb
		}
	}
	return out, nil
}

func (b *operationBuilder) extensions(markers []marker.Declaration) (map[string]any, error) {
	if len(markers) == 0 {
		return nil, nil
	}
	out := make(map[string]any)
	for _, m := range markers {
		ref := m.Ref
		if ref != "" {
			def, ok := b.refs.definition(marker.KindExtension, ref)
			if !ok {
				return nil, b.unresolved(marker.KindExtension, ref, "extensions")
			}
			m = def
		}
		key, value, err := m.Extension()
		if err != nil {
			return nil, fmt.Errorf("%s: building extension of %s: %w", b.location, m.ID, err)
		}
		if key == "" {
			key = ref
		}
		if key == "" {
			return nil, b.invalid(m, "extension marker has no key")
		}
		key = oas.ExtensionKey(key)
		if _, taken := out[key]; !taken {
			out[key] = value
		}
	}
	return out, nil
}
