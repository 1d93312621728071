package walker

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/erraggy/oasgen/oas"
)

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}

func key(base, k string) string {
	return base + "['" + k + "']"
}

func index(base string, i int) string {
	return fmt.Sprintf("%s[%d]", base, i)
}

func (w *Walker) done() error {
	if w.ctx == nil {
		return nil
	}
	return w.ctx.Err()
}

func (w *Walker) walkDocument(doc *oas.Document) error {
	for i, req := range doc.Security {
		w.walkSecurity(req, index("$.security", i), state{})
		if w.stopped {
			return nil
		}
	}
	for _, tmpl := range sortedKeys(doc.Paths) {
		if err := w.done(); err != nil {
			return err
		}
		w.walkPathItem(doc.Paths[tmpl], key("$.paths", tmpl), state{pathTemplate: tmpl})
		if w.stopped {
			return nil
		}
	}
	if err := w.done(); err != nil {
		return err
	}
	w.walkComponents(doc.Components)
	return nil
}

func (w *Walker) walkSecurity(req oas.SecurityRequirement, jsonPath string, s state) {
	if w.onSecurity != nil && req != nil {
		w.handleAction(w.onSecurity(w.context(jsonPath, s), req))
	}
}

func (w *Walker) walkPathItem(item *oas.PathItem, jsonPath string, s state) {
	if item == nil {
		return
	}
	w.handleRef(item.Ref, jsonPath, RefNodePathItem, s)
	for i, p := range item.Parameters {
		w.walkParameter(p, index(jsonPath+".parameters", i), s)
	}
	for _, method := range oas.Methods {
		if w.stopped {
			return
		}
		op := item.Operation(method)
		if op == nil {
			continue
		}
		m := strings.ToLower(method)
		opState := s
		opState.method = m
		w.walkOperation(op, jsonPath+"."+m, opState)
	}
}

func (w *Walker) walkOperation(op *oas.Operation, jsonPath string, s state) {
	if w.onOperation != nil && !w.handleAction(w.onOperation(w.context(jsonPath, s), op)) {
		return
	}
	for i, p := range op.Parameters {
		w.walkParameter(p, index(jsonPath+".parameters", i), s)
	}
	if rb := op.RequestBody; rb != nil {
		w.walkRequestBody(rb, jsonPath+".requestBody", s)
	}
	if r := op.Responses; r != nil {
		if r.Default != nil {
			w.walkResponse(r.Default, key(jsonPath+".responses", "default"), s)
		}
		for _, code := range sortedKeys(r.Codes) {
			w.walkResponse(r.Codes[code], key(jsonPath+".responses", code), s)
		}
	}
	for _, name := range sortedKeys(op.Callbacks) {
		w.walkCallback(op.Callbacks[name], key(jsonPath+".callbacks", name), s)
	}
	for i, req := range op.Security {
		w.walkSecurity(req, index(jsonPath+".security", i), s)
	}
}

func (w *Walker) walkParameter(p *oas.Parameter, jsonPath string, s state) {
	if p == nil || w.stopped {
		return
	}
	w.handleRef(p.Ref, jsonPath, RefNodeParameter, s)
	w.walkSchema(p.Schema, jsonPath+".schema", 0, s)
	w.walkExamples(p.Examples, jsonPath+".examples", s)
	w.walkContent(p.Content, jsonPath+".content", s)
}

func (w *Walker) walkRequestBody(rb *oas.RequestBody, jsonPath string, s state) {
	if rb == nil || w.stopped {
		return
	}
	w.handleRef(rb.Ref, jsonPath, RefNodeRequestBody, s)
	w.walkContent(rb.Content, jsonPath+".content", s)
}

func (w *Walker) walkResponse(r *oas.Response, jsonPath string, s state) {
	if r == nil || w.stopped {
		return
	}
	w.handleRef(r.Ref, jsonPath, RefNodeResponse, s)
	w.walkHeaders(r.Headers, jsonPath+".headers", s)
	w.walkContent(r.Content, jsonPath+".content", s)
	for _, name := range sortedKeys(r.Links) {
		if l := r.Links[name]; l != nil {
			w.handleRef(l.Ref, key(jsonPath+".links", name), RefNodeLink, s)
		}
	}
}

func (w *Walker) walkCallback(cb *oas.Callback, jsonPath string, s state) {
	if cb == nil || w.stopped {
		return
	}
	w.handleRef(cb.Ref, jsonPath, RefNodeCallback, s)
	for _, expr := range sortedKeys(cb.Expressions) {
		// Operations inside a callback are not operations of the path.
		w.walkPathItem(cb.Expressions[expr], key(jsonPath, expr), state{name: s.name})
	}
}

func (w *Walker) walkHeaders(headers map[string]*oas.Header, jsonPath string, s state) {
	for _, name := range sortedKeys(headers) {
		h := headers[name]
		if h == nil || w.stopped {
			continue
		}
		p := key(jsonPath, name)
		w.handleRef(h.Ref, p, RefNodeHeader, s)
		w.walkSchema(h.Schema, p+".schema", 0, s)
	}
}

func (w *Walker) walkContent(content map[string]*oas.MediaType, jsonPath string, s state) {
	for _, mediaType := range sortedKeys(content) {
		mt := content[mediaType]
		if mt == nil || w.stopped {
			continue
		}
		p := key(jsonPath, mediaType)
		w.walkSchema(mt.Schema, p+".schema", 0, s)
		w.walkExamples(mt.Examples, p+".examples", s)
		for _, prop := range sortedKeys(mt.Encoding) {
			if enc := mt.Encoding[prop]; enc != nil {
				w.walkHeaders(enc.Headers, key(p+".encoding", prop)+".headers", s)
			}
		}
	}
}

func (w *Walker) walkExamples(examples map[string]*oas.Example, jsonPath string, s state) {
	for _, name := range sortedKeys(examples) {
		if ex := examples[name]; ex != nil {
			w.handleRef(ex.Ref, key(jsonPath, name), RefNodeExample, s)
		}
	}
}

func (w *Walker) walkSchema(schema *oas.Schema, jsonPath string, depth int, s state) {
	if schema == nil || w.stopped {
		return
	}
	w.handleRef(schema.Ref, jsonPath, RefNodeSchema, s)
	if depth > w.maxDepth || w.visited[schema] {
		return
	}
	w.visited[schema] = true
	defer delete(w.visited, schema)

	if w.onSchema != nil && !w.handleAction(w.onSchema(w.context(jsonPath, s), schema)) {
		return
	}

	depth++
	for _, name := range sortedKeys(schema.Properties) {
		w.walkSchema(schema.Properties[name], key(jsonPath+".properties", name), depth, s)
	}
	w.walkSchema(schema.Items, jsonPath+".items", depth, s)
	if ap, ok := schema.AdditionalProperties.(*oas.Schema); ok {
		w.walkSchema(ap, jsonPath+".additionalProperties", depth, s)
	}
	for i, sub := range schema.AllOf {
		w.walkSchema(sub, index(jsonPath+".allOf", i), depth, s)
	}
	for i, sub := range schema.AnyOf {
		w.walkSchema(sub, index(jsonPath+".anyOf", i), depth, s)
	}
	for i, sub := range schema.OneOf {
		w.walkSchema(sub, index(jsonPath+".oneOf", i), depth, s)
	}
	w.walkSchema(schema.Not, jsonPath+".not", depth, s)
	if d := schema.Discriminator; d != nil {
		for _, value := range sortedKeys(d.Mapping) {
			w.handleRef(d.Mapping[value], key(jsonPath+".discriminator.mapping", value), RefNodeSchema, s)
		}
	}
}

func (w *Walker) walkComponents(c *oas.Components) {
	if c == nil {
		return
	}
	const base = "$.components"
	for _, name := range sortedKeys(c.Schemas) {
		w.walkSchema(c.Schemas[name], key(base+".schemas", name), 0, state{name: name})
	}
	for _, name := range sortedKeys(c.Responses) {
		w.walkResponse(c.Responses[name], key(base+".responses", name), state{name: name})
	}
	for _, name := range sortedKeys(c.RequestBodies) {
		w.walkRequestBody(c.RequestBodies[name], key(base+".requestBodies", name), state{name: name})
	}
	for _, name := range sortedKeys(c.Callbacks) {
		w.walkCallback(c.Callbacks[name], key(base+".callbacks", name), state{name: name})
	}
	for _, name := range sortedKeys(c.SecuritySchemes) {
		if ss := c.SecuritySchemes[name]; ss != nil {
			w.handleRef(ss.Ref, key(base+".securitySchemes", name), RefNodeSecurityScheme, state{name: name})
		}
	}
}
