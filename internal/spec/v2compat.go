package spec

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// rewriteV2ForConversion fixes up Swagger v2 operations that kin-openapi
// refuses to convert:
//   - multiple body parameters are merged into one body parameter whose
//     schema is an object with a property per original parameter;
//   - operations mixing body and formData parameters have their body
//     parameters rewritten as formData equivalents, with
//     multipart/form-data added to consumes.
//
// It returns possibly-modified YAML bytes and whether anything changed.
// On parse or serialize errors the original bytes are returned unchanged.
func rewriteV2ForConversion(data []byte) ([]byte, bool, error) {
	var root map[string]any
	if err := yaml.Unmarshal(data, &root); err != nil {
		return data, false, err
	}
	paths, ok := root["paths"].(map[string]any)
	if !ok || len(paths) == 0 {
		return data, false, nil
	}

	modified := false
	for _, rawItem := range paths {
		item, ok := rawItem.(map[string]any)
		if !ok {
			continue
		}
		for method, rawOp := range item {
			if _, known := recognizedMethods[HTTPMethod(strings.ToLower(method))]; !known {
				continue
			}
			op, ok := rawOp.(map[string]any)
			if !ok {
				continue
			}
			if rewriteV2Operation(op) {
				modified = true
			}
		}
	}

	if !modified {
		return data, false, nil
	}
	out, err := yaml.Marshal(root)
	if err != nil {
		return data, false, err
	}
	return out, true, nil
}

func rewriteV2Operation(op map[string]any) bool {
	params, ok := op["parameters"].([]any)
	if !ok || len(params) == 0 {
		return false
	}

	bodyCount := 0
	hasFormData := false
	for _, p := range params {
		pm, _ := p.(map[string]any)
		if pm == nil {
			continue
		}
		switch {
		case strings.EqualFold(v2ParamString(pm, "in"), "body"):
			bodyCount++
		case strings.EqualFold(v2ParamString(pm, "in"), "formData"):
			hasFormData = true
		}
	}
	if bodyCount == 0 {
		return false
	}

	if hasFormData {
		// Body and formData cannot coexist; degrade body params to
		// formData fields.
		rewritten := make([]any, 0, len(params))
		for _, p := range params {
			pm, _ := p.(map[string]any)
			if pm == nil {
				continue
			}
			if strings.EqualFold(v2ParamString(pm, "in"), "body") {
				rewritten = append(rewritten, formDataFromBodyParam(pm))
				continue
			}
			rewritten = append(rewritten, pm)
		}
		op["parameters"] = rewritten
		consumes, _ := op["consumes"].([]any)
		if !containsString(consumes, "multipart/form-data") {
			op["consumes"] = append(consumes, "multipart/form-data")
		}
		return true
	}

	if bodyCount < 2 {
		return false
	}

	// Merge the body params into a single object-typed body schema.
	props := map[string]any{}
	required := make([]any, 0)
	rest := make([]any, 0, len(params))
	for _, p := range params {
		pm, _ := p.(map[string]any)
		if pm == nil {
			continue
		}
		if !strings.EqualFold(v2ParamString(pm, "in"), "body") {
			rest = append(rest, p)
			continue
		}
		name := v2ParamString(pm, "name")
		if name == "" {
			name = "field"
		}
		schema := schemaFromV2Param(pm)
		if schema == nil {
			schema = map[string]any{"type": "string"}
		}
		props[name] = schema
		if rb, _ := pm["required"].(bool); rb {
			required = append(required, name)
		}
	}
	bodySchema := map[string]any{"type": "object", "properties": props}
	if len(required) > 0 {
		bodySchema["required"] = required
	}
	merged := map[string]any{
		"in":     "body",
		"name":   "body",
		"schema": bodySchema,
	}
	op["parameters"] = append([]any{merged}, rest...)
	return true
}

func v2ParamString(pm map[string]any, key string) string {
	s, _ := pm[key].(string)
	return s
}

func containsString(list []any, want string) bool {
	for _, v := range list {
		if s, ok := v.(string); ok && s == want {
			return true
		}
	}
	return false
}

func schemaFromV2Param(pm map[string]any) map[string]any {
	if sch, ok := pm["schema"].(map[string]any); ok {
		return sch
	}
	t, _ := pm["type"].(string)
	if t == "" {
		return nil
	}
	m := map[string]any{"type": t}
	if it, ok := pm["items"].(map[string]any); ok {
		m["items"] = it
	}
	if f, ok := pm["format"].(string); ok && f != "" {
		m["format"] = f
	}
	return m
}

func formDataFromBodyParam(pm map[string]any) map[string]any {
	name := v2ParamString(pm, "name")
	if name == "" {
		name = "field"
	}
	out := map[string]any{
		"in":   "formData",
		"name": name,
	}
	if desc, ok := pm["description"].(string); ok && desc != "" {
		out["description"] = desc
	}
	if req, ok := pm["required"].(bool); ok {
		out["required"] = req
	}
	var typ, format string
	var items any
	if sch, ok := pm["schema"].(map[string]any); ok {
		typ, _ = sch["type"].(string)
		format, _ = sch["format"].(string)
		if it, ok := sch["items"].(map[string]any); ok {
			items = it
		}
		if typ == "" && sch["$ref"] != nil {
			// Referenced objects cannot be expressed in formData.
			typ = "string"
		}
	}
	if typ == "" {
		typ, _ = pm["type"].(string)
		format, _ = pm["format"].(string)
		if it, ok := pm["items"].(map[string]any); ok {
			items = it
		}
	}
	if typ == "" {
		typ = "string"
	}
	out["type"] = typ
	if items != nil {
		out["items"] = items
	}
	if format != "" {
		out["format"] = format
	}
	return out
}
