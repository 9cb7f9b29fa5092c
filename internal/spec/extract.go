package spec

import (
	"strings"

	"github.com/mark3labs/openapi2locust/internal/doc"
)

// Extract walks the document's paths map and returns one Operation per
// recognized (path, method) pair, in the document's own order.
//
// Extraction is best-effort by contract: malformed per-operation data is
// defaulted, never rejected, so one broken entry in a large document
// does not block the rest. Callers are expected to have verified that a
// top-level "paths" mapping exists; when it is absent or not a mapping,
// Extract simply returns no operations.
func Extract(document *doc.Map) []Operation {
	paths, ok := document.Map("paths")
	if !ok {
		return nil
	}

	var ops []Operation
	for _, rawPath := range paths.Keys() {
		methods, ok := paths.Map(rawPath)
		if !ok {
			// Path entries that are not mappings are tolerated and
			// skipped.
			continue
		}
		for _, method := range methods.Keys() {
			lower := strings.ToLower(method)
			if _, ok := recognizedMethods[HTTPMethod(lower)]; !ok {
				continue
			}
			// A non-mapping operation value is treated as an empty
			// operation object.
			operation, _ := methods.Map(method)

			opID := deriveOperationID(operation, lower, rawPath)
			summary := operation.StrOr("summary", "")
			if summary == "" {
				summary = operation.StrOr("description", "")
			}
			if summary == "" {
				summary = opID
			}

			pathParams, queryParams := collectParameters(operation)

			ops = append(ops, Operation{
				Path:           rawPath,
				Method:         strings.ToUpper(method),
				OperationID:    opID,
				Summary:        summary,
				HasRequestBody: operation.Has("requestBody"),
				PathParams:     pathParams,
				QueryParams:    queryParams,
			})
		}
	}
	return ops
}

// deriveOperationID uses a non-empty explicit operationId verbatim
// (sanitization happens at render time), otherwise synthesizes one from
// the method and path: "GET /items/{item_id}" -> "get_items_item_id".
func deriveOperationID(operation *doc.Map, lowerMethod, path string) string {
	if id := operation.StrOr("operationId", ""); id != "" {
		return id
	}
	sanitized := strings.Trim(path, "/")
	sanitized = strings.ReplaceAll(sanitized, "/", "_")
	sanitized = strings.ReplaceAll(sanitized, "{", "")
	sanitized = strings.ReplaceAll(sanitized, "}", "")
	if sanitized == "" {
		sanitized = "root"
	}
	return lowerMethod + "_" + sanitized
}

// collectParameters buckets parameter names by location. Only "path" and
// "query" are kept; any other location tag (header, cookie, ...) is
// excluded from both buckets. Missing names and locations default to
// "unknown".
func collectParameters(operation *doc.Map) (pathParams, queryParams []string) {
	params, ok := operation.Seq("parameters")
	if !ok {
		return nil, nil
	}
	for _, raw := range params {
		param, ok := raw.(*doc.Map)
		if !ok {
			continue
		}
		name := param.StrOr("name", "unknown")
		switch param.StrOr("in", "unknown") {
		case "path":
			pathParams = append(pathParams, name)
		case "query":
			queryParams = append(queryParams, name)
		}
	}
	return pathParams, queryParams
}
