package spec

type HTTPMethod string

const (
	GET     HTTPMethod = "get"
	POST    HTTPMethod = "post"
	PUT     HTTPMethod = "put"
	PATCH   HTTPMethod = "patch"
	DELETE  HTTPMethod = "delete"
	OPTIONS HTTPMethod = "options"
	HEAD    HTTPMethod = "head"
)

// recognizedMethods is the closed verb set; entries outside it are
// dropped during extraction.
var recognizedMethods = map[HTTPMethod]struct{}{
	GET:     {},
	POST:    {},
	PUT:     {},
	PATCH:   {},
	DELETE:  {},
	OPTIONS: {},
	HEAD:    {},
}

// Operation is the normalized descriptor for one (path, method) pair
// discovered in a specification document. Descriptors are built once by
// Extract and read-only afterwards.
type Operation struct {
	// Path is the raw path template, kept verbatim (it may contain
	// {param} placeholders).
	Path string
	// Method is the HTTP verb, uppercased.
	Method string
	// OperationID is the explicit operationId when present and
	// non-empty, otherwise synthesized from method and path. Never
	// empty.
	OperationID string
	// Summary is the first non-empty of summary, description, and
	// OperationID.
	Summary string
	// HasRequestBody reports whether the operation carries a
	// requestBody section.
	HasRequestBody bool
	// PathParams and QueryParams list parameter names filtered by
	// their location tag, in source order. Duplicates are preserved.
	PathParams  []string
	QueryParams []string
}
