// Package locustemitter renders a locustfile from extracted operation
// descriptors: one task per operation, with placeholder payloads and
// parameter comments for manual completion.
//
// Emission is a pure function of its inputs. The file is assembled as a
// flat line slice with plain branches for the conditional sections, so
// identical descriptors and options always produce byte-identical
// output.
package locustemitter

import (
	"fmt"
	"strings"

	genspec "github.com/mark3labs/openapi2locust/internal/spec"
)

// Client selects which Locust user base class the generated file uses.
// This is a closed two-way choice: anything other than the two known
// values falls back to FastHTTP.
type Client string

const (
	// FastHTTP generates users backed by FastHttpUser (geventhttpclient).
	FastHTTP Client = "fast_http"
	// Requests generates users backed by HttpUser (python-requests).
	Requests Client = "requests"
)

func (c Client) normalize() Client {
	if c == Requests {
		return Requests
	}
	return FastHTTP
}

// userBase returns the Locust base class for the flavor.
func (c Client) userBase() string {
	if c.normalize() == Requests {
		return "HttpUser"
	}
	return "FastHttpUser"
}

const (
	defaultClassName = "GeneratedUser"
	// fallbackTaskName is used when an operation id sanitizes to nothing.
	fallbackTaskName = "unnamed_operation"
)

// Options controls how the locustfile is rendered.
type Options struct {
	// Host is embedded verbatim as the user class host literal. No
	// escaping is applied; callers supply hosts that do not break
	// Python string syntax.
	Host string
	// Client picks the transport flavor; unrecognized values fall back
	// to FastHTTP.
	Client Client
	// ClassName names the generated user class. Defaults to
	// GeneratedUser; sanitized to a legal identifier.
	ClassName string
	// TaskWeight is applied uniformly to every task. Values below 1
	// are coerced to 1.
	TaskWeight int
}

func (o Options) withDefaults() Options {
	o.Client = o.Client.normalize()
	if strings.TrimSpace(o.ClassName) == "" {
		o.ClassName = defaultClassName
	} else {
		o.ClassName = SafeIdentifier(o.ClassName)
	}
	if o.TaskWeight < 1 {
		o.TaskWeight = 1
	}
	return o
}

// Emit renders a complete locustfile for the given operations. The
// result is always syntactically valid Python: an empty operation list
// produces a class whose body holds an explanatory comment instead of
// tasks.
func Emit(ops []genspec.Operation, opts Options) string {
	opts = opts.withDefaults()

	lines := []string{
		"from typing import Any, Dict",
		"",
		"from locust import HttpUser, FastHttpUser, between, task",
		"",
		fmt.Sprintf("class %s(%s):", opts.ClassName, opts.Client.userBase()),
		`    """`,
		"    Auto-generated skeleton tasks.",
		"",
		"    Fill in payloads and sequencing based on your domain logic.",
		"    You can move validated data between tasks using shared attributes.",
		`    """`,
		"    wait_time = between(1, 5)",
		// Verbatim substitution: callers own host strings that would
		// break Python string literal syntax.
		fmt.Sprintf("    host = \"%s\"", opts.Host),
		"",
	}

	for _, op := range ops {
		lines = append(lines, renderTask(op, opts.TaskWeight)...)
	}

	if len(ops) == 0 {
		lines = append(lines, "    # No operations were discovered in the provided OpenAPI document.")
	}

	return strings.Join(lines, "\n") + "\n"
}

func renderTask(op genspec.Operation, weight int) []string {
	lines := []string{
		fmt.Sprintf("    @task(%d)", weight),
		fmt.Sprintf("    def %s(self) -> None:", SafeIdentifier(op.OperationID)),
		fmt.Sprintf(`        """%s"""`, op.Summary),
		"        # TODO: Replace placeholder payloads with schema-aware data",
	}

	if op.HasRequestBody {
		lines = append(lines,
			"        payload: Dict[str, Any] = {",
			"            # populate request body using the schema in the OpenAPI document",
			"        }",
		)
	} else {
		lines = append(lines, "        payload = None")
	}

	if comment := paramComment(op); comment != "" {
		lines = append(lines, "        # Parameters: "+comment)
	}

	lines = append(lines,
		"        with self.client.request(",
		fmt.Sprintf("            \"%s\",", op.Method),
		fmt.Sprintf("            \"%s\",", op.Path),
		fmt.Sprintf("            name=\"%s %s\",", op.Method, op.Path),
		"            json=payload,",
		"            params={},",
		"        ) as response:",
		"            response.raise_for_status()",
		"            # TODO: capture response data to chain into subsequent tasks",
		"",
	)
	return lines
}

// paramComment summarizes the operation's parameters as
// "path: a, b; query: c, d". Empty groups are omitted; when both are
// empty the comment line is skipped entirely.
func paramComment(op genspec.Operation) string {
	var parts []string
	if len(op.PathParams) > 0 {
		parts = append(parts, "path: "+strings.Join(op.PathParams, ", "))
	}
	if len(op.QueryParams) > 0 {
		parts = append(parts, "query: "+strings.Join(op.QueryParams, ", "))
	}
	return strings.Join(parts, "; ")
}

// SafeIdentifier rewrites arbitrary external text into a legal Python
// identifier: every character outside [A-Za-z0-9_] becomes an
// underscore, a leading digit gains an op_ prefix, and an empty result
// falls back to a fixed placeholder. Applying it to an already-clean
// name returns it unchanged.
func SafeIdentifier(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if r == '_' || (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return fallbackTaskName
	}
	if cleaned[0] >= '0' && cleaned[0] <= '9' {
		cleaned = "op_" + cleaned
	}
	return cleaned
}
