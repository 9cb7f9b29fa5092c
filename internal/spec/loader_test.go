package spec

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const v3SpecYAML = `openapi: 3.0.0
info:
  title: Test API
  version: '1.0.0'
paths:
  /hello:
    get:
      summary: Hello
      responses:
        '200':
          description: ok
`

const v2SpecYAML = `swagger: '2.0'
info:
  title: Legacy API
  version: '1.0.0'
paths:
  /widgets:
    post:
      summary: Create widget
      parameters:
        - name: widget
          in: body
          schema:
            type: object
      responses:
        '200':
          description: ok
`

func writeSpec(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write spec: %v", err)
	}
	return path
}

func TestLoad_V3File(t *testing.T) {
	path := writeSpec(t, "spec.yaml", v3SpecYAML)
	tree, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	ops := Extract(tree)
	if len(ops) != 1 || ops[0].OperationID != "get_hello" {
		t.Fatalf("unexpected ops: %+v", ops)
	}
}

func TestLoad_V2ConvertsBodyParamToRequestBody(t *testing.T) {
	path := writeSpec(t, "swagger.yaml", v2SpecYAML)
	tree, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	ops := Extract(tree)
	if len(ops) != 1 {
		t.Fatalf("expected 1 op, got %d", len(ops))
	}
	if !ops[0].HasRequestBody {
		t.Fatalf("v2 body parameter should surface as requestBody after conversion")
	}
}

func TestLoad_V2BodyParamSchemaDoesNotPanic(t *testing.T) {
	path := writeSpec(t, "swagger.yaml", v2SpecYAML)
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("load panicked on v2 document: %v", r)
		}
	}()
	if _, err := Load(context.Background(), path); err != nil {
		t.Fatalf("load: %v", err)
	}
}

func TestLoad_EmptyInput(t *testing.T) {
	_, err := Load(context.Background(), "  ")
	var se *SpecError
	if !errors.As(err, &se) || se.Code != InputError {
		t.Fatalf("expected InputError, got %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "absent.yaml"))
	var se *SpecError
	if !errors.As(err, &se) || se.Code != InputError {
		t.Fatalf("expected InputError, got %v", err)
	}
	if se.Location == "" {
		t.Fatalf("expected location on error")
	}
}

func TestLoad_UnsupportedScheme(t *testing.T) {
	_, err := Load(context.Background(), "ftp://example.com/spec.yaml")
	var se *SpecError
	if !errors.As(err, &se) || se.Code != InputError {
		t.Fatalf("expected InputError, got %v", err)
	}
}

func TestLoad_NoPathsMap(t *testing.T) {
	path := writeSpec(t, "nopaths.yaml", "openapi: 3.0.0\ninfo: {title: t, version: '1'}\n")
	_, err := Load(context.Background(), path)
	var se *SpecError
	if !errors.As(err, &se) || se.Code != InputError {
		t.Fatalf("expected InputError for missing paths, got %v", err)
	}
}

func TestLoad_MalformedDocument(t *testing.T) {
	path := writeSpec(t, "broken.yaml", "a: [unclosed\n")
	_, err := Load(context.Background(), path)
	var se *SpecError
	if !errors.As(err, &se) || se.Code != ParseError {
		t.Fatalf("expected ParseError, got %v", err)
	}
}
