package spec

import (
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestRewriteV2_MergesMultipleBodyParams(t *testing.T) {
	src := []byte(`swagger: '2.0'
paths:
  /things:
    post:
      parameters:
        - name: first
          in: body
          required: true
          schema:
            type: string
        - name: second
          in: body
          schema:
            type: integer
`)
	out, changed, err := rewriteV2ForConversion(src)
	if err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	if !changed {
		t.Fatalf("expected modification")
	}

	var root map[string]any
	if err := yaml.Unmarshal(out, &root); err != nil {
		t.Fatalf("reparse: %v", err)
	}
	op := root["paths"].(map[string]any)["/things"].(map[string]any)["post"].(map[string]any)
	params := op["parameters"].([]any)
	if len(params) != 1 {
		t.Fatalf("expected 1 merged parameter, got %d", len(params))
	}
	merged := params[0].(map[string]any)
	schema := merged["schema"].(map[string]any)
	props := schema["properties"].(map[string]any)
	if _, ok := props["first"]; !ok {
		t.Errorf("missing merged property first")
	}
	if _, ok := props["second"]; !ok {
		t.Errorf("missing merged property second")
	}
}

func TestRewriteV2_BodyWithFormDataBecomesFormData(t *testing.T) {
	src := []byte(`swagger: '2.0'
paths:
  /upload:
    post:
      parameters:
        - name: file
          in: formData
          type: file
        - name: meta
          in: body
          schema:
            type: string
`)
	out, changed, err := rewriteV2ForConversion(src)
	if err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	if !changed {
		t.Fatalf("expected modification")
	}
	if !strings.Contains(string(out), "multipart/form-data") {
		t.Errorf("expected multipart/form-data in consumes")
	}
	if strings.Contains(string(out), "in: body") {
		t.Errorf("body parameter should have been rewritten")
	}
}

func TestRewriteV2_NoChangeForCleanDoc(t *testing.T) {
	src := []byte(`swagger: '2.0'
paths:
  /ok:
    get:
      parameters:
        - name: q
          in: query
          type: string
`)
	out, changed, err := rewriteV2ForConversion(src)
	if err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	if changed {
		t.Fatalf("expected no modification")
	}
	if string(out) != string(src) {
		t.Fatalf("bytes should pass through untouched")
	}
}
