package regen

import (
	"strings"
	"testing"

	"github.com/okrenov/samforge/internal/model"
)

func TestParseRequest_EmptyBodyMeansFullRegeneration(t *testing.T) {
	for _, body := range [][]byte{nil, {}, []byte(`{}`)} {
		section, err := ParseRequest(body)
		if err != nil {
			t.Fatalf("body %q: %v", body, err)
		}
		if section != "" {
			t.Errorf("body %q: section %q, want empty", body, section)
		}
	}
}

func TestParseRequest_ValidSections(t *testing.T) {
	for _, name := range []string{"variant_a", "variant_b", "thread", "hooks"} {
		section, err := ParseRequest([]byte(`{"section":"` + name + `"}`))
		if err != nil {
			t.Fatalf("section %q: %v", name, err)
		}
		if string(section) != name {
			t.Errorf("got %q, want %q", section, name)
		}
	}
}

func TestParseRequest_UnknownSection(t *testing.T) {
	_, err := ParseRequest([]byte(`{"section":"newsletter_b"}`))
	if !model.IsCode(err, model.CodeInputInvalid) {
		t.Fatalf("expected input_invalid, got %v", err)
	}
}

func TestParseRequest_RawInsightKeysRejected(t *testing.T) {
	bodies := []string{
		`{"claims":[{"id":"C1","claim":"patched claim"}]}`,
		`{"thesis":"patched thesis"}`,
		`{"coreThesis":{"statement":"patched"}}`,
		`{"insights":["one"]}`,
		`{"evidence":[]}`,
		`{"section":"thread","claim":"sneaky patch"}`,
	}
	for _, body := range bodies {
		_, err := ParseRequest([]byte(body))
		if !model.IsCode(err, model.CodeInputInvalid) {
			t.Errorf("body %s: expected input_invalid, got %v", body, err)
		}
		if err != nil && !strings.Contains(err.Error(), "re-derived") {
			t.Errorf("body %s: rejection %q does not explain re-derivation", body, err)
		}
	}
}

func TestParseRequest_UnknownFieldsRejected(t *testing.T) {
	_, err := ParseRequest([]byte(`{"sectoin":"thread"}`))
	if !model.IsCode(err, model.CodeInputInvalid) {
		t.Fatalf("expected input_invalid, got %v", err)
	}
	if !strings.Contains(err.Error(), "sectoin") {
		t.Errorf("rejection %q does not name the unknown field", err)
	}
}

func TestParseRequest_NotAnObject(t *testing.T) {
	for _, body := range []string{`"thread"`, `[1,2]`, `not json`} {
		if _, err := ParseRequest([]byte(body)); !model.IsCode(err, model.CodeInputInvalid) {
			t.Errorf("body %s: expected input_invalid, got %v", body, err)
		}
	}
}
