package types

import (
	"encoding/json"
	"testing"
)

func TestIDUnmarshalAcceptsNumbersAndStrings(t *testing.T) {
	var payload struct {
		Numeric ID `json:"numeric"`
		Text    ID `json:"text"`
		Null    ID `json:"null"`
	}
	if err := json.Unmarshal([]byte(`{"numeric": 1712345678901, "text": " 42 ", "null": null}`), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if payload.Numeric != "1712345678901" {
		t.Fatalf("unexpected numeric id %q", payload.Numeric)
	}
	if payload.Text != "42" {
		t.Fatalf("expected trimmed text id got %q", payload.Text)
	}
	if !payload.Null.IsZero() {
		t.Fatalf("expected null to be zero got %q", payload.Null)
	}
}

func TestIDUnmarshalRejectsObjects(t *testing.T) {
	var id ID
	if err := json.Unmarshal([]byte(`{"a":1}`), &id); err == nil {
		t.Fatalf("expected object id to be rejected")
	}
}

func TestIDEqualNormalizes(t *testing.T) {
	if !ID("7").Equal(" 7") {
		t.Fatalf("expected padded id to match")
	}
	if ID("7").Equal("8") {
		t.Fatalf("expected different ids to differ")
	}
}

func TestIDMarshalsAsString(t *testing.T) {
	raw, err := json.Marshal(struct {
		ID ID `json:"id"`
	}{ID: "3"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `{"id":"3"}` {
		t.Fatalf("unexpected json %s", raw)
	}
}
