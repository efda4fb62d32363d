package domain

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestParseErrorStatusMode(t *testing.T) {
	cases := map[string]ErrorStatusMode{
		"":         ErrorStatusLegacy,
		"legacy":   ErrorStatusLegacy,
		" STRICT ": ErrorStatusStrict,
		"strict":   ErrorStatusStrict,
	}
	for in, want := range cases {
		got, err := ParseErrorStatusMode(in)
		if err != nil {
			t.Fatalf("ParseErrorStatusMode(%q): unexpected error %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseErrorStatusMode(%q): expected %s, got %s", in, want, got)
		}
	}

	if _, err := ParseErrorStatusMode("always-500"); !errors.Is(err, ErrUnknownStatusMode) {
		t.Fatalf("expected ErrUnknownStatusMode, got %v", err)
	}
}

func TestReferenceDocument_Info(t *testing.T) {
	loaded := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)
	ref := &ReferenceDocument{
		Source:      "./templates/default_rfp_template.pdf",
		Text:        "Überblick\nscope",
		PageCount:   2,
		Fingerprint: "00112233445566ff",
		LoadedAt:    loaded,
	}

	info := ref.Info()
	if info.Characters != 15 {
		t.Fatalf("expected 15 characters, got %d", info.Characters)
	}
	if info.PageCount != 2 || info.Source != ref.Source || info.Fingerprint != ref.Fingerprint {
		t.Fatalf("unexpected info: %+v", info)
	}

	raw, err := json.Marshal(info)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := decoded["text"]; ok {
		t.Fatalf("reference text must not be exposed")
	}
	if decoded["loaded_at"] != "2026-10-19T08:00:00Z" {
		t.Fatalf("unexpected loaded_at: %v", decoded["loaded_at"])
	}
}
