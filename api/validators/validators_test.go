package validators

import (
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/angelmondragon/lavka-miniapp/pkg/errors"
)

type ratingPayload struct {
	Rating  int    `json:"rating" validate:"min=1,max=5"`
	Comment string `json:"comment"`
}

func TestDecodeJSONBody(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"rating":4,"comment":"ok"}`))
	var payload ratingPayload
	if err := DecodeJSONBody(req, &payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload.Rating != 4 {
		t.Fatalf("unexpected payload %+v", payload)
	}
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"rating":4,"stars":5}`))
	var payload ratingPayload
	if err := DecodeJSONBody(req, &payload); !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDecodeJSONBodyReportsFieldErrors(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"rating":7}`))
	var payload ratingPayload
	err := DecodeJSONBody(req, &payload)
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected typed error, got %v", err)
	}
	details, ok := typed.Details().(map[string]string)
	if !ok || details["rating"] != "must be at most 5" {
		t.Fatalf("unexpected details %#v", typed.Details())
	}
}

func TestParseQueryInt(t *testing.T) {
	req := httptest.NewRequest("GET", "/?limit=3", nil)
	if v, err := ParseQueryInt(req, "limit", 6, 1, 50); err != nil || v != 3 {
		t.Fatalf("expected 3, got %d err=%v", v, err)
	}
	if v, err := ParseQueryInt(httptest.NewRequest("GET", "/", nil), "limit", 6, 1, 50); err != nil || v != 6 {
		t.Fatalf("expected default 6, got %d err=%v", v, err)
	}
	if _, err := ParseQueryInt(httptest.NewRequest("GET", "/?limit=0", nil), "limit", 6, 1, 50); err == nil {
		t.Fatal("expected out of range error")
	}
	if _, err := ParseQueryInt(httptest.NewRequest("GET", "/?limit=x", nil), "limit", 6, 1, 50); err == nil {
		t.Fatal("expected numeric error")
	}
}

func TestSanitizeStringCountsRunes(t *testing.T) {
	if got := SanitizeString("  Миндаль  ", 3); got != "Мин" {
		t.Fatalf("expected rune-aware truncation, got %q", got)
	}
}

func TestQueryStringTrimsAndCaps(t *testing.T) {
	req := httptest.NewRequest("GET", "/?q=%20%20%D0%BC%D0%B8%D0%BD%D0%B4%D0%B0%D0%BB%D1%8C%20&category=%20nuts%20", nil)
	if got := QueryString(req, "q", 3); got != "мин" {
		t.Fatalf("expected trimmed and capped query, got %q", got)
	}
	if got := QueryID(req, "category"); got != "nuts" {
		t.Fatalf("expected trimmed id, got %q", got)
	}
	if got := QueryID(req, "missing"); got != "" {
		t.Fatalf("expected empty value, got %q", got)
	}
}
