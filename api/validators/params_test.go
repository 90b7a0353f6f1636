package validators

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	pkgerrors "github.com/angelmondragon/brewcart/pkg/errors"
)

func withParam(key, value string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rc := chi.NewRouteContext()
	rc.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rc))
}

func TestParsePathInt(t *testing.T) {
	got, err := ParsePathInt(withParam("index", "3"), "index")
	if err != nil || got != 3 {
		t.Fatalf("expected 3, got %d err=%v", got, err)
	}
	if _, err := ParsePathInt(withParam("index", "abc"), "index"); pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := ParsePathInt(withParam("index", ""), "index"); err == nil {
		t.Fatal("expected missing parameter to fail")
	}
}

func TestPathStringUnescapes(t *testing.T) {
	got, err := PathString(withParam("key", "0%7C2%7C1%7C1%2C2"), "key")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "0|2|1|1,2" {
		t.Fatalf("unexpected key %q", got)
	}
}

type qtyBody struct {
	Delta int `json:"delta" validate:"ne=0"`
}

func TestDecodeJSONBody(t *testing.T) {
	var body qtyBody
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"delta":-1}`))
	if err := DecodeJSONBody(req, &body); err != nil || body.Delta != -1 {
		t.Fatalf("unexpected result %+v err=%v", body, err)
	}

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"delta":0}`))
	err := DecodeJSONBody(req, &body)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	details, _ := typed.Details().(map[string]string)
	if details["delta"] != "must not be 0" {
		t.Fatalf("unexpected details %v", typed.Details())
	}

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"delta":1,"extra":true}`))
	if err := DecodeJSONBody(req, &body); err == nil {
		t.Fatal("expected unknown field to be rejected")
	}

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(``))
	if err := DecodeJSONBody(req, &body); err == nil || !strings.Contains(err.Error(), "body is required") {
		t.Fatalf("expected empty body error, got %v", err)
	}
}
