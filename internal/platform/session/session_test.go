package session

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func sampleRecord() Record {
	return Record{
		SubjectID:   42,
		Email:       "amira@example.com",
		DisplayName: "Amira K",
		Role:        "personnel",
		Status:      "active",
		Batch:       "2024-2025",
		Phone:       "555-0100",
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	codec := NewCodec("secret", "test")

	token, err := codec.Encode(sampleRecord())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	got, err := codec.Decode(token)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if *got != sampleRecord() {
		t.Fatalf("round trip mismatch: got %+v", got)
	}
}

func TestDecodeRejectsTamperedToken(t *testing.T) {
	codec := NewCodec("secret", "test")

	token, err := codec.Encode(sampleRecord())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	// Flip a character in the payload segment; the signature no longer
	// matches.
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape")
	}
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	if _, err := codec.Decode(tampered); err == nil {
		t.Fatalf("expected tampered token to be rejected")
	}
}

func TestDecodeRejectsWrongSecret(t *testing.T) {
	codec := NewCodec("secret", "test")
	other := NewCodec("different-secret", "test")

	token, err := codec.Encode(sampleRecord())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	if _, err := other.Decode(token); err == nil {
		t.Fatalf("expected token signed with another secret to be rejected")
	}
}

func TestDecodeRejectsWrongIssuer(t *testing.T) {
	codec := NewCodec("secret", "issuer-a")
	other := NewCodec("secret", "issuer-b")

	token, err := codec.Encode(sampleRecord())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	if _, err := other.Decode(token); err == nil {
		t.Fatalf("expected token with another issuer to be rejected")
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	codec := NewCodec("secret", "test")

	for _, tok := range []string{"", "not-a-token", "a.b.c", "{}"} {
		if _, err := codec.Decode(tok); err == nil {
			t.Fatalf("expected decode of %q to fail", tok)
		}
	}
}

func TestCookieAttributes(t *testing.T) {
	rr := httptest.NewRecorder()
	SetCookie(rr, "tok", true)

	res := rr.Result()
	cookies := res.Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}
	c := cookies[0]
	if c.Name != CookieName || c.Value != "tok" {
		t.Fatalf("unexpected cookie: %+v", c)
	}
	if !c.HttpOnly || !c.Secure || c.SameSite != http.SameSiteLaxMode {
		t.Fatalf("cookie missing hardening attributes: %+v", c)
	}
	if c.MaxAge != 604800 {
		t.Fatalf("expected 7-day max-age, got %d", c.MaxAge)
	}
	if c.Path != "/" {
		t.Fatalf("expected path /, got %q", c.Path)
	}
}

func TestClearCookie(t *testing.T) {
	rr := httptest.NewRecorder()
	ClearCookie(rr, false)

	cookies := rr.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}
	if cookies[0].MaxAge >= 0 || cookies[0].Value != "" {
		t.Fatalf("expected expired empty cookie, got %+v", cookies[0])
	}
}
