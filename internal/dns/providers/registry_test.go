package providers

import (
	"errors"
	"testing"

	"ffc/zonectl/internal/dns/domain"

	"github.com/google/go-cmp/cmp"
)

func TestRegistry_RegisterAndGet(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	RegisterCloudflare()

	p, err := Get("cloudflare", Config{Token: "cf-test-token"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if p.GetDisplayName() != "Cloudflare" {
		t.Errorf("GetDisplayName = %q, want %q", p.GetDisplayName(), "Cloudflare")
	}
}

func TestRegistry_NameIsCaseInsensitive(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	RegisterCloudflare()

	if _, err := Get("  CloudFlare  ", Config{Token: "cf-test-token"}); err != nil {
		t.Fatalf("expected normalized lookup to succeed, got %v", err)
	}
}

func TestRegistry_UnknownProvider(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	_, err := Get("route53", Config{Token: "whatever"})
	if err == nil {
		t.Fatal("expected error for unknown provider, got nil")
	}
}

func TestRegistry_EmptyToken(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	RegisterCloudflare()

	_, err := Get("cloudflare", Config{Token: "   "})
	if err == nil {
		t.Fatal("expected error for empty token, got nil")
	}
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got: %v", err)
	}
}

func TestRegistry_BaseURLOverride(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	RegisterCloudflare()

	p, err := Get("cloudflare", Config{Token: "cf-test-token", BaseURL: "http://localhost:8787/client/v4/"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	cf, ok := p.(*CloudflareProvider)
	if !ok {
		t.Fatalf("expected *CloudflareProvider, got %T", p)
	}
	if cf.baseURL != "http://localhost:8787/client/v4" {
		t.Errorf("baseURL = %q, want trailing slash trimmed", cf.baseURL)
	}
}

func TestRegistry_ListSorted(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	nop := func(cfg Config) (domain.Provider, error) { return nil, nil }
	Register("zeta", nop)
	Register("alpha", nop)
	Register("cloudflare", nop)

	want := []string{"alpha", "cloudflare", "zeta"}
	if diff := cmp.Diff(want, List()); diff != "" {
		t.Errorf("List mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistry_DuplicateRegistrationPanics(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	nop := func(cfg Config) (domain.Provider, error) { return nil, nil }
	Register("cloudflare", nop)

	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()
	Register("cloudflare", nop)
}
