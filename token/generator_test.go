package token

import (
	"errors"
	"testing"
)

func TestGenerateCookieTokenIsValid(t *testing.T) {
	g := NewGenerator()

	ct, err := g.GenerateCookieToken()
	if err != nil {
		t.Fatalf("GenerateCookieToken failed: %v", err)
	}
	if !g.IsCookieTokenValid(ct) {
		t.Fatal("freshly minted cookie token must be valid")
	}
	if ct.Username != "" {
		t.Fatal("cookie tokens carry no identity")
	}

	ct2, err := g.GenerateCookieToken()
	if err != nil {
		t.Fatalf("GenerateCookieToken failed: %v", err)
	}
	if ct.SecurityToken.Matches(ct2.SecurityToken) {
		t.Fatal("two minted cookie tokens shared a security token")
	}
}

func TestIsCookieTokenValidRejectsNilAndWrongKind(t *testing.T) {
	g := NewGenerator()

	if g.IsCookieTokenValid(nil) {
		t.Fatal("nil token reported valid")
	}
	if g.IsCookieTokenValid(&Token{IsCookieToken: false}) {
		t.Fatal("request token reported valid as cookie token")
	}
}

func TestGenerateRequestTokenCopiesSecurityToken(t *testing.T) {
	g := NewGenerator()

	ct, err := g.GenerateCookieToken()
	if err != nil {
		t.Fatalf("GenerateCookieToken failed: %v", err)
	}

	rt, err := g.GenerateRequestToken("alice", ct)
	if err != nil {
		t.Fatalf("GenerateRequestToken failed: %v", err)
	}
	if rt.IsCookieToken {
		t.Fatal("derived token must be a request token")
	}
	if rt.Username != "alice" {
		t.Fatalf("identity not carried, got %q", rt.Username)
	}
	if !rt.SecurityToken.Matches(ct.SecurityToken) {
		t.Fatal("request token must carry the cookie token's security token")
	}

	if _, err := g.GenerateRequestToken("alice", nil); !errors.Is(err, ErrNotCookieToken) {
		t.Fatalf("expected ErrNotCookieToken for nil cookie token, got %v", err)
	}
	if _, err := g.GenerateRequestToken("alice", rt); !errors.Is(err, ErrNotCookieToken) {
		t.Fatalf("expected ErrNotCookieToken for wrong-kind token, got %v", err)
	}
}

func TestValidateTokenSetErrorOrdering(t *testing.T) {
	g := NewGenerator()

	ct, err := g.GenerateCookieToken()
	if err != nil {
		t.Fatalf("GenerateCookieToken failed: %v", err)
	}
	rt, err := g.GenerateRequestToken("alice", ct)
	if err != nil {
		t.Fatalf("GenerateRequestToken failed: %v", err)
	}
	otherCT, err := g.GenerateCookieToken()
	if err != nil {
		t.Fatalf("GenerateCookieToken failed: %v", err)
	}

	tests := []struct {
		name     string
		identity string
		cookie   *Token
		request  *Token
		want     error
	}{
		{"valid pair", "alice", ct, rt, nil},
		{"nil cookie token", "alice", nil, rt, ErrNotCookieToken},
		{"request token in cookie slot", "alice", rt, rt, ErrNotCookieToken},
		{"nil request token", "alice", ct, nil, ErrNotRequestToken},
		{"cookie token in request slot", "alice", ct, otherCT, ErrNotRequestToken},
		{"foreign cookie token", "alice", otherCT, rt, ErrMismatch},
		{"different identity", "bob", ct, rt, ErrIdentityMismatch},
		{"anonymous caller", "", ct, rt, ErrIdentityMismatch},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := g.ValidateTokenSet(tc.identity, tc.cookie, tc.request)
			if !errors.Is(err, tc.want) && !(tc.want == nil && err == nil) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestValidateTokenSetMismatchWinsOverIdentity(t *testing.T) {
	g := NewGenerator()

	ct, _ := g.GenerateCookieToken()
	otherCT, _ := g.GenerateCookieToken()
	rt, err := g.GenerateRequestToken("alice", otherCT)
	if err != nil {
		t.Fatalf("GenerateRequestToken failed: %v", err)
	}

	// wrong pair AND wrong identity: the pair mismatch is reported
	if err := g.ValidateTokenSet("bob", ct, rt); !errors.Is(err, ErrMismatch) {
		t.Fatalf("expected ErrMismatch, got %v", err)
	}
}

func TestValidateUnboundTokenForAnonymousCaller(t *testing.T) {
	g := NewGenerator()

	ct, _ := g.GenerateCookieToken()
	rt, err := g.GenerateRequestToken("", ct)
	if err != nil {
		t.Fatalf("GenerateRequestToken failed: %v", err)
	}

	if err := g.ValidateTokenSet("", ct, rt); err != nil {
		t.Fatalf("unbound pair must validate for anonymous caller: %v", err)
	}
	if err := g.ValidateTokenSet("alice", ct, rt); !errors.Is(err, ErrIdentityMismatch) {
		t.Fatalf("unbound pair must not validate for authenticated caller, got %v", err)
	}
}
