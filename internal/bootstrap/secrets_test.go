package bootstrap

import (
	"errors"
	"strings"
	"testing"
)

func TestSecretsValidate(t *testing.T) {
	cases := []struct {
		name string
		s    *Secrets
		ok   bool
	}{
		{"complete", testSecrets(), true},
		{"nil", nil, false},
		{"no private key", &Secrets{PublicKey: []byte("p"), MinionConfig: "master: x"}, false},
		{"no public key", &Secrets{PrivateKey: []byte("p"), MinionConfig: "master: x"}, false},
		{"blank config", &Secrets{PrivateKey: []byte("p"), PublicKey: []byte("p"), MinionConfig: "  \n"}, false},
	}
	for _, c := range cases {
		err := c.s.Validate()
		if c.ok && err != nil {
			t.Fatalf("%s: unexpected error: %v", c.name, err)
		}
		if !c.ok {
			if err == nil {
				t.Fatalf("%s: expected error", c.name)
			}
			var ce *ConfigError
			if !errors.As(err, &ce) {
				t.Fatalf("%s: expected ConfigError, got %T", c.name, err)
			}
		}
	}
}

func TestSecretsExpand(t *testing.T) {
	s := testSecrets()
	got := s.Expand("key={{private_key}} pub={{public_key}}\n{{minion_config}}")
	want := "key=PRIVKEY pub=PUBKEY\nmaster: 10.0.0.1"
	if got != want {
		t.Fatalf("expand mismatch: %q", got)
	}

	// Replacement text is not rescanned; a config body containing brace
	// text passes through literally.
	s2 := &Secrets{PrivateKey: []byte("a"), PublicKey: []byte("b"), MinionConfig: "{{private_key}}"}
	if got := s2.Expand(PlaceholderMinionConfig); got != "{{private_key}}" {
		t.Fatalf("nested placeholder expanded: %q", got)
	}
}

func TestSecretsZero(t *testing.T) {
	priv := []byte("PRIVKEY")
	s := &Secrets{PrivateKey: priv, PublicKey: []byte("PUBKEY"), MinionConfig: "master: x"}
	s.Zero()
	if s.PrivateKey != nil || s.PublicKey != nil || s.MinionConfig != "" {
		t.Fatalf("secrets not cleared: %+v", s)
	}
	if strings.Contains(string(priv), "PRIVKEY") {
		t.Fatal("backing array still holds key material")
	}
}
