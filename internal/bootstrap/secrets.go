package bootstrap

import "strings"

// Placeholders recognized in templated file content. Substitution is a
// single plain-text pass; replacement text is not rescanned.
const (
	PlaceholderPrivateKey   = "{{private_key}}"
	PlaceholderPublicKey    = "{{public_key}}"
	PlaceholderMinionConfig = "{{minion_config}}"
)

// Secrets carries the per-node key material and rendered minion config.
// The executor writes these to the profile's fixed paths and nowhere else;
// they are never logged and never placed on a command line.
type Secrets struct {
	PrivateKey   []byte
	PublicKey    []byte
	MinionConfig string
}

// Validate rejects incomplete secrets before any mutation happens.
func (s *Secrets) Validate() error {
	if s == nil {
		return &ConfigError{Reason: "secrets are required"}
	}
	if len(s.PrivateKey) == 0 {
		return &ConfigError{Reason: "private key is empty"}
	}
	if len(s.PublicKey) == 0 {
		return &ConfigError{Reason: "public key is empty"}
	}
	if strings.TrimSpace(s.MinionConfig) == "" {
		return &ConfigError{Reason: "minion config is empty"}
	}
	return nil
}

// Expand substitutes the enumerated placeholders in templated content.
func (s *Secrets) Expand(text string) string {
	r := strings.NewReplacer(
		PlaceholderPrivateKey, string(s.PrivateKey),
		PlaceholderPublicKey, string(s.PublicKey),
		PlaceholderMinionConfig, s.MinionConfig,
	)
	return r.Replace(text)
}

// Zero wipes the key material once the run no longer needs it.
func (s *Secrets) Zero() {
	for i := range s.PrivateKey {
		s.PrivateKey[i] = 0
	}
	for i := range s.PublicKey {
		s.PublicKey[i] = 0
	}
	s.PrivateKey = nil
	s.PublicKey = nil
	s.MinionConfig = ""
}
