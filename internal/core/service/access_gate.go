package service

import "crypto/subtle"

// SecretGate implements ports.AccessGate with a single configured secret.
// There is no lockout or audit; a wrong secret simply fails.
type SecretGate struct {
	secret []byte
}

func NewSecretGate(secret string) *SecretGate {
	return &SecretGate{secret: []byte(secret)}
}

// Check reports whether provided matches the configured secret. An empty
// secret on either side never matches.
func (g *SecretGate) Check(provided string) bool {
	if len(g.secret) == 0 || provided == "" {
		return false
	}
	return subtle.ConstantTimeCompare(g.secret, []byte(provided)) == 1
}
