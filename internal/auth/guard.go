package auth

import (
	"github.com/spec-kit/auth-service/pkg/util"
)

// Guard decides per incoming message whether authentication is required and
// resolves the caller identity from the bearer token. The public allow-list is
// the only bypass; there is no secondary implicit-trust path.
type Guard struct {
	codec  *TokenCodec
	public map[string]struct{}
}

// NewGuard builds a guard from the token codec and the static set of public
// pattern names resolved at startup.
func NewGuard(codec *TokenCodec, publicPatterns []string) *Guard {
	public := make(map[string]struct{}, len(publicPatterns))
	for _, p := range publicPatterns {
		public[p] = struct{}{}
	}
	return &Guard{codec: codec, public: public}
}

// Public reports whether the pattern is reachable without a token.
func (g *Guard) Public(pattern string) bool {
	_, ok := g.public[pattern]
	return ok
}

// Authorize verifies the caller for the given pattern. Public patterns pass
// with a nil identity. Protected patterns require a verifiable token; failures
// carry a reason code, never the underlying cryptographic error.
func (g *Guard) Authorize(pattern, token string) (*Claims, error) {
	if g.Public(pattern) {
		return nil, nil
	}
	if token == "" {
		return nil, util.NewUnauthorized("auth.TOKEN_NOT_PROVIDED")
	}
	claims, err := g.codec.Verify(token)
	if err != nil {
		return nil, util.NewUnauthorized("auth.TOKEN_INVALID")
	}
	return claims, nil
}
