package auth

// TokenValidator turns a bearer token into the claims it asserts.
// Authentication middleware depends on this rather than on TokenService.
type TokenValidator interface {
	ValidateToken(token string) (*Claims, error)
}

// TokenValidatorFunc lets a plain function serve as a TokenValidator,
// typically a fixed identity in handler tests.
type TokenValidatorFunc func(token string) (*Claims, error)

// ValidateToken calls f.
func (f TokenValidatorFunc) ValidateToken(token string) (*Claims, error) {
	return f(token)
}

var _ TokenValidator = (*TokenService)(nil)
