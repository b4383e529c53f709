// Package auth issues and validates the bearer tokens that identify callers.
//
// Subpackages:
//
//   - auth/jwt       generic HMAC JWT service
//   - auth/password  bcrypt password hashing
//   - auth/authctx   claims propagation through context.Context
//
// The top-level package binds them to this service's identity model:
// Claims carries the user id (sub), username and token id (jti), and
// TokenService issues and validates them. Middleware depends only on
// TokenValidator.
//
//	auth:
//	  jwt:
//	    secret: "at-least-32-bytes-of-secret-material"
//	    issuer: "SocialMediaApi"
//	    audience: "SocialMediaUsers"
//	    access_token_ttl: "60m"
//	  password:
//	    cost: 12
package auth
