// Package config loads service configuration from a YAML file, an optional
// .env file and the process environment, in that order of precedence
// (environment wins).
//
// # Usage
//
//	var cfg app.Config
//	if err := config.LoadConfig("socialfeed", &cfg); err != nil { ... }
//
// Every leaf field of cfg is bound to an upper-snake environment variable
// derived from its mapstructure path, e.g. auth.jwt.secret is AUTH_JWT_SECRET.
package config
