// Package util holds small parsing and masking helpers shared by the
// configuration and HTTP layers.
package util
