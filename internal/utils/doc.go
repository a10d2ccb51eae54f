// Package utils provides general-purpose helper utilities used across the
// client: a clock abstraction, UUID generation, HTTP response writing and the
// resty-based HTTP client.
package utils
