// Package jwt verifies signed identity tokens against a process-wide shared secret
// with strict validation semantics suitable for low-latency authentication paths.
package jwt
