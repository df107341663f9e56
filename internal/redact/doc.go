// Package redact removes credential-looking tokens from review comment
// text before it can be retained as a report example.
//
// Detection uses regex heuristics covering common secret shapes: API keys,
// JWTs, private keys, AWS access key IDs and secret access keys, bearer
// tokens, and service tokens. Comments anchored to files matching
// configured glob patterns are replaced wholesale rather than scanned.
package redact
