// Package classify assigns taxonomy categories to free-text review comments.
//
// Classification is deterministic weighted keyword scoring: no I/O, no
// randomness, no state between calls. Length filtering of comments is the
// caller's policy; the classifier scores whatever it is handed.
package classify
