// Package rank assigns a numeric urgency to issues and produces a stable
// total order over them. Lower scores are more urgent; equal scores keep
// their original input order, which callers rely on for deterministic
// reports.
package rank
