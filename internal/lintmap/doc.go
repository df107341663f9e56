// Package lintmap translates external static-analysis findings into the
// shared review taxonomy.
//
// Rule ids are classified by substring containment against a fixed ordered
// table; unmapped rules land in the Other bucket, distinct from the
// scanner's Uncategorized. Each mapped issue also carries a fix suggestion
// resolved from a fixed rule table, then message keywords, then a generic
// fallback.
package lintmap
