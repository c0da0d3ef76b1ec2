// Package lint defines the lint rule contract and the rule group that
// evaluates many rules over one document.
//
// # Rules
//
// A Rule turns a read-only *document.Document into zero or more Lints. Most
// rules are written as data-driven RuleDef values and registered from init()
// functions in their own package:
//
//	import _ "github.com/lukasmwerner/harper/pkg/lint/rules"
//
// A RuleDef is bound to a Context (dialect, lexicon, options) to produce a
// Rule.
//
// # Groups
//
// A Group owns an ordered set of named rules with an enabled flag each.
// Evaluate runs the enabled rules in insertion order, merges their output
// with a stable sort on (start, end) and optionally collapses duplicates.
// A rule that panics or returns spans outside the document contributes no
// lints; the remaining rules are unaffected.
package lint
