// Package rules contains the built-in prose rules. Each rule lives in its own
// file and registers itself with the lint registry from init(), so importing
// this package for side effects makes the curated rule set available:
//
//	import _ "github.com/lukasmwerner/harper/pkg/lint/rules"
package rules
