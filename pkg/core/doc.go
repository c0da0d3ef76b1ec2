// Package core holds the small set of types shared between the lint engine
// and its front ends: severities, rule metadata and lint configuration.
package core
