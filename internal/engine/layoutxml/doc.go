// SPDX-License-Identifier: MPL-2.0

// Package layoutxml is the built-in engine.Engine.
//
// It is a small stand-in for the real layout compiler so the binary can run
// on its own: resources are copied through unchanged, every binding-enabled
// layout yields one layout-info document, and each layout-info document
// yields one binding class rendered from a template. Binding expressions are
// not analysed.
package layoutxml
