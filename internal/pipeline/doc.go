// SPDX-License-Identifier: MPL-2.0

// Package pipeline sequences the two build stages around the engine.
//
// ProcessResources stages resource input, lets the engine process it and
// emit layout-info metadata, and optionally zips both outputs.
// GenerateBaseClasses stages layout-info input, lets the engine generate
// binding classes through an output writer, and always zips class-info.
//
// Every temporary directory a run allocates belongs to a workspace that is
// closed when the run returns.
package pipeline
