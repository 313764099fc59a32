// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helper functions for tests that handle errors
// appropriately, reducing boilerplate and ensuring consistent error handling.
//
// Besides environment and directory helpers (MustSetenv, MustMkdirAll) it
// builds and inspects the fixtures the pipeline tests need: directory trees
// (WriteTree, ReadTree) and zip archives (WriteZip, ReadZip).
package testutil
