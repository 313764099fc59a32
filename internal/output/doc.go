// SPDX-License-Identifier: MPL-2.0

// Package output persists generated source text either into a directory tree
// or into a single zip archive.
//
// Both destinations implement Writer. A canonical name such as
// "com.example.FooBinding" is mapped to "com/example/FooBinding.java" below the
// destination root, so callers never need to know how the output is packaged.
package output
