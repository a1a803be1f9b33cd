// Package deps rewrites and normalizes module dependency lists.
//
// The rewriter turns library edges onto other workspace modules into project
// edges (and back, for modules that load JSPs from the classpath). The
// normalizer marks exported dependencies and sorts module attributes so the
// rendered artifacts are deterministic.
package deps
