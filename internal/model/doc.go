// Package model holds the records that flow through the workspace generator:
// modules and their dependencies as produced by the external parser stage,
// the version index entries derived from them, Maven repositories, and the
// rendered artifacts handed to the output writer.
package model
