// Package render turns normalized module and library records into the
// IntelliJ project files and Maven POMs written by the generator.
//
// Every renderer returns a model.Artifact holding a slash separated path
// relative to the project directory and the serialized document. Renderers
// never write files themselves.
package render
