// Package pipeline runs the two generation pipelines over a record set.
//
// The workspace pipeline rewrites dependencies for IDE use and renders module
// descriptors, the module list and library tables. The POM pipeline rewrites
// dependencies for Maven and renders one POM per module plus the aggregator.
// Each pipeline is a fixed list of named stages run in order; every stage is
// timed, logged and recorded through a metrics.Recorder, and the context is
// checked before each stage starts.
//
// Pipelines never modify the record set they are given: each run works on a
// deep copy so Generate can run both over the same loaded records.
package pipeline
