// Package metrics records pipeline metrics for workspacegen runs.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so metrics collection never needs nil checks:
//
//	gen := pipeline.NewGenerator(...).WithRecorder(metrics.NewPrometheusRecorder(reg))
//
// The Prometheus implementation registers on a caller-provided registry. One
// shot runs export it with WriteTextfile (node_exporter textfile collector
// format); the watch command can serve it over HTTP with HTTPHandler.
package metrics
