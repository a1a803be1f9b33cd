package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyModule     = "module"
	KeyPath       = "path"
	KeyFile       = "file"
	KeyStage      = "stage"
	KeyPipeline   = "pipeline"
	KeyArtifact   = "artifact"
	KeyLibrary    = "library"
	KeyRepository = "repository"
	KeyRef        = "ref"
	KeyCount      = "count"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Module(name string) slog.Attr     { return slog.String(KeyModule, name) }
func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func File(f string) slog.Attr          { return slog.String(KeyFile, f) }
func Stage(name string) slog.Attr      { return slog.String(KeyStage, name) }
func Pipeline(name string) slog.Attr   { return slog.String(KeyPipeline, name) }
func Artifact(p string) slog.Attr      { return slog.String(KeyArtifact, p) }
func Library(name string) slog.Attr    { return slog.String(KeyLibrary, name) }
func Repository(id string) slog.Attr   { return slog.String(KeyRepository, id) }
func Ref(name string) slog.Attr        { return slog.String(KeyRef, name) }
func Count(n int) slog.Attr            { return slog.Int(KeyCount, n) }
func DurationMS(ms float64) slog.Attr  { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
