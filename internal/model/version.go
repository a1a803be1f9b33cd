package model

// VersionEntry is the resolved version metadata of a core or OSGi module.
type VersionEntry struct {
	ProjectName string
	Version     string
	BundleName  string
	HasWebroot  bool
	HasInitJsp  bool
}

// VersionIndex maps bundle symbolic names and legacy module names to their
// version entries. It is built once per run and only read afterwards.
type VersionIndex map[string]VersionEntry

// Lookup returns the entry for name.
func (v VersionIndex) Lookup(name string) (VersionEntry, bool) {
	e, ok := v[name]
	return e, ok
}
