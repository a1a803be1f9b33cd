// Package records loads the module records produced by the external parser
// stage. A records file is YAML (JSON is accepted as a YAML subset) with
// three lists: core, modules and plugins.
package records
