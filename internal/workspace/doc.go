// Package workspace writes rendered artifacts below a root directory.
//
// Direct mode writes into the project checkout itself. Staging mode writes
// into a timestamped directory (e.g. workspacegen-20251214-122336) so the
// output can be inspected before it replaces project files; Cleanup removes
// it. Dry-run mode records what would be written without touching disk.
package workspace
