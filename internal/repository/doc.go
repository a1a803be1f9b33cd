// Package repository resolves the Maven repositories referenced by generated
// POM files. The two public repositories are always present; a private,
// credentialed repository is appended when the project checkout carries an
// upstream private branch with repository settings.
package repository
