package model

// Repository is a Maven repository referenced by generated POMs.
type Repository struct {
	ID       string
	Name     string
	Scheme   string
	Path     string
	Username string
	Password string
	Layout   string
}

// Artifact is a rendered output file. Path is slash separated and relative to
// the project directory.
type Artifact struct {
	Path    string
	Content string
}
