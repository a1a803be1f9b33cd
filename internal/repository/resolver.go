package repository

import (
	"log/slog"
	"sync"

	"git.home.luguber.info/inful/workspacegen/internal/logfields"
	"git.home.luguber.info/inful/workspacegen/internal/model"
)

const defaultLayout = "default"

// Public repositories, in the order they appear in generated POMs.
var publicRepositories = []model.Repository{
	{
		ID:     "apache",
		Name:   "Apache",
		Scheme: "http",
		Path:   "repo.maven.apache.org/maven2",
		Layout: defaultLayout,
	},
	{
		ID:     "liferay-public",
		Name:   "Liferay Public",
		Scheme: "http",
		Path:   "repository.liferay.com/nexus/content/repositories/public",
		Layout: defaultLayout,
	},
}

// PrivateSource yields the private repository, if one is configured.
type PrivateSource interface {
	ResolvePrivateRepository() (model.Repository, bool)
}

// Resolver computes the repository list once and hands out the same slice
// on every later call. Callers must not modify it.
type Resolver struct {
	source PrivateSource

	once  sync.Once
	repos []model.Repository
}

// NewResolver creates a resolver. A nil source means no private repository.
func NewResolver(source PrivateSource) *Resolver {
	return &Resolver{source: source}
}

// Repositories returns the public repositories followed by the private one
// when the source provides it.
func (r *Resolver) Repositories() []model.Repository {
	r.once.Do(func() {
		repos := make([]model.Repository, 0, len(publicRepositories)+1)
		repos = append(repos, publicRepositories...)
		if r.source != nil {
			if private, ok := r.source.ResolvePrivateRepository(); ok {
				repos = append(repos, private)
				slog.Debug("Private repository configured", logfields.Repository(private.ID))
			}
		}
		r.repos = repos
	})
	return r.repos
}
