package repository

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"slices"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/magiconair/properties"

	"git.home.luguber.info/inful/workspacegen/internal/logfields"
	"git.home.luguber.info/inful/workspacegen/internal/model"
)

const (
	// DefaultPrivateBranch is the upstream branch carrying private settings.
	DefaultPrivateBranch = "7.0.x-private"

	propertiesFile    = "working.dir.properties"
	privateKeyPrefix  = "build.repository.private."
	privateRepoID     = "liferay-private"
	privateRepoName   = "Liferay Private"
	privateRepoScheme = "https"
)

var errNoPrivateRef = errors.New("no upstream private ref")

// GitSource reads private repository settings from the project's git
// metadata. Every failure is soft: the repository is simply absent.
type GitSource struct {
	dir    string
	branch string
	refRx  *regexp.Regexp
}

// NewGitSource creates a source for the checkout at dir. An empty branch
// selects DefaultPrivateBranch.
func NewGitSource(dir, branch string) *GitSource {
	if branch == "" {
		branch = DefaultPrivateBranch
	}
	return &GitSource{
		dir:    dir,
		branch: branch,
		refRx:  regexp.MustCompile(`/upstream[^/]*/` + regexp.QuoteMeta(branch) + `$`),
	}
}

// ResolvePrivateRepository implements PrivateSource.
func (s *GitSource) ResolvePrivateRepository() (model.Repository, bool) {
	data, ref, err := s.readProperties()
	if err != nil {
		slog.Debug("No private repository", logfields.Path(s.dir), logfields.Error(err))
		return model.Repository{}, false
	}
	repo, ok := parsePrivateRepository(data, s.branch)
	if !ok {
		slog.Debug("Private repository settings incomplete", logfields.Ref(ref), logfields.File(propertiesFile))
	}
	return repo, ok
}

func (s *GitSource) readProperties() ([]byte, string, error) {
	repo, err := git.PlainOpen(s.dir)
	if err != nil {
		return nil, "", fmt.Errorf("open repository: %w", err)
	}

	ref, err := s.findRef(repo)
	if err != nil {
		return nil, "", err
	}

	commit, err := repo.CommitObject(ref.Hash())
	if err != nil {
		return nil, ref.Name().String(), fmt.Errorf("resolve %s: %w", ref.Name(), err)
	}
	file, err := commit.File(propertiesFile)
	if err != nil {
		return nil, ref.Name().String(), fmt.Errorf("read %s at %s: %w", propertiesFile, ref.Name(), err)
	}
	contents, err := file.Contents()
	if err != nil {
		return nil, ref.Name().String(), fmt.Errorf("read %s at %s: %w", propertiesFile, ref.Name(), err)
	}
	return []byte(contents), ref.Name().String(), nil
}

// findRef picks the first remote ref, in name order, ending in
// /upstream*/<branch>.
func (s *GitSource) findRef(repo *git.Repository) (*plumbing.Reference, error) {
	iter, err := repo.References()
	if err != nil {
		return nil, fmt.Errorf("list references: %w", err)
	}
	defer iter.Close()

	var matches []*plumbing.Reference
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		if ref.Type() != plumbing.HashReference || !ref.Name().IsRemote() {
			return nil
		}
		if s.refRx.MatchString(ref.Name().String()) {
			matches = append(matches, ref)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list references: %w", err)
	}
	if len(matches) == 0 {
		return nil, errNoPrivateRef
	}
	slices.SortFunc(matches, func(a, b *plumbing.Reference) int {
		return strings.Compare(a.Name().String(), b.Name().String())
	})
	return matches[0], nil
}

// parsePrivateRepository extracts build.repository.private.{url,username,
// password}[<branch>] from a properties document. The url is required.
// Values are taken verbatim: backslashes are not escape characters.
func parsePrivateRepository(data []byte, branch string) (model.Repository, bool) {
	loader := &properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}
	p, err := loader.LoadBytes(bytes.ReplaceAll(data, []byte(`\`), []byte(`\\`)))
	if err != nil {
		slog.Debug("Unparseable properties", logfields.File(propertiesFile), logfields.Error(err))
		return model.Repository{}, false
	}

	get := func(name string) string {
		v, _ := p.Get(privateKeyPrefix + name + "[" + branch + "]")
		return strings.TrimSpace(v)
	}

	url := get("url")
	if url == "" {
		return model.Repository{}, false
	}
	if i := strings.Index(url, "://"); i >= 0 {
		url = url[i+len("://"):]
	}

	return model.Repository{
		ID:       privateRepoID,
		Name:     privateRepoName,
		Scheme:   privateRepoScheme,
		Path:     url,
		Username: get("username"),
		Password: get("password"),
		Layout:   defaultLayout,
	}, true
}
