package workspace

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	apperrors "git.home.luguber.info/inful/workspacegen/internal/errors"
	"git.home.luguber.info/inful/workspacegen/internal/logfields"
	"git.home.luguber.info/inful/workspacegen/internal/model"
)

// Result of saving one artifact.
type Result string

const (
	ResultWritten   Result = "written"
	ResultUnchanged Result = "unchanged"
	ResultSkipped   Result = "skipped" // dry run
)

// Manager writes artifacts below its root directory.
type Manager struct {
	baseDir string
	root    string
	staging bool // If true, root is a timestamped directory under baseDir
	dryRun  bool

	mu      sync.Mutex
	written []string
}

// NewManager writes directly into dir.
func NewManager(dir string) *Manager {
	if dir == "" {
		dir = "."
	}
	return &Manager{baseDir: dir, root: dir}
}

// NewStagingManager writes into a timestamped directory under baseDir,
// created by Create.
func NewStagingManager(baseDir string) *Manager {
	if baseDir == "" {
		baseDir = os.TempDir()
	}
	return &Manager{baseDir: baseDir, staging: true}
}

// WithDryRun toggles dry-run mode (fluent helper).
func (m *Manager) WithDryRun(dryRun bool) *Manager {
	m.dryRun = dryRun
	return m
}

// Create prepares the root directory.
// For direct mode: ensures the directory exists
// For staging mode: creates a timestamped directory
func (m *Manager) Create() error {
	if m.dryRun {
		return nil
	}
	if !m.staging {
		if err := os.MkdirAll(m.root, 0o750); err != nil {
			return apperrors.WriteFailed(m.root, fmt.Errorf("failed to create output directory: %w", err))
		}
		return nil
	}

	timestamp := time.Now().Format("20060102-150405")
	root := filepath.Join(m.baseDir, fmt.Sprintf("workspacegen-%s", timestamp))
	if err := os.MkdirAll(root, 0o750); err != nil {
		return apperrors.WriteFailed(root, fmt.Errorf("failed to create staging directory: %w", err))
	}
	m.root = root
	slog.Info("Created staging directory", logfields.Path(root))
	return nil
}

// GetPath returns the root directory artifacts are written to.
func (m *Manager) GetPath() string {
	return m.root
}

// Save writes one artifact. Files whose content is already up to date are
// left alone so IDEs watching the project do not reload them.
func (m *Manager) Save(artifact model.Artifact) (Result, error) {
	if !filepath.IsLocal(filepath.FromSlash(artifact.Path)) {
		return "", apperrors.WriteFailed(artifact.Path, fmt.Errorf("artifact path escapes output directory"))
	}
	if m.dryRun {
		slog.Debug("Dry run, not writing", logfields.Artifact(artifact.Path))
		m.record(artifact.Path)
		return ResultSkipped, nil
	}
	if m.root == "" {
		return "", apperrors.WriteFailed(artifact.Path, fmt.Errorf("workspace not created"))
	}

	target := filepath.Join(m.root, filepath.FromSlash(artifact.Path))

	content := []byte(artifact.Content)
	if existing, err := os.ReadFile(target); err == nil && bytes.Equal(existing, content) {
		return ResultUnchanged, nil
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
		return "", apperrors.WriteFailed(target, err)
	}
	// #nosec G306 -- project files are meant to be readable by the IDE user and team
	if err := os.WriteFile(target, content, 0o644); err != nil {
		return "", apperrors.WriteFailed(target, err)
	}
	m.record(artifact.Path)
	return ResultWritten, nil
}

func (m *Manager) record(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.written = append(m.written, path)
}

// Written lists artifact paths written (or, in dry-run mode, that would
// have been written) so far.
func (m *Manager) Written() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.written...)
}

// Cleanup removes a staging directory. Direct mode leaves the project alone.
func (m *Manager) Cleanup() error {
	if !m.staging || m.root == "" {
		return nil
	}
	if err := os.RemoveAll(m.root); err != nil {
		return fmt.Errorf("failed to cleanup staging directory: %w", err)
	}
	slog.Info("Cleaned up staging directory", logfields.Path(m.root))
	m.root = ""
	return nil
}
