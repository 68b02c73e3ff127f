// Package files manages the processed-artifact directory: output naming,
// listing, and traversal-safe path resolution for downloads.
package files

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode"
)

// maxStemLength caps the sanitized original filename so artifacts stay
// manageable on disk and in download links.
const maxStemLength = 50

// Artifact describes one processed output file.
type Artifact struct {
	Name      string    `json:"name"`
	SizeBytes int64     `json:"size_bytes"`
	CreatedAt time.Time `json:"created_at"`
}

// Manager provides access to the processed-artifact directory.
type Manager struct {
	dir    string
	logger *slog.Logger
}

// NewManager creates a manager rooted at dir.
func NewManager(dir string, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{dir: dir, logger: logger.With(slog.String("component", "files"))}
}

// Dir returns the managed directory.
func (m *Manager) Dir() string {
	return m.dir
}

// OutputName builds the artifact filename for an upload: a sortable
// timestamp prefix followed by the sanitized stem of the original name.
func OutputName(original string, now time.Time, ext string) string {
	stem := strings.TrimSuffix(filepath.Base(original), filepath.Ext(original))

	var b strings.Builder
	for _, c := range stem {
		if unicode.IsLetter(c) || unicode.IsDigit(c) || c == '_' || c == '-' {
			b.WriteRune(c)
		} else {
			b.WriteRune('_')
		}
	}

	// Collapse runs of underscores left behind by squashed characters.
	parts := strings.FieldsFunc(b.String(), func(c rune) bool { return c == '_' })
	cleaned := strings.Join(parts, "_")
	if cleaned == "" {
		cleaned = "report"
	}
	if len(cleaned) > maxStemLength {
		cleaned = cleaned[:maxStemLength]
	}

	return fmt.Sprintf("%s_%s%s", now.Format("20060102_150405"), cleaned, ext)
}

// Create opens a new artifact file for writing.
func (m *Manager) Create(name string) (*os.File, error) {
	path, err := m.Resolve(name)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create processed directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create artifact %s: %w", name, err)
	}
	return f, nil
}

// Resolve maps an artifact name to its absolute path, rejecting anything
// that would escape the managed directory.
func (m *Manager) Resolve(name string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(name))
	if cleaned != filepath.Base(cleaned) || strings.HasPrefix(cleaned, ".") {
		m.logger.Warn("rejected artifact path",
			slog.String("requested", name),
			slog.String("cleaned", cleaned))
		return "", fmt.Errorf("invalid artifact name: %s", name)
	}
	return filepath.Join(m.dir, cleaned), nil
}

// Remove deletes an artifact by name. Names are validated the same way as
// downloads so a delete can never reach outside the managed directory.
func (m *Manager) Remove(name string) error {
	path, err := m.Resolve(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("remove artifact %s: %w", name, err)
	}
	m.logger.Info("artifact removed", slog.String("name", name))
	return nil
}

// List returns all artifacts in the directory, newest first.
func (m *Manager) List() ([]Artifact, error) {
	entries, err := os.ReadDir(m.dir)
	if os.IsNotExist(err) {
		return []Artifact{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read processed directory: %w", err)
	}

	artifacts := make([]Artifact, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		artifacts = append(artifacts, Artifact{
			Name:      entry.Name(),
			SizeBytes: info.Size(),
			CreatedAt: info.ModTime(),
		})
	}

	sort.Slice(artifacts, func(i, j int) bool {
		return artifacts[i].CreatedAt.After(artifacts[j].CreatedAt)
	})
	return artifacts, nil
}
