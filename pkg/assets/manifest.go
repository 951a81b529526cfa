package assets

import (
	"encoding/json"
	"os"
	"sort"
	"time"

	"github.com/charmbracelet/log"

	"github.com/flagring/flagring/pkg/errors"
	"github.com/flagring/flagring/pkg/flag"
)

// Manifest is the validated flag catalog consumed by the CLI and server.
// Every entry in Flags has passed validation; consumers can render any of
// them without re-checking.
type Manifest struct {
	Version     string      `json:"version"`
	GeneratedAt time.Time   `json:"generated_at"`
	Flags       []flag.Flag `json:"flags"`
}

// BuildManifest validates every source entry and assembles the manifest.
// Invalid entries are skipped with a warning, never fatal: one bad flag
// must not take down the whole catalog. The skipped validation errors are
// returned for callers that want to surface them.
func BuildManifest(src *Source, logger *log.Logger) (*Manifest, []error) {
	if logger == nil {
		logger = log.Default()
	}

	var skipped []error
	flags := make([]flag.Flag, 0, len(src.Flags))
	for _, f := range src.Flags {
		if err := f.Validate(); err != nil {
			logger.Warn("skipping invalid flag", "id", f.ID, "err", err)
			skipped = append(skipped, err)
			continue
		}
		flags = append(flags, f)
	}

	sort.Slice(flags, func(i, j int) bool { return flags[i].ID < flags[j].ID })

	return &Manifest{
		Version:     src.Version,
		GeneratedAt: time.Now().UTC(),
		Flags:       flags,
	}, skipped
}

// LoadManifest reads a JSON manifest from disk.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "manifest %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read manifest %s", path)
	}
	return ParseManifest(data)
}

// ParseManifest decodes a JSON manifest from raw bytes.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "decode manifest")
	}
	return &m, nil
}

// Save writes the manifest as indented JSON, suitable for committing
// alongside the source file.
func (m *Manifest) Save(path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode manifest")
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write manifest %s", path)
	}
	return nil
}

// Find returns the flag with the given ID.
func (m *Manifest) Find(id string) (*flag.Flag, error) {
	for i := range m.Flags {
		if m.Flags[i].ID == id {
			return &m.Flags[i], nil
		}
	}
	return nil, errors.New(errors.ErrCodeFlagNotFound, "flag %q not found", id)
}

// Categories returns the distinct category names, sorted.
func (m *Manifest) Categories() []string {
	seen := make(map[string]bool)
	var cats []string
	for _, f := range m.Flags {
		if !seen[f.Category] {
			seen[f.Category] = true
			cats = append(cats, f.Category)
		}
	}
	sort.Strings(cats)
	return cats
}

// FilterCategory returns the flags in the given category, preserving
// manifest order. The result is never nil so it encodes to a JSON
// array even when empty.
func (m *Manifest) FilterCategory(category string) []flag.Flag {
	out := []flag.Flag{}
	for _, f := range m.Flags {
		if f.Category == category {
			out = append(out, f)
		}
	}
	return out
}
