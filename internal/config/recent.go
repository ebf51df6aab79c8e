package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/renato0307/novix/internal/commands"
)

type recentFile struct {
	Entries []commands.RecentEntry `yaml:"entries"`
}

// LoadRecent reads the persisted recent list. A missing file yields an
// empty list.
func (l *Loader) LoadRecent() ([]commands.RecentEntry, error) {
	path := l.RecentPath()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read recent list: %w", err)
	}

	var f recentFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse recent list %s: %w", path, err)
	}
	return f.Entries, nil
}

// SaveRecent replaces the persisted recent list.
func (l *Loader) SaveRecent(entries []commands.RecentEntry) error {
	return writeYAML(l.RecentPath(), recentFile{Entries: entries})
}
