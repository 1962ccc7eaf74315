package pipedef

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/kbukum/pipey/errors"
)

// Loader loads descriptions by name.
type Loader interface {
	Load(name string) (*Definition, error)
}

// FileLoader searches directories for {name}.yaml or {name}.yml.
type FileLoader struct {
	dirs []string
}

// NewFileLoader creates a loader over dirs, searched in order.
func NewFileLoader(dirs ...string) *FileLoader {
	return &FileLoader{dirs: dirs}
}

// Load returns the first matching description. A file that exists but
// fails to parse is reported rather than skipped.
func (l *FileLoader) Load(name string) (*Definition, error) {
	for _, dir := range l.dirs {
		for _, ext := range []string{".yaml", ".yml"} {
			path := filepath.Join(dir, name+ext)
			if _, err := os.Stat(path); err != nil {
				continue
			}
			return Load(path)
		}
	}
	return nil, errors.NotFound("description", name).
		WithDetail("dirs", strings.Join(l.dirs, string(os.PathListSeparator)))
}

// Names lists the descriptions available in the loader's directories.
func (l *FileLoader) Names() []string {
	seen := map[string]bool{}
	var names []string
	for _, dir := range l.dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			ext := filepath.Ext(e.Name())
			if e.IsDir() || (ext != ".yaml" && ext != ".yml") {
				continue
			}
			name := strings.TrimSuffix(e.Name(), ext)
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return names
}
