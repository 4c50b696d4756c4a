package palette

import (
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Library is a collection of palettes keyed by name. The built-in palettes
// are always present and take precedence over any loaded palette with the
// same name. A Library is safe for concurrent use.
type Library struct {
	mu       sync.RWMutex
	palettes []Palette
	logger   *log.Logger
}

// NewLibrary returns a Library containing just the built-in palettes
func NewLibrary(logger *log.Logger) *Library {
	if logger == nil {
		logger = log.New(ioutil.Discard, "", 0)
	}
	return &Library{
		palettes: Builtin(),
		logger:   logger,
	}
}

// Add adds p to the library unless a palette with the same name already
// exists or p has no colors. It reports whether p was added.
func (l *Library) Add(p Palette) bool {
	if p.Empty() {
		return false
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	for _, existing := range l.palettes {
		if existing.Name == p.Name {
			return false
		}
	}
	l.palettes = append(l.palettes, p)

	return true
}

// LoadDir adds every .gpl and .toml palette found directly within dir.
// Files that fail to parse are logged and skipped. A missing directory is
// not an error.
func (l *Library) LoadDir(dir string) error {
	files, err := ioutil.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Name() < files[j].Name() })

	for _, info := range files {
		if !info.Mode().IsRegular() || info.Name()[0] == '.' {
			continue
		}

		switch strings.ToLower(filepath.Ext(info.Name())) {
		case ".gpl", ".toml":
		default:
			continue
		}

		p, err := Load(filepath.Join(dir, info.Name()))
		if err != nil {
			l.logger.Printf("Skipping palette: %s\n", err)
			continue
		}
		if !l.Add(p) {
			l.logger.Printf("Skipping duplicate palette \"%s\"\n", p.Name)
		}
	}

	return nil
}

// Lookup returns the palette with the given name
func (l *Library) Lookup(name string) (Palette, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, p := range l.palettes {
		if p.Name == name {
			return p, true
		}
	}
	return Palette{}, false
}

// Resolve returns the palette with the given name, falling back to the
// default palette if there is no such palette
func (l *Library) Resolve(name string) Palette {
	if p, ok := l.Lookup(name); ok {
		return p
	}
	if p, ok := l.Lookup(DefaultName); ok {
		return p
	}
	return Builtin()[0]
}

// All returns every palette in the library in the order they were added
func (l *Library) All() []Palette {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return append(l.palettes[:0:0], l.palettes...)
}
