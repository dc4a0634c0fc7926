package export

import (
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/pdxmph/todos/internal/db"
)

// Format writes a task list in one file format
type Format interface {
	// Name is the identifier used with --format, e.g. "csv"
	Name() string

	// Extension is the file suffix that selects this format, e.g. ".csv"
	Extension() string

	// Write renders tasks to w
	Write(w io.Writer, tasks []db.Task) error
}

// Registry manages the available export formats
type Registry struct {
	mu      sync.RWMutex
	formats map[string]Format
}

// NewRegistry creates an empty format registry
func NewRegistry() *Registry {
	return &Registry{
		formats: make(map[string]Format),
	}
}

// Register adds a format to the registry
func (r *Registry) Register(f Format) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.formats[f.Name()]; exists {
		return fmt.Errorf("format %s already registered", f.Name())
	}

	r.formats[f.Name()] = f
	return nil
}

// Lookup returns the format registered under name
func (r *Registry) Lookup(name string) (Format, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, exists := r.formats[name]
	if !exists {
		return nil, fmt.Errorf("unknown export format %q", name)
	}
	return f, nil
}

// ByExtension returns the format whose extension matches ext, if any
func (r *Registry) ByExtension(ext string) (Format, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, f := range r.formats {
		if f.Extension() == ext {
			return f, true
		}
	}
	return nil, false
}

// Names returns all registered format names, sorted
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.formats))
	for name := range r.formats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Global registry instance
var defaultRegistry = NewRegistry()

func mustRegister(f Format) {
	if err := defaultRegistry.Register(f); err != nil {
		panic(err)
	}
}

// Lookup finds a format in the global registry
func Lookup(name string) (Format, error) {
	return defaultRegistry.Lookup(name)
}

// Formats returns the names of all built-in formats
func Formats() []string {
	return defaultRegistry.Names()
}
