package bitfont

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/npillmayer/bitfont/bmf"
	"github.com/npillmayer/bitfont/internal/fontload"
	"github.com/npillmayer/schuko/tracing"
)

// Registry is a type for holding loaded fonts by name.
//
// Registry operations are safe for concurrent use. Fonts handed out by a
// registry are not: clients have to serialize access to a font.
type Registry struct {
	sync.Mutex
	fonts      map[string]*bmf.Font
	searchPath []string
	opts       []bmf.Option
	memory     bool
}

// RegistryOption configures a registry.
type RegistryOption func(*Registry)

// SearchPath sets directories to search for font files in Load.
func SearchPath(dirs ...string) RegistryOption {
	return func(r *Registry) { r.searchPath = dirs }
}

// FontOptions sets options for fonts opened by Load.
func FontOptions(opts ...bmf.Option) RegistryOption {
	return func(r *Registry) { r.opts = opts }
}

// InMemory makes Load read font files into memory, instead of opening them
// for file-backed access.
func InMemory() RegistryOption {
	return func(r *Registry) { r.memory = true }
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{fonts: make(map[string]*bmf.Font)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NormalizeFontname turns a font name or file name into a registry key.
func NormalizeFontname(name string) string {
	name = strings.TrimSpace(filepath.Base(name))
	if ext := filepath.Ext(name); ext != "" {
		name = name[:len(name)-len(ext)]
	}
	name = strings.ReplaceAll(name, " ", "_")
	return strings.ToLower(name)
}

// Register stores a font under a name. If the name is already taken, the
// registry is unchanged and an error is returned.
func (r *Registry) Register(name string, f *bmf.Font) error {
	if f == nil {
		return errors.New("registry cannot store nil font")
	}
	key := NormalizeFontname(name)
	r.Lock()
	defer r.Unlock()
	if _, ok := r.fonts[key]; ok {
		return fmt.Errorf("registry already has a font %q", key)
	}
	tracer().Debugf("registry stores font %s", key)
	r.fonts[key] = f
	return nil
}

// Load returns the font registered for name. If there is none, the font file
// is located in the registry's search path, opened and registered.
func (r *Registry) Load(name string) (*bmf.Font, error) {
	key := NormalizeFontname(name)
	r.Lock()
	defer r.Unlock()
	if f, ok := r.fonts[key]; ok {
		return f, nil
	}
	path, err := fontload.Find(name, r.searchPath...)
	if err != nil {
		return nil, err
	}
	var f *bmf.Font
	if r.memory {
		f, err = ReadFont(path, r.opts...)
	} else {
		f, err = LoadFont(path, r.opts...)
	}
	if err != nil {
		tracer().Errorf("registry cannot load font %s: %v", name, err)
		return nil, err
	}
	tracer().Infof("registry loaded font %s from %s", key, path)
	r.fonts[key] = f
	return f, nil
}

// Font returns the font registered for name, if any.
func (r *Registry) Font(name string) (*bmf.Font, bool) {
	r.Lock()
	defer r.Unlock()
	f, ok := r.fonts[NormalizeFontname(name)]
	return f, ok
}

// Names returns the names of the registered fonts, sorted.
func (r *Registry) Names() []string {
	r.Lock()
	defer r.Unlock()
	names := make([]string, 0, len(r.fonts))
	for k := range r.fonts {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Teardown closes all registered fonts and empties the registry.
func (r *Registry) Teardown() error {
	r.Lock()
	defer r.Unlock()
	var errs []error
	for k, f := range r.fonts {
		if err := f.Close(); err != nil {
			errs = append(errs, fmt.Errorf("font %s: %w", k, err))
		}
	}
	tracer().Debugf("registry closed %d fonts", len(r.fonts))
	clear(r.fonts)
	return errors.Join(errs...)
}

// LogFontList is a helper function to dump the list of registered fonts
// to the trace (log-level Info).
func (r *Registry) LogFontList() {
	level := tracer().GetTraceLevel()
	tracer().SetTraceLevel(tracing.LevelInfo)
	tracer().Infof("--- registered fonts ---")
	for _, name := range r.Names() {
		f, _ := r.Font(name)
		tracer().Infof("font [%s] = %s", name, f.Header)
	}
	tracer().Infof("------------------------")
	tracer().SetTraceLevel(level)
}
