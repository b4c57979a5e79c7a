// SPDX-License-Identifier: MIT

package knowledge

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"sync"

	"github.com/katalvlaran/lvlogic/profile"
)

//go:embed kb/*.yaml
var builtin embed.FS

// Builtin returns the embedded knowledge bases as a file system rooted at
// the YAML files.
func Builtin() fs.FS {
	sub, err := fs.Sub(builtin, "kb")
	if err != nil {
		panic(err) // the embed pattern guarantees the directory
	}

	return sub
}

// Library is a set of loaded bases indexed by kind and name.
type Library struct {
	certainty map[string]*Certainty
	fuzzy     map[string]*Fuzzy
	profiles  map[string]*Profiles
	sources   map[string]string
}

func newLibrary() *Library {
	return &Library{
		certainty: make(map[string]*Certainty),
		fuzzy:     make(map[string]*Fuzzy),
		profiles:  make(map[string]*Profiles),
		sources:   make(map[string]string),
	}
}

var defaultLibrary = sync.OnceValues(func() (*Library, error) {
	return Open(Builtin(), DefaultPattern)
})

// Default returns the library of embedded bases, loaded once.
func Default() (*Library, error) { return defaultLibrary() }

// Open loads every document matching pattern in fsys and resolves the links
// between bases. The first failing file aborts the load.
func Open(fsys fs.FS, pattern string) (*Library, error) {
	paths, err := Discover(fsys, pattern)
	if err != nil {
		return nil, err
	}
	lib := newLibrary()
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, err
		}
		if err := lib.add(p, data); err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
	}
	if err := lib.link(); err != nil {
		return nil, err
	}

	return lib, nil
}

func (l *Library) add(path string, data []byte) error {
	kind, err := SniffKind(data)
	if err != nil {
		return err
	}
	var name string
	switch kind {
	case KindCertainty:
		kb, err := ParseCertainty(data)
		if err != nil {
			return err
		}
		if _, dup := l.certainty[kb.Name]; dup {
			return fmt.Errorf("%w: %s %q", ErrDuplicateBase, kind, kb.Name)
		}
		l.certainty[kb.Name], name = kb, kb.Name
	case KindFuzzy:
		kb, err := ParseFuzzy(data)
		if err != nil {
			return err
		}
		if _, dup := l.fuzzy[kb.Name]; dup {
			return fmt.Errorf("%w: %s %q", ErrDuplicateBase, kind, kb.Name)
		}
		l.fuzzy[kb.Name], name = kb, kb.Name
	case KindProfiles:
		kb, err := ParseProfiles(data)
		if err != nil {
			return err
		}
		if _, dup := l.profiles[kb.Name]; dup {
			return fmt.Errorf("%w: %s %q", ErrDuplicateBase, kind, kb.Name)
		}
		l.profiles[kb.Name], name = kb, kb.Name
	}
	l.sources[string(kind)+"/"+name] = path

	return nil
}

// link checks that every urgency reference names a loaded fuzzy output.
func (l *Library) link() error {
	for _, name := range sortedNames(l.profiles) {
		if _, err := l.Matcher(name); err != nil {
			return err
		}
	}

	return nil
}

// Certainty returns the named certainty base.
func (l *Library) Certainty(name string) (*Certainty, error) {
	kb, ok := l.certainty[name]
	if !ok {
		return nil, fmt.Errorf("%w: certainty %q", ErrNotFound, name)
	}

	return kb, nil
}

// Fuzzy returns the named fuzzy base.
func (l *Library) Fuzzy(name string) (*Fuzzy, error) {
	kb, ok := l.fuzzy[name]
	if !ok {
		return nil, fmt.Errorf("%w: fuzzy %q", ErrNotFound, name)
	}

	return kb, nil
}

// Profiles returns the named profiles base.
func (l *Library) Profiles(name string) (*Profiles, error) {
	kb, ok := l.profiles[name]
	if !ok {
		return nil, fmt.Errorf("%w: profiles %q", ErrNotFound, name)
	}

	return kb, nil
}

// Names lists the loaded bases of one kind, sorted.
func (l *Library) Names(kind Kind) []string {
	switch kind {
	case KindCertainty:
		return sortedNames(l.certainty)
	case KindFuzzy:
		return sortedNames(l.fuzzy)
	case KindProfiles:
		return sortedNames(l.profiles)
	default:
		return nil
	}
}

// Source returns the path a base was loaded from.
func (l *Library) Source(kind Kind, name string) (string, bool) {
	p, ok := l.sources[string(kind)+"/"+name]

	return p, ok
}

// Matcher builds a profile.Matcher for the named profiles base, wiring its
// urgency controller and neutral score when configured.
func (l *Library) Matcher(name string) (*profile.Matcher, error) {
	kb, err := l.Profiles(name)
	if err != nil {
		return nil, err
	}
	var opts []profile.Option
	if u := kb.Urgency; u != nil {
		fz, err := l.Fuzzy(u.Base)
		if err != nil {
			return nil, fmt.Errorf("profiles %q urgency: %w", name, err)
		}
		opts = append(opts, profile.WithUrgency(fz.Engine, u.Output))
		if u.Neutral != nil {
			opts = append(opts, profile.WithNeutralUrgency(*u.Neutral))
		}
	}
	m, err := profile.NewMatcher(kb.Profiles, opts...)
	if err != nil {
		return nil, fmt.Errorf("profiles %q: %w", name, err)
	}

	return m, nil
}

func sortedNames[T any](m map[string]T) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)

	return out
}
