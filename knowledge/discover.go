// SPDX-License-Identifier: MIT

package knowledge

import (
	"fmt"
	"io/fs"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultPattern matches YAML documents at any depth.
const DefaultPattern = "**/*.{yaml,yml}"

// Discover returns the files in fsys matching pattern, sorted.
// Patterns support ** and {a,b} alternation.
func Discover(fsys fs.FS, pattern string) ([]string, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("%w: bad pattern %q", ErrInvalidDocument, pattern)
	}
	matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", pattern, err)
	}
	sort.Strings(matches)

	return matches, nil
}

// FileResult is the validation outcome of one document.
type FileResult struct {
	Path string
	Kind Kind
	Name string
	Err  error
}

// OK reports whether the document loaded cleanly.
func (r FileResult) OK() bool { return r.Err == nil }

// Validate loads every matching document independently and reports each
// outcome; one broken file does not hide the others. Cross-base links are
// checked last and reported against the profiles file that declares them.
func Validate(fsys fs.FS, pattern string) ([]FileResult, error) {
	paths, err := Discover(fsys, pattern)
	if err != nil {
		return nil, err
	}
	lib := newLibrary()
	out := make([]FileResult, 0, len(paths))
	for _, p := range paths {
		res := FileResult{Path: p}
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			res.Err = err
			out = append(out, res)

			continue
		}
		res.Kind, _ = SniffKind(data)
		res.Err = lib.add(p, data)
		res.Name = nameOf(lib, res.Kind, p)
		out = append(out, res)
	}
	for i := range out {
		if out[i].Err != nil || out[i].Kind != KindProfiles {
			continue
		}
		if _, err := lib.Matcher(out[i].Name); err != nil {
			out[i].Err = err
		}
	}

	return out, nil
}

func nameOf(lib *Library, kind Kind, path string) string {
	for key, p := range lib.sources {
		if p == path {
			return key[len(kind)+1:]
		}
	}

	return ""
}
