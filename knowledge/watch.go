// SPDX-License-Identifier: MIT

package knowledge

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long Watch waits for more changes before
// re-validating.
const DefaultDebounce = 300 * time.Millisecond

// Watch validates the YAML documents under dir once, then again after every
// burst of changes, passing each round of results to onChange. Watcher
// errors are passed to onError when it is non-nil. Watch blocks until ctx is
// cancelled and returns nil, or returns the setup error.
func Watch(ctx context.Context, dir string, debounce time.Duration, onChange func([]FileResult), onError func(error)) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()

	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if base := d.Name(); path != dir && strings.HasPrefix(base, ".") {
			return filepath.SkipDir
		}

		return fsw.Add(path)
	})
	if err != nil {
		return err
	}

	fsys := os.DirFS(dir)
	validate := func() {
		res, err := Validate(fsys, DefaultPattern)
		if err != nil {
			if onError != nil {
				onError(err)
			}

			return
		}
		onChange(res)
	}
	validate()

	timer := time.NewTimer(debounce)
	timer.Stop()
	pending := false
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					_ = fsw.Add(ev.Name)
				}
			}
			if !isYAML(ev.Name) {
				continue
			}
			pending = true
			timer.Reset(debounce)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			if onError != nil {
				onError(err)
			}

		case <-timer.C:
			if pending {
				pending = false
				validate()
			}
		}
	}
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}
