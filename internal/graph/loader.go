package graph

import (
	"fmt"
	"os"
	"sync"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// Loader reads a YAML graph definition file and watches it for changes.
type Loader struct {
	path     string
	mu       sync.Mutex
	onChange []func(*Definition)
}

// NewLoader creates a Loader for path. No file access happens until Load.
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load reads and parses the definition file.
func (l *Loader) Load() (*Definition, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("read graph %s: %w", l.path, err)
	}
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parse graph %s: %w", l.path, err)
	}
	return &def, nil
}

// OnChange registers a callback invoked with the freshly parsed definition
// whenever the file changes on disk.
func (l *Loader) OnChange(fn func(*Definition)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onChange = append(l.onChange, fn)
}

// Watch starts a background goroutine that re-reads the graph file on change
// and notifies OnChange callbacks. Parse failures are skipped silently here;
// callbacks see only syntactically valid definitions (semantic validation is
// the Store's job). Call the returned stop function to clean up.
func (l *Loader) Watch() (stop func(), err error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("graph watcher: %w", err)
	}
	if err := w.Add(l.path); err != nil {
		w.Close()
		return nil, fmt.Errorf("graph watcher add %s: %w", l.path, err)
	}

	done := make(chan struct{})
	go func() {
		defer w.Close()
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
					def, err := l.Load()
					if err != nil {
						continue
					}
					l.mu.Lock()
					callbacks := make([]func(*Definition), len(l.onChange))
					copy(callbacks, l.onChange)
					l.mu.Unlock()
					for _, fn := range callbacks {
						fn(def)
					}
				}
			case <-w.Errors:
				// Ignore watcher errors.
			case <-done:
				return
			}
		}
	}()

	return func() { close(done) }, nil
}
