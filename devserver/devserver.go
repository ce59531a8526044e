// Package devserver watches a directory of ".pulse" sources, recompiles
// any that change, and pushes the result to connected browser clients
// over a WebSocket so a page can hot-swap without a full reload.
package devserver

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/vincenthirtz/pulse-js-framework-sub000/compiler"
)

// CompileResult is pushed to connected clients after a recompile, success
// or failure.
type CompileResult struct {
	Path string `json:"path"`
	Code string `json:"code,omitempty"`
	CSS  string `json:"css,omitempty"`
	Err  string `json:"error,omitempty"`
}

// Watcher compiles ".pulse" files under a directory and reports every
// recompile to onResult, debouncing rapid successive writes to the same
// file the way editors and build tools tend to fire them.
type Watcher struct {
	dir       string
	debounce  time.Duration
	onResult  func(CompileResult)
	fsWatcher *fsnotify.Watcher
	stop      chan struct{}
}

// Watch starts watching dir for ".pulse" file changes, recompiling each
// one as it settles and invoking onResult with the outcome. It returns a
// stop function that halts watching and releases OS watch handles.
func Watch(dir string, onResult func(CompileResult)) (stop func(), err error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		dir:       dir,
		debounce:  150 * time.Millisecond,
		onResult:  onResult,
		fsWatcher: fw,
		stop:      make(chan struct{}),
	}

	if err := w.addRecursive(dir); err != nil {
		fw.Close()
		return nil, err
	}

	go w.loop()

	return func() {
		close(w.stop)
		w.fsWatcher.Close()
	}, nil
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if strings.HasPrefix(info.Name(), ".") && path != root {
				return filepath.SkipDir
			}
			return w.fsWatcher.Add(path)
		}
		return nil
	})
}

func (w *Watcher) loop() {
	pending := make(map[string]*time.Timer)

	for {
		select {
		case <-w.stop:
			for _, t := range pending {
				t.Stop()
			}
			return
		case ev, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !strings.HasSuffix(ev.Name, ".pulse") {
				continue
			}
			path := ev.Name
			if t, exists := pending[path]; exists {
				t.Stop()
			}
			pending[path] = time.AfterFunc(w.debounce, func() {
				w.recompile(path)
			})
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.Println("devserver: watch error:", err)
		}
	}
}

func (w *Watcher) recompile(path string) {
	src, err := os.ReadFile(path)
	if err != nil {
		w.onResult(CompileResult{Path: path, Err: err.Error()})
		return
	}

	result, err := compiler.Compile(string(src), compiler.Options{Filename: path})
	if err != nil {
		w.onResult(CompileResult{Path: path, Err: err.Error()})
		return
	}

	w.onResult(CompileResult{Path: path, Code: result.Code, CSS: result.CSS})
}
