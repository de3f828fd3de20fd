package asset

import (
	"context"
	"image"
	"io/fs"
	"log/slog"
	"sync"
	"time"

	"starship/internal/profiling"
)

// completion is a finished background load waiting to be published by Poll
type completion struct {
	apply func()
}

// Loader reads and decodes assets in background goroutines.
// Requests are deduplicated by path; the same handle is returned for repeat requests.
// Handle states only change inside Poll, which must run on the render thread.
type Loader struct {
	fsys fs.FS

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	images map[string]*Handle[*image.RGBA]
	models map[string]*Handle[*Model]

	doneMu sync.Mutex
	done   []completion
}

// NewLoader creates a loader reading from fsys
func NewLoader(fsys fs.FS) *Loader {
	ctx, cancel := context.WithCancel(context.Background())
	return &Loader{
		fsys:   fsys,
		ctx:    ctx,
		cancel: cancel,
		images: make(map[string]*Handle[*image.RGBA]),
		models: make(map[string]*Handle[*Model]),
	}
}

// Image requests a 2D image
func (l *Loader) Image(path string) *Handle[*image.RGBA] {
	if h, ok := l.images[path]; ok {
		return h
	}
	h := NewHandle[*image.RGBA](path)
	l.images[path] = h
	start(l, h, "image", func() (*image.RGBA, error) { return DecodeImage(l.fsys, path) })
	return h
}

// Model requests a glTF/GLB model
func (l *Loader) Model(path string) *Handle[*Model] {
	if h, ok := l.models[path]; ok {
		return h
	}
	h := NewHandle[*Model](path)
	l.models[path] = h
	start(l, h, "model", func() (*Model, error) { return DecodeModel(l.fsys, path) })
	return h
}

func start[T any](l *Loader, h *Handle[T], kind string, load func() (T, error)) {
	h.markLoading()
	if l.ctx.Err() != nil {
		h.fail(l.ctx.Err())
		return
	}

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		began := time.Now()
		v, err := load()

		// Drop results for a loader that has been closed
		if l.ctx.Err() != nil {
			return
		}
		l.push(completion{apply: func() {
			if err != nil {
				slog.Error("asset load failed", "kind", kind, "path", h.Path(), "error", err)
				h.fail(err)
				return
			}
			slog.Debug("asset loaded", "kind", kind, "path", h.Path(), "took", time.Since(began))
			h.resolve(v)
		}})
	}()
}

func (l *Loader) push(c completion) {
	l.doneMu.Lock()
	l.done = append(l.done, c)
	l.doneMu.Unlock()
}

// Poll publishes every finished load and returns how many handles changed state
func (l *Loader) Poll() int {
	defer profiling.Track("asset.Poll")()

	l.doneMu.Lock()
	done := l.done
	l.done = nil
	l.doneMu.Unlock()

	for _, c := range done {
		c.apply()
	}
	return len(done)
}

// Pending returns the number of requests still in the Loading state
func (l *Loader) Pending() int {
	n := 0
	for _, h := range l.images {
		if h.State() == StateLoading {
			n++
		}
	}
	for _, h := range l.models {
		if h.State() == StateLoading {
			n++
		}
	}
	return n
}

// Wait blocks until all in-flight loads have finished decoding.
// Results still need a Poll to become visible.
func (l *Loader) Wait() {
	l.wg.Wait()
}

// Close cancels outstanding loads and waits for their goroutines to exit.
// Loads that finish after Close are discarded.
func (l *Loader) Close() {
	l.cancel()
	l.wg.Wait()
	l.doneMu.Lock()
	l.done = nil
	l.doneMu.Unlock()
}
