package render

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/goliatone/go-formkit/pkg/page"
)

// ErrRendererNotFound is returned when a lookup names no registered renderer.
var ErrRendererNotFound = errors.New("render: renderer not found")

// Registry maps configured renderer names ("html", "tui") to renderers. It is
// safe for concurrent use; the server shares one across requests.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]Renderer
}

func NewRegistry() *Registry {
	return &Registry{byName: map[string]Renderer{}}
}

// Register adds renderer under its Name. Names are unique.
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return errors.New("render: renderer is required")
	}
	name := renderer.Name()
	if name == "" {
		return errors.New("render: renderer name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.byName[name]; taken {
		return fmt.Errorf("render: renderer %q already registered", name)
	}
	r.byName[name] = renderer
	return nil
}

// MustRegister is Register for start-up wiring; it panics on error.
func (r *Registry) MustRegister(renderer Renderer) {
	if err := r.Register(renderer); err != nil {
		panic(err)
	}
}

// Get returns the renderer registered as name. Misses wrap
// ErrRendererNotFound.
func (r *Registry) Get(name string) (Renderer, error) {
	r.mu.RLock()
	renderer, ok := r.byName[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrRendererNotFound, name)
	}
	return renderer, nil
}

// Render renders p with the renderer registered as name and returns the
// output together with its content type.
func (r *Registry) Render(ctx context.Context, name string, p page.Page, options RenderOptions) ([]byte, string, error) {
	if p == nil {
		return nil, "", errors.New("render: page is required")
	}
	renderer, err := r.Get(name)
	if err != nil {
		return nil, "", err
	}
	out, err := renderer.Render(ctx, p, options)
	if err != nil {
		return nil, "", fmt.Errorf("render: %s %s: %w", name, p.Kind(), err)
	}
	return out, renderer.ContentType(), nil
}

// List returns the registered names in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.byName))
}

func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byName[name]
	return ok
}
