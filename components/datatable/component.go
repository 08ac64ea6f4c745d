package datatable

import "net/http"

// Component bundles the records handler, its Store and routing helpers so a
// page and its JSON endpoint read the same data.
type Component struct {
	opts Options
}

// New constructs a component with default options plus any overrides. When
// no store is supplied the embedded records are loaded.
func New(fns ...OptionFn) (*Component, error) {
	opts := NewOptions(fns...)
	if opts.Store == nil {
		store, err := NewDefaultStore()
		if err != nil {
			return nil, err
		}
		opts.Store = store
	}
	return &Component{opts: opts}, nil
}

// Options returns a copy of the component configuration.
func (c *Component) Options() Options {
	if c == nil {
		return DefaultOptions()
	}
	return NewOptions(func(o *Options) { *o = c.opts })
}

// Store returns the component's backing store.
func (c *Component) Store() *Store {
	if c == nil {
		return nil
	}
	return c.opts.Store
}

// Search runs Search over the component's store.
func (c *Component) Search(query string, limit int) []Record {
	if c == nil || c.opts.Store == nil {
		return nil
	}
	return Search(c.opts.Store.All(), query, limit, c.opts)
}

// Handler returns a net/http handler for record queries.
func (c *Component) Handler() http.Handler {
	if c == nil {
		return Handler()
	}
	return HandlerWithOptions(c.opts)
}

// RegisterRoutes registers the component handler under basePath on mux.
func (c *Component) RegisterRoutes(mux Mux, basePath string) (string, error) {
	if c == nil {
		return RegisterRoutes(mux, basePath)
	}
	return RegisterRoutesWithOptions(mux, basePath, c.opts)
}
