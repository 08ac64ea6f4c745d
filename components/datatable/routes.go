package datatable

import (
	"fmt"
	"net/http"
	"strings"
)

// Mux is the minimal interface required to register a net/http handler.
// It is satisfied by *http.ServeMux and chi.Router.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// MountPath returns the full mount path for the component route under basePath.
func MountPath(basePath string, fns ...OptionFn) string {
	opts := NewOptions(fns...)
	return mountPath(basePath, opts.RoutePath)
}

// RegisterRoutes registers the records handler under basePath on mux.
func RegisterRoutes(mux Mux, basePath string, fns ...OptionFn) (string, error) {
	opts := NewOptions(fns...)
	return RegisterRoutesWithOptions(mux, basePath, opts)
}

// RegisterRoutesWithOptions registers the collection route and, when deletes
// are enabled, the <route>/{id} item route. Both share one handler so they
// see the same Store.
func RegisterRoutesWithOptions(mux Mux, basePath string, opts Options) (string, error) {
	if mux == nil {
		return "", fmt.Errorf("datatable: missing mux")
	}
	opts = NewOptions(func(o *Options) { *o = opts })
	if opts.Store == nil {
		store, err := NewDefaultStore()
		if err != nil {
			return "", fmt.Errorf("datatable: load default records: %w", err)
		}
		opts.Store = store
	}

	pattern := mountPath(basePath, opts.RoutePath)
	handler := HandlerWithOptions(opts)
	mux.Handle(pattern, handler)
	if opts.AllowDelete {
		mux.Handle(pattern+"/{id}", handler)
	}
	return pattern, nil
}

func mountPath(basePath, routePath string) string {
	basePath = strings.TrimSpace(basePath)
	routePath = strings.TrimSpace(routePath)

	if routePath == "" {
		routePath = "/"
	}
	if !strings.HasPrefix(routePath, "/") {
		routePath = "/" + routePath
	}

	if basePath == "" || basePath == "/" {
		return routePath
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	basePath = strings.TrimRight(basePath, "/")
	return basePath + routePath
}
