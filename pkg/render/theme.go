package render

import (
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"

	theme "github.com/goliatone/go-theme"
)

// StylesheetAsset is the asset key renderers use to look up their stylesheet.
const StylesheetAsset = "html.stylesheet"

// DefaultThemeName is the built-in theme served when configuration does not
// name another one.
const DefaultThemeName = "formkit"

// DefaultManifest describes the built-in theme. The dark variant only swaps
// colour tokens.
func DefaultManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    DefaultThemeName,
		Version: "1.0.0",
		Tokens: map[string]string{
			"background":  "#ffffff",
			"foreground":  "#09090b",
			"primary":     "#18181b",
			"muted":       "#71717a",
			"border":      "#e4e4e7",
			"destructive": "#ef4444",
			"radius":      "0.5rem",
		},
		Assets: theme.Assets{
			Prefix: "/assets",
			Files: map[string]string{
				StylesheetAsset: "formkit.css",
			},
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					"background": "#09090b",
					"foreground": "#fafafa",
					"primary":    "#fafafa",
					"muted":      "#a1a1aa",
					"border":     "#27272a",
				},
			},
		},
	}
}

// StaticSelector is a theme.ThemeSelector over a fixed set of manifests.
// Empty names select the default theme and variant.
type StaticSelector struct {
	mu             sync.RWMutex
	manifests      map[string]*theme.Manifest
	defaultTheme   string
	defaultVariant string
}

var _ theme.ThemeSelector = (*StaticSelector)(nil)

// NewStaticSelector registers manifests by name. The first manifest becomes
// the default unless SetDefault is called.
func NewStaticSelector(manifests ...*theme.Manifest) *StaticSelector {
	s := &StaticSelector{manifests: make(map[string]*theme.Manifest)}
	for _, m := range manifests {
		if m == nil || m.Name == "" {
			continue
		}
		if s.defaultTheme == "" {
			s.defaultTheme = m.Name
		}
		s.manifests[m.Name] = m
	}
	return s
}

// SetDefault changes the theme and variant used for empty selections.
func (s *StaticSelector) SetDefault(name, variant string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if name != "" {
		s.defaultTheme = name
	}
	s.defaultVariant = variant
}

// Select implements theme.ThemeSelector.
func (s *StaticSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if name == "" {
		name = s.defaultTheme
		if variant == "" {
			variant = s.defaultVariant
		}
	}
	m, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("render: theme %q not found", name)
	}
	if variant != "" {
		if _, ok := m.Variants[variant]; !ok {
			return nil, fmt.Errorf("render: theme %q has no variant %q", name, variant)
		}
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: m}, nil
}

// ResolveTheme selects a theme and flattens it into a renderer config.
// Variant tokens, templates and assets override the base manifest. Every
// token is also exposed as a CSS custom property named "--<token>".
// fallbacks fill partial names the theme does not define.
func ResolveTheme(selector theme.ThemeSelector, name, variant string, fallbacks map[string]string) (*theme.RendererConfig, error) {
	if selector == nil {
		return nil, fmt.Errorf("render: theme selector is nil")
	}
	sel, err := selector.Select(name, variant)
	if err != nil {
		return nil, err
	}
	if sel == nil || sel.Manifest == nil {
		return nil, fmt.Errorf("render: theme %q resolved without manifest", name)
	}

	m := sel.Manifest
	partials := make(map[string]string, len(fallbacks)+len(m.Templates))
	for k, v := range fallbacks {
		partials[k] = v
	}
	for k, v := range m.Templates {
		partials[k] = v
	}
	tokens := make(map[string]string, len(m.Tokens))
	for k, v := range m.Tokens {
		tokens[k] = v
	}
	prefix := m.Assets.Prefix
	files := make(map[string]string, len(m.Assets.Files))
	for k, v := range m.Assets.Files {
		files[k] = v
	}

	if v, ok := m.Variants[sel.Variant]; ok {
		for k, val := range v.Templates {
			partials[k] = val
		}
		for k, val := range v.Tokens {
			tokens[k] = val
		}
		if v.Assets.Prefix != "" {
			prefix = v.Assets.Prefix
		}
		for k, val := range v.Assets.Files {
			files[k] = val
		}
	}

	cssVars := make(map[string]string, len(tokens))
	for k, v := range tokens {
		cssVars["--"+k] = v
	}

	return &theme.RendererConfig{
		Theme:    sel.Theme,
		Variant:  sel.Variant,
		Partials: partials,
		Tokens:   tokens,
		CSSVars:  cssVars,
		AssetURL: func(key string) string {
			file, ok := files[key]
			if !ok {
				return ""
			}
			if strings.Contains(file, "://") || strings.HasPrefix(file, "/") || prefix == "" {
				return file
			}
			return path.Join(prefix, file)
		},
	}, nil
}

// CSSVarsStyle renders vars as a ":root" block with keys sorted.
func CSSVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range keys {
		b.WriteString("  ")
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}
