package manifest

import (
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Set holds loaded components keyed by tag and the themes they reference.
type Set struct {
	components map[string]*Component
	themes     map[string]*theme.Manifest
}

// NewSet returns an empty set.
func NewSet() *Set {
	return &Set{
		components: make(map[string]*Component),
		themes:     make(map[string]*theme.Manifest),
	}
}

// Add registers a component. Tags must be valid custom element names and
// unique within the set.
func (s *Set) Add(component *Component) error {
	if component == nil {
		return fmt.Errorf("manifest: component is nil")
	}
	tag := strings.TrimSpace(component.Tag)
	if err := validateTag(tag); err != nil {
		return err
	}
	if existing, exists := s.components[tag]; exists {
		return fmt.Errorf("manifest: duplicate component %q (%s and %s)", tag, existing.Source, component.Source)
	}
	component.Tag = tag
	component.ensureTemplates()
	s.components[tag] = component
	return nil
}

// AddTheme registers a theme manifest under its name.
func (s *Set) AddTheme(manifest *theme.Manifest) error {
	if manifest == nil || strings.TrimSpace(manifest.Name) == "" {
		return fmt.Errorf("manifest: theme name is required")
	}
	if _, exists := s.themes[manifest.Name]; exists {
		return fmt.Errorf("manifest: duplicate theme %q", manifest.Name)
	}
	s.themes[manifest.Name] = manifest
	return nil
}

// Component returns the component declared for tag.
func (s *Set) Component(tag string) (*Component, bool) {
	if s == nil {
		return nil, false
	}
	c, ok := s.components[strings.ToLower(strings.TrimSpace(tag))]
	return c, ok
}

// Theme returns the named theme.
func (s *Set) Theme(name string) (*theme.Manifest, bool) {
	if s == nil {
		return nil, false
	}
	m, ok := s.themes[name]
	return m, ok
}

// Tags returns the sorted component tags.
func (s *Set) Tags() []string {
	if s == nil {
		return nil
	}
	tags := make([]string, 0, len(s.components))
	for tag := range s.components {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// Empty reports whether the set holds any components.
func (s *Set) Empty() bool {
	return s == nil || len(s.components) == 0
}

// Validate checks every component's properties and theme reference and
// reports all problems at once.
func (s *Set) Validate() error {
	var errs error
	for _, tag := range s.Tags() {
		c := s.components[tag]
		if _, err := c.Registry(); err != nil {
			errs = multierr.Append(errs, err)
		}
		if name := strings.TrimSpace(c.Theme); name != "" {
			if _, ok := s.themes[name]; !ok {
				errs = multierr.Append(errs, fmt.Errorf("manifest: %s: unknown theme %q", tag, name))
			}
		}
	}
	return errs
}

// LoadOption configures LoadFS.
type LoadOption func(*loadConfig)

type loadConfig struct {
	log *zap.Logger
}

// WithLogger attaches a logger to the loader.
func WithLogger(logger *zap.Logger) LoadOption {
	return func(cfg *loadConfig) {
		if logger != nil {
			cfg.log = logger
		}
	}
}

// LoadFS walks fsys and parses every YAML or JSON manifest. A nil fsys yields
// an empty set. Structural problems stop the walk; property problems are
// collected across all files and returned together.
func LoadFS(fsys fs.FS, opts ...LoadOption) (*Set, error) {
	cfg := loadConfig{log: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	log := cfg.log.Named("manifest")

	set := NewSet()
	if fsys == nil {
		return set, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isManifestFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("manifest: read %s: %w", path, err)
		}
		if err := set.parse(data, path); err != nil {
			return err
		}
		log.Debug("loaded manifest", zap.String("path", path))
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := set.Validate(); err != nil {
		return nil, err
	}
	return set, nil
}

// Parse reads a single manifest document.
func Parse(data []byte, source string) (*Set, error) {
	set := NewSet()
	if err := set.parse(data, source); err != nil {
		return nil, err
	}
	if err := set.Validate(); err != nil {
		return nil, err
	}
	return set, nil
}

// Encode writes components as a manifest document.
func Encode(w io.Writer, components ...*Component) error {
	doc := documentFile{Components: make(map[string]*Component, len(components))}
	for _, c := range components {
		if c == nil {
			continue
		}
		doc.Components[c.Tag] = c
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("manifest: encode: %w", err)
	}
	return enc.Close()
}

type documentFile struct {
	Components map[string]*Component `yaml:"components,omitempty"`
	Themes     map[string]themeFile  `yaml:"themes,omitempty"`
}

type themeFile struct {
	Version  string                       `yaml:"version"`
	Tokens   map[string]string            `yaml:"tokens"`
	Variants map[string]map[string]string `yaml:"variants"`
}

func (s *Set) parse(data []byte, source string) error {
	if len(strings.TrimSpace(string(data))) == 0 {
		return fmt.Errorf("manifest: file %s is empty", source)
	}
	var doc documentFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("manifest: parse %s: %w", source, err)
	}

	names := make([]string, 0, len(doc.Themes))
	for name := range doc.Themes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := s.AddTheme(doc.Themes[name].manifest(name)); err != nil {
			return fmt.Errorf("%w (file %s)", err, source)
		}
	}

	tags := make([]string, 0, len(doc.Components))
	for tag := range doc.Components {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	for _, tag := range tags {
		component := doc.Components[tag]
		if component == nil {
			component = &Component{}
		}
		component.Tag = tag
		component.Source = source
		if err := s.Add(component); err != nil {
			return fmt.Errorf("%w (file %s)", err, source)
		}
	}
	return nil
}

func (t themeFile) manifest(name string) *theme.Manifest {
	m := &theme.Manifest{
		Name:    strings.TrimSpace(name),
		Version: t.Version,
		Tokens:  t.Tokens,
	}
	if len(t.Variants) > 0 {
		m.Variants = make(map[string]theme.Variant, len(t.Variants))
		for variant, tokens := range t.Variants {
			m.Variants[variant] = theme.Variant{Tokens: tokens}
		}
	}
	return m
}

// validateTag applies the custom element naming rule: lower case, starting
// with a letter, containing a hyphen.
func validateTag(tag string) error {
	if tag == "" {
		return fmt.Errorf("manifest: component tag is required")
	}
	if tag != strings.ToLower(tag) {
		return fmt.Errorf("manifest: component tag %q must be lower case", tag)
	}
	if tag[0] < 'a' || tag[0] > 'z' {
		return fmt.Errorf("manifest: component tag %q must start with a letter", tag)
	}
	if !strings.Contains(tag, "-") {
		return fmt.Errorf("manifest: component tag %q must contain a hyphen", tag)
	}
	for _, r := range tag {
		if r == ' ' || r == '/' || r == '>' || r == '=' || r == '"' || r == '\'' {
			return fmt.Errorf("manifest: component tag %q contains %q", tag, r)
		}
	}
	return nil
}

func isManifestFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
