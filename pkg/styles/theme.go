package styles

import (
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// ThemeVariables flattens a go-theme manifest into CSS variable values. Base
// tokens come first and the named variant overrides them; an unknown variant
// is an error so a typo does not silently fall back to the base palette.
func ThemeVariables(manifest *theme.Manifest, variant string) (map[string]string, error) {
	if manifest == nil {
		return nil, fmt.Errorf("styles: theme manifest is nil")
	}

	vars := make(map[string]string, len(manifest.Tokens))
	for name, value := range manifest.Tokens {
		vars[tokenVariable(name)] = value
	}

	variant = strings.TrimSpace(variant)
	if variant == "" {
		return vars, nil
	}
	selected, ok := manifest.Variants[variant]
	if !ok {
		return nil, fmt.Errorf("styles: theme %q has no variant %q", manifest.Name, variant)
	}
	for name, value := range selected.Tokens {
		vars[tokenVariable(name)] = value
	}
	return vars, nil
}

// ApplyTheme sets every theme token as a variable on the fragment, in sorted
// name order.
func ApplyTheme(fragment *CSSString, manifest *theme.Manifest, variant string) error {
	if !fragment.sanctioned() {
		return ErrConstruction
	}
	vars, err := ThemeVariables(manifest, variant)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := fragment.SetVariable(name, vars[name]); err != nil {
			return fmt.Errorf("styles: apply theme token %q: %w", name, err)
		}
	}
	return nil
}

func tokenVariable(name string) string {
	return strings.TrimPrefix(strings.TrimSpace(name), "--")
}
