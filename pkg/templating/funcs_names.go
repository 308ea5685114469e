package templating

import (
	"fmt"

	"github.com/CTAG07/namegen/pkg/textgen"
)

// lookup returns the generator registered under name. Callers run inside a
// template execution, which already holds mu for reading.
func (tm *TemplateManager) lookup(name string) (textgen.Generator, error) {
	g, ok := tm.generators[name]
	if !ok {
		return nil, fmt.Errorf("unknown generator '%s'", name)
	}
	return g, nil
}

// gen returns one name from the named generator using its configured filter.
func (tm *TemplateManager) gen(name string) (string, error) {
	g, err := tm.lookup(name)
	if err != nil {
		return "", err
	}
	tm.genMu.Lock()
	defer tm.genMu.Unlock()
	return g.GenerateOne()
}

// genWith returns one name from the named generator, overriding its filter
// for this call. Zero values keep the configured setting.
func (tm *TemplateManager) genWith(name string, minLength, maxLength int, startsWith, endsWith string) (string, error) {
	g, err := tm.lookup(name)
	if err != nil {
		return "", err
	}
	tm.genMu.Lock()
	defer tm.genMu.Unlock()
	return g.Generate(minLength, maxLength, startsWith, endsWith)
}

// full joins one name from each of two generators with the configured separator.
func (tm *TemplateManager) full(first, second string) (string, error) {
	g1, err := tm.lookup(first)
	if err != nil {
		return "", err
	}
	g2, err := tm.lookup(second)
	if err != nil {
		return "", err
	}
	tm.genMu.Lock()
	defer tm.genMu.Unlock()
	c := textgen.NewComposite(g1, g2, "")
	c.SetSeparator(tm.config.Separator)
	return c.GenerateOne()
}
