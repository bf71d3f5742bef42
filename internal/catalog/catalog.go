package catalog

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"wrestling-coach/internal/domain"

	"go.uber.org/fx"
	"gopkg.in/yaml.v3"
)

//go:embed programs.yaml
var defaultPrograms []byte

type Catalog struct {
	Programs []domain.Program `yaml:"programs"`
}

// Default returns the built-in conference.
func Default() (*Catalog, error) {
	return Parse(defaultPrograms)
}

func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse program catalog: %w", err)
	}
	seen := map[string]bool{}
	for i, p := range c.Programs {
		if p.Name == "" {
			return nil, fmt.Errorf("program %d has no name", i)
		}
		if seen[p.Name] {
			return nil, fmt.Errorf("program %q listed twice", p.Name)
		}
		seen[p.Name] = true
		c.Programs[i].Prestige = domain.ClampStat(p.Prestige)
	}
	return &c, nil
}

func Read(r io.Reader) (*Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read program catalog: %w", err)
	}
	return Parse(data)
}

func Open(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

func (c *Catalog) Find(name string) (domain.Program, bool) {
	for _, p := range c.Programs {
		if p.Name == name {
			return p, true
		}
	}
	return domain.Program{}, false
}

var Module = fx.Provide(Default)
