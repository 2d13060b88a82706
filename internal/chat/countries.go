package chat

import (
	_ "embed"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

//go:embed countries.yaml
var defaultCountriesYAML []byte

// Country is one supported export destination.
type Country struct {
	Name       string   `yaml:"name"`
	Flag       string   `yaml:"flag"`
	Difficulty string   `yaml:"difficulty"`  // Low, Medium, High
	MarketSize string   `yaml:"market_size"` // Medium, Large, Very Large
	Aliases    []string `yaml:"aliases"`
}

// DifficultyLabel renders the difficulty in Bahasa Indonesia for user-facing
// text.
func (c Country) DifficultyLabel() string {
	switch c.Difficulty {
	case "Low":
		return "Rendah"
	case "High":
		return "Tinggi"
	default:
		return "Sedang"
	}
}

// Catalog holds the supported destination countries in priority order.
// Ordering matters: alias scanning returns the first match, and the
// clarification menu lists markets easiest-first.
type Catalog struct {
	Countries []Country `yaml:"countries"`
}

// DefaultCatalog parses the embedded country list.
func DefaultCatalog() *Catalog {
	c, err := parseCatalog(defaultCountriesYAML)
	if err != nil {
		// The embedded file is compiled in; a parse failure is a build defect.
		panic(err)
	}
	return c
}

// LoadCatalog reads a catalog from a YAML file, for deployments that want to
// add or reorder destination markets without a rebuild.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "chat: read countries file %s", path)
	}
	return parseCatalog(data)
}

func parseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, eris.Wrap(err, "chat: parse countries yaml")
	}
	if len(c.Countries) == 0 {
		return nil, eris.New("chat: countries yaml lists no countries")
	}
	return &c, nil
}

// Resolve scans text for any country alias and returns the canonical country
// name of the first catalog entry that matches. Empty string if none match.
func (c *Catalog) Resolve(text string) string {
	lower := strings.ToLower(text)
	for _, country := range c.Countries {
		for _, alias := range country.Aliases {
			if strings.Contains(lower, alias) {
				return country.Name
			}
		}
	}
	return ""
}

// Info returns the catalog entry for a canonical country name. Unknown
// countries get a Medium/Medium placeholder so an assessment can still run.
func (c *Catalog) Info(name string) Country {
	for _, country := range c.Countries {
		if strings.EqualFold(country.Name, name) {
			return country
		}
	}
	return Country{Name: name, Difficulty: "Medium", MarketSize: "Medium"}
}
