package themedoc

import (
	"errors"
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/v2"

	"github.com/jsamuelsen11/guise/internal/domain"
	"github.com/jsamuelsen11/guise/internal/domain/component"
	"github.com/jsamuelsen11/guise/internal/domain/theme"
)

// Bytes is a koanf.Provider over an in-memory document.
type Bytes []byte

// ReadBytes returns the document.
func (b Bytes) ReadBytes() ([]byte, error) { return b, nil }

// Read is not supported; Bytes needs a parser.
func (b Bytes) Read() (map[string]any, error) {
	return nil, errors.New("themedoc: Bytes provider requires a parser")
}

// Decode parses the YAML document supplied by p.
// Returns domain.ErrValidation if it is not a theme document.
func Decode(p koanf.Provider) (ThemeDTO, error) {
	k := koanf.New(".")
	if err := k.Load(p, yaml.Parser()); err != nil {
		return ThemeDTO{}, fmt.Errorf("parsing theme: %v: %w", err, domain.ErrValidation)
	}

	var dto ThemeDTO
	if err := k.Unmarshal("", &dto); err != nil {
		return ThemeDTO{}, fmt.Errorf("decoding theme: %v: %w", err, domain.ErrValidation)
	}
	return dto, nil
}

// ToDomainTheme converts dto into the theme located at uri. Every selector
// class must name a known component class.
func ToDomainTheme(uri string, dto *ThemeDTO) (*theme.Theme, error) {
	fields := make(map[string]string)
	rules := make([]theme.Rule, 0, len(dto.Rules))
	for i, r := range dto.Rules {
		sel := theme.Selector{StyleID: r.Select.StyleID, Name: r.Select.Name}
		if r.Select.Class != "" {
			class, ok := component.ClassByName(r.Select.Class)
			if !ok {
				fields[fmt.Sprintf("rules[%d].select.class", i)] = fmt.Sprintf("unknown class %q", r.Select.Class)
				continue
			}
			sel.Class = class
		}
		if len(r.Set) == 0 {
			fields[fmt.Sprintf("rules[%d].set", i)] = "no properties"
			continue
		}
		rules = append(rules, theme.Rule{Selector: sel, Properties: r.Set})
	}
	if len(fields) > 0 {
		return nil, &domain.ValidationError{Fields: fields}
	}
	return theme.New(uri, dto.ParentURI, rules...), nil
}
