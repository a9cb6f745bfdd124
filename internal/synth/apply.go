package synth

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/sbenjam1n/talentgen/internal/catalog"
)

// ErrDerivedAttribute is returned when a caller tries to set a derived value.
var ErrDerivedAttribute = errors.New("derived attribute cannot be set")

// Apply overrides attributes of p from textual values keyed by attribute
// name. Numeric values are parsed as decimals, multi-valued attributes as a
// comma separated list. Values are not range checked here.
func Apply(p *Person, cat *catalog.Catalog, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode person: %w", err)
	}
	fields := map[string]any{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return fmt.Errorf("decode person: %w", err)
	}

	for name, v := range values {
		spec, ok := cat.Attribute(name)
		if !ok {
			return fmt.Errorf("%w: %s", catalog.ErrUnknownFeature, name)
		}
		switch spec.Kind {
		case catalog.Derived:
			return fmt.Errorf("%w: %s", ErrDerivedAttribute, name)
		case catalog.Numeric:
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				return fmt.Errorf("parse %s: %w", name, err)
			}
			fields[name] = f
		case catalog.MultiCategorical:
			list := []string{}
			for _, item := range strings.Split(v, ",") {
				if item = strings.TrimSpace(item); item != "" {
					list = append(list, item)
				}
			}
			fields[name] = list
		default:
			fields[name] = strings.TrimSpace(v)
		}
	}

	raw, err = json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("encode overrides: %w", err)
	}
	var out Person
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("apply overrides: %w", err)
	}
	out.BMI = ComputeBMI(out.Height, out.Weight)
	*p = out
	return nil
}
