package catalog

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

// Kind is the value type of an attribute.
type Kind string

const (
	Numeric          Kind = "numeric"
	Categorical      Kind = "categorical"
	MultiCategorical Kind = "multi_categorical"
	Derived          Kind = "derived"
)

// Importance is the documented relevance tier of an attribute.
type Importance string

const (
	High   Importance = "high"
	Medium Importance = "medium"
	Low    Importance = "low"
)

// Group is the synthesis stage an attribute belongs to.
type Group string

const (
	Demographic   Group = "demographic"
	Physical      Group = "physical"
	Performance   Group = "performance"
	Genetic       Group = "genetic"
	Experience    Group = "experience"
	Psychological Group = "psychological"
	Environmental Group = "environmental"
)

// Groups lists the attribute groups in synthesis order.
var Groups = []Group{Demographic, Physical, Performance, Genetic, Experience, Psychological, Environmental}

var (
	// ErrUnknownFeature is returned when an activity weighs an attribute the catalog does not define.
	ErrUnknownFeature = errors.New("unknown key feature")
	// ErrUnknownBodyType is returned when an activity prefers a body type that does not exist.
	ErrUnknownBodyType = errors.New("unknown body type")
	// ErrDuplicate is returned for repeated attribute or activity names.
	ErrDuplicate = errors.New("duplicate name")
	// ErrColumnCollision is returned when two activities canonicalize to the same column.
	ErrColumnCollision = errors.New("score column collision")
)

// AttributeSpec describes one attribute of a person record.
type AttributeSpec struct {
	Name        string     `json:"name"`
	Kind        Kind       `json:"kind"`
	Group       Group      `json:"group"`
	Min         float64    `json:"min,omitempty"`
	Max         float64    `json:"max,omitempty"`
	Values      []string   `json:"values,omitempty"`
	Description string     `json:"description"`
	Importance  Importance `json:"importance"`
}

// InRange reports whether v lies within the numeric range of the attribute.
func (a AttributeSpec) InRange(v float64) bool {
	return v >= a.Min && v <= a.Max
}

// Allows reports whether v is a permitted categorical value.
func (a AttributeSpec) Allows(v string) bool {
	for _, allowed := range a.Values {
		if allowed == v {
			return true
		}
	}
	return false
}

func (a AttributeSpec) clone() AttributeSpec {
	a.Values = slices.Clone(a.Values)
	return a
}

// ActivityProfile is one recommendable activity.
type ActivityProfile struct {
	Name               string   `json:"name"`
	KeyFeatures        []string `json:"key_features"`
	PreferredBodyTypes []string `json:"preferred_body_types"`
	Description        string   `json:"description"`
	// PopularityWeight is informational only. Scoring does not read it.
	PopularityWeight float64 `json:"popularity_weight"`
}

// Prefers reports whether the body type is one of the preferred ones.
func (a ActivityProfile) Prefers(bodyType string) bool {
	for _, bt := range a.PreferredBodyTypes {
		if bt == bodyType {
			return true
		}
	}
	return false
}

func (a ActivityProfile) clone() ActivityProfile {
	a.KeyFeatures = slices.Clone(a.KeyFeatures)
	a.PreferredBodyTypes = slices.Clone(a.PreferredBodyTypes)
	return a
}

// Catalog is the immutable attribute and activity schema.
type Catalog struct {
	attributes []AttributeSpec
	activities []ActivityProfile
	attrIndex  map[string]int
	actIndex   map[string]int
	columns    map[string]string
}

// New validates and indexes a catalog. The catalog keeps its own copy of
// the inputs; later changes to them are not observed.
func New(attributes []AttributeSpec, activities []ActivityProfile) (*Catalog, error) {
	c := &Catalog{
		attributes: cloneAttributes(attributes),
		activities: cloneActivities(activities),
		attrIndex:  make(map[string]int, len(attributes)),
		actIndex:   make(map[string]int, len(activities)),
		columns:    make(map[string]string, len(activities)),
	}
	for i, a := range c.attributes {
		if _, ok := c.attrIndex[a.Name]; ok {
			return nil, fmt.Errorf("attribute %q: %w", a.Name, ErrDuplicate)
		}
		c.attrIndex[a.Name] = i
	}
	for i, act := range c.activities {
		if _, ok := c.actIndex[act.Name]; ok {
			return nil, fmt.Errorf("activity %q: %w", act.Name, ErrDuplicate)
		}
		for _, f := range act.KeyFeatures {
			if _, ok := c.attrIndex[f]; !ok {
				return nil, fmt.Errorf("activity %q weighs %q: %w", act.Name, f, ErrUnknownFeature)
			}
		}
		for _, bt := range act.PreferredBodyTypes {
			if !isBodyType(bt) {
				return nil, fmt.Errorf("activity %q prefers %q: %w", act.Name, bt, ErrUnknownBodyType)
			}
		}
		col := ColumnName(act.Name)
		if prev, ok := c.columns[col]; ok {
			return nil, fmt.Errorf("activities %q and %q both map to %q: %w", prev, act.Name, col, ErrColumnCollision)
		}
		c.columns[col] = act.Name
		c.actIndex[act.Name] = i
	}
	return c, nil
}

func isBodyType(v string) bool {
	return slices.Contains(bodyTypes, v)
}

func cloneAttributes(in []AttributeSpec) []AttributeSpec {
	out := make([]AttributeSpec, len(in))
	for i, a := range in {
		out[i] = a.clone()
	}
	return out
}

func cloneActivities(in []ActivityProfile) []ActivityProfile {
	out := make([]ActivityProfile, len(in))
	for i, a := range in {
		out[i] = a.clone()
	}
	return out
}

// Attributes returns a copy of the attribute specs in schema order.
func (c *Catalog) Attributes() []AttributeSpec {
	return cloneAttributes(c.attributes)
}

// AttributeNames returns attribute names in schema order.
func (c *Catalog) AttributeNames() []string {
	names := make([]string, len(c.attributes))
	for i, a := range c.attributes {
		names[i] = a.Name
	}
	return names
}

// Activities returns a copy of the activity profiles in catalog order.
func (c *Catalog) Activities() []ActivityProfile {
	return cloneActivities(c.activities)
}

// ActivityNames returns activity names in catalog order.
func (c *Catalog) ActivityNames() []string {
	names := make([]string, len(c.activities))
	for i, a := range c.activities {
		names[i] = a.Name
	}
	return names
}

// Attribute looks up an attribute spec by name.
func (c *Catalog) Attribute(name string) (AttributeSpec, bool) {
	i, ok := c.attrIndex[name]
	if !ok {
		return AttributeSpec{}, false
	}
	return c.attributes[i].clone(), true
}

// Activity looks up an activity profile by name.
func (c *Catalog) Activity(name string) (ActivityProfile, bool) {
	i, ok := c.actIndex[name]
	if !ok {
		return ActivityProfile{}, false
	}
	return c.activities[i].clone(), true
}

// ActivityIndex returns the catalog position of an activity, or -1.
func (c *Catalog) ActivityIndex(name string) int {
	if i, ok := c.actIndex[name]; ok {
		return i
	}
	return -1
}

// ByImportance returns the names of attributes in the given tier.
func (c *Catalog) ByImportance(tier Importance) []string {
	var names []string
	for _, a := range c.attributes {
		if a.Importance == tier {
			names = append(names, a.Name)
		}
	}
	return names
}

// ByGroup returns the attribute specs synthesized by the given stage.
func (c *Catalog) ByGroup(g Group) []AttributeSpec {
	var out []AttributeSpec
	for _, a := range c.attributes {
		if a.Group == g {
			out = append(out, a.clone())
		}
	}
	return out
}

// Clamp limits v to the numeric range of the named attribute. Values of
// unknown or non-numeric attributes pass through unchanged.
func (c *Catalog) Clamp(name string, v float64) float64 {
	i, ok := c.attrIndex[name]
	if !ok || c.attributes[i].Kind != Numeric {
		return v
	}
	a := c.attributes[i]
	return math.Max(a.Min, math.Min(a.Max, v))
}
