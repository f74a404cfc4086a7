package dataset

import (
	"strings"

	"gocorr/domain/core"
)

// Subscale is a named group of item columns summed into one composite score.
type Subscale struct {
	Name  string   `json:"name"`
	Items []string `json:"items"`
}

// DimensionSet is the ordered list of subscales of one variable.
// Order is significant: dimension-pair results follow it.
type DimensionSet []Subscale

// Validate rejects malformed configurations. Unknown item columns are not
// checked here; see UnknownItems.
func (d DimensionSet) Validate(variable string) error {
	if strings.TrimSpace(variable) == "" {
		return core.NewDimensionConfigError(variable, "variable name is empty")
	}
	if len(d) == 0 {
		return core.NewDimensionConfigError(variable, "no subscales given")
	}
	seen := make(map[string]bool, len(d))
	for _, s := range d {
		if strings.TrimSpace(s.Name) == "" {
			return core.NewDimensionConfigError(variable, "subscale with empty name")
		}
		if seen[s.Name] {
			return core.NewDimensionConfigError(variable, "duplicate subscale "+s.Name)
		}
		seen[s.Name] = true
		if len(s.Items) == 0 {
			return core.NewDimensionConfigError(variable, "subscale "+s.Name+" has no items")
		}
	}
	return nil
}

// Items flattens every subscale's items in order.
func (d DimensionSet) Items() []string {
	var items []string
	for _, s := range d {
		items = append(items, s.Items...)
	}
	return items
}

// Names lists the subscale names in order.
func (d DimensionSet) Names() []string {
	names := make([]string, len(d))
	for i, s := range d {
		names[i] = s.Name
	}
	return names
}

// UnknownItems returns the items not present among the table's columns.
func (d DimensionSet) UnknownItems(t *Table) []string {
	var unknown []string
	for _, item := range d.Items() {
		if t == nil || !t.HasColumn(item) {
			unknown = append(unknown, item)
		}
	}
	return unknown
}

// ParseDimensionSet reads the compact form "Attention:W1,W2,W3;Memory:W4,W5".
// Segments without exactly one ':' or without items are skipped.
func ParseDimensionSet(s string) DimensionSet {
	var set DimensionSet
	for _, segment := range strings.Split(s, ";") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		parts := strings.Split(segment, ":")
		if len(parts) != 2 {
			continue
		}
		name := strings.TrimSpace(parts[0])
		var items []string
		for _, item := range strings.Split(parts[1], ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		if name != "" && len(items) > 0 {
			set = append(set, Subscale{Name: name, Items: items})
		}
	}
	return set
}
