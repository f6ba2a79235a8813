package config

import "strings"

// RoleMapping pairs a chat role name with a directory group name.
type RoleMapping struct {
	RoleName    string
	GroupName   string
	Category    string
	Description string
}

// Category is a named group of role mappings. Order within a category is
// the file order; categories themselves are ordered as declared.
type Category struct {
	Name        string
	Description string
	Mappings    []RoleMapping
}

// MappingSet is an immutable snapshot of the role mapping configuration.
// Reloading builds a new snapshot; a MappingSet is never mutated in place.
type MappingSet struct {
	categories []Category

	// termMarker enables the auto-pattern rule: a role name containing the
	// marker (case-insensitive) with no explicit mapping derives its group
	// name from the marker. Empty disables the rule.
	termMarker string
}

// NewMappingSet builds a snapshot from the given categories.
func NewMappingSet(categories []Category, termMarker string) *MappingSet {
	return &MappingSet{categories: categories, termMarker: termMarker}
}

// Categories returns the ordered category list.
func (x *MappingSet) Categories() []Category {
	return x.categories
}

// Len returns the total number of mapping entries across all categories.
func (x *MappingSet) Len() int {
	var n int
	for _, c := range x.categories {
		n += len(c.Mappings)
	}
	return n
}

// GroupForRole returns the directory group name mapped to the given role.
// Categories are scanned in declaration order and the first hit wins. If no
// explicit entry exists, the auto-pattern rule is consulted.
func (x *MappingSet) GroupForRole(roleName string) (string, bool) {
	for _, c := range x.categories {
		for _, m := range c.Mappings {
			if m.RoleName == roleName {
				return m.GroupName, true
			}
		}
	}

	if g, ok := x.deriveGroup(roleName); ok {
		return g, true
	}

	return "", false
}

// AllRoleMappings flattens all categories into a single ordered mapping
// list with unique role names. On a role name collision the later category
// wins; this mirrors the declaration order and is deterministic.
func (x *MappingSet) AllRoleMappings() []RoleMapping {
	index := make(map[string]int)
	var flat []RoleMapping

	for _, c := range x.categories {
		for _, m := range c.Mappings {
			if i, ok := index[m.RoleName]; ok {
				flat[i] = m
				continue
			}
			index[m.RoleName] = len(flat)
			flat = append(flat, m)
		}
	}

	return flat
}

// deriveGroup applies the auto-pattern rule: "F25-Widgets" with marker
// "F25" derives group "F25-Widgets" (marker and hyphens stripped from the
// remainder, then re-prefixed). The rule is an environment-specific
// convention for term project roles.
func (x *MappingSet) deriveGroup(roleName string) (string, bool) {
	if x.termMarker == "" {
		return "", false
	}
	if !strings.Contains(strings.ToLower(roleName), strings.ToLower(x.termMarker)) {
		return "", false
	}

	rest := removeFold(roleName, x.termMarker)
	rest = strings.TrimSpace(strings.ReplaceAll(rest, "-", ""))

	return x.termMarker + "-" + rest, true
}

// removeFold removes every case-insensitive occurrence of marker from s.
func removeFold(s, marker string) string {
	if marker == "" {
		return s
	}
	var b strings.Builder
	lower := strings.ToLower(s)
	lowerMarker := strings.ToLower(marker)
	for i := 0; i < len(s); {
		if strings.HasPrefix(lower[i:], lowerMarker) {
			i += len(marker)
			continue
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}
