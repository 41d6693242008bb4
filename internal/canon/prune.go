package canon

import "strings"

// Paths in prune rules use dotted keys with "[]" marking array elements,
// e.g. "damage.parts[].application". A rule path matches an object when it
// equals the object's path or is a dotted suffix of it. The empty path
// names the root object.

// Field names a key inside the objects at Path.
type Field struct {
	Path string
	Key  string
}

// DefaultRule declares that Key, inside objects at Path, is redundant when
// it equals Value. When, if set, must also hold for the containing object.
type DefaultRule struct {
	Path  string
	Key   string
	Value Value
	When  func(Object) bool
}

// ObjectDefault declares that the whole object at Path is redundant when it
// equals Value after its own fields have been pruned.
type ObjectDefault struct {
	Path  string
	Value Object
}

// PruneRules configures Prune.
type PruneRules struct {
	// RootKeys are dropped from the root object only.
	RootKeys []string
	// DeepKeys are dropped from objects at any depth.
	DeepKeys []string
	// Required fields survive even when empty or equal to a default.
	Required []Field
	Defaults []DefaultRule
	Objects  []ObjectDefault
}

// Prune returns a copy of v without metadata keys, nulls, empty strings,
// empty arrays, empty objects, and fields equal to their declared default.
// Array elements are never removed, only pruned internally.
func Prune(v Value, rules PruneRules) Value {
	p := &pruner{
		rules:    rules,
		rootKeys: toSet(rules.RootKeys),
		deepKeys: toSet(rules.DeepKeys),
	}
	out, _ := p.prune("", v, true)
	return out
}

type pruner struct {
	rules    PruneRules
	rootKeys map[string]bool
	deepKeys map[string]bool
}

// prune returns the pruned value and whether it carries information worth
// keeping in its parent object.
func (p *pruner) prune(path string, v Value, root bool) (Value, bool) {
	switch val := v.(type) {
	case nil, Null:
		return Null{}, false
	case String:
		return val, val != ""
	case Array:
		out := make(Array, len(val))
		for i, elem := range val {
			out[i], _ = p.prune(path+"[]", elem, false)
		}
		return out, len(out) > 0
	case Object:
		return p.pruneObject(path, val, root)
	default:
		return v, true
	}
}

func (p *pruner) pruneObject(path string, obj Object, root bool) (Value, bool) {
	out := make(Object, len(obj))
	for k, child := range obj {
		if (root && p.rootKeys[k]) || p.deepKeys[k] {
			continue
		}
		pc, keep := p.prune(joinPath(path, k), child, false)
		if _, null := pc.(Null); null {
			continue
		}
		if !keep && !p.required(path, k) {
			continue
		}
		out[k] = pc
	}

	var redundant []string
	for k, v := range out {
		if !p.required(path, k) && p.isDefault(path, k, v, out) {
			redundant = append(redundant, k)
		}
	}
	for _, k := range redundant {
		delete(out, k)
	}

	for _, od := range p.rules.Objects {
		if matchPath(od.Path, path) && Equal(out, od.Value) {
			return out, false
		}
	}
	return out, root || len(out) > 0
}

func (p *pruner) required(path, key string) bool {
	for _, f := range p.rules.Required {
		if f.Key == key && matchPath(f.Path, path) {
			return true
		}
	}
	return false
}

func (p *pruner) isDefault(path, key string, v Value, obj Object) bool {
	for _, d := range p.rules.Defaults {
		if d.Key != key || !matchPath(d.Path, path) {
			continue
		}
		if d.When != nil && !d.When(obj) {
			continue
		}
		if Equal(v, d.Value) {
			return true
		}
	}
	return false
}

func matchPath(pattern, path string) bool {
	if pattern == path {
		return true
	}
	return pattern != "" && strings.HasSuffix(path, "."+pattern)
}

func toSet(keys []string) map[string]bool {
	set := make(map[string]bool, len(keys))
	for _, k := range keys {
		set[k] = true
	}
	return set
}
