// Package schema loads the embedded CUE spell schema and exposes it as a
// validation oracle and as the source of enum variants for normalization.
package schema

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
)

//go:embed spell.cue
var source string

// Source returns the embedded schema document.
func Source() string {
	return source
}

// Schema is a compiled spell schema. It is safe for concurrent use once
// built; validation serializes access to the CUE context.
type Schema struct {
	mu      sync.Mutex
	ctx     *cue.Context
	spell   cue.Value
	version int64
	enums   map[string]*Domain
}

// Violation is a single schema failure at a dotted field path.
type Violation struct {
	Path    string
	Message string
}

func (v Violation) Error() string {
	if v.Path == "" {
		return v.Message
	}
	return v.Path + ": " + v.Message
}

var loadDefault = sync.OnceValues(func() (*Schema, error) {
	return Compile(source)
})

// Default returns the embedded schema, compiling it on first use.
// It panics if the embedded document does not compile, which can only
// happen if the binary was built from a broken schema.
func Default() *Schema {
	s, err := loadDefault()
	if err != nil {
		panic(fmt.Sprintf("schema: embedded spell schema: %v", err))
	}
	return s
}

// Compile builds a Schema from CUE source. The source must define #Spell,
// #SchemaVersion, #Enums and #Aliases.
func Compile(src string) (*Schema, error) {
	ctx := cuecontext.New()
	root := ctx.CompileString(src, cue.Filename("spell.cue"))
	if err := root.Err(); err != nil {
		return nil, fmt.Errorf("compile schema: %w", formatCUEError(err))
	}

	spell := root.LookupPath(cue.ParsePath("#Spell"))
	if !spell.Exists() {
		return nil, fmt.Errorf("compile schema: #Spell is not defined")
	}

	version, err := root.LookupPath(cue.ParsePath("#SchemaVersion")).Int64()
	if err != nil {
		return nil, fmt.Errorf("compile schema: #SchemaVersion: %w", err)
	}

	enums, err := loadEnums(root)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}

	return &Schema{
		ctx:     ctx,
		spell:   spell,
		version: version,
		enums:   enums,
	}, nil
}

func loadEnums(root cue.Value) (map[string]*Domain, error) {
	var lists map[string][]string
	if err := root.LookupPath(cue.ParsePath("#Enums")).Decode(&lists); err != nil {
		return nil, fmt.Errorf("#Enums: %w", err)
	}
	var aliases map[string]map[string]string
	if err := root.LookupPath(cue.ParsePath("#Aliases")).Decode(&aliases); err != nil {
		return nil, fmt.Errorf("#Aliases: %w", err)
	}

	enums := make(map[string]*Domain, len(lists))
	for name, values := range lists {
		enums[name] = newDomain(name, values, aliases[name])
	}
	for name := range aliases {
		if _, ok := enums[name]; !ok {
			return nil, fmt.Errorf("#Aliases.%s has no matching enum", name)
		}
	}
	return enums, nil
}

// CurrentVersion is the schema version records are migrated to.
func (s *Schema) CurrentVersion() int64 {
	return s.version
}

// Enum returns the domain for an enum name such as "RangeKind".
// Unknown names yield an empty domain that only applies the fallback.
func (s *Schema) Enum(name string) *Domain {
	if d, ok := s.enums[name]; ok {
		return d
	}
	return newDomain(name, nil, nil)
}

// EnumNames lists every enum the schema declares.
func (s *Schema) EnumNames() []string {
	names := make([]string, 0, len(s.enums))
	for name := range s.enums {
		names = append(names, name)
	}
	return names
}

// Validate checks a JSON document against #Spell. It returns every
// violation CUE reports, or nil if the document conforms.
func (s *Schema) Validate(data []byte) ([]Violation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.ctx.CompileBytes(data, cue.Filename("spell.json"))
	if err := doc.Err(); err != nil {
		return nil, fmt.Errorf("parse document: %w", formatCUEError(err))
	}

	unified := s.spell.Unify(doc)
	err := unified.Validate(cue.Concrete(true))
	if err == nil {
		return nil, nil
	}
	return violations(err), nil
}

func violations(err error) []Violation {
	var out []Violation
	seen := make(map[string]bool)
	for _, e := range errors.Errors(err) {
		path := strings.Join(trimDefinitions(e.Path()), ".")
		format, args := e.Msg()
		v := Violation{Path: path, Message: fmt.Sprintf(format, args...)}
		key := v.Error()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, v)
	}
	if len(out) == 0 {
		out = append(out, Violation{Message: err.Error()})
	}
	return out
}

// trimDefinitions drops the leading "#Spell" selector CUE reports for
// paths inside the definition.
func trimDefinitions(path []string) []string {
	for len(path) > 0 && strings.HasPrefix(path[0], "#") {
		path = path[1:]
	}
	return path
}

// formatCUEError keeps the first error and its position, which is all a
// caller can act on for a parse failure.
func formatCUEError(err error) error {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}
	first := errs[0]
	if pos := errors.Positions(first); len(pos) > 0 {
		return fmt.Errorf("%s: %s", pos[0], first.Error())
	}
	return first
}
