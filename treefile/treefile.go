// Package treefile loads state trees declared in YAML or TOML files.
//
// A file lists the top-level states, each with an optional route or regular
// expression and nested states:
//
//	states:
//	  - name: posts
//	    route: posts
//	    states:
//	      - name: post
//	        route: ":postId"
//	        states:
//	          - name: show
//	          - name: comments
//	            route: comments
//	  - name: "404"
//
// A state with neither route nor regexp is pathless.
package treefile

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/fasthttp/routemanager/statetree"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a tree file.
type Format int

// Supported formats.
const (
	YAML Format = iota
	TOML
)

func (f Format) String() string {
	switch f {
	case YAML:
		return "yaml"
	case TOML:
		return "toml"
	default:
		return "unknown"
	}
}

// File is the content of a tree file.
type File struct {
	States []Definition `yaml:"states" toml:"states"`
}

// Definition declares one state and its children.
type Definition struct {
	Name     string       `yaml:"name" toml:"name"`
	Route    string       `yaml:"route,omitempty" toml:"route,omitempty"`
	Regexp   string       `yaml:"regexp,omitempty" toml:"regexp,omitempty"`
	Captures []string     `yaml:"captures,omitempty" toml:"captures,omitempty"`
	Priority int          `yaml:"priority,omitempty" toml:"priority,omitempty"`
	Enabled  *bool        `yaml:"enabled,omitempty" toml:"enabled,omitempty"`
	States   []Definition `yaml:"states,omitempty" toml:"states,omitempty"`
}

// FormatOf returns the format matching the file extension.
func FormatOf(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	default:
		return 0, errors.Errorf("unsupported tree file extension '%s'", ext)
	}
}

// Load reads and parses the tree file at path.
func Load(path string) (*File, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read tree file")
	}

	f, err := Parse(data, format)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load %s", path)
	}

	return f, nil
}

// Parse decodes a tree file. Unknown keys are rejected and an empty file
// declares no state.
func Parse(data []byte, format Format) (*File, error) {
	f := &File{}

	switch format {
	case YAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)

		if err := dec.Decode(f); err != nil && !errors.Is(err, io.EOF) {
			return nil, errors.Wrap(err, "invalid yaml")
		}
	case TOML:
		md, err := toml.Decode(string(data), f)
		if err != nil {
			return nil, errors.Wrap(err, "invalid toml")
		}

		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.Errorf("invalid toml: unknown key '%s'", undecoded[0].String())
		}
	default:
		return nil, errors.Errorf("unsupported format %s", format)
	}

	if err := f.Validate(); err != nil {
		return nil, err
	}

	return f, nil
}

// Validate checks every definition of the file.
func (f *File) Validate() error {
	return validate(f.States, "", true)
}

func validate(defs []Definition, parent string, top bool) error {
	seen := make(map[string]struct{}, len(defs))

	for i := range defs {
		def := &defs[i]
		id := def.Name

		if len(parent) > 0 {
			id = parent + "." + def.Name
		}

		if len(def.Name) == 0 {
			return errors.Errorf("state %d under '%s' has no name", i, parent)
		}

		if strings.Contains(def.Name, ".") {
			return errors.Errorf("state name '%s' must not contain '.'", id)
		}

		if _, ok := seen[def.Name]; ok {
			return errors.Errorf("state '%s' is declared twice", id)
		}
		seen[def.Name] = struct{}{}

		if top && def.Name == statetree.NotFoundName && (len(def.Route) > 0 || len(def.Regexp) > 0) {
			return errors.Errorf("state '%s' can't have a route or regexp", id)
		}

		if _, err := def.pattern(); err != nil {
			return errors.Wrapf(err, "state '%s'", id)
		}

		if err := validate(def.States, id, false); err != nil {
			return err
		}
	}

	return nil
}

func (def *Definition) pattern() (statetree.Pattern, error) {
	switch {
	case len(def.Route) > 0 && len(def.Regexp) > 0:
		return statetree.Pattern{}, errors.New("route and regexp are mutually exclusive")
	case len(def.Captures) > 0 && len(def.Regexp) == 0:
		return statetree.Pattern{}, errors.New("captures require a regexp")
	case len(def.Regexp) > 0:
		return statetree.CompileRegexp(def.Regexp, def.Captures...)
	case len(def.Route) > 0:
		return statetree.ParseRoute(def.Route)
	default:
		return statetree.Pathless(), nil
	}
}

// Build creates the top-level states declared by the file, children
// included, in declaration order.
func (f *File) Build() ([]*statetree.State, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	return build(f.States)
}

func build(defs []Definition) ([]*statetree.State, error) {
	states := make([]*statetree.State, 0, len(defs))

	for i := range defs {
		def := &defs[i]

		pattern, err := def.pattern()
		if err != nil {
			return nil, errors.Wrapf(err, "state '%s'", def.Name)
		}

		s := statetree.NewState(def.Name, pattern).SetPriority(def.Priority)

		if def.Enabled != nil {
			s.SetEnabled(statetree.EnabledIf(*def.Enabled))
		}

		children, err := build(def.States)
		if err != nil {
			return nil, err
		}

		states = append(states, s.Add(children...))
	}

	return states, nil
}
