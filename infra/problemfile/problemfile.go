// Package problemfile reads transportation problems from yaml or json files.
package problemfile

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kilianp07/transport/core/model"
)

// ErrUnsupportedFormat is returned for extensions other than .yaml, .yml and .json.
var ErrUnsupportedFormat = errors.New("unsupported problem format")

// wrapperKey lets a problem be nested under "problem:" next to other data.
const wrapperKey = "problem"

// Load reads a problem definition with the keys origins, destinations,
// costs, supply and demand. The result is not validated.
func Load(path string) (model.Problem, error) {
	parser, err := parserFor(path)
	if err != nil {
		return model.Problem{}, err
	}
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), parser); err != nil {
		return model.Problem{}, fmt.Errorf("read %s: %w", path, err)
	}
	root := ""
	if k.Exists(wrapperKey + ".costs") {
		root = wrapperKey
	}
	var p model.Problem
	if err := k.UnmarshalWithConf(root, &p, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return model.Problem{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return p, nil
}

func parserFor(path string) (koanf.Parser, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}
