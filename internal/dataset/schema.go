package dataset

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

//go:embed schema.json
var schemaJSON []byte

const schemaName = "dataset.schema.json"

// schemaPrinter formats schema error kinds.
var schemaPrinter = message.NewPrinter(language.English)

var datasetSchema = mustCompileSchema(schemaJSON, schemaName)

// SchemaJSON returns the embedded JSON Schema used to validate datasets.
func SchemaJSON() []byte {
	return bytes.Clone(schemaJSON)
}

func mustCompileSchema(raw []byte, name string) *jsonschema.Schema {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		panic(fmt.Sprintf("failed to parse embedded %s: %v", name, err))
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, doc); err != nil {
		panic(fmt.Sprintf("failed to add %s resource: %v", name, err))
	}

	sch, err := compiler.Compile(name)
	if err != nil {
		panic(fmt.Sprintf("failed to compile %s: %v", name, err))
	}
	return sch
}

// checkSchema validates raw document bytes in the given format and returns
// one Problem per failing leaf. A parse failure is a single problem at "/".
func checkSchema(data []byte, format Format) []Problem {
	var instance any
	switch format {
	case FormatJSON:
		v, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
		if err != nil {
			return []Problem{{Path: "/", Message: fmt.Sprintf("JSON parse error: %v", err)}}
		}
		instance = v
	case FormatYAML:
		var doc yaml.Node
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return []Problem{{Path: "/", Message: fmt.Sprintf("YAML parse error: %v", err)}}
		}
		var problems []Problem
		instance = yamlInstance(&doc, nil, &problems)
		if len(problems) > 0 {
			return problems
		}
	default:
		return []Problem{{Path: "/", Message: fmt.Sprintf("unsupported format %q", format)}}
	}

	err := datasetSchema.Validate(instance)
	if err == nil {
		return nil
	}

	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return []Problem{{Path: "/", Message: fmt.Sprintf("schema: %v", err)}}
	}

	var problems []Problem
	collectSchemaErrors(ve, &problems)
	return problems
}

// yamlInstance converts a YAML node into the generic form the schema
// validator expects. Mapping keys become their literal text, as they do when
// the dataset itself is decoded, and non-finite floats are reported since
// the validator cannot represent them.
func yamlInstance(n *yaml.Node, path []string, problems *[]Problem) any {
	switch n.Kind {
	case 0:
		return nil
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil
		}
		return yamlInstance(n.Content[0], path, problems)
	case yaml.AliasNode:
		return yamlInstance(n.Alias, path, problems)
	case yaml.MappingNode:
		m := make(map[string]any, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i].Value
			m[key] = yamlInstance(n.Content[i+1], append(slices.Clone(path), key), problems)
		}
		return m
	case yaml.SequenceNode:
		s := make([]any, 0, len(n.Content))
		for i, c := range n.Content {
			s = append(s, yamlInstance(c, append(slices.Clone(path), strconv.Itoa(i)), problems))
		}
		return s
	default:
		var v any
		if err := n.Decode(&v); err != nil {
			*problems = append(*problems, Problem{Path: pointer(path), Message: err.Error()})
			return nil
		}
		if f, ok := v.(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
			*problems = append(*problems, Problem{
				Path:    pointer(path),
				Message: fmt.Sprintf("%s %v is not a finite number", fieldName(path), f),
			})
			return nil
		}
		return v
	}
}

func pointer(path []string) string {
	return "/" + strings.Join(path, "/")
}

func fieldName(path []string) string {
	if len(path) == 0 {
		return "value"
	}
	return path[len(path)-1]
}

func collectSchemaErrors(ve *jsonschema.ValidationError, problems *[]Problem) {
	if len(ve.Causes) == 0 {
		*problems = append(*problems, Problem{
			Path:    pointer(ve.InstanceLocation),
			Message: ve.ErrorKind.LocalizedString(schemaPrinter),
		})
		return
	}
	for _, c := range ve.Causes {
		collectSchemaErrors(c, problems)
	}
}
