package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Results is the ordered list of a model's results. It decodes the tagged
// union from JSON and YAML and rejects unknown discriminants.
type Results []Result

// UnmarshalJSON implements json.Unmarshaler.
func (rs *Results) UnmarshalJSON(data []byte) error {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}

	out := make(Results, 0, len(items))
	for i, item := range items {
		var head struct {
			Type Kind `json:"type"`
		}
		if err := json.Unmarshal(item, &head); err != nil {
			return fmt.Errorf("results[%d]: %w", i, err)
		}

		switch head.Type {
		case KindKnowledge:
			var r KnowledgeResult
			if err := json.Unmarshal(item, &r); err != nil {
				return fmt.Errorf("results[%d]: %w", i, err)
			}
			out = append(out, r)
		case KindExecution:
			var r ExecutionResult
			if err := json.Unmarshal(item, &r); err != nil {
				return fmt.Errorf("results[%d]: %w", i, err)
			}
			out = append(out, r)
		default:
			return fmt.Errorf("results[%d]: unknown result type %q", i, head.Type)
		}
	}

	*rs = out
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (rs *Results) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode {
		return fmt.Errorf("line %d: results must be a sequence", node.Line)
	}

	out := make(Results, 0, len(node.Content))
	for i, item := range node.Content {
		var head struct {
			Type Kind `yaml:"type"`
		}
		if err := item.Decode(&head); err != nil {
			return fmt.Errorf("results[%d]: %w", i, err)
		}

		switch head.Type {
		case KindKnowledge:
			var r KnowledgeResult
			if err := item.Decode(&r); err != nil {
				return fmt.Errorf("results[%d]: %w", i, err)
			}
			out = append(out, r)
		case KindExecution:
			var r ExecutionResult
			if err := item.Decode(&r); err != nil {
				return fmt.Errorf("results[%d]: %w", i, err)
			}
			out = append(out, r)
		default:
			return fmt.Errorf("results[%d] (line %d): unknown result type %q", i, item.Line, head.Type)
		}
	}

	*rs = out
	return nil
}

// modelList decodes the models mapping while keeping source order.
type modelList []ModelEntry

// UnmarshalJSON walks the object token by token; map decoding would lose order.
func (l *modelList) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("models must be an object")
	}

	seen := make(map[string]bool)
	var out modelList
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("models: unexpected token %v", tok)
		}
		if seen[name] {
			return fmt.Errorf("models: duplicate model %q", name)
		}
		seen[name] = true

		var entry ModelEntry
		if err := dec.Decode(&entry); err != nil {
			return fmt.Errorf("models.%s: %w", name, err)
		}
		entry.Name = name
		out = append(out, entry)
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*l = out
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *modelList) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: models must be a mapping", node.Line)
	}

	seen := make(map[string]bool)
	out := make(modelList, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if seen[key.Value] {
			return fmt.Errorf("line %d: duplicate model %q", key.Line, key.Value)
		}
		seen[key.Value] = true

		var entry ModelEntry
		if err := value.Decode(&entry); err != nil {
			return fmt.Errorf("models.%s: %w", key.Value, err)
		}
		entry.Name = key.Value
		out = append(out, entry)
	}

	*l = out
	return nil
}

// document is the on-disk shape of a dataset.
type document struct {
	Metadata Metadata  `json:"metadata" yaml:"metadata"`
	Models   modelList `json:"models" yaml:"models"`
}

func decodeJSON(data []byte) (*Dataset, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &Dataset{Metadata: doc.Metadata, Models: doc.Models}, nil
}

func decodeYAML(data []byte) (*Dataset, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &Dataset{Metadata: doc.Metadata, Models: doc.Models}, nil
}
