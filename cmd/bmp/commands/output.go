package commands

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Output is the rendered form of a decoded value.
type Output struct {
	Name  string `json:"name" yaml:"name"`
	ID    string `json:"id" yaml:"id"`
	Value any    `json:"value" yaml:"value"`
}

// printOutput renders out in the given format (text, json, yaml).
func printOutput(w io.Writer, format string, out Output) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(data))
		return nil
	case "yaml":
		node, err := toNode(out, false)
		if err != nil {
			return err
		}
		return encodeYAML(w, node)
	default:
		fmt.Fprintf(w, "%s (%s)\n", out.Name, out.ID)
		node, err := toNode(out.Value, true)
		if err != nil {
			return err
		}
		var buf bytes.Buffer
		if err := encodeYAML(&buf, node); err != nil {
			return err
		}
		for _, line := range strings.Split(strings.TrimRight(buf.String(), "\n"), "\n") {
			if line == "{}" {
				continue
			}
			fmt.Fprintf(w, "  %s\n", line)
		}
		return nil
	}
}

// toNode converts v into a YAML node using its JSON field names.
// With compact set, {value, unit} measurement maps collapse to "value unit".
func toNode(v any, compact bool) (*yaml.Node, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	node := &doc
	if doc.Kind == yaml.DocumentNode && len(doc.Content) == 1 {
		node = doc.Content[0]
	}
	plainStyle(node)
	if compact {
		collapseMeasurements(node)
	}
	return node, nil
}

// plainStyle resets the flow style inherited from JSON input.
func plainStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		plainStyle(c)
	}
}

func collapseMeasurements(n *yaml.Node) {
	if n.Kind == yaml.MappingNode && len(n.Content) == 4 {
		fields := map[string]*yaml.Node{}
		for i := 0; i+1 < len(n.Content); i += 2 {
			fields[n.Content[i].Value] = n.Content[i+1]
		}
		value, unit := fields["value"], fields["unit"]
		if value != nil && unit != nil && value.Kind == yaml.ScalarNode && unit.Kind == yaml.ScalarNode {
			*n = yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value.Value + " " + unit.Value}
			return
		}
	}
	for _, c := range n.Content {
		collapseMeasurements(c)
	}
}

func encodeYAML(w io.Writer, node *yaml.Node) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return err
	}
	return enc.Close()
}

// ParseHex decodes hex input, accepting an optional 0x prefix and
// space, colon or dash separators.
func ParseHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(s), "0x"), "0X")
	s = strings.NewReplacer(" ", "", ":", "", "-", "").Replace(s)
	data, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex input: %w", err)
	}
	return data, nil
}
