package suite

import (
	"encoding/json"
	"fmt"
	"os"
)

// JSON suite description:
//
//	{
//	  "name": "collections",
//	  "children": [
//	    {"name": "parseInt"},
//	    {"name": "remove", "variants": ["listRemoveOld", "listRemoveNew"]}
//	  ]
//	}
//
// A node with "children" is a group, one with "variants" is a series,
// anything else is a single benchmark.
type nodeJSON struct {
	Name     string      `json:"name"`
	Variants []string    `json:"variants,omitempty"`
	Children []*nodeJSON `json:"children,omitempty"`
}

// Parse decodes a suite description from JSON.
func Parse(data []byte) (*Node, error) {
	var root nodeJSON
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("invalid suite description: %w", err)
	}
	n := root.toNode()
	if err := n.Validate(); err != nil {
		return nil, err
	}
	return n, nil
}

// ParseFile loads and decodes a suite description file.
func ParseFile(path string) (*Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading suite file: %w", err)
	}
	return Parse(data)
}

func (j *nodeJSON) toNode() *Node {
	n := &Node{Name: j.Name}
	switch {
	case len(j.Children) > 0:
		n.Kind = Group
		n.Variants = j.Variants // kept so Validate can reject the mix
		for _, c := range j.Children {
			n.Children = append(n.Children, c.toNode())
		}
	case len(j.Variants) > 0:
		n.Kind = Series
		n.Variants = j.Variants
	default:
		n.Kind = Single
	}
	return n
}
