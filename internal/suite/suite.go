package suite

import "fmt"

// Kind discriminates the three node shapes a suite can contain.
type Kind int

const (
	Single Kind = iota // one timed operation
	Series             // named variants sharing one parent name
	Group              // structural container of child nodes
)

// Node describes a benchmark suite (or part of one). It is built once by the
// caller and never mutated during a run.
//
// Exactly one of Variants/Children may be set: Variants makes the node a
// Series, Children make it a Group, neither makes it a Single.
type Node struct {
	Name     string
	Kind     Kind
	Variants []string // Series only, declaration order
	Children []*Node  // Group only, declaration order
}

func NewSingle(name string) *Node {
	return &Node{Name: name, Kind: Single}
}

func NewSeries(name string, variants ...string) *Node {
	return &Node{Name: name, Kind: Series, Variants: variants}
}

func NewGroup(name string, children ...*Node) *Node {
	return &Node{Name: name, Kind: Group, Children: children}
}

// Validate checks the tree is well formed before a run starts.
func (n *Node) Validate() error {
	if n == nil {
		return fmt.Errorf("nil suite node")
	}
	if n.Name == "" {
		return fmt.Errorf("suite node without a name")
	}
	switch n.Kind {
	case Single:
		if len(n.Variants) > 0 || len(n.Children) > 0 {
			return fmt.Errorf("benchmark %q: single node cannot carry variants or children", n.Name)
		}
	case Series:
		if len(n.Variants) == 0 {
			return fmt.Errorf("benchmark %q: series needs at least one variant", n.Name)
		}
		if len(n.Children) > 0 {
			return fmt.Errorf("benchmark %q: series cannot carry children", n.Name)
		}
		for _, v := range n.Variants {
			if v == "" {
				return fmt.Errorf("benchmark %q: empty variant name", n.Name)
			}
		}
	case Group:
		if len(n.Children) == 0 {
			return fmt.Errorf("group %q: needs at least one child", n.Name)
		}
		if len(n.Variants) > 0 {
			return fmt.Errorf("group %q: cannot carry variants", n.Name)
		}
		for _, c := range n.Children {
			if err := c.Validate(); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("benchmark %q: unknown kind %d", n.Name, n.Kind)
	}
	return nil
}

// LeafPaths enumerates every leaf path (root name first) depth-first in
// declaration order. A Series contributes one path per variant.
func (n *Node) LeafPaths() [][]string {
	var paths [][]string
	switch n.Kind {
	case Single:
		paths = append(paths, []string{n.Name})
	case Series:
		for _, v := range n.Variants {
			paths = append(paths, []string{n.Name, v})
		}
	case Group:
		for _, c := range n.Children {
			for _, p := range c.LeafPaths() {
				paths = append(paths, append([]string{n.Name}, p...))
			}
		}
	}
	return paths
}

// CountLeaves returns the number of leaf measurements the suite will produce.
func (n *Node) CountLeaves() int {
	switch n.Kind {
	case Series:
		return len(n.Variants)
	case Group:
		total := 0
		for _, c := range n.Children {
			total += c.CountLeaves()
		}
		return total
	default:
		return 1
	}
}
