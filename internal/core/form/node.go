// Package form binds request payloads onto catalog entities and reports
// failures as a nested error tree mirroring the payload shape:
//
//	{"errors": ["..."], "children": {"title": {"errors": ["..."]}}}
package form

import (
	"sort"
	"strings"
)

// Node is one level of the error tree. Errors belong to this level; Children
// holds the sub-trees of named fields. Only failing fields appear.
type Node struct {
	Errors   []string         `json:"errors,omitempty"`
	Children map[string]*Node `json:"children,omitempty"`
}

// Add appends a message at this level.
func (n *Node) Add(msg string) {
	n.Errors = append(n.Errors, msg)
}

// Child returns the sub-tree for name, creating it when absent.
func (n *Node) Child(name string) *Node {
	if n.Children == nil {
		n.Children = make(map[string]*Node)
	}
	c, ok := n.Children[name]
	if !ok {
		c = &Node{}
		n.Children[name] = c
	}
	return c
}

// AddField appends msg to the field's sub-tree.
func (n *Node) AddField(field, msg string) {
	n.Child(field).Add(msg)
}

// Empty reports whether the tree holds no message at any depth.
func (n *Node) Empty() bool {
	if n == nil {
		return true
	}
	if len(n.Errors) > 0 {
		return false
	}
	for _, c := range n.Children {
		if !c.Empty() {
			return false
		}
	}
	return true
}

// Err returns a *ValidationError for a non-empty tree and nil otherwise.
func (n *Node) Err() error {
	if n.Empty() {
		return nil
	}
	return &ValidationError{Tree: n}
}

// flatten renders the tree as "path: message" lines sorted by path.
func (n *Node) flatten(prefix string, out *[]string) {
	for _, msg := range n.Errors {
		if prefix == "" {
			*out = append(*out, msg)
			continue
		}
		*out = append(*out, prefix+": "+msg)
	}
	names := make([]string, 0, len(n.Children))
	for name := range n.Children {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		path := name
		if prefix != "" {
			path = prefix + "." + name
		}
		n.Children[name].flatten(path, out)
	}
}

// ValidationError carries a non-empty error tree.
type ValidationError struct {
	Tree *Node
}

func (e *ValidationError) Error() string {
	var lines []string
	e.Tree.flatten("", &lines)
	return "validation failed: " + strings.Join(lines, "; ")
}

// Invalid returns a ValidationError with a root-level message.
func Invalid(msg string) error {
	n := &Node{}
	n.Add(msg)
	return n.Err()
}

// FieldError returns a ValidationError holding msg under field.
func FieldError(field, msg string) error {
	n := &Node{}
	n.AddField(field, msg)
	return n.Err()
}
