// Package structured holds the generic tree a decoded payload is turned into
// before it is mapped onto typed results.
package structured

import "slices"

type Kind int

const (
	Scalar Kind = iota
	Sequence
	Mapping
)

func (k Kind) String() string {
	switch k {
	case Scalar:
		return "scalar"
	case Sequence:
		return "sequence"
	case Mapping:
		return "mapping"
	}
	return "unknown"
}

// Node is a scalar, an ordered sequence of nodes or a mapping of names to nodes.
// A nil *Node is a valid, absent node: every accessor returns its empty value.
type Node struct {
	kind   Kind
	text   string
	items  []*Node
	fields map[string]*Node
	keys   []string
	// set on sequences built by Add out of repeated keys
	repeated bool
}

func NewScalar(text string) *Node {
	return &Node{kind: Scalar, text: text}
}

func NewSequence(items ...*Node) *Node {
	return &Node{kind: Sequence, items: items}
}

func NewMapping() *Node {
	return &Node{kind: Mapping, fields: map[string]*Node{}}
}

// Set assigns a field on a mapping, it panics on any other kind.
func (n *Node) Set(key string, value *Node) *Node {
	if n.kind != Mapping {
		panic("structured: Set called on a " + n.kind.String())
	}
	if _, exists := n.fields[key]; !exists {
		n.keys = append(n.keys, key)
	}
	n.fields[key] = value
	return n
}

// Add assigns a field like Set, but a repeated key collects all of its
// values into a sequence in the order they were added.
func (n *Node) Add(key string, value *Node) *Node {
	existing, ok := n.fields[key]
	if !ok {
		return n.Set(key, value)
	}
	if existing.kind == Sequence && existing.repeated {
		existing.items = append(existing.items, value)
		return n
	}
	seq := NewSequence(existing, value)
	seq.repeated = true
	n.fields[key] = seq
	return n
}

func (n *Node) Kind() Kind {
	if n == nil {
		return Scalar
	}
	return n.kind
}

// Text returns the value of a scalar, or "" for anything else.
func (n *Node) Text() string {
	if n == nil || n.kind != Scalar {
		return ""
	}
	return n.text
}

// Items returns the elements of a sequence. Any other present node is
// returned as a one element sequence, an absent node as an empty one.
func (n *Node) Items() []*Node {
	if n == nil {
		return nil
	}
	if n.kind == Sequence {
		return n.items
	}
	return []*Node{n}
}

// Field returns the named field of a mapping, or nil.
func (n *Node) Field(name string) *Node {
	if n == nil || n.kind != Mapping {
		return nil
	}
	return n.fields[name]
}

// Has reports whether a mapping carries the named field.
func (n *Node) Has(name string) bool {
	if n == nil || n.kind != Mapping {
		return false
	}
	_, ok := n.fields[name]
	return ok
}

// Keys returns the field names of a mapping in insertion order.
func (n *Node) Keys() []string {
	if n == nil {
		return nil
	}
	return slices.Clone(n.keys)
}

// List is shorthand for Field(name).Items().
func (n *Node) List(name string) []*Node {
	return n.Field(name).Items()
}
