package structured

// Normalize rewrites, anywhere in the tree, every mapping field whose name is
// one of `names` into a sequence. Payloads render a repeated element either as
// a single value or as a list depending on how many there are, after this
// those fields are always sequences of length 0, 1 or N.
func Normalize(root *Node, names ...string) {
	if root == nil || len(names) == 0 {
		return
	}
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	normalize(root, set)
}

func normalize(n *Node, names map[string]struct{}) {
	switch n.kind {
	case Sequence:
		for _, item := range n.items {
			normalize(item, names)
		}
	case Mapping:
		for _, key := range n.keys {
			value := n.fields[key]
			if value == nil {
				continue
			}
			if _, ok := names[key]; ok && value.kind != Sequence {
				value = NewSequence(value)
				n.fields[key] = value
			}
			normalize(value, names)
		}
	}
}
