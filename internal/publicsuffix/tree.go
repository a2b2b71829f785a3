package publicsuffix

// Wildcard is the label that stands for any single label in a rule.
const Wildcard = "*"

// Node is a node of a suffix tree. Each path from the root to a
// terminal node spells a rule, rightmost label first.
//
// The zero Node is an empty tree, ready to use.
type Node struct {
	children map[string]*Node
	wildcard *Node
	terminal bool
}

// Insert adds the rule labels to the tree rooted at n. labels are in
// the usual leftmost-first order, and a label equal to Wildcard
// matches any label.
func (n *Node) Insert(labels []string) {
	cur := n
	for i := len(labels) - 1; i >= 0; i-- {
		cur = cur.child(labels[i])
	}
	cur.terminal = true
}

func (n *Node) child(label string) *Node {
	if label == Wildcard {
		if n.wildcard == nil {
			n.wildcard = &Node{}
		}
		return n.wildcard
	}
	c, ok := n.children[label]
	if !ok {
		if n.children == nil {
			n.children = map[string]*Node{}
		}
		c = &Node{}
		n.children[label] = c
	}
	return c
}

// Accepts reports whether the name labels, leftmost first, matches a
// rule of the tree.
func (n *Node) Accepts(labels []string) bool {
	return n.walk(labels, func(m *Node) bool { return m.terminal })
}

// AcceptsChild reports whether some name one label longer than labels
// matches a rule of the tree.
func (n *Node) AcceptsChild(labels []string) bool {
	return n.walk(labels, (*Node).hasTerminalChild)
}

func (n *Node) hasTerminalChild() bool {
	if n.wildcard != nil && n.wildcard.terminal {
		return true
	}
	for _, c := range n.children {
		if c.terminal {
			return true
		}
	}
	return false
}

// walk follows labels from the rightmost one, preferring exact edges
// over the wildcard edge, and reports whether found holds for a node
// reached once all labels are consumed. It backtracks to the wildcard
// edge when the exact path fails.
func (n *Node) walk(labels []string, found func(*Node) bool) bool {
	if len(labels) == 0 {
		return found(n)
	}
	last, rest := labels[len(labels)-1], labels[:len(labels)-1]
	if c, ok := n.children[last]; ok && c.walk(rest, found) {
		return true
	}
	return n.wildcard != nil && n.wildcard.walk(rest, found)
}
