// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

// Implements the command grove: the hierarchical, append-only command
// namespace grown from the commands registered by features.

package cligrove

import (
	"golang.org/x/exp/slices"
)

// Node is a single node in the command grove, either a command group
// (*Branch) or a command (*Leaf).
type Node interface {
	// Name returns the node's own (sibling-unique) name, that is, its last
	// path segment.
	Name() string
	// Path returns the node's full path from the top of the grove down to and
	// including the node itself.
	Path() []string
}

// Branch is a command group node: it only groups further nodes below it and
// cannot be executed itself. Branches spring into existence as commands
// register paths leading through them, and multiple features can share the
// same branch.
type Branch struct {
	name     string
	path     []string
	children []Node
}

var _ Node = (*Branch)(nil)

// Name returns the branch's own name.
func (b *Branch) Name() string { return b.name }

// Path returns the branch's full path.
func (b *Branch) Path() []string { return slices.Clone(b.path) }

// Children returns the branch's child nodes in the order of their first
// registration.
func (b *Branch) Children() []Node { return slices.Clone(b.children) }

// Leaf is a command node wrapping the registered command. Leaves never have
// children: there is no nesting below a command.
type Leaf struct {
	name string
	path []string
	cmd  *Command
}

var _ Node = (*Leaf)(nil)

// Name returns the leaf's own name.
func (l *Leaf) Name() string { return l.name }

// Path returns the leaf's full path.
func (l *Leaf) Path() []string { return slices.Clone(l.path) }

// Command returns the command registered at this leaf.
func (l *Leaf) Command() *Command { return l.cmd }

// Grove is the command namespace of the tool under assembly: an ordered set
// of top-level nodes, each branch growing its own sub-grove. There is no
// artificial root node; depth 0 already is the set of top-level nodes. The
// grove is append-only and grows exclusively through a Registry while the
// features register their commands.
type Grove struct {
	roots []Node
	// nodes indexed by their depth, each level in registration order.
	levels [][]Node
}

// AtDepth returns the nodes at the given depth, in the order of their
// registration. Depth 0 is the set of top-level nodes. Depths beyond the
// grove or negative depths return an empty set.
func (g *Grove) AtDepth(depth int) []Node {
	if depth < 0 || depth >= len(g.levels) {
		return []Node{}
	}
	return slices.Clone(g.levels[depth])
}

// add inserts the command at its path, sprouting missing intermediate
// branches along the way. It refuses to modify the grove in any way when the
// path conflicts with what has already been registered.
func (g *Grove) add(cmd *Command) error {
	siblings := &g.roots
	for depth, segment := range cmd.Path[:len(cmd.Path)-1] {
		node := childNamed(*siblings, segment)
		if node == nil {
			branch := &Branch{
				name: segment,
				path: slices.Clone(cmd.Path[:depth+1]),
			}
			g.grow(branch, depth, siblings)
			siblings = &branch.children
			continue
		}
		branch, ok := node.(*Branch)
		if !ok {
			// A command already sits in the middle of our path and commands
			// don't nest.
			return &ConflictError{
				Path:     slices.Clone(cmd.Path),
				Existing: node.Path(),
			}
		}
		siblings = &branch.children
	}
	name := cmd.Path[len(cmd.Path)-1]
	if node := childNamed(*siblings, name); node != nil {
		return &ConflictError{
			Path:     slices.Clone(cmd.Path),
			Existing: node.Path(),
		}
	}
	g.grow(&Leaf{
		name: name,
		path: slices.Clone(cmd.Path),
		cmd:  cmd,
	}, len(cmd.Path)-1, siblings)
	return nil
}

// grow appends the new node to its siblings as well as to its depth level.
func (g *Grove) grow(node Node, depth int, siblings *[]Node) {
	*siblings = append(*siblings, node)
	for len(g.levels) <= depth {
		g.levels = append(g.levels, nil)
	}
	g.levels[depth] = append(g.levels[depth], node)
}

// childNamed returns the node with the given name from the specified sibling
// set, or nil if there is none.
func childNamed(siblings []Node, name string) Node {
	idx := slices.IndexFunc(siblings, func(node Node) bool {
		return node.Name() == name
	})
	if idx < 0 {
		return nil
	}
	return siblings[idx]
}
