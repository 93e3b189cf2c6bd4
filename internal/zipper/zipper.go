// Package zipper provides a mutable cursor over a markup tree that moves and
// edits locally, rebuilding a parent's children only when ascending past it.
package zipper

import (
	"errors"
	"fmt"

	"github.com/jcorbin/xmlfmt/internal/linkedlist"
	"github.com/jcorbin/xmlfmt/internal/markup"
)

var (
	// ErrLeaf is returned when descending from a node without children.
	ErrLeaf = errors.New("zipper: focus has no children")
	// ErrNoSibling is returned when moving past either end of a sibling run.
	ErrNoSibling = errors.New("zipper: no sibling in that direction")
	// ErrAtRoot is returned by moves and edits that need a parent.
	ErrAtRoot = errors.New("zipper: focus is the root")
	// ErrAtEnd is returned by Next after the last node; the cursor is
	// left at the root.
	ErrAtEnd = errors.New("zipper: end of traversal")
)

// Zipper is a cursor focused on one node of a tree.
//
// Edits below the focus's ancestors are held in the cursor until Up (or
// Top) writes them back, so the tree is only consistent once the cursor has
// returned to the root.
type Zipper struct {
	focus markup.Node
	ctx   *context
}

// context is the path from the focus back to the root. A nil parent marks
// the top.
type context struct {
	left   linkedlist.List[markup.Node] // in document order, nearest at tail
	right  linkedlist.List[markup.Node] // in document order, nearest at head
	parent markup.Parent
	up     *context
}

// New returns a cursor focused on root.
func New(root markup.Node) *Zipper {
	return &Zipper{focus: root, ctx: &context{}}
}

// Focus returns the node under the cursor.
func (z *Zipper) Focus() markup.Node { return z.focus }

// Parent returns the focus's parent, or nil at the root.
func (z *Zipper) Parent() markup.Parent { return z.ctx.parent }

// AtTop reports whether the focus is the root.
func (z *Zipper) AtTop() bool { return z.ctx.parent == nil }

// Depth returns the number of ancestors of the focus.
func (z *Zipper) Depth() (n int) {
	for c := z.ctx; c.parent != nil; c = c.up {
		n++
	}
	return n
}

// PeekLeft returns the nearest left sibling without moving.
func (z *Zipper) PeekLeft() (markup.Node, bool) {
	if e := z.ctx.left.Tail(); e != nil {
		return e.Value, true
	}
	return nil, false
}

// PeekRight returns the nearest right sibling without moving.
func (z *Zipper) PeekRight() (markup.Node, bool) {
	if e := z.ctx.right.Head(); e != nil {
		return e.Value, true
	}
	return nil, false
}

// Down moves to the focus's first child.
func (z *Zipper) Down() error {
	p, ok := z.focus.(markup.Parent)
	if !ok {
		return ErrLeaf
	}
	kids := p.Children()
	if len(kids) == 0 {
		return ErrLeaf
	}
	c := &context{parent: p, up: z.ctx}
	for _, kid := range kids[1:] {
		c.right.Append(kid)
	}
	z.focus, z.ctx = kids[0], c
	return nil
}

// Up moves to the focus's parent, writing the current sibling run back as
// its children.
func (z *Zipper) Up() error {
	c := z.ctx
	if c.parent == nil {
		return ErrAtRoot
	}
	nodes := make([]markup.Node, 0, c.left.Len()+1+c.right.Len())
	nodes = append(nodes, c.left.Values()...)
	nodes = append(nodes, z.focus)
	nodes = append(nodes, c.right.Values()...)
	c.parent.SetChildren(nodes)
	z.focus, z.ctx = c.parent, c.up
	return nil
}

// Left moves to the previous sibling.
func (z *Zipper) Left() error {
	n, ok := z.ctx.left.DeleteTail()
	if !ok {
		return ErrNoSibling
	}
	z.ctx.right.Prepend(z.focus)
	z.focus = n
	return nil
}

// Right moves to the next sibling.
func (z *Zipper) Right() error {
	n, ok := z.ctx.right.DeleteHead()
	if !ok {
		return ErrNoSibling
	}
	z.ctx.left.Append(z.focus)
	z.focus = n
	return nil
}

// Next moves to the following node in pre-order. After the last node it
// returns ErrAtEnd with the cursor back at the root.
func (z *Zipper) Next() error {
	if z.Down() == nil {
		return nil
	}
	for {
		if z.Right() == nil {
			return nil
		}
		if z.Up() != nil {
			return ErrAtEnd
		}
	}
}

// Previous moves to the preceding node in pre-order: the deepest last
// descendant of the left sibling, or else the parent.
func (z *Zipper) Previous() error {
	if z.Left() != nil {
		return z.Up()
	}
	for z.Down() == nil {
		for z.Right() == nil {
		}
	}
	return nil
}

// Top ascends to the root, writing back every pending edit, and returns it.
func (z *Zipper) Top() markup.Node {
	for z.Up() == nil {
	}
	return z.focus
}

// Replace swaps the focus for n.
func (z *Zipper) Replace(n markup.Node) { z.focus = n }

// InsertLeft adds n as the focus's previous sibling; the focus is unchanged.
func (z *Zipper) InsertLeft(n markup.Node) error {
	if z.ctx.parent == nil {
		return ErrAtRoot
	}
	z.ctx.left.Append(n)
	return nil
}

// InsertRight adds n as the focus's next sibling; the focus is unchanged.
func (z *Zipper) InsertRight(n markup.Node) error {
	if z.ctx.parent == nil {
		return ErrAtRoot
	}
	z.ctx.right.Prepend(n)
	return nil
}

// InsertDown adds n as the focus's first child and moves to it.
func (z *Zipper) InsertDown(n markup.Node) error {
	p, ok := z.focus.(markup.Parent)
	if !ok {
		return ErrLeaf
	}
	c := &context{parent: p, up: z.ctx}
	for _, kid := range p.Children() {
		c.right.Append(kid)
	}
	z.focus, z.ctx = n, c
	return nil
}

// Delete removes the focus, moving to its next sibling, else its previous
// sibling, else its parent.
func (z *Zipper) Delete() error {
	c := z.ctx
	if c.parent == nil {
		return ErrAtRoot
	}
	if n, ok := c.right.DeleteHead(); ok {
		z.focus = n
		return nil
	}
	if n, ok := c.left.DeleteTail(); ok {
		z.focus = n
		return nil
	}
	c.parent.SetChildren(nil)
	z.focus, z.ctx = c.parent, c.up
	return nil
}

// Format writes the focus and its depth under %v; %+v adds each ancestor.
func (z *Zipper) Format(f fmt.State, c rune) {
	switch c {
	case 'v', 's':
		fmt.Fprintf(f, "@%v %v", z.Depth(), z.focus)
		if f.Flag('+') {
			for ctx := z.ctx; ctx.parent != nil; ctx = ctx.up {
				fmt.Fprintf(f, "\n  in %v", ctx.parent)
			}
		}
	default:
		fmt.Fprintf(f, "!(ERROR invalid format verb %%%s)", string(c))
	}
}
