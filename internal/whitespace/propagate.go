package whitespace

import (
	"fmt"
	"log"

	"github.com/jcorbin/xmlfmt/internal/dialect"
	"github.com/jcorbin/xmlfmt/internal/markup"
	"github.com/jcorbin/xmlfmt/internal/zipper"
)

// Options controls Propagate.
type Options struct {
	// Strict returns invariant violations instead of logging them.
	Strict bool
	// Logger receives non-strict invariant violations; nil discards them.
	Logger *log.Logger
}

// InvariantError is a zipper move failing where the tree shape guarantees
// it succeeds; it indicates a defect, not bad input.
type InvariantError struct {
	Op  string
	At  string
	Err error
}

func (err *InvariantError) Error() string {
	return fmt.Sprintf("spacing invariant violated: %v at %v: %v", err.Op, err.At, err.Err)
}

func (err *InvariantError) Unwrap() error { return err.Err }

// Propagate floats each Spacing outward across the inline tags it opens or
// closes, as far as a position next to non block level content. The space
// moves: the original marker is removed, and meeting an existing marker
// merges with it. A marker with no legal position elsewhere stays put.
//
// The tree is edited in place and returned. On an invariant violation the
// pass stops; the partially resolved tree is returned with a nil error
// unless opts.Strict is set.
func Propagate(doc *markup.Document, d *dialect.Dialect, opts Options) (*markup.Document, error) {
	p := propagator{d: d, z: zipper.New(doc)}
	err := p.run()
	p.z.Top()
	if err != nil {
		if opts.Strict {
			return nil, err
		}
		if opts.Logger != nil {
			opts.Logger.Printf("%v; keeping spacing as is", err)
		}
	}
	return doc, nil
}

type propagator struct {
	d *dialect.Dialect
	z *zipper.Zipper
}

func (p *propagator) run() error {
	for {
		if sp, ok := p.z.Focus().(*markup.Spacing); ok {
			moved, err := p.resolve(sp)
			if err != nil {
				return err
			}
			if moved {
				// focus is the marker's former right sibling, not yet visited
				continue
			}
		}
		if err := p.z.Next(); err == zipper.ErrAtEnd {
			return nil
		} else if err != nil {
			return p.invariant("next", err)
		}
	}
}

func (p *propagator) resolve(sp *markup.Spacing) (moved bool, err error) {
	if !sp.PropagatedLeft {
		sp.PropagatedLeft = true
		if moved, err = p.hopLeft(); moved || err != nil {
			return moved, err
		}
	}
	if !sp.PropagatedRight {
		sp.PropagatedRight = true
		if moved, err = p.hopRight(); moved || err != nil {
			return moved, err
		}
	}
	return false, nil
}

// hopLeft ascends while the focus opens an inline element, then places the
// space before the outermost one.
func (p *propagator) hopLeft() (bool, error) {
	if _, ok := p.z.PeekRight(); !ok && p.inlineParent() {
		return false, p.invariant("hop left", zipper.ErrNoSibling)
	}
	k := 0
	for p.inlineParent() {
		if _, ok := p.z.PeekLeft(); ok {
			break
		}
		if err := p.z.Up(); err != nil {
			return false, p.invariant("up", err)
		}
		k++
	}

	legal := false
	if k > 0 {
		if nb, ok := p.z.PeekLeft(); ok && !p.blockLevel(nb) {
			legal = true
			if _, isSpace := nb.(*markup.Spacing); !isSpace {
				if err := p.z.InsertLeft(resolved()); err != nil {
					return false, p.invariant("insert left", err)
				}
			}
		}
	}

	for i := 0; i < k; i++ {
		if err := p.z.Down(); err != nil {
			return false, p.invariant("down", err)
		}
	}
	if !legal {
		return false, nil
	}
	return true, p.remove()
}

// hopRight ascends while the focus is followed by an inline close tag, then
// places the space after the outermost element.
func (p *propagator) hopRight() (bool, error) {
	k := 0
	for p.inlineParent() {
		if nb, ok := p.z.PeekRight(); !ok || !isClose(nb) {
			break
		}
		if err := p.z.Up(); err != nil {
			return false, p.invariant("up", err)
		}
		k++
	}

	legal := false
	if k > 0 {
		if nb, ok := p.z.PeekRight(); ok && !isClose(nb) && !p.blockLevel(nb) {
			legal = true
			if _, isSpace := nb.(*markup.Spacing); !isSpace {
				if err := p.z.InsertRight(resolved()); err != nil {
					return false, p.invariant("insert right", err)
				}
			}
		}
	}

	for i := 0; i < k; i++ {
		if err := p.z.Down(); err != nil {
			return false, p.invariant("down", err)
		}
		for p.z.Right() == nil {
		}
		if err := p.z.Left(); err != nil {
			return false, p.invariant("left", err)
		}
	}
	if !legal {
		return false, nil
	}
	return true, p.remove()
}

// remove deletes the focused marker, leaving the focus on its right sibling.
func (p *propagator) remove() error {
	if _, ok := p.z.PeekRight(); !ok {
		return p.invariant("remove", zipper.ErrNoSibling)
	}
	if err := p.z.Delete(); err != nil {
		return p.invariant("remove", err)
	}
	return nil
}

func (p *propagator) inlineParent() bool {
	t, ok := p.z.Parent().(*markup.Tag)
	return ok && !t.SelfClosing && !p.d.IsBlockLevel(t.Name)
}

func (p *propagator) blockLevel(n markup.Node) bool {
	t, ok := n.(*markup.Tag)
	return ok && p.d.IsBlockLevel(t.Name)
}

func (p *propagator) invariant(op string, err error) error {
	return &InvariantError{Op: op, At: fmt.Sprintf("%v", p.z), Err: err}
}

func isClose(n markup.Node) bool {
	_, ok := n.(*markup.CloseTag)
	return ok
}

func resolved() *markup.Spacing {
	return &markup.Spacing{PropagatedLeft: true, PropagatedRight: true}
}
