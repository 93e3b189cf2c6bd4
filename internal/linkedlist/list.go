// Package linkedlist implements a size-tracked doubly linked list, used to hold
// sibling runs that get mutated from both ends.
package linkedlist

import (
	"fmt"
	"io"
)

// List is a doubly linked list of T values.
// The zero value is an empty list ready to use.
type List[T any] struct {
	c *chain[T] // nil when empty
}

// chain holds the non-empty state of a List; head, tail are never nil and
// size is never less than 1.
type chain[T any] struct {
	head, tail *Element[T]
	size       int
}

// Element is a link within a List.
type Element[T any] struct {
	Value      T
	prev, next *Element[T]
}

// Next returns the following element or nil.
func (e *Element[T]) Next() *Element[T] { return e.next }

// Prev returns the preceding element or nil.
func (e *Element[T]) Prev() *Element[T] { return e.prev }

// Len returns the number of elements in the list.
func (l *List[T]) Len() int {
	if l.c == nil {
		return 0
	}
	return l.c.size
}

// Head returns the first element, or nil if the list is empty.
func (l *List[T]) Head() *Element[T] {
	if l.c == nil {
		return nil
	}
	return l.c.head
}

// Tail returns the last element, or nil if the list is empty.
func (l *List[T]) Tail() *Element[T] {
	if l.c == nil {
		return nil
	}
	return l.c.tail
}

// Append adds v at the tail.
func (l *List[T]) Append(v T) *Element[T] {
	e := &Element[T]{Value: v}
	if l.c == nil {
		l.c = &chain[T]{head: e, tail: e, size: 1}
		return e
	}
	e.prev = l.c.tail
	l.c.tail.next = e
	l.c.tail = e
	l.c.size++
	return e
}

// Prepend adds v at the head.
func (l *List[T]) Prepend(v T) *Element[T] {
	e := &Element[T]{Value: v}
	if l.c == nil {
		l.c = &chain[T]{head: e, tail: e, size: 1}
		return e
	}
	e.next = l.c.head
	l.c.head.prev = e
	l.c.head = e
	l.c.size++
	return e
}

// DeleteHead removes and returns the head value; ok is false if the list was
// empty.
func (l *List[T]) DeleteHead() (v T, ok bool) {
	if l.c == nil {
		return v, false
	}
	e := l.c.head
	l.unlink(e)
	return e.Value, true
}

// DeleteTail removes and returns the tail value; ok is false if the list was
// empty.
func (l *List[T]) DeleteTail() (v T, ok bool) {
	if l.c == nil {
		return v, false
	}
	e := l.c.tail
	l.unlink(e)
	return e.Value, true
}

// DeleteRef scans for ref by identity and splices it out, returning true if it
// was found.
func (l *List[T]) DeleteRef(ref *Element[T]) bool {
	if ref == nil {
		return false
	}
	for e := l.Head(); e != nil; e = e.next {
		if e == ref {
			l.unlink(e)
			return true
		}
	}
	return false
}

// unlink must only be called with an element of the receiver.
func (l *List[T]) unlink(e *Element[T]) {
	if l.c.size == 1 {
		l.c = nil
	} else {
		if e.prev == nil {
			l.c.head = e.next
		} else {
			e.prev.next = e.next
		}
		if e.next == nil {
			l.c.tail = e.prev
		} else {
			e.next.prev = e.prev
		}
		l.c.size--
	}
	e.prev, e.next = nil, nil
}

// Values returns a new slice of all values, head first.
func (l *List[T]) Values() []T {
	vs := make([]T, 0, l.Len())
	for e := l.Head(); e != nil; e = e.next {
		vs = append(vs, e.Value)
	}
	return vs
}

// Format writes "[a] <-> [b]" for non-empty lists, "Empty List" otherwise.
// Values are formatted with the same verb and flags the list was.
func (l *List[T]) Format(f fmt.State, c rune) {
	if l.c == nil {
		io.WriteString(f, "Empty List")
		return
	}
	verb := "%v"
	if f.Flag('+') {
		verb = "%+v"
	}
	for e := l.c.head; e != nil; e = e.next {
		if e != l.c.head {
			io.WriteString(f, " <-> ")
		}
		io.WriteString(f, "[")
		fmt.Fprintf(f, verb, e.Value)
		io.WriteString(f, "]")
	}
}
