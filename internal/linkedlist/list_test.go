package linkedlist_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/jcorbin/xmlfmt/internal/linkedlist"
)

func TestList(t *testing.T) {
	var l List[string]
	assert.Equal(t, 0, l.Len())
	assert.Nil(t, l.Head())
	assert.Nil(t, l.Tail())
	assert.Equal(t, "Empty List", fmt.Sprint(&l))

	_, ok := l.DeleteHead()
	assert.False(t, ok, "delete head of empty list")
	_, ok = l.DeleteTail()
	assert.False(t, ok, "delete tail of empty list")

	b := l.Append("b")
	l.Prepend("a")
	l.Append("c")
	assert.Equal(t, 3, l.Len())
	assert.Equal(t, []string{"a", "b", "c"}, l.Values())
	assert.Equal(t, "[a] <-> [b] <-> [c]", fmt.Sprint(&l))
	assert.Equal(t, "a", l.Head().Value)
	assert.Equal(t, "c", l.Tail().Value)
	assert.Equal(t, "a", b.Prev().Value)
	assert.Equal(t, "c", b.Next().Value)

	assert.True(t, l.DeleteRef(b), "delete middle ref")
	assert.False(t, l.DeleteRef(b), "already deleted")
	assert.Equal(t, []string{"a", "c"}, l.Values())
	assert.Equal(t, l.Tail(), l.Head().Next())
	assert.Equal(t, l.Head(), l.Tail().Prev())

	v, ok := l.DeleteTail()
	assert.True(t, ok)
	assert.Equal(t, "c", v)
	assert.Equal(t, l.Head(), l.Tail(), "single element is both ends")

	v, ok = l.DeleteHead()
	assert.True(t, ok)
	assert.Equal(t, "a", v)
	assert.Equal(t, 0, l.Len())
	assert.Nil(t, l.Head())
	assert.Nil(t, l.Tail())
}

func TestList_DeleteRef(t *testing.T) {
	for _, tc := range []struct {
		name string
		del  int
		out  []int
	}{
		{"head", 0, []int{2, 3}},
		{"middle", 1, []int{1, 3}},
		{"tail", 2, []int{1, 2}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var l List[int]
			var refs []*Element[int]
			for i := 1; i <= 3; i++ {
				refs = append(refs, l.Append(i))
			}
			assert.True(t, l.DeleteRef(refs[tc.del]))
			assert.Equal(t, tc.out, l.Values())
			assert.Equal(t, 2, l.Len())
			assert.Nil(t, l.Head().Prev(), "head has no prev")
			assert.Nil(t, l.Tail().Next(), "tail has no next")
		})
	}

	var l List[int]
	l.Append(1)
	assert.False(t, l.DeleteRef(nil))
	assert.True(t, l.DeleteRef(l.Head()))
	assert.Equal(t, 0, l.Len())
}
