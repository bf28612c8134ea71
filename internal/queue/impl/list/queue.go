package list

import (
	"strings"
	"unsafe"

	"github.com/Philanthropists/strqueue/internal/alloc"
	"github.com/Philanthropists/strqueue/internal/util/cstr"
)

type node struct {
	value string
	next  *node
}

// Queue is a singly linked list of strings with O(1) insertion at both ends
// and O(1) removal at the head. A nil *Queue behaves as an absent queue:
// inserts and removals report false, Size reports 0 and the rest are no-ops.
//
// Queue is not safe for concurrent use.
type Queue struct {
	head *node
	tail *node
	size int

	alloc alloc.Allocator
}

var (
	queueBlock = int(unsafe.Sizeof(Queue{}))
	nodeBlock  = int(unsafe.Sizeof(node{}))
)

type Option func(*Queue)

func WithAllocator(a alloc.Allocator) Option {
	return func(q *Queue) {
		if a != nil {
			q.alloc = a
		}
	}
}

// New returns an empty queue, or nil if the allocator refused the queue block.
func New(opts ...Option) *Queue {
	q := &Queue{alloc: alloc.Heap{}}
	for _, opt := range opts {
		opt(q)
	}

	if err := q.alloc.Alloc(alloc.KindQueue, queueBlock); err != nil {
		return nil
	}

	return q
}

// Free releases every node and then the queue itself. The queue must not be
// used afterwards.
func (q *Queue) Free() {
	if q == nil {
		return
	}

	for curr := q.head; curr != nil; {
		next := curr.next
		q.release(curr)
		curr = next
	}
	q.head, q.tail, q.size = nil, nil, 0

	q.alloc.Free(alloc.KindQueue, queueBlock)
}

func (q *Queue) newNode(s string) *node {
	if err := q.alloc.Alloc(alloc.KindNode, nodeBlock); err != nil {
		return nil
	}
	if err := q.alloc.Alloc(alloc.KindValue, len(s)+1); err != nil {
		q.alloc.Free(alloc.KindNode, nodeBlock)
		return nil
	}

	return &node{value: strings.Clone(s)}
}

func (q *Queue) release(n *node) {
	q.alloc.Free(alloc.KindValue, len(n.value)+1)
	q.alloc.Free(alloc.KindNode, nodeBlock)
	n.next = nil
}

func (q *Queue) InsertHead(s string) bool {
	if q == nil {
		return false
	}

	n := q.newNode(s)
	if n == nil {
		return false
	}

	n.next = q.head
	if q.head == nil {
		q.tail = n
	}
	q.head = n
	q.size++

	return true
}

func (q *Queue) InsertTail(s string) bool {
	if q == nil {
		return false
	}

	n := q.newNode(s)
	if n == nil {
		return false
	}

	if q.tail == nil {
		q.head = n
	} else {
		q.tail.next = n
	}
	q.tail = n
	q.size++

	return true
}

// RemoveHead detaches the head element. When sp is non-nil the removed value
// is copied into it, truncated to len(sp)-1 bytes plus a NUL terminator.
func (q *Queue) RemoveHead(sp []byte) bool {
	if q == nil || q.size == 0 {
		return false
	}

	n := q.head
	if sp != nil {
		cstr.Copy(sp, n.value)
	}

	q.head = n.next
	if q.head == nil {
		q.tail = nil
	}
	q.size--
	q.release(n)

	return true
}

func (q *Queue) Size() int {
	if q == nil {
		return 0
	}
	return q.size
}

// Reverse flips every link in place without allocating or freeing nodes.
func (q *Queue) Reverse() {
	if q == nil || q.size == 0 {
		return
	}

	var prev *node
	curr := q.head
	q.tail = q.head
	for curr != nil {
		next := curr.next
		curr.next = prev
		prev = curr
		curr = next
	}
	q.head = prev
}

// Sort orders the queue ascending by case-insensitive comparison. Equal
// elements keep their relative order.
func (q *Queue) Sort() {
	if q == nil || q.size < 2 {
		return
	}

	q.head = mergeSort(q.head)

	tail := q.head
	for tail.next != nil {
		tail = tail.next
	}
	q.tail = tail
}

// Each calls fn for every element from head to tail until fn returns false.
func (q *Queue) Each(fn func(string) bool) {
	if q == nil {
		return
	}

	for n := q.head; n != nil; n = n.next {
		if !fn(n.value) {
			return
		}
	}
}
