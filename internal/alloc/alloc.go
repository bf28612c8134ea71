package alloc

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/zeebo/errs"
)

type Kind int

const (
	KindQueue Kind = iota
	KindNode
	KindValue
)

func (k Kind) String() string {
	switch k {
	case KindQueue:
		return "queue"
	case KindNode:
		return "node"
	case KindValue:
		return "value"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

var ErrExhausted = errs.Class("allocation failed")

type Allocator interface {
	Alloc(kind Kind, size int) error
	Free(kind Kind, size int)
}

// Heap leaves memory to the runtime and never fails.
type Heap struct{}

func (Heap) Alloc(Kind, int) error { return nil }

func (Heap) Free(Kind, int) {}

type usage struct {
	blocks int
	bytes  int
}

// Tracker accounts for every block handed out and can be told to refuse
// allocations, either at random or after a fixed number of successes.
type Tracker struct {
	// FailPercent is the chance, 0..100, that any single Alloc fails.
	FailPercent int
	// FailAfter makes every Alloc fail once that many have succeeded. Zero disables it.
	FailAfter int

	rnd         *rand.Rand
	live        map[Kind]usage
	allocs      int
	failures    int
	doubleFrees int
}

func NewTracker(seed int64) *Tracker {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Tracker{
		rnd:  rand.New(rand.NewSource(seed)),
		live: make(map[Kind]usage),
	}
}

func (t *Tracker) init() {
	if t.live == nil {
		t.live = make(map[Kind]usage)
	}
	if t.rnd == nil {
		t.rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
}

func (t *Tracker) Alloc(kind Kind, size int) error {
	t.init()

	if t.FailAfter > 0 && t.allocs >= t.FailAfter {
		t.failures++
		return ErrExhausted.New("%s block of %d bytes", kind, size)
	}
	if t.FailPercent > 0 && t.rnd.Intn(100) < t.FailPercent {
		t.failures++
		return ErrExhausted.New("%s block of %d bytes", kind, size)
	}

	u := t.live[kind]
	u.blocks++
	u.bytes += size
	t.live[kind] = u
	t.allocs++

	return nil
}

func (t *Tracker) Free(kind Kind, size int) {
	t.init()

	u := t.live[kind]
	if u.blocks == 0 {
		t.doubleFrees++
		return
	}
	u.blocks--
	u.bytes -= size
	t.live[kind] = u
}

// Blocks reports live blocks of the given kinds, or of every kind when none are given.
func (t *Tracker) Blocks(kinds ...Kind) int {
	var n int
	for k, u := range t.live {
		if matches(k, kinds) {
			n += u.blocks
		}
	}
	return n
}

func (t *Tracker) Bytes(kinds ...Kind) int {
	var n int
	for k, u := range t.live {
		if matches(k, kinds) {
			n += u.bytes
		}
	}
	return n
}

func (t *Tracker) Allocations() int { return t.allocs }

func (t *Tracker) Failures() int { return t.failures }

func (t *Tracker) DoubleFrees() int { return t.doubleFrees }

// Check returns an error when blocks are still live or were released twice.
func (t *Tracker) Check() error {
	var group errs.Group
	if n := t.Blocks(); n > 0 {
		group.Add(errs.New("%d blocks are still allocated", n))
	}
	if t.doubleFrees > 0 {
		group.Add(errs.New("%d blocks were freed twice", t.doubleFrees))
	}
	return group.Err()
}

func matches(k Kind, kinds []Kind) bool {
	if len(kinds) == 0 {
		return true
	}
	for _, want := range kinds {
		if k == want {
			return true
		}
	}
	return false
}
