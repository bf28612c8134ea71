package mutex

import (
	"sync"

	"github.com/Philanthropists/strqueue/internal/queue"
)

type mutexQueue struct {
	Inner queue.StringQueue
	Mutex *sync.Mutex
}

// Wrap serializes every call on q behind a single mutex.
func Wrap(q queue.StringQueue) *mutexQueue {
	return &mutexQueue{
		Inner: q,
		Mutex: &sync.Mutex{},
	}
}

func (q *mutexQueue) InsertHead(s string) bool {
	q.Mutex.Lock()
	defer q.Mutex.Unlock()
	return q.Inner.InsertHead(s)
}

func (q *mutexQueue) InsertTail(s string) bool {
	q.Mutex.Lock()
	defer q.Mutex.Unlock()
	return q.Inner.InsertTail(s)
}

func (q *mutexQueue) RemoveHead(sp []byte) bool {
	q.Mutex.Lock()
	defer q.Mutex.Unlock()
	return q.Inner.RemoveHead(sp)
}

func (q *mutexQueue) Size() int {
	q.Mutex.Lock()
	defer q.Mutex.Unlock()
	return q.Inner.Size()
}

func (q *mutexQueue) Reverse() {
	q.Mutex.Lock()
	defer q.Mutex.Unlock()
	q.Inner.Reverse()
}

func (q *mutexQueue) Sort() {
	q.Mutex.Lock()
	defer q.Mutex.Unlock()
	q.Inner.Sort()
}

// Each holds the lock for the whole traversal; fn must not call back into q.
func (q *mutexQueue) Each(fn func(string) bool) {
	q.Mutex.Lock()
	defer q.Mutex.Unlock()
	q.Inner.Each(fn)
}

func (q *mutexQueue) Free() {
	q.Mutex.Lock()
	defer q.Mutex.Unlock()
	q.Inner.Free()
}
