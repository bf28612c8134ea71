package queue

type StringQueue interface {
	InsertHead(s string) bool
	InsertTail(s string) bool
	RemoveHead(sp []byte) bool
	Size() int
	Reverse()
	Sort()
	Each(fn func(string) bool)
	Free()
}

// Values collects the contents of q from head to tail.
func Values(q StringQueue) []string {
	var vs []string
	q.Each(func(s string) bool {
		vs = append(vs, s)
		return true
	})
	return vs
}
