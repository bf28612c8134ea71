package list

// mergeSort sorts the chain starting at head and returns the new head.
func mergeSort(head *node) *node {
	if head == nil || head.next == nil {
		return head
	}

	left, right := split(head)

	return merge(mergeSort(left), mergeSort(right))
}

// split cuts the chain in two at its midpoint. The left half is never
// shorter than the right one.
func split(head *node) (*node, *node) {
	slow, fast := head, head.next
	for fast != nil && fast.next != nil {
		slow = slow.next
		fast = fast.next.next
	}

	right := slow.next
	slow.next = nil

	return head, right
}

// merge joins two sorted chains. On ties the node from left goes first.
func merge(left, right *node) *node {
	var dummy node
	last := &dummy

	for left != nil && right != nil {
		if CompareFold(left.value, right.value) <= 0 {
			last.next = left
			left = left.next
		} else {
			last.next = right
			right = right.next
		}
		last = last.next
	}

	if left != nil {
		last.next = left
	} else {
		last.next = right
	}

	return dummy.next
}

// CompareFold compares a and b byte by byte with ASCII letters folded to
// lower case, the ordering strcasecmp uses in the C locale.
func CompareFold(a, b string) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	for i := 0; i < n; i++ {
		ca, cb := lower(a[i]), lower(b[i])
		if ca != cb {
			if ca < cb {
				return -1
			}
			return 1
		}
	}

	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

func lower(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
