package pipe

import (
	"bufio"
	"io"
	"strings"
)

type Result[T any] struct {
	Error error
	Value T
}

// Ensures that the goroutine is finished on done being closed
func OrDone[T any](done <-chan struct{}, c <-chan T) <-chan T {
	stream := make(chan T)

	go func() {
		defer close(stream)

		for {
			select {
			case <-done:
				return
			case v, ok := <-c:
				if !ok {
					return
				}
				select {
				case stream <- v:
				case <-done:
				}
			}
		}
	}()

	return stream
}

// Maps from channel of type A to a channel of type B
func Map[A, B any](done <-chan struct{}, in <-chan A, mapper func(A) Result[B]) <-chan Result[B] {
	out := make(chan Result[B])

	go func() {
		defer close(out)

		for val := range OrDone(done, in) {
			select {
			case <-done:
				return
			case out <- mapper(val):
			}
		}
	}()

	return out
}

// Streams the lines of r without a length limit, the read error (if any) is sent last
func Lines(done <-chan struct{}, r io.Reader) <-chan Result[string] {
	out := make(chan Result[string])

	go func() {
		defer close(out)

		reader := bufio.NewReader(r)
		for {
			line, err := reader.ReadString('\n')
			if line != "" {
				line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
				select {
				case <-done:
					return
				case out <- Result[string]{Value: line}:
				}
			}

			if err == io.EOF {
				return
			}
			if err != nil {
				select {
				case <-done:
				case out <- Result[string]{Error: err}:
				}
				return
			}
		}
	}()

	return out
}
