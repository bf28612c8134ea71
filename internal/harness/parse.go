package harness

import (
	"strconv"
	"strings"

	"github.com/zeebo/errs"

	"github.com/Philanthropists/strqueue/pkg/pipe"
)

type command struct {
	Name string
	Args []string
}

func (c command) empty() bool {
	return c.Name == ""
}

func parseLine(in pipe.Result[string]) pipe.Result[command] {
	if in.Error != nil {
		return pipe.Result[command]{Error: errs.Wrap(in.Error)}
	}

	line := strings.TrimSpace(in.Value)
	if line == "" || strings.HasPrefix(line, "#") {
		return pipe.Result[command]{}
	}

	fields := strings.Fields(line)
	return pipe.Result[command]{
		Value: command{
			Name: fields[0],
			Args: fields[1:],
		},
	}
}

// repetitions parses the optional count argument at position i, defaulting to 1.
func repetitions(args []string, i int) (int, error) {
	if len(args) <= i {
		return 1, nil
	}

	n, err := strconv.Atoi(args[i])
	if err != nil || n < 1 {
		return 0, errs.New("invalid number of repetitions %q", args[i])
	}
	return n, nil
}

func argCount(name string, args []string, min, max int) error {
	if len(args) < min || len(args) > max {
		if min == max {
			return errs.New("%s takes %d arguments, got %d", name, min, len(args))
		}
		return errs.New("%s takes %d to %d arguments, got %d", name, min, max, len(args))
	}
	return nil
}
