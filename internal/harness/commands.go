package harness

import (
	"context"
	"os"
	"strconv"

	"github.com/zeebo/errs"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/Philanthropists/strqueue/internal/alloc"
	"github.com/Philanthropists/strqueue/internal/queue/impl/list"
	"github.com/Philanthropists/strqueue/internal/util/cstr"
)

type commandDef struct {
	run  func(ctx context.Context, args []string) error
	args string
	doc  string
}

func (c *Console) commandTable() map[string]commandDef {
	return map[string]commandDef{
		"new":     {run: c.doNew, doc: "Create new queue"},
		"free":    {run: c.doFree, doc: "Delete queue"},
		"ih":      {run: c.doInsertHead, args: "str [n]", doc: "Insert string str at head of queue n times (default: n == 1)"},
		"it":      {run: c.doInsertTail, args: "str [n]", doc: "Insert string str at tail of queue n times (default: n == 1)"},
		"rh":      {run: c.doRemoveHead, args: "[str]", doc: "Remove from head of queue. Optionally compare to expected value str"},
		"rhq":     {run: c.doRemoveHeadQuiet, doc: "Remove from head of queue without reporting value"},
		"size":    {run: c.doSize, args: "[n]", doc: "Compute queue size n times (default: n == 1)"},
		"reverse": {run: c.doReverse, doc: "Reverse queue"},
		"sort":    {run: c.doSort, doc: "Sort queue in ascending order"},
		"show":    {run: c.doShow, doc: "Display queue contents"},
		"option":  {run: c.doOption, args: "[name val]", doc: "Display or set options"},
		"source":  {run: c.doSource, args: "file", doc: "Read commands from source file"},
		"help":    {run: c.doHelp, doc: "Show documentation"},
		"quit":    {run: c.doQuit, doc: "Exit program"},
	}
}

func (c *Console) injecting() bool {
	return c.tracker.FailPercent > 0
}

func (c *Console) doNew(_ context.Context, args []string) error {
	if err := argCount("new", args, 0, 0); err != nil {
		return err
	}

	if !c.absent() {
		if err := c.free(); err != nil {
			return err
		}
	}

	q := list.New(list.WithAllocator(c.tracker))
	if q == nil {
		if c.injecting() {
			c.warn("allocation of queue failed")
			return c.show()
		}
		return errs.New("allocation of queue failed")
	}

	c.setQueue(q)
	c.count = 0
	return c.show()
}

func (c *Console) doFree(_ context.Context, args []string) error {
	if err := argCount("free", args, 0, 0); err != nil {
		return err
	}

	if c.absent() {
		c.warn("calling free on null queue")
	}

	err := c.free()
	if showErr := c.show(); err == nil {
		err = showErr
	}
	return err
}

func (c *Console) insert(name string, args []string, insert func(string) bool) error {
	if err := argCount(name, args, 1, 2); err != nil {
		return err
	}
	reps, err := repetitions(args, 1)
	if err != nil {
		return err
	}

	value := args[0]
	if c.absent() {
		c.warn("calling %s on null queue", name)
	}

	for i := 0; i < reps; i++ {
		ok := insert(value)
		switch {
		case c.absent() && ok:
			return errs.New("%s on null queue succeeded", name)
		case c.absent():
		case ok:
			c.count++
		case c.injecting():
			c.warn("insertion of %s failed", value)
		default:
			return errs.New("insertion of %s failed", value)
		}
	}

	return c.show()
}

func (c *Console) doInsertHead(_ context.Context, args []string) error {
	return c.insert("ih", args, c.q.InsertHead)
}

func (c *Console) doInsertTail(_ context.Context, args []string) error {
	return c.insert("it", args, c.q.InsertTail)
}

func (c *Console) remove(name string, sp []byte) (bool, error) {
	if c.absent() {
		c.warn("calling %s on null queue", name)
	} else if c.count == 0 {
		c.warn("calling %s on empty queue", name)
	}

	ok := c.q.RemoveHead(sp)
	switch {
	case ok && c.count == 0:
		return false, errs.New("%s on empty or null queue succeeded", name)
	case !ok && c.count > 0:
		return false, errs.New("failed to remove from non-empty queue")
	}

	if ok {
		c.count--
	}
	return ok, nil
}

func (c *Console) doRemoveHead(_ context.Context, args []string) error {
	if err := argCount("rh", args, 0, 1); err != nil {
		return err
	}

	buf := make([]byte, c.Config.StringLength+1)
	ok, err := c.remove("rh", buf)
	if err != nil {
		return err
	}

	if ok {
		removed := cstr.String(buf)
		c.printf("Removed %s from queue\n", removed)
		if len(args) == 1 {
			expected := make([]byte, len(buf))
			cstr.Copy(expected, args[0])
			if removed != cstr.String(expected) {
				return errs.New("removed value %s != expected value %s", removed, args[0])
			}
		}
	}

	return c.show()
}

func (c *Console) doRemoveHeadQuiet(_ context.Context, args []string) error {
	if err := argCount("rhq", args, 0, 0); err != nil {
		return err
	}

	ok, err := c.remove("rhq", nil)
	if err != nil {
		return err
	}
	if ok {
		c.printf("Removed element from queue\n")
	}

	return c.show()
}

func (c *Console) doSize(_ context.Context, args []string) error {
	if err := argCount("size", args, 0, 1); err != nil {
		return err
	}
	reps, err := repetitions(args, 0)
	if err != nil {
		return err
	}

	if c.absent() {
		c.warn("calling size on null queue")
	}

	var size int
	for i := 0; i < reps; i++ {
		size = c.q.Size()
	}

	if size != c.count {
		return errs.New("computed queue size as %d, but correct value is %d", size, c.count)
	}
	c.printf("Queue size = %d\n", size)

	return c.show()
}

func (c *Console) doReverse(_ context.Context, args []string) error {
	if err := argCount("reverse", args, 0, 0); err != nil {
		return err
	}

	if c.absent() {
		c.warn("calling reverse on null queue")
	}
	c.q.Reverse()

	return c.show()
}

func (c *Console) doSort(_ context.Context, args []string) error {
	if err := argCount("sort", args, 0, 0); err != nil {
		return err
	}

	if c.absent() {
		c.warn("calling sort on null queue")
	}
	c.q.Sort()

	var (
		prev    string
		started bool
		bad     error
	)
	c.q.Each(func(s string) bool {
		if started && list.CompareFold(prev, s) > 0 {
			bad = errs.New("not sorted in ascending order: %s before %s", prev, s)
			return false
		}
		prev, started = s, true
		return true
	})

	if err := c.show(); bad == nil {
		bad = err
	}
	return bad
}

func (c *Console) doShow(_ context.Context, args []string) error {
	if err := argCount("show", args, 0, 0); err != nil {
		return err
	}
	return c.show()
}

func (c *Console) options() map[string]*int {
	return map[string]*int{
		"malloc":  &c.tracker.FailPercent,
		"length":  &c.Config.StringLength,
		"error":   &c.Config.ErrorLimit,
		"verbose": &c.Config.Verbose,
	}
}

func (c *Console) doOption(_ context.Context, args []string) error {
	opts := c.options()

	if len(args) == 0 {
		names := maps.Keys(opts)
		slices.Sort(names)

		c.printf("Options:\n")
		for _, name := range names {
			c.printf("\t%s\t%d\n", name, *opts[name])
		}
		return nil
	}

	if err := argCount("option", args, 2, 2); err != nil {
		return err
	}

	target, ok := opts[args[0]]
	if !ok {
		return errs.New("unknown option %q", args[0])
	}

	v, err := strconv.Atoi(args[1])
	if err != nil {
		return errs.New("invalid value %q for option %s", args[1], args[0])
	}

	previous := *target
	*target = v

	probe := c.Config
	probe.MallocFailPercent = c.tracker.FailPercent
	if err := probe.Validate(); err != nil {
		*target = previous
		return err
	}

	c.Config.MallocFailPercent = c.tracker.FailPercent
	if args[0] == "verbose" {
		c.Log.SetVerbosity(v)
	}

	return nil
}

func (c *Console) doSource(ctx context.Context, args []string) error {
	if err := argCount("source", args, 1, 1); err != nil {
		return err
	}

	f, err := os.Open(args[0])
	if err != nil {
		return errs.Wrap(err)
	}
	defer f.Close()

	return c.run(ctx, f)
}

func (c *Console) doHelp(_ context.Context, _ []string) error {
	names := maps.Keys(c.commands)
	slices.Sort(names)

	c.printf("Commands:\n")
	for _, name := range names {
		def := c.commands[name]
		c.printf("\t%s %-10s | %s\n", name, def.args, def.doc)
	}
	return nil
}

func (c *Console) doQuit(_ context.Context, _ []string) error {
	c.quit = true
	return nil
}

func (c *Console) Tracker() *alloc.Tracker {
	return c.tracker
}
