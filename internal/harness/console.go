package harness

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/zeebo/errs"

	"github.com/Philanthropists/strqueue/internal/alloc"
	"github.com/Philanthropists/strqueue/internal/logging"
	"github.com/Philanthropists/strqueue/internal/queue"
	"github.com/Philanthropists/strqueue/internal/queue/impl/list"
	"github.com/Philanthropists/strqueue/internal/queue/impl/mutex"
	"github.com/Philanthropists/strqueue/pkg/pipe"
)

var Error = errs.Class("qtest")

// bigQueue is the number of elements show prints before eliding the rest.
const bigQueue = 30

// Console interprets qtest commands against a single string queue, checking
// every result against its own model of the queue.
type Console struct {
	Config Config
	Out    io.Writer
	Log    *logging.Logger

	tracker  *alloc.Tracker
	raw      *list.Queue
	q        queue.StringQueue
	count    int
	errors   int
	quit     bool
	commands map[string]commandDef
}

func New(config Config, out io.Writer, log *logging.Logger) *Console {
	if out == nil {
		out = os.Stdout
	}
	if log == nil {
		log = logging.New()
	}

	c := &Console{
		Config:  config,
		Out:     out,
		Log:     log,
		tracker: alloc.NewTracker(config.Seed),
	}
	c.tracker.FailPercent = config.MallocFailPercent
	c.Log.SetVerbosity(config.Verbose)
	c.commands = c.commandTable()
	c.setQueue(nil)

	return c
}

func (c *Console) setQueue(q *list.Queue) {
	c.raw = q
	if c.Config.Synchronized {
		c.q = mutex.Wrap(q)
	} else {
		c.q = q
	}
}

func (c *Console) absent() bool {
	return c.raw == nil
}

func (c *Console) Errors() int {
	return c.errors
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.Out, format, args...)
}

// Run executes every command read from r until the input ends, quit is
// issued, the error limit is reached or ctx is done. The queue is freed and
// checked for leaks before returning.
func (c *Console) Run(ctx context.Context, r io.Reader) error {
	err := c.run(ctx, r)
	c.finish()
	if err != nil {
		return err
	}

	if c.errors > 0 {
		return Error.New("%d errors", c.errors)
	}
	return nil
}

func (c *Console) run(ctx context.Context, r io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cmds := pipe.Map(ctx.Done(), pipe.Lines(ctx.Done(), r), parseLine)
	for res := range cmds {
		if res.Error != nil {
			return Error.Wrap(res.Error)
		}

		c.exec(ctx, res.Value)
		if c.quit {
			return nil
		}
	}

	return errs.Wrap(ctx.Err())
}

// Exec runs a single command line.
func (c *Console) Exec(ctx context.Context, line string) {
	c.exec(ctx, parseLine(pipe.Result[string]{Value: line}).Value)
}

func (c *Console) exec(ctx context.Context, cmd command) {
	if cmd.empty() {
		return
	}

	log := c.Log.With(logging.String("cmd", cmd.Name))
	log.Debug("executing command", logging.Strings("args", cmd.Args))

	def, ok := c.commands[cmd.Name]
	if !ok {
		c.report(log, errs.New("unknown command %q", cmd.Name))
		return
	}

	if err := def.run(ctx, cmd.Args); err != nil {
		c.report(log, err)
	}
}

func (c *Console) report(log *logging.Logger, err error) {
	c.errors++
	c.printf("ERROR: %v\n", err)
	log.Warn("command failed", logging.Error(err), logging.Int("errors", c.errors))

	if c.errors >= c.Config.ErrorLimit {
		c.printf("Error limit exceeded.  Stopping command execution\n")
		log.Error("error limit exceeded", logging.Int("limit", c.Config.ErrorLimit))
		c.quit = true
	}
}

// warn prints a message for an outcome that is legitimate under injected
// allocation failures.
func (c *Console) warn(format string, args ...any) {
	c.printf("WARNING: "+format+"\n", args...)
}

func (c *Console) finish() {
	if c.absent() {
		return
	}

	c.printf("Freeing queue\n")
	if err := c.free(); err != nil {
		c.report(c.Log, err)
	}
}

func (c *Console) free() error {
	c.q.Free()
	c.setQueue(nil)
	c.count = 0

	if err := c.tracker.Check(); err != nil {
		return errs.New("freed queue, but %w", err)
	}
	return nil
}

func (c *Console) show() error {
	if c.absent() {
		c.printf("q = NULL\n")
		return nil
	}

	c.printf("q = [")
	n := 0
	c.q.Each(func(s string) bool {
		if n > 0 {
			c.printf(" ")
		}
		if n == bigQueue {
			c.printf("...")
			return false
		}
		c.printf("%s", s)
		n++
		return true
	})
	c.printf("]\n")

	if size := c.q.Size(); size != c.count {
		return errs.New("queue reports %d elements, expected %d", size, c.count)
	}
	return nil
}
