// Package clipboard copies text to the system clipboard via platform commands.
package clipboard

import (
	"errors"
	"os/exec"
	"runtime"
	"strings"

	"github.com/fwojciec/bouncer"
)

// ErrUnavailable is returned when no clipboard command is installed.
var ErrUnavailable = errors.New("no clipboard command available")

// Ensure Command implements the Clipboard interface.
var _ bouncer.Clipboard = (*Command)(nil)

// Command implements bouncer.Clipboard by piping text into an external
// command such as pbcopy.
type Command struct {
	name string
	args []string
}

// candidates lists clipboard commands per GOOS in preference order.
var candidates = map[string][][]string{
	"darwin":  {{"pbcopy"}},
	"windows": {{"clip"}},
	"linux":   {{"wl-copy"}, {"xclip", "-selection", "clipboard"}, {"xsel", "--clipboard", "--input"}},
}

// New returns the first clipboard command found on PATH for this platform.
func New() (*Command, error) {
	return lookup(runtime.GOOS, exec.LookPath)
}

func lookup(goos string, lookPath func(string) (string, error)) (*Command, error) {
	for _, argv := range candidates[goos] {
		if _, err := lookPath(argv[0]); err == nil {
			return &Command{name: argv[0], args: argv[1:]}, nil
		}
	}
	return nil, ErrUnavailable
}

// Name returns the command used for copying.
func (c *Command) Name() string {
	return c.name
}

// Copy writes content to the system clipboard.
func (c *Command) Copy(content string) error {
	cmd := exec.Command(c.name, c.args...)
	cmd.Stdin = strings.NewReader(content)
	return cmd.Run()
}
