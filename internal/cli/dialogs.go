package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/idilsaglam/tada/internal/controller"
	"github.com/idilsaglam/tada/internal/render"
)

// lineDialogs answers confirmations and prompts from a line-oriented
// reader, the way a shell user would.
type lineDialogs struct {
	in  *bufio.Reader
	out io.Writer

	assumeYes bool    // clear -y
	answer    *string // edit <id> <title...>
	alerts    []string
}

func newLineDialogs(in io.Reader, out io.Writer) *lineDialogs {
	return &lineDialogs{in: bufio.NewReader(in), out: out}
}

func (d *lineDialogs) readLine() (string, error) {
	line, err := d.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (d *lineDialogs) Confirm(message string) bool {
	if d.assumeYes {
		return true
	}
	fmt.Fprintf(d.out, "%s [y/N] ", message)
	line, err := d.readLine()
	if err != nil {
		fmt.Fprintln(d.out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

// Prompt keeps the current value on an empty line; EOF cancels.
func (d *lineDialogs) Prompt(message, initial string) (string, bool) {
	if d.answer != nil {
		return *d.answer, true
	}
	fmt.Fprintf(d.out, "%s [%s] ", message, initial)
	line, err := d.readLine()
	if err != nil {
		fmt.Fprintln(d.out)
		return "", false
	}
	if line == "" {
		return initial, true
	}
	return line, true
}

func (d *lineDialogs) Alert(message string) { d.alerts = append(d.alerts, message) }

// capture is the View for one-shot commands: it keeps the last display
// and message for the command to print.
type capture struct {
	display render.Display
	message controller.Message
	draws   int
	reset   bool
}

func (c *capture) Draw(d render.Display) {
	c.display = d
	c.draws++
}

func (c *capture) SetMessage(m controller.Message) { c.message = m }
func (c *capture) ResetForm()                      { c.reset = true }
