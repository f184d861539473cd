package menu

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Console reads answers line by line and writes prompts and reports.
type Console struct {
	in  *bufio.Reader
	out io.Writer
}

// NewConsole wraps in and out.
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewReader(in), out: out}
}

// Ask prints prompt and returns the next input line, trimmed. It returns
// io.EOF once input is exhausted.
func (c *Console) Ask(prompt string) (string, error) {
	fmt.Fprint(c.out, prompt)
	line, err := c.in.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return strings.TrimSpace(line), nil
		}
		if err == io.EOF {
			fmt.Fprintln(c.out)
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (c *Console) Println(a ...interface{}) {
	fmt.Fprintln(c.out, a...)
}

func (c *Console) Printf(format string, a ...interface{}) {
	fmt.Fprintf(c.out, format, a...)
}
