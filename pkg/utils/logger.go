package utils

import (
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"
)

var colors = []color.Attribute{color.FgYellow, color.FgGreen, color.FgRed, color.FgWhite, color.FgMagenta}
var index = -1

var l sync.Mutex

const MaxNameLength = 20

// ColorLogger is an io.Writer that prefixes every line with a colored
// name, so command blocks from different jobs stay tellable apart.
type ColorLogger struct {
	name   string
	writer io.Writer
	c      color.Attribute
}

func NewColorLogger(name string, writer io.Writer, newColor bool) io.Writer {
	if newColor {
		l.Lock()
		defer l.Unlock()
		index = (index + 1) % len(colors)
	}

	if len(name) > MaxNameLength {
		name = name[:MaxNameLength-3] + "..."
	}

	return &ColorLogger{
		name:   name,
		writer: writer,
		c:      colors[index],
	}
}

func (c *ColorLogger) Write(p []byte) (int, error) {
	out := color.New(c.c)
	for _, line := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		if _, err := out.Fprintf(c.writer, "%s | %s\n", c.name, line); err != nil {
			return 0, err
		}
	}
	return len(p), nil
}
