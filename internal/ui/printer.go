package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Printer writes UI components to a writer. When the writer is a raw-mode
// terminal, set Raw so lines end with "\r\n".
type Printer struct {
	out   io.Writer
	width int
	Raw   bool
}

// NewPrinter creates a new Printer that writes to the given writer.
// If w is nil, os.Stdout is used.
func NewPrinter(w io.Writer) *Printer {
	if w == nil {
		w = os.Stdout
	}
	return &Printer{
		out:   w,
		width: GetTerminalWidth(),
	}
}

// Width returns the terminal width used by this printer
func (p *Printer) Width() int {
	return p.width
}

// SetWidth overrides the detected terminal width
func (p *Printer) SetWidth(width int) *Printer {
	p.width = width
	return p
}

// Print writes content to the output
func (p *Printer) Print(content string) {
	if p.Raw {
		content = strings.ReplaceAll(content, "\n", "\r\n")
	}
	_, _ = fmt.Fprint(p.out, content)
}

// Println writes content with a newline
func (p *Printer) Println(content string) {
	p.Print(content + "\n")
}

// Newline prints an empty line
func (p *Printer) Newline() {
	p.Print("\n")
}

// PrintHeader prints a banner box
func (p *Printer) PrintHeader(title, subtitle string, params ...Param) {
	p.Println(NewHeader(title, subtitle, params...).SetWidth(p.width).Render())
}

// PrintSuccess prints a success result box
func (p *Printer) PrintSuccess(title string, details ...Param) {
	p.Println(NewSuccessResult(title, details...).SetWidth(p.width).Render())
}

// PrintError prints an error result box with troubleshooting tips
func (p *Printer) PrintError(title string, err error, troubleshooting ...string) {
	p.Println(NewFailureResult(title, err, troubleshooting...).SetWidth(p.width).Render())
}

// PrintWarning prints a warning result box
func (p *Printer) PrintWarning(title string, troubleshooting ...string) {
	p.Println(NewWarningResult(title, troubleshooting...).SetWidth(p.width).Render())
}
