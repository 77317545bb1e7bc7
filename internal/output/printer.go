package output

import (
	"fmt"
	"io"
	"os"
)

type Class int

const (
	Required Class = iota
	Error
	Normal
	Verbose
)

type Printer struct {
	classes    map[Class]bool
	terminal   io.Writer
	diagnosis  io.Writer
	useEscapes bool
}

func NewPrinter(include []Class, allowEscapes bool) (p Printer) {
	return NewPrinterTo(include, allowEscapes, os.Stdout, os.Stderr)
}

// NewPrinterTo behaves like NewPrinter but writes to the given destinations instead of stdout/stderr.
func NewPrinterTo(include []Class, allowEscapes bool, terminal io.Writer, diagnosis io.Writer) (p Printer) {
	p = Printer{
		classes:    map[Class]bool{},
		terminal:   terminal,
		diagnosis:  diagnosis,
		useEscapes: allowEscapes,
	}
	for _, class := range include {
		p.classes[class] = true
	}
	return
}

// Discard is a printer that drops everything, handy for headless use.
func Discard() Printer {
	return NewPrinterTo(nil, false, io.Discard, io.Discard)
}

func (p Printer) Out(class Class, format string, values ...interface{}) {
	if !p.classes[class] {
		return
	}
	target := &p.terminal
	if class == Error {
		target = &p.diagnosis
	}
	fmt.Fprintf(*target, format, values...)
}

func (p Printer) Enabled(class Class) bool {
	return p.classes[class]
}

// Warn prints an error-class line highlighted as a warning when escapes are allowed.
func (p Printer) Warn(format string, values ...interface{}) {
	message := fmt.Sprintf(format, values...)
	if p.useEscapes {
		message = TerminalFormatAsWarning(message)
	}
	p.Out(Error, "%s\n", message)
}

// Fail prints an error-class line highlighted as an error when escapes are allowed.
func (p Printer) Fail(format string, values ...interface{}) {
	message := fmt.Sprintf(format, values...)
	if p.useEscapes {
		message = TerminalFormatAsError(message)
	}
	p.Out(Error, "%s\n", message)
}

func (p Printer) Dim(text string) string {
	if p.useEscapes {
		return TerminalFormatAsDim(text)
	}
	return text
}

func (p Printer) Bold(text string) string {
	if p.useEscapes {
		return TerminalFormatAsBold(text)
	}
	return text
}
