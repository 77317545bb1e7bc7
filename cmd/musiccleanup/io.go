package main

import (
	"bufio"
	"errors"
	"fmt"
	"github.com/musikpolice/musiccleanup/internal/merge"
	"golang.org/x/term"
	"io"
	"os"
	"os/signal"
	"strings"
	"unicode"
)

var yesNoAbort = []string{"Yes", "No", "Abort"}

type lineResult struct {
	text string
	err  error
}

// TerminalPrompt asks the operator on the terminal. Yes/No/Abort questions take a single key press
// when the input is a terminal that can be switched to raw mode, otherwise a line is read.
type TerminalPrompt struct {
	in                   *bufio.Reader
	out                  io.Writer
	fd                   int
	rawCapable           bool
	allowEscapeSequences bool
	pending              chan lineResult //read still in flight after an interrupt
}

func NewTerminalPrompt(allowEscapeSequences bool) *TerminalPrompt {
	fd := int(os.Stdin.Fd())
	return &TerminalPrompt{
		in:                   bufio.NewReader(os.Stdin),
		out:                  os.Stdout,
		fd:                   fd,
		rawCapable:           allowEscapeSequences && term.IsTerminal(fd),
		allowEscapeSequences: allowEscapeSequences,
	}
}

// newLinePrompt reads whole lines from in, e.g. piped answers.
func newLinePrompt(in io.Reader, out io.Writer) *TerminalPrompt {
	return &TerminalPrompt{in: bufio.NewReader(in), out: out, fd: -1}
}

func (p *TerminalPrompt) AskYesNoAbort(request string) merge.Answer {
	letterToChoice := make(map[rune]merge.Answer)
	var displayOptions []string
	for _, option := range yesNoAbort {
		letter := rune(option[0])
		choice := merge.InterpretAnswer(option)
		letterToChoice[unicode.ToUpper(letter)] = choice
		letterToChoice[unicode.ToLower(letter)] = choice
		printLetter := fmt.Sprintf("\x1B[1m\x1B[4m%c\x1B[0m", letter)
		if !p.allowEscapeSequences {
			printLetter = fmt.Sprintf("[%c]", letter)
		}
		displayOptions = append(displayOptions, printLetter+option[1:])
	}
	prompt := fmt.Sprintf("%s (%s): ", request, strings.Join(displayOptions, " / "))
	fmt.Fprint(p.out, prompt)

	if p.rawCapable && p.pending == nil {
		if oldTermState, err := term.MakeRaw(p.fd); err == nil {
			defer term.Restore(p.fd, oldTermState)
			return p.awaitKey(letterToChoice)
		} // else ENTER is required to confirm input -> acceptable fallback
	}

	line, ok := p.readLine()
	if !ok {
		return merge.AnswerAbort
	}
	return merge.InterpretAnswer(line)
}

func (p *TerminalPrompt) awaitKey(letterToChoice map[rune]merge.Answer) merge.Answer {
	for {
		input, err := p.in.ReadByte()
		if err != nil || input == 3 { //EOF or Ctrl+C
			fmt.Fprint(p.out, "<CANCELLED>\r\n")
			return merge.AnswerAbort
		}
		if choice, found := letterToChoice[rune(input)]; found {
			fmt.Fprintf(p.out, "%c\r\n", unicode.ToUpper(rune(input)))
			return choice
		}
		fmt.Fprint(p.out, "\a") //bell
	}
}

func (p *TerminalPrompt) AskText(request string) (answer string, aborted bool) {
	fmt.Fprintf(p.out, "%s: ", request)
	line, ok := p.readLine()
	return line, !ok
}

// readLine waits for one line of input. End of input and interrupts both report !ok.
// A read interrupted by a signal is picked up again by the next call so no input is lost.
func (p *TerminalPrompt) readLine() (line string, ok bool) {
	if p.pending == nil {
		result := make(chan lineResult, 1)
		go func() {
			text, err := p.in.ReadString('\n')
			result <- lineResult{text, err}
		}()
		p.pending = result
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)

	select {
	case read := <-p.pending:
		p.pending = nil
		if read.err != nil && (read.text == "" || !errors.Is(read.err, io.EOF)) {
			fmt.Fprintln(p.out)
			return "", false
		}
		return strings.TrimRight(read.text, "\r\n"), true
	case <-interrupt:
		fmt.Fprintln(p.out, "<CANCELLED>")
		return "", false
	}
}
