package merge

import "strings"

// Outcome tells the caller how to proceed after a decision point.
type Outcome int

const (
	Continue Outcome = iota
	Skip
	Abort
)

func (o Outcome) String() string {
	switch o {
	case Continue:
		return "continue"
	case Skip:
		return "skip"
	case Abort:
		return "abort"
	}
	return "unknown"
}

// Answer is the operator's response to a yes/no/abort question.
type Answer int

const (
	AnswerNo Answer = iota
	AnswerYes
	AnswerAbort
)

func (a Answer) String() string {
	switch a {
	case AnswerYes:
		return "yes"
	case AnswerNo:
		return "no"
	case AnswerAbort:
		return "abort"
	}
	return "unknown"
}

// InterpretAnswer maps typed text to an answer. Anything not recognized counts as No.
func InterpretAnswer(text string) Answer {
	switch strings.ToUpper(strings.TrimSpace(text)) {
	case "A", "ABORT":
		return AnswerAbort
	case "Y", "YES":
		return AnswerYes
	}
	return AnswerNo
}

// Prompt is the operator side of every decision. Implementations block until the operator responds.
type Prompt interface {
	AskYesNoAbort(request string) Answer
	// AskText returns the entered line without its line break. An empty line is a meaningful answer,
	// aborted is set if no answer can be obtained at all (e.g. end of input, interrupt).
	AskText(request string) (answer string, aborted bool)
}

func isAbort(text string) bool {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "a", "abort":
		return true
	}
	return false
}

func isSkip(text string) bool {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "s", "skip":
		return true
	}
	return false
}
