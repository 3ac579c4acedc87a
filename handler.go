package lawk

import "github.com/kolkov/lawk/internal/record"

// Signal is returned by Begin and Action to steer the run.
type Signal int

const (
	// Continue proceeds with the next line.
	Continue Signal = iota
	// Stop ends the read loop; End still runs.
	Stop
)

func (s Signal) String() string {
	if s == Stop {
		return "stop"
	}
	return "continue"
}

// Fields is the split view of the current line. Slots past Len read as
// empty strings. The view borrows the run's buffers and is only valid during
// the callback it was passed to; copy what must be kept.
type Fields = record.Fields

// Handler receives the callbacks of a run.
//
// Begin is called once before the first line is read. Action is called for
// every accepted line with the zero-based row index. End is called once
// after the last line, after a Stop from Begin or Action, with the number of
// dispatched lines and the fields of the last one. End is not called when
// the run fails.
type Handler interface {
	Begin() Signal
	Action(row int, f Fields) Signal
	End(row int, f Fields)
}

// Funcs adapts optional callbacks to a Handler. Context is handed unchanged
// to every callback; nil callbacks are skipped as if they returned Continue.
type Funcs[C any] struct {
	Context  C
	OnBegin  func(ctx C) Signal
	OnAction func(row int, f Fields, ctx C) Signal
	OnEnd    func(row int, f Fields, ctx C)
}

// Begin calls OnBegin.
func (h Funcs[C]) Begin() Signal {
	if h.OnBegin == nil {
		return Continue
	}
	return h.OnBegin(h.Context)
}

// Action calls OnAction.
func (h Funcs[C]) Action(row int, f Fields) Signal {
	if h.OnAction == nil {
		return Continue
	}
	return h.OnAction(row, f, h.Context)
}

// End calls OnEnd.
func (h Funcs[C]) End(row int, f Fields) {
	if h.OnEnd != nil {
		h.OnEnd(row, f, h.Context)
	}
}
