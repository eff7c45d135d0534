package calculator

import "strings"

const (
	// ErrorSentinel is displayed in place of a number when a computation
	// yields infinity or NaN.
	ErrorSentinel = "Error"

	// MaxInputLength caps typed input, counting sign and decimal point.
	MaxInputLength = 15

	zero = "0"
)

// Phase is the sealed set of calculator modes. Each variant carries only the
// fields that are meaningful in that mode.
type Phase interface {
	phase()
}

// Entering is the idle mode: no operator pending, digits append.
type Entering struct{}

// Result follows "=": no operator pending and the next digit starts a new
// number.
type Result struct{}

// OperatorPending follows an operator key. Left is the captured operand and
// the next digit starts the right-hand operand.
type OperatorPending struct {
	Op   Operator
	Left string
}

// EnteringRHS is active while the right-hand operand is being typed.
type EnteringRHS struct {
	Op   Operator
	Left string
}

// Failed is entered when a computation produced no representable value.
type Failed struct{}

func (Entering) phase()        {}
func (Result) phase()          {}
func (OperatorPending) phase() {}
func (EnteringRHS) phase()     {}
func (Failed) phase()          {}

// State is one calculator. The zero value is the initial state. Every
// operation returns the next state and leaves the receiver untouched.
type State struct {
	input string
	mode  Phase
}

// Record is the flat view of a State.
type Record struct {
	CurrentInput       string   `json:"current_input"`
	Operator           Operator `json:"operator"`
	PreviousOperand    string   `json:"previous_operand"`
	AwaitingNewOperand bool     `json:"awaiting_new_operand"`
}

// New returns the initial state: input "0", nothing pending.
func New() State {
	return State{}
}

// Input returns the raw current input.
func (s State) Input() string {
	if _, ok := s.mode.(Failed); ok {
		return ErrorSentinel
	}
	if s.input == "" {
		return zero
	}
	return s.input
}

// Phase returns the current mode.
func (s State) Phase() Phase {
	if s.mode == nil {
		return Entering{}
	}
	return s.mode
}

// Failed reports whether the state shows the error sentinel.
func (s State) Failed() bool {
	_, ok := s.mode.(Failed)
	return ok
}

// Pending returns the pending operator and the captured left operand.
func (s State) Pending() (Operator, string, bool) {
	switch p := s.mode.(type) {
	case OperatorPending:
		return p.Op, p.Left, true
	case EnteringRHS:
		return p.Op, p.Left, true
	}
	return "", zero, false
}

func (s State) awaiting() bool {
	switch s.mode.(type) {
	case Result, OperatorPending:
		return true
	}
	return false
}

// Record flattens the state into the four-field form.
func (s State) Record() Record {
	op, left, _ := s.Pending()
	return Record{
		CurrentInput:       s.Input(),
		Operator:           op,
		PreviousOperand:    left,
		AwaitingNewOperand: s.awaiting(),
	}
}

func (s State) with(input string) State {
	s.input = input
	return s
}

func failed() State {
	return State{input: ErrorSentinel, mode: Failed{}}
}

// EnterDigit types one digit. A failed state or an awaiting mode starts a
// fresh number; otherwise the digit is appended up to MaxInputLength.
func (s State) EnterDigit(d byte) State {
	if d < '0' || d > '9' {
		return s
	}
	digit := string(d)

	switch p := s.Phase().(type) {
	case Failed, Result:
		return State{input: digit, mode: Entering{}}
	case OperatorPending:
		return State{input: digit, mode: EnteringRHS(p)}
	}

	in := s.Input()
	switch {
	case in == zero:
		return s.with(digit)
	case len(in) < MaxInputLength:
		return s.with(in + digit)
	default:
		return s
	}
}

// EnterDecimal appends a decimal point unless one is already present. The
// mode is kept, so a pending fresh start still replaces the input on the
// next digit.
func (s State) EnterDecimal() State {
	if s.Failed() {
		return s
	}
	in := s.Input()
	if strings.Contains(in, ".") {
		return s
	}
	return s.with(in + ".")
}

// EnterOperator selects op. With a complete right-hand operand the pending
// operation is committed first and its result becomes the new left operand.
func (s State) EnterOperator(op Operator) State {
	switch p := s.Phase().(type) {
	case Failed:
		return s
	case Entering, Result:
		return State{input: s.Input(), mode: OperatorPending{Op: op, Left: s.Input()}}
	case OperatorPending:
		p.Op = op
		return State{input: s.Input(), mode: p}
	case EnteringRHS:
		result := Apply(p.Left, p.Op, s.Input())
		if result == ErrorSentinel {
			return failed()
		}
		return State{input: result, mode: OperatorPending{Op: op, Left: result}}
	}
	return s
}

// Equals applies the pending operator. Without one it does nothing.
func (s State) Equals() State {
	if s.Failed() {
		return s
	}
	op, left, ok := s.Pending()
	if !ok {
		return s
	}
	result := Apply(left, op, s.Input())
	if result == ErrorSentinel {
		return failed()
	}
	return State{input: result, mode: Result{}}
}

// Clear resets to the initial state.
func (s State) Clear() State {
	return State{}
}

// Delete removes the last typed character; a single character becomes "0".
// The error sentinel is not editable.
func (s State) Delete() State {
	if s.Failed() {
		return s
	}
	in := s.Input()
	if len(in) > 1 {
		return s.with(in[:len(in)-1])
	}
	return s.with(zero)
}

// Negate toggles a leading minus sign on any non-zero number.
func (s State) Negate() State {
	in := s.Input()
	if in == zero || s.Failed() {
		return s
	}
	if strings.HasPrefix(in, "-") {
		return s.with(in[1:])
	}
	return s.with("-" + in)
}

// Display returns the formatted current input and the secondary line showing
// the pending operation, if any.
func (s State) Display() (current, expression string) {
	current = FormatNumber(s.Input())
	if op, left, ok := s.Pending(); ok {
		expression = FormatNumber(left) + " " + string(op)
	}
	return current, expression
}
