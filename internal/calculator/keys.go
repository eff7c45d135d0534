package calculator

import (
	"errors"
	"fmt"
	"strings"
)

// Key is one keypad button.
type Key string

const (
	KeyDecimal Key = "."
	KeyEquals  Key = "="
	KeyClear   Key = "AC"
	KeyDelete  Key = "⌫"
	KeyNegate  Key = "±"
)

// ErrUnknownKey is returned when input does not name a keypad button.
var ErrUnknownKey = errors.New("unknown key")

var keyAliases = map[string]Key{
	".":   KeyDecimal,
	",":   KeyDecimal,
	"=":   KeyEquals,
	"AC":  KeyClear,
	"C":   KeyClear,
	"⌫":   KeyDelete,
	"DEL": KeyDelete,
	"<":   KeyDelete,
	"±":   KeyNegate,
	"NEG": KeyNegate,
	"~":   KeyNegate,
}

// ParseKey maps a button label or alias to its Key. Operators accept their
// ASCII aliases (* x / for × and ÷); word labels are case-insensitive.
func ParseKey(s string) (Key, error) {
	s = strings.TrimSpace(s)
	if len(s) == 1 && s[0] >= '0' && s[0] <= '9' {
		return Key(s), nil
	}
	if op, err := ParseOperator(s); err == nil {
		return Key(op), nil
	}
	if k, ok := keyAliases[strings.ToUpper(s)]; ok {
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKey, s)
}

// ParseKeys decodes a list of button labels. It fails on the first unknown
// label and returns no keys in that case.
func ParseKeys(labels []string) ([]Key, error) {
	keys := make([]Key, 0, len(labels))
	for i, l := range labels {
		k, err := ParseKey(l)
		if err != nil {
			return nil, fmt.Errorf("key %d: %w", i, err)
		}
		keys = append(keys, k)
	}
	return keys, nil
}

// ParseSequence splits a compact key string such as "12.5×3=" into keys, one
// per character. Whitespace is ignored.
func ParseSequence(seq string) ([]Key, error) {
	keys := make([]Key, 0, len(seq))
	for i, r := range seq {
		if r == ' ' || r == '\t' || r == '\n' {
			continue
		}
		k, err := ParseKey(string(r))
		if err != nil {
			return nil, fmt.Errorf("position %d: %w", i, err)
		}
		keys = append(keys, k)
	}
	return keys, nil
}

// Operator returns the operator a key stands for, if any.
func (k Key) Operator() (Operator, bool) {
	op, ok := operatorAliases[string(k)]
	return op, ok
}

// Digit reports whether the key is 0-9.
func (k Key) Digit() bool {
	return len(k) == 1 && k[0] >= '0' && k[0] <= '9'
}

// Kind groups keys for metrics and tracing.
func (k Key) Kind() string {
	if k.Digit() {
		return "digit"
	}
	if _, ok := k.Operator(); ok {
		return "operator"
	}
	switch k {
	case KeyDecimal:
		return "decimal"
	case KeyEquals:
		return "equals"
	case KeyClear:
		return "clear"
	case KeyDelete:
		return "delete"
	case KeyNegate:
		return "negate"
	}
	return "unknown"
}

// Press applies one key. Keys that did not come from ParseKey and name no
// button leave the state unchanged.
func (s State) Press(k Key) State {
	if k.Digit() {
		return s.EnterDigit(k[0])
	}
	if op, ok := k.Operator(); ok {
		return s.EnterOperator(op)
	}
	switch k {
	case KeyDecimal:
		return s.EnterDecimal()
	case KeyEquals:
		return s.Equals()
	case KeyClear:
		return s.Clear()
	case KeyDelete:
		return s.Delete()
	case KeyNegate:
		return s.Negate()
	}
	return s
}

// PressAll applies keys in order.
func (s State) PressAll(keys ...Key) State {
	for _, k := range keys {
		s = s.Press(k)
	}
	return s
}

// Commits reports whether pressing k applies the pending operator. Equals
// commits whenever an operator is pending; another operator only once the
// right-hand operand has been typed.
func (s State) Commits(k Key) bool {
	switch s.Phase().(type) {
	case OperatorPending:
		return k == KeyEquals
	case EnteringRHS:
		if k == KeyEquals {
			return true
		}
		_, ok := k.Operator()
		return ok
	}
	return false
}
