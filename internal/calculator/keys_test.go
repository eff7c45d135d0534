package calculator

import (
	"errors"
	"testing"
)

func TestParseKey(t *testing.T) {
	tests := []struct {
		in   string
		want Key
	}{
		{in: "0", want: "0"},
		{in: "9", want: "9"},
		{in: ".", want: KeyDecimal},
		{in: "=", want: KeyEquals},
		{in: "AC", want: KeyClear},
		{in: "c", want: KeyClear},
		{in: "⌫", want: KeyDelete},
		{in: "del", want: KeyDelete},
		{in: "±", want: KeyNegate},
		{in: "neg", want: KeyNegate},
		{in: "*", want: Key(OpMultiply)},
		{in: "/", want: Key(OpDivide)},
		{in: " + ", want: Key(OpAdd)},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseKey(tc.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestParseKeyRejectsUnknown(t *testing.T) {
	for _, in := range []string{"", "12", "MR", "sqrt", "^"} {
		if _, err := ParseKey(in); !errors.Is(err, ErrUnknownKey) {
			t.Fatalf("%q: expected ErrUnknownKey, got %v", in, err)
		}
	}
}

func TestParseKeysStopsAtFirstUnknown(t *testing.T) {
	keys, err := ParseKeys([]string{"1", "+", "MR"})
	if !errors.Is(err, ErrUnknownKey) {
		t.Fatalf("expected ErrUnknownKey, got %v", err)
	}
	if keys != nil {
		t.Fatalf("expected no keys, got %v", keys)
	}
}

func TestParseSequence(t *testing.T) {
	keys, err := ParseSequence("12.5 × 3 =")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []Key{"1", "2", KeyDecimal, "5", Key(OpMultiply), "3", KeyEquals}
	if len(keys) != len(want) {
		t.Fatalf("expected %d keys, got %d (%v)", len(want), len(keys), keys)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("key %d: expected %q, got %q", i, want[i], keys[i])
		}
	}

	if _, err := ParseSequence("1?2"); !errors.Is(err, ErrUnknownKey) {
		t.Fatalf("expected ErrUnknownKey, got %v", err)
	}
}

func TestKeyKind(t *testing.T) {
	tests := []struct {
		key  Key
		want string
	}{
		{key: "7", want: "digit"},
		{key: Key(OpPercent), want: "operator"},
		{key: KeyDecimal, want: "decimal"},
		{key: KeyEquals, want: "equals"},
		{key: KeyClear, want: "clear"},
		{key: KeyDelete, want: "delete"},
		{key: KeyNegate, want: "negate"},
		{key: "MR", want: "unknown"},
	}

	for _, tc := range tests {
		if got := tc.key.Kind(); got != tc.want {
			t.Fatalf("%q: expected %q, got %q", tc.key, tc.want, got)
		}
	}
}

func TestPressUnknownKeyIsNoop(t *testing.T) {
	st := press(t, "12")
	if got := st.Press("MR"); got.Record() != st.Record() {
		t.Fatalf("expected %+v, got %+v", st.Record(), got.Record())
	}
}

func TestCommits(t *testing.T) {
	tests := []struct {
		seq  string
		key  Key
		want bool
	}{
		{seq: "1+2", key: KeyEquals, want: true},
		{seq: "1+2", key: Key(OpSubtract), want: true},
		{seq: "1+2", key: "3", want: false},
		{seq: "1+", key: KeyEquals, want: true},
		{seq: "1", key: KeyEquals, want: false},
		{seq: "1+2=", key: KeyEquals, want: false},
	}

	for _, tc := range tests {
		if got := press(t, tc.seq).Commits(tc.key); got != tc.want {
			t.Fatalf("%q then %q: expected %t, got %t", tc.seq, tc.key, tc.want, got)
		}
	}
}
