package calculator

// KeysRequest is the JSON body for key presses. Keys lists button labels;
// Sequence is a compact alternative such as "7+3=". Keys take precedence
// when both are set.
type KeysRequest struct {
	Keys     []string `json:"keys,omitempty"`
	Sequence string   `json:"sequence,omitempty"`
}

// SessionResponse is the JSON response for session and evaluate endpoints.
type SessionResponse struct {
	ID         string `json:"id,omitempty"`
	Display    string `json:"display"`    // formatted current input
	Expression string `json:"expression"` // "<left> <op>" while an operator is pending
	State      Record `json:"state"`
}

// ApplyRequest is the JSON body for POST /calculator/apply.
type ApplyRequest struct {
	A  string `json:"a"`
	Op string `json:"op"` // "+", "-", "×" or "*", "÷" or "/", "%"
	B  string `json:"b"`
}

// ApplyResponse is the JSON response for POST /calculator/apply.
type ApplyResponse struct {
	A       string   `json:"a"`
	Op      Operator `json:"op"`
	B       string   `json:"b"`
	Result  string   `json:"result"`
	Display string   `json:"display"`
}

func newSessionResponse(id string, st State) SessionResponse {
	display, expr := st.Display()
	return SessionResponse{
		ID:         id,
		Display:    display,
		Expression: expr,
		State:      st.Record(),
	}
}

func (r KeysRequest) decode() ([]Key, error) {
	if len(r.Keys) > 0 {
		return ParseKeys(r.Keys)
	}
	return ParseSequence(r.Sequence)
}
