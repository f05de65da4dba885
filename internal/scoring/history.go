package scoring

// MaxUndo is how many prior states are kept for undo.
const MaxUndo = 10

// withHistory returns next carrying prev (minus its own stack) at the front of the undo stack.
func withHistory(prev, next MatchState) MatchState {
	snapshot := prev
	snapshot.PastStates = nil

	n := len(prev.PastStates) + 1
	if n > MaxUndo {
		n = MaxUndo
	}
	past := make([]MatchState, 0, n)
	past = append(past, snapshot)
	past = append(past, prev.PastStates[:n-1]...)

	next.PastStates = past
	return next
}

// undo restores the most recent snapshot together with the older part of the stack.
func undo(s MatchState) (MatchState, bool) {
	if len(s.PastStates) == 0 {
		return s, false
	}
	prev := s.PastStates[0]
	prev.PastStates = nil
	if len(s.PastStates) > 1 {
		prev.PastStates = s.PastStates[1:]
	}
	return prev, true
}
