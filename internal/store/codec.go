package store

import (
	"bytes"
	"fmt"

	"github.com/mauv0809/wicketkeeper/internal/scoring"
	"github.com/vmihailenco/msgpack/v5"
)

// EncodeState serialises a match state into the persisted blob format.
func EncodeState(state scoring.MatchState) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(state); err != nil {
		return nil, fmt.Errorf("failed to encode match state: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeState is the inverse of EncodeState.
func DecodeState(blob []byte) (scoring.MatchState, error) {
	var state scoring.MatchState
	dec := msgpack.NewDecoder(bytes.NewReader(blob))
	dec.SetCustomStructTag("json")
	if err := dec.Decode(&state); err != nil {
		return scoring.MatchState{}, fmt.Errorf("failed to decode match state: %w", err)
	}
	return state, nil
}
