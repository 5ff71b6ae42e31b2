package game

import (
	"errors"
	"fmt"
)

// ErrorCode identifies the kind of failure so callers can translate errors
// into protocol responses without string matching.
type ErrorCode string

const (
	// Validation errors: recoverable, the game state is unchanged
	CodeIllegalAction       ErrorCode = "illegal_action"
	CodeNotYourTurn         ErrorCode = "not_your_turn"
	CodeWrongPhase          ErrorCode = "wrong_phase"
	CodeInsufficientPlayers ErrorCode = "insufficient_players"
	CodeNoBettingRound      ErrorCode = "no_betting_round"

	// Resource contention errors: retryable with different parameters
	CodeSeatOccupied      ErrorCode = "seat_occupied"
	CodeSeatReserved      ErrorCode = "seat_reserved"
	CodeTableFull         ErrorCode = "table_full"
	CodeInvalidSeat       ErrorCode = "invalid_seat"
	CodeInsufficientBuyIn ErrorCode = "insufficient_buy_in"

	// Structural errors: a caller-protocol violation, fatal to the request
	CodePlayerNotFound ErrorCode = "player_not_found"
	CodeAlreadySeated  ErrorCode = "already_seated"
	CodeInternal       ErrorCode = "internal"
)

// Error is the failure type returned across the engine boundary. The engine
// and its collaborators never panic across a room boundary; every fallible
// operation returns one of these.
type Error struct {
	Code ErrorCode
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

// Is matches two game errors by code, making errors.Is work with
// sentinel-style comparisons.
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return e.Code == other.Code
}

func newError(code ErrorCode, format string, args ...interface{}) *Error {
	return &Error{Code: code, Msg: fmt.Sprintf(format, args...)}
}

// CodeOf extracts the error code from an error, or CodeInternal if the
// error did not originate in the game layer.
func CodeOf(err error) ErrorCode {
	var gameErr *Error
	if errors.As(err, &gameErr) {
		return gameErr.Code
	}
	return CodeInternal
}
