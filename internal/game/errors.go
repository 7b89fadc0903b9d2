package game

import "errors"

var (
	ErrDataUnavailable = errors.New("word data unavailable")
	ErrPoolEmpty       = errors.New("word pool is empty")
	ErrDuplicateWord   = errors.New("duplicate word in pool")
	ErrInvalidGuess    = errors.New("invalid guess")
	ErrWrongPhase      = errors.New("event not allowed in current phase")
)
