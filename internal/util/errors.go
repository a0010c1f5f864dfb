package util

import "errors"

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrLastSession     = errors.New("cannot delete the last session")
	ErrJobNotFound     = errors.New("job not found")
	ErrJobNotApplied   = errors.New("job not found or not applied")
	ErrTestNotFound    = errors.New("test not found")
	ErrProfileNotFound = errors.New("profile not found")
	ErrEmptyResume     = errors.New("could not extract text from file")
)
