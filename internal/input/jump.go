// Package input holds key handling shared by the demo backends.
package input

import (
	"strconv"
	"strings"
)

// MaxJumpDigits bounds the index typed into a Jump buffer.
const MaxJumpDigits = 9

// Jump collects a typed item index ("scroll to" input).
// The zero value is an inactive, empty buffer.
type Jump struct {
	digits strings.Builder
	active bool
}

// Begin activates the buffer and clears any pending digits.
func (j *Jump) Begin() {
	j.digits.Reset()
	j.active = true
}

// Active reports whether the buffer is collecting digits.
func (j *Jump) Active() bool {
	return j.active
}

// Type appends r if it is a decimal digit. Typing a digit into an inactive
// buffer activates it. It returns false for anything else.
func (j *Jump) Type(r rune) bool {
	if r < '0' || r > '9' {
		return false
	}
	if !j.active {
		j.Begin()
	}
	if j.digits.Len() < MaxJumpDigits {
		j.digits.WriteRune(r)
	}
	return true
}

// Backspace removes the last digit.
func (j *Jump) Backspace() {
	s := j.digits.String()
	if s == "" {
		return
	}
	j.digits.Reset()
	j.digits.WriteString(s[:len(s)-1])
}

// Commit returns the typed index and deactivates the buffer. ok is false
// when nothing was typed.
func (j *Jump) Commit() (index int, ok bool) {
	s := j.digits.String()
	j.Cancel()
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Cancel drops pending digits and deactivates the buffer.
func (j *Jump) Cancel() {
	j.digits.Reset()
	j.active = false
}

// Pending returns the digits typed so far.
func (j *Jump) Pending() string {
	return j.digits.String()
}
