package core

import (
	"errors"
	"fmt"
)

var (
	// ErrFormatMismatch is returned when the leading magic bytes are absent.
	// Callers use it to cheaply reject files that are not replays at all.
	ErrFormatMismatch = errors.New("not a replay file")

	ErrStructurallyInvalid    = errors.New("replay structurally invalid")
	ErrOutdatedVersion        = errors.New("replay recorded by an outdated version")
	ErrTooNewVersion          = errors.New("container version newer than supported")
	ErrUnimplementedCharacter = errors.New("character has no extended action state table")
	ErrUnknownCode            = errors.New("unknown code")
	ErrCompression            = errors.New("container decompression failed")
	ErrNotSpecial             = errors.New("action state is not a special state")
	ErrNotStandard            = errors.New("action state is not a standard state")
)

// Location names the region of a replay in which a structural problem was
// found.
type Location uint8

const (
	LocHeader Location = iota
	LocEventSizes
	LocGameStart
	LocPreUpdate
	LocPostUpdate
	LocFrameBoundary
	LocItemUpdate
	LocStageAux
	LocNotes
	LocMetadata
	LocEventStream
)

var locationNames = [...]string{
	"header", "event-size table", "game start", "pre-update", "post-update",
	"frame boundary", "item update", "stage auxiliary", "notes", "metadata",
	"event stream",
}

func (l Location) String() string {
	if int(l) < len(locationNames) {
		return locationNames[l]
	}
	return fmt.Sprintf("Location(%d)", uint8(l))
}

// InvalidError reports a structural problem at a named location. It matches
// ErrStructurallyInvalid with errors.Is, and additionally any wrapped cause.
type InvalidError struct {
	Location Location
	Offset   int
	Reason   string
	Err      error
}

// Invalid builds an *InvalidError.
func Invalid(loc Location, offset int, format string, args ...any) *InvalidError {
	return &InvalidError{Location: loc, Offset: offset, Reason: fmt.Sprintf(format, args...)}
}

func (e *InvalidError) Error() string {
	msg := fmt.Sprintf("%s at offset %#x: %s", e.Location, e.Offset, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *InvalidError) Is(target error) bool {
	return target == ErrStructurallyInvalid
}

func (e *InvalidError) Unwrap() error {
	return e.Err
}

// Wrap attaches a cause to the error and returns it.
func (e *InvalidError) Wrap(err error) *InvalidError {
	e.Err = err
	return e
}

// LocationOf extracts the failing location from err, if it carries one.
func LocationOf(err error) (Location, bool) {
	var inv *InvalidError
	if errors.As(err, &inv) {
		return inv.Location, true
	}
	return 0, false
}
