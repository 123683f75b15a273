package shift

import "errors"

var (
	ErrShiftNotFound     = errors.New("shift not found")
	ErrShiftNotFinalized = errors.New("shift is not ready for timesheet finalization")
	ErrShiftCancelled    = errors.New("shift has been cancelled")
)
