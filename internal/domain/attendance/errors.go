package attendance

import "errors"

var (
	ErrInvalidDate   = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidStatus = errors.New("status must be Present or Absent")
)
