package employee

import "errors"

var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrDeleteNotConfirmed = errors.New("employee deletion must be confirmed")
)
