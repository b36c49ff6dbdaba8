package apitype

import "github.com/pkg/errors"

var (
	ErrNoContent = errors.New("nothing is displayed")
	ErrNotStatic = errors.New("operation is only supported for static images")
)
