package dto

import (
	"errors"
)

var (
	ErrNotFound      = errors.New("errRecordNotFound")
	ErrAlreadyExists = errors.New("errAlreadyExists")
	ErrHasReferences = errors.New("errRowIsReferenced")
	ErrSelfManager   = errors.New("errManagerIsSelf")
)
