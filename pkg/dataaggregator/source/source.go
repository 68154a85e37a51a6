package source

import "errors"

var (
	UnsupportedSourceError = errors.New("unsupported source")
	ErrNotFound            = errors.New("could not find a matching record")
)
