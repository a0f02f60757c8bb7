package data

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a LoadError
type ErrorKind int

const (
	ErrKindIO ErrorKind = iota
	ErrKindDecode
	ErrKindInvalid
)

var (
	ErrIO      = errors.New("asset io error")
	ErrDecode  = errors.New("asset decode error")
	ErrInvalid = errors.New("invalid asset definition")
)

func (k ErrorKind) String() string {
	switch k {
	case ErrKindIO:
		return "io"
	case ErrKindDecode:
		return "decode"
	case ErrKindInvalid:
		return "invalid"
	}
	return "unknown"
}

func (k ErrorKind) sentinel() error {
	switch k {
	case ErrKindIO:
		return ErrIO
	case ErrKindDecode:
		return ErrDecode
	}
	return ErrInvalid
}

// LoadError is returned for every failure while loading asset definitions
type LoadError struct {
	Path string
	Kind ErrorKind
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s (%s): %v", e.Path, e.Kind, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for the error kind
func (e *LoadError) Is(target error) bool {
	return target == e.Kind.sentinel()
}
