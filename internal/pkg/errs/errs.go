package errs

import (
	cr "github.com/cockroachdb/errors"
)

func New(msg string) error {
	return cr.New(msg)
}

func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

func Mark(err error, markErr error) error {
	if err == nil {
		return markErr
	}
	return cr.Mark(err, markErr)
}

// Is reports whether err matches target anywhere in its chain, including
// sentinels attached with Mark. The standard library's errors.Is only walks
// Unwrap chains and never sees markers, so marked errors must be checked
// through this helper.
func Is(err, target error) bool {
	return cr.Is(err, target)
}
