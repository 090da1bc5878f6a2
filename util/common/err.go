// Package common provides shared error helpers.
package common

import (
	"errors"
	"fmt"
	"strings"
)

func NewErrorf(format string, a ...any) error {
	msg := fmt.Sprintf(format, a...)
	return errors.New(msg)
}

func NewError(a ...any) error {
	msg := fmt.Sprintln(a...)
	return errors.New(strings.TrimSuffix(msg, "\n"))
}

// Combine merges multiple errors into one, skipping nils. Returns nil when
// every argument is nil.
func Combine(errs ...error) error {
	var msgs []string
	for _, err := range errs {
		if err != nil {
			msgs = append(msgs, err.Error())
		}
	}
	if len(msgs) == 0 {
		return nil
	}
	return errors.New(strings.Join(msgs, "; "))
}
