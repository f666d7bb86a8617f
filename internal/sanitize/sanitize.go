// Package sanitize screens arguments before they are forwarded into a sandbox.
//
// Each argument is checked on its own and the first rule that matches rejects
// the whole list:
//
//  1. it contains a shell metacharacter: ; & | ` $ ( ) { } [ ] < >
//  2. after leading whitespace it starts with '-'
//  3. it is longer than MaxArgLength characters
package sanitize

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxArgLength is the longest argument, in characters, that is forwarded.
const MaxArgLength = 1000

// Metachars are the characters refused anywhere in an argument.
const Metachars = ";&|`$(){}[]<>"

// Reason identifies which rule rejected an argument.
type Reason string

const (
	ReasonMetachar    Reason = "contains shell metacharacter"
	ReasonLeadingDash Reason = "starts with '-'"
	ReasonTooLong     Reason = "exceeds maximum length"
)

// RejectionError reports the first argument that failed screening.
type RejectionError struct {
	Arg    string
	Index  int
	Reason Reason
}

func (e *RejectionError) Error() string {
	arg := e.Arg
	if r := []rune(arg); len(r) > 40 {
		arg = string(r[:40]) + "..."
	}
	switch e.Reason {
	case ReasonTooLong:
		return fmt.Sprintf("argument %d %s (%d > %d characters)", e.Index+1, e.Reason, utf8.RuneCountInString(e.Arg), MaxArgLength)
	default:
		return fmt.Sprintf("argument %d %q %s", e.Index+1, arg, e.Reason)
	}
}

// Check returns the rule arg violates, or "" when it is acceptable.
func Check(arg string) Reason {
	if strings.ContainsAny(arg, Metachars) {
		return ReasonMetachar
	}
	if strings.HasPrefix(strings.TrimLeftFunc(arg, unicode.IsSpace), "-") {
		return ReasonLeadingDash
	}
	if utf8.RuneCountInString(arg) > MaxArgLength {
		return ReasonTooLong
	}
	return ""
}

// Args returns a copy of args when every argument passes, preserving order.
// Otherwise it returns a *RejectionError for the first offending argument.
func Args(args []string) ([]string, error) {
	out := make([]string, 0, len(args))
	for i, arg := range args {
		if reason := Check(arg); reason != "" {
			return nil, &RejectionError{Arg: arg, Index: i, Reason: reason}
		}
		out = append(out, arg)
	}
	return out, nil
}
