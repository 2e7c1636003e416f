package entity

import (
	"errors"
	"strings"
)

var (
	ErrMissingCredential = errors.New("api credential not configured")
	ErrTransport         = errors.New("completion request failed")
	ErrMalformedResponse = errors.New("unexpected completion response")

	ErrUnknownAgent    = errors.New("unknown agent")
	ErrUnknownWorkflow = errors.New("unknown workflow")
	ErrUnknownStage    = errors.New("unknown stage")
	ErrEmptyTopic      = errors.New("topic is empty")
)

// ErrorMarker prefixes stage outputs that carry a failure instead of content.
const ErrorMarker = "[Error]"

const SkippedMarker = "[Skipped]"

func MarkError(err error) string {
	if err == nil {
		return ""
	}
	return ErrorMarker + " " + err.Error()
}

func IsErrorMarked(s string) bool {
	return strings.HasPrefix(s, ErrorMarker)
}
