// Package language normalizes translation targets given either as BCP 47 tags
// or as plain language names.
package language

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

const Default = "Tamil"

// DisplayName turns "ta" or "pt-BR" into an English language name. Anything
// that is not a known tag is returned trimmed but otherwise unchanged, so
// "Tamil" stays "Tamil". An empty value yields Default.
func DisplayName(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return Default
	}

	tag, err := language.Parse(value)
	if err != nil || tag == language.Und {
		return value
	}

	if name := display.English.Tags().Name(tag); name != "" {
		return name
	}
	return value
}
