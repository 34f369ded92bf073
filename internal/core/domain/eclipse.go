package domain

import (
	"strconv"
	"strings"
)

// Eclipse flag enum representation. The flag is published and written as an
// enumerated value: state 0 is "Non-Eclipse", state 1 is "Eclipse".
const (
	ECLIPSE_STATE_OFF = "Non-Eclipse"
	ECLIPSE_STATE_ON  = "Eclipse"
)

// EclipseInput is the normalized form of an external eclipse write request.
// Requests arrive either as one of the enum state names or as a numeric
// payload; normalization happens once, before any business logic runs.
type EclipseInput struct {
	Known bool
	Value int
}

// NormalizeEclipseInput resolves a raw write payload to {Known(0|1), Unknown}.
// Enum names are matched exactly. Numeric payloads are truncated toward zero
// and accepted when the truncated value is 0 or 1.
func NormalizeEclipseInput(payload string) EclipseInput {
	switch strings.TrimSpace(payload) {
	case ECLIPSE_STATE_OFF:
		return EclipseInput{Known: true, Value: 0}
	case ECLIPSE_STATE_ON:
		return EclipseInput{Known: true, Value: 1}
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(payload), 64)
	if err != nil {
		return EclipseInput{}
	}
	iv := int(v)
	if iv == 0 || iv == 1 {
		return EclipseInput{Known: true, Value: iv}
	}
	return EclipseInput{}
}

// EclipseStateString returns the enum representation of a committed 0/1 value.
func EclipseStateString(value int) string {
	if value == 1 {
		return ECLIPSE_STATE_ON
	}
	return ECLIPSE_STATE_OFF
}
