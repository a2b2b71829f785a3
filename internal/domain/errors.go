package domain

import "fmt"

// Kind is the reason a label failed validation. Kinds are returned
// wrapped in a *LabelError, and can be tested for with errors.Is.
type Kind int

const (
	ErrEmptyString Kind = iota + 1
	ErrInvalidNormalization
	ErrFirstScalarIsMark
	ErrInvalidIDNLabel
	ErrInappropriateHyphen
	ErrViolatingBidiRule
	ErrContainingFullStop
	ErrInvalidIDNAStatus
	ErrViolatingContextJRules
	ErrViolatingContextORules
	ErrInvalidLength
)

var kindNames = map[Kind]string{
	ErrEmptyString:            "empty label",
	ErrInvalidNormalization:   "label is not in Normalization Form C",
	ErrFirstScalarIsMark:      "label starts with a combining mark",
	ErrInvalidIDNLabel:        "invalid punycode label",
	ErrInappropriateHyphen:    "inappropriate hyphen",
	ErrViolatingBidiRule:      "label violates the Bidi Rule",
	ErrContainingFullStop:     "label contains a full stop",
	ErrInvalidIDNAStatus:      "label contains a character that is not valid in IDNA",
	ErrViolatingContextJRules: "label violates the ContextJ rules",
	ErrViolatingContextORules: "label violates the ContextO rules",
	ErrInvalidLength:          "invalid length",
}

func (k Kind) Error() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("unknown label error %d", int(k))
}

// LabelError reports a label that failed validation.
type LabelError struct {
	// Label is the input that was being validated.
	Label string
	// Kind is the rule the label violated.
	Kind Kind
}

func (e *LabelError) Error() string {
	return fmt.Sprintf("invalid label %q: %v", e.Label, e.Kind)
}

func (e *LabelError) Unwrap() error { return e.Kind }

func labelErr(label string, k Kind) error {
	return &LabelError{Label: label, Kind: k}
}
