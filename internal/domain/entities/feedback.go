package entities

import "strings"

// Markers prefixed to every feedback message.
const (
	MarkCorrect   = "✅"
	MarkIncorrect = "❌"
)

// Feedback is the message shown after an answer is checked.
// The zero value means there is nothing to show.
type Feedback struct {
	Correct bool
	Text    string
}

// IsEmpty reports whether there is no feedback to show.
func (f Feedback) IsEmpty() bool {
	return f.Text == ""
}

// IsSuccess reports whether the text carries the success marker.
// Renderers color the message by this rather than by Correct.
func (f Feedback) IsSuccess() bool {
	return strings.HasPrefix(f.Text, MarkCorrect)
}
