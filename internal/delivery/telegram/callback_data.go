package telegram

import (
	"strings"
)

// Callback action constants.
const (
	actionQuiz = "quiz"
	actionLang = "lang"
)

// Quiz sub-actions.
const (
	quizNext  = "next"
	quizRetry = "retry"
)

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// param returns the i-th parameter or "".
func (cd callbackData) param(i int) string {
	if i < len(cd.Params) {
		return cd.Params[i]
	}
	return ""
}

func buildQuizNextCallback() string {
	return callbackData{Action: actionQuiz, Params: []string{quizNext}}.encode()
}

func buildQuizRetryCallback() string {
	return callbackData{Action: actionQuiz, Params: []string{quizRetry}}.encode()
}

func buildLangCallback(lang string) string {
	return callbackData{Action: actionLang, Params: []string{lang}}.encode()
}
