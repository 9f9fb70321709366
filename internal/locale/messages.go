// Package locale holds the user-facing strings of the site in every
// supported language.
package locale

import (
	"fmt"

	"github.com/aliskhannn/etymo-roots/internal/domain/entities"
)

// ExamplesSeparator joins examples inside quiz feedback.
const ExamplesSeparator = ", "

// Messages is the string table of one language.
type Messages struct {
	Title        string // quiz heading
	MeaningLabel string // prefix before the meaning
	NoMeaning    string // shown when the entry has no meaning in this language
	Placeholder  string // answer input placeholder
	Submit       string
	Next         string
	Correct      string // success feedback prefix
	Incorrect    string // failure feedback prefix
	ExampleLabel string
	Loading      string
	LoadFailed   string
	Retry        string
	TableTitle   string
	NotFound     string
	Welcome      string // bot greeting
	Help         string // bot command list
	NoQuiz       string // bot reply to an answer without a running quiz
	LangChanged  string // bot confirmation after /lang
	LangUsage    string
}

var catalog = map[entities.Lang]Messages{
	entities.LangJA: {
		Title:        "📘 日本語語根練習",
		MeaningLabel: "意味：",
		NoMeaning:    "（意味なし）",
		Placeholder:  "語根を入力してください（例：やま）",
		Submit:       "提出",
		Next:         "次の問題",
		Correct:      "正解！語根",
		Incorrect:    "不正解、正しい答えは",
		ExampleLabel: "例：",
		Loading:      "読み込み中…",
		LoadFailed:   "データを読み込めませんでした。",
		Retry:        "再試行",
		TableTitle:   "📚 語根一覧",
		NotFound:     "データセットが見つかりません。",
		Welcome:      "語根クイズへようこそ！",
		Help:         "/quiz — クイズを始める\n/next — 次の問題\n/retry — 再読み込み\n/table — 語根一覧\n/lang ja|en|cn — 言語を変更",
		NoQuiz:       "まず /quiz でクイズを始めてください。",
		LangChanged:  "言語を日本語に変更しました。",
		LangUsage:    "使い方：/lang ja|en|cn",
	},
	entities.LangEN: {
		Title:        "📘 English Root Quiz",
		MeaningLabel: "Meaning: ",
		NoMeaning:    "(no meaning)",
		Placeholder:  "Enter root (e.g. un)",
		Submit:       "Submit",
		Next:         "Next",
		Correct:      "Correct! Root",
		Incorrect:    "Incorrect. The correct root is",
		ExampleLabel: "e.g.",
		Loading:      "Loading...",
		LoadFailed:   "Failed to load the data.",
		Retry:        "Retry",
		TableTitle:   "📚 Root Table",
		NotFound:     "Dataset not found.",
		Welcome:      "Welcome to the root quiz!",
		Help:         "/quiz — start a quiz\n/next — next question\n/retry — reload the data\n/table — list all roots\n/lang ja|en|cn — change language",
		NoQuiz:       "Start a quiz with /quiz first.",
		LangChanged:  "Language switched to English.",
		LangUsage:    "Usage: /lang ja|en|cn",
	},
	entities.LangCN: {
		Title:        "📘 英语词根记忆练习",
		MeaningLabel: "含义：",
		NoMeaning:    "（无含义）",
		Placeholder:  "请输入词根（如 un）",
		Submit:       "提交",
		Next:         "下一题",
		Correct:      "正确！词根",
		Incorrect:    "错误，正确答案是",
		ExampleLabel: "例如：",
		Loading:      "加载中…",
		LoadFailed:   "数据加载失败。",
		Retry:        "重试",
		TableTitle:   "📚 词根表",
		NotFound:     "未找到数据集。",
		Welcome:      "欢迎使用词根练习！",
		Help:         "/quiz — 开始练习\n/next — 下一题\n/retry — 重新加载\n/table — 词根表\n/lang ja|en|cn — 切换语言",
		NoQuiz:       "请先用 /quiz 开始练习。",
		LangChanged:  "已切换为中文。",
		LangUsage:    "用法：/lang ja|en|cn",
	},
}

// For returns the messages of lang. Unknown languages get Japanese,
// the default language of the quiz.
func For(lang entities.Lang) Messages {
	if m, ok := catalog[lang]; ok {
		return m
	}
	return catalog[entities.LangJA]
}

// CorrectFeedback formats the message shown after a correct answer.
func (m Messages) CorrectFeedback(root, examples string) string {
	return fmt.Sprintf("%s %s \"%s\"、%s %s", entities.MarkCorrect, m.Correct, root, m.ExampleLabel, examples)
}

// IncorrectFeedback formats the message revealing the correct root.
func (m Messages) IncorrectFeedback(root, examples string) string {
	return fmt.Sprintf("%s %s \"%s\"、%s %s", entities.MarkIncorrect, m.Incorrect, root, m.ExampleLabel, examples)
}

// MeaningOrPlaceholder returns meaning, or the no-meaning placeholder when empty.
func (m Messages) MeaningOrPlaceholder(meaning string) string {
	if meaning == "" {
		return m.NoMeaning
	}
	return meaning
}
