package telegram

import (
	"strconv"

	"github.com/aliskhannn/etymo-roots/internal/domain/entities"
	"github.com/aliskhannn/etymo-roots/internal/locale"
	"github.com/aliskhannn/etymo-roots/internal/service"
)

// chatState is the per-chat selection of language and dataset.
type chatState struct {
	lang    entities.Lang
	dataset string
}

// chat returns the state of chatID, creating it from the user's
// Telegram language on first contact.
func (h *Handler) chat(chatID int64, languageCode string) chatState {
	h.mu.Lock()
	defer h.mu.Unlock()

	if st, ok := h.chats[chatID]; ok {
		return st
	}

	st := chatState{
		lang:    locale.Match(languageCode, h.opts.DefaultLang),
		dataset: h.opts.DefaultDataset,
	}
	h.chats[chatID] = st
	return st
}

func (h *Handler) state(chatID int64) chatState {
	return h.chat(chatID, "")
}

func (h *Handler) setLang(chatID int64, lang entities.Lang) {
	h.mu.Lock()
	st := h.chats[chatID]
	st.lang = lang
	if st.dataset == "" {
		st.dataset = h.opts.DefaultDataset
	}
	h.chats[chatID] = st
	h.mu.Unlock()

	if quiz, ok := h.quizzes.Get(quizKey(chatID, st.dataset)); ok {
		quiz.SetLang(lang)
	}
}

func (h *Handler) setDataset(chatID int64, dataset string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	st := h.chats[chatID]
	st.dataset = dataset
	h.chats[chatID] = st
}

// currentQuiz returns the running quiz of the chat's dataset.
func (h *Handler) currentQuiz(chatID int64) (*service.Quiz, bool) {
	st := h.state(chatID)
	return h.quizzes.Get(quizKey(chatID, st.dataset))
}

func quizKey(chatID int64, dataset string) string {
	return "tg:" + strconv.FormatInt(chatID, 10) + "|" + dataset
}
