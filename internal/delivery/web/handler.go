package web

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aliskhannn/etymo-roots/internal/domain/entities"
	"github.com/aliskhannn/etymo-roots/internal/locale"
	"github.com/aliskhannn/etymo-roots/internal/service"
)

const (
	SessionCookie      = "rq_session"
	sessionCookieAge   = 30 * 24 * 60 * 60
	defaultLoadTimeout = 15 * time.Second
)

// Options configures a Handler.
type Options struct {
	DefaultLang   entities.Lang
	LoadTimeout   time.Duration // upper bound for a single dataset load
	SecureCookies bool
}

// Handler serves the quiz and table pages.
type Handler struct {
	datasets DatasetCatalog
	quizzes  QuizStore
	factory  QuizCreator
	tables   TableBuilder
	opts     Options
	logger   *zap.Logger
}

// NewHandler creates a Handler.
func NewHandler(
	datasets DatasetCatalog,
	quizzes QuizStore,
	factory QuizCreator,
	tables TableBuilder,
	opts Options,
	logger *zap.Logger,
) *Handler {
	if opts.DefaultLang == "" {
		opts.DefaultLang = entities.LangJA
	}
	if opts.LoadTimeout <= 0 {
		opts.LoadTimeout = defaultLoadTimeout
	}

	return &Handler{
		datasets: datasets,
		quizzes:  quizzes,
		factory:  factory,
		tables:   tables,
		opts:     opts,
		logger:   logger,
	}
}

type langLink struct {
	Lang   entities.Lang
	URL    string
	Active bool
}

type indexPage struct {
	Lang     entities.Lang
	Text     locale.Messages
	Datasets []string
	Layouts  []string
	Langs    []langLink
}

type quizPage struct {
	service.QuizView
	Action  string
	Refresh int // seconds until the page reloads, 0 disables
	Langs   []langLink
}

type tablePage struct {
	entities.TableView
	Text    locale.Messages
	Layouts []string
	Langs   []langLink
}

type notFoundPage struct {
	Lang    entities.Lang
	Text    locale.Messages
	Dataset string
}

// Index lists datasets with links to their quiz and table pages.
func (h *Handler) Index(c *gin.Context) {
	lang := h.resolveLang(c)

	c.HTML(http.StatusOK, "index.html", indexPage{
		Lang:     lang,
		Text:     locale.For(lang),
		Datasets: h.datasets.Names(),
		Layouts:  h.tables.Layouts(),
		Langs:    langLinks(c.Request.URL, lang),
	})
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "UP"})
}

// Quiz renders the quiz for the session, starting a load on first visit.
func (h *Handler) Quiz(c *gin.Context) {
	dataset, ok := h.dataset(c)
	if !ok {
		return
	}

	lang := h.resolveLang(c)
	quiz, created := h.quizzes.GetOrCreate(h.quizKey(c, dataset), func() *service.Quiz {
		return h.factory.New(dataset, lang)
	})
	if created {
		go h.load(quiz, dataset)
	}
	quiz.SetLang(lang)

	view := quiz.View()
	page := quizPage{
		QuizView: view,
		Action:   "/quiz/" + url.PathEscape(dataset),
		Langs:    langLinks(c.Request.URL, lang),
	}
	switch {
	case view.Status == service.QuizLoading:
		page.Refresh = 1
	case view.AdvancePending:
		page.Refresh = int((view.AdvanceDelay + time.Second - 1) / time.Second)
	}

	c.HTML(http.StatusOK, "quiz.html", page)
}

// Answer checks the submitted answer and redirects back to the quiz page.
func (h *Handler) Answer(c *gin.Context) {
	h.withQuiz(c, func(quiz *service.Quiz) {
		quiz.Submit(c.PostForm("answer"))
	})
}

// Next moves to another question.
func (h *Handler) Next(c *gin.Context) {
	h.withQuiz(c, func(quiz *service.Quiz) {
		quiz.Next()
	})
}

// Retry reloads the dataset of a failed quiz.
func (h *Handler) Retry(c *gin.Context) {
	h.withQuiz(c, func(quiz *service.Quiz) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), h.opts.LoadTimeout)
		defer cancel()

		if err := quiz.Retry(ctx); err != nil {
			_ = c.Error(err)
		}
	})
}

// Table renders the dataset as a table.
func (h *Handler) Table(c *gin.Context) {
	dataset, ok := h.dataset(c)
	if !ok {
		return
	}

	lang := h.resolveLang(c)
	view, err := h.tables.Build(c.Request.Context(), dataset, lang, c.Query("layout"))
	if err != nil {
		if errors.Is(err, service.ErrUnknownLayout) {
			c.String(http.StatusBadRequest, err.Error())
			return
		}
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}

	c.HTML(http.StatusOK, "table.html", tablePage{
		TableView: view,
		Text:      locale.For(lang),
		Layouts:   h.tables.Layouts(),
		Langs:     langLinks(c.Request.URL, lang),
	})
}

// withQuiz runs fn on the session quiz, then redirects to the quiz page.
// A session without a quiz is sent to the page, which creates one.
func (h *Handler) withQuiz(c *gin.Context, fn func(*service.Quiz)) {
	dataset, ok := h.dataset(c)
	if !ok {
		return
	}

	lang := h.resolveLang(c)
	if quiz, ok := h.quizzes.Get(h.quizKey(c, dataset)); ok {
		quiz.SetLang(lang)
		fn(quiz)
	}

	target := url.URL{
		Path:     "/quiz/" + url.PathEscape(dataset),
		RawQuery: url.Values{"lang": {lang.String()}}.Encode(),
	}
	c.Redirect(http.StatusSeeOther, target.String())
}

func (h *Handler) load(quiz *service.Quiz, dataset string) {
	ctx, cancel := context.WithTimeout(context.Background(), h.opts.LoadTimeout)
	defer cancel()

	if err := quiz.Load(ctx); err != nil {
		h.logger.Warn("quiz load failed", zap.String("dataset", dataset), zap.Error(err))
	}
}

func (h *Handler) dataset(c *gin.Context) (string, bool) {
	name := c.Param("dataset")
	if h.datasets.Has(name) {
		return name, true
	}

	lang := h.resolveLang(c)
	c.HTML(http.StatusNotFound, "not_found.html", notFoundPage{
		Lang:    lang,
		Text:    locale.For(lang),
		Dataset: name,
	})
	return "", false
}

// resolveLang picks the lang query or form value, then Accept-Language,
// then the configured default.
func (h *Handler) resolveLang(c *gin.Context) entities.Lang {
	if raw := c.Query("lang"); raw != "" {
		if lang, err := entities.ParseLang(raw); err == nil {
			return lang
		}
	}
	if raw := c.PostForm("lang"); raw != "" {
		if lang, err := entities.ParseLang(raw); err == nil {
			return lang
		}
	}

	return locale.Match(c.GetHeader("Accept-Language"), h.opts.DefaultLang)
}

func (h *Handler) quizKey(c *gin.Context, dataset string) string {
	return h.session(c) + "|" + dataset
}

// session returns the session id from the cookie, issuing a new one if absent.
func (h *Handler) session(c *gin.Context) string {
	if sid, err := c.Cookie(SessionCookie); err == nil && sid != "" {
		return sid
	}

	sid := uuid.New().String()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, sid, sessionCookieAge, "/", "", h.opts.SecureCookies, true)
	return sid
}

func langLinks(u *url.URL, current entities.Lang) []langLink {
	links := make([]langLink, 0, len(entities.Langs))
	for _, lang := range entities.Langs {
		q := u.Query()
		q.Set("lang", lang.String())
		link := url.URL{Path: u.Path, RawQuery: q.Encode()}
		links = append(links, langLink{Lang: lang, URL: link.String(), Active: lang == current})
	}
	return links
}
