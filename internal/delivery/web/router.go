package web

import (
	"embed"
	"html/template"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templatesFS embed.FS

// RouterOptions configures the gin engine.
type RouterOptions struct {
	AllowedOrigins []string
	DataDir        string // served under /data, empty disables
}

// Templates parses the embedded page templates.
func Templates() *template.Template {
	return template.Must(template.New("").ParseFS(templatesFS, "templates/*.html"))
}

// SetupRouter wires middleware and routes onto a new gin engine.
func SetupRouter(h *Handler, opts RouterOptions, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), Logger(logger), gin.Recovery())

	config := cors.DefaultConfig()
	if len(opts.AllowedOrigins) == 0 || (len(opts.AllowedOrigins) == 1 && opts.AllowedOrigins[0] == "*") {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = opts.AllowedOrigins
	}
	config.ExposeHeaders = append(config.ExposeHeaders, RequestIDHeader)
	r.Use(cors.New(config))

	r.SetHTMLTemplate(Templates())

	r.GET("/", h.Index)

	quiz := r.Group("/quiz/:dataset")
	{
		quiz.GET("", h.Quiz)
		quiz.POST("/answer", h.Answer)
		quiz.POST("/next", h.Next)
		quiz.POST("/retry", h.Retry)
	}

	r.GET("/table/:dataset", h.Table)

	if opts.DataDir != "" {
		r.Static("/data", opts.DataDir)
	}

	apiV1 := r.Group("/api/v1")
	{
		apiV1.GET("/health", h.Health)
	}

	return r
}
