package http

import (
	"embed"
	"encoding/json"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/FightogFitness/fightogfitness-display/internal/config"
	"github.com/FightogFitness/fightogfitness-display/internal/core/domain"
	"github.com/FightogFitness/fightogfitness-display/internal/core/ports/in"
	"github.com/FightogFitness/fightogfitness-display/internal/core/ports/out"
)

//go:embed templates/*.html
var templatesFS embed.FS

type BoardController struct {
	useCase in.BoardUseCase
	cfg     *config.Config
	logger  out.LoggerPort
}

func NewBoardController(useCase in.BoardUseCase, cfg *config.Config, logger out.LoggerPort) *BoardController {
	return &BoardController{
		useCase: useCase,
		cfg:     cfg,
		logger:  logger.WithModule("BoardController"),
	}
}

func (c *BoardController) RegisterRoutes(router *gin.Engine) {
	router.SetHTMLTemplate(template.Must(template.ParseFS(templatesFS, "templates/*.html")))

	router.Use(corsMiddleware())

	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Server is running",
		})
	})

	router.POST("/ghl-webhook", c.handleWebhook)

	api := router.Group("/api")
	{
		api.GET("/appointments", c.listUpcoming)
		api.GET("/appointments/all", c.listAll)
		api.GET("/display-mode", c.displayMode)
	}

	router.GET("/display", c.displayPage)
	router.GET("/ads", c.adsPage)
	router.GET("/tv", c.tvPage)
}

func (c *BoardController) handleWebhook(ctx *gin.Context) {
	timing := domain.DebugInfo{Event: "webhook.ingest"}
	timing.Start()

	eventID := uuid.New().String()

	body, err := ctx.GetRawData()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "unable to read body"})
		return
	}

	// Полный payload в лог: форма вебхука у GHL плавает, без этого не отладить
	c.logger.Info("webhook.event.received", out.LogFields{
		"eventId": eventID,
		"payload": string(body),
	})

	var payload domain.WebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		c.logger.Warn("webhook.event.malformed", out.LogFields{
			"eventId": eventID,
			"error":   err.Error(),
		})
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid json body"})
		return
	}

	outcome, err := c.useCase.IngestEvent(ctx.Request.Context(), payload)
	if err != nil {
		c.logger.Error("webhook.event.failed", out.LogFields{
			"eventId": eventID,
			"error":   err.Error(),
			"payload": string(body),
		})
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "internal server error"})
		return
	}

	timing.Elapse()
	c.logger.Debug("webhook.event.processed", out.LogFields{
		"eventId": eventID,
		"outcome": outcome,
		"timing":  timing.Timing,
	})

	switch outcome {
	case domain.IngestOutcomeRejected:
		// Событие понято, но применять нечего - это не ошибка для платформы
		ctx.JSON(http.StatusOK, gin.H{"success": false, "message": "missing appointmentId"})
	case domain.IngestOutcomeCancelled:
		ctx.JSON(http.StatusOK, gin.H{"success": true, "cancelled": true})
	default:
		ctx.JSON(http.StatusOK, gin.H{"success": true})
	}
}

func (c *BoardController) listUpcoming(ctx *gin.Context) {
	upcoming, err := c.useCase.UpcomingAppointments(ctx.Request.Context(), time.Now())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, upcoming)
}

func (c *BoardController) listAll(ctx *gin.Context) {
	appointments, err := c.useCase.AllAppointments(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, appointments)
}

func (c *BoardController) displayMode(ctx *gin.Context) {
	now := time.Now()
	ctx.JSON(http.StatusOK, gin.H{
		"mode": c.useCase.DisplayModeAt(now),
		"at":   now.Format(time.RFC3339),
	})
}

func (c *BoardController) displayPage(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "display.html", nil)
}

func (c *BoardController) adsPage(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "ads.html", gin.H{
		"VideoURL": c.cfg.Board.AdsVideoURL,
	})
}

func (c *BoardController) tvPage(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "tv.html", nil)
}
