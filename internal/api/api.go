package api

import (
	"net/http"

	"medicare-call-server/internal/voicecall/handler"

	"github.com/gin-gonic/gin"
)

type API struct {
	router           *gin.RouterGroup
	voiceCallHandler handler.Handler
	twilioWebhooks   gin.HandlerFunc
}

func New(router *gin.RouterGroup, voiceCallHandler handler.Handler, twilioWebhooks gin.HandlerFunc) API {
	return API{
		router:           router,
		voiceCallHandler: voiceCallHandler,
		twilioWebhooks:   twilioWebhooks,
	}
}

func (a *API) RegisterRoutes() {
	a.Health()
	a.router.GET("/", a.voiceCallHandler.HandleIndex)
	a.router.GET("/status", a.voiceCallHandler.HandleStatus)

	apiGroup := a.router.Group("/api")
	apiGroup.POST("/call", a.voiceCallHandler.HandleInitiateCall)
	apiGroup.GET("/calls/live", a.voiceCallHandler.HandleLiveCalls)

	// Twilio posts call progress to these; signatures are checked before
	// any of them run.
	webhookGroup := apiGroup.Group("", a.twilioWebhooks)
	{
		webhookGroup.POST("/welcome", a.voiceCallHandler.HandleWelcome)
		webhookGroup.POST("/conversation", a.voiceCallHandler.HandleConversation)
		webhookGroup.POST("/confirm_appointment", a.voiceCallHandler.HandleConfirm)
		webhookGroup.POST("/call_status", a.voiceCallHandler.HandleCallStatus)
	}
}

func (a *API) Health() {
	a.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
}
