package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	// Маршрут Health-check доступен без токена
	api.GET("/system/health", h.healthCheck)

	protected := api.Group("")
	protected.Use(JWTAuthMiddleware(h.jwtSecret, h.logger))

	// Экстренные контакты
	contacts := protected.Group("/contacts")
	{
		contacts.GET("", h.listContacts)
		contacts.POST("", h.addContact)
		contacts.PUT("/:id", h.editContact)
		contacts.DELETE("/:id", h.deleteContact)
	}

	// Сессия безопасности и SOS
	session := protected.Group("/session")
	{
		session.POST("", h.openSession)
		session.GET("", h.getSession)
		session.DELETE("", h.closeSession)
		session.POST("/tracking/start", h.runSessionCommand("startTracking", h.startTracking))
		session.POST("/tracking/stop", h.runSessionCommand("stopTracking", h.stopTracking))
		session.POST("/sos/press", h.runSessionCommand("pressSOS", h.pressSOS))
		session.POST("/sos/release", h.runSessionCommand("releaseSOS", h.releaseSOS))
		session.POST("/sos/resolve", h.runSessionCommand("resolveAlert", h.resolveAlert))
	}

	// Фиксы и ошибки датчика от устройства
	protected.POST("/location/fixes", h.reportFix)
	protected.POST("/location/faults", h.reportFault)

	// Поток событий
	protected.GET("/stream", h.streamEvents)
}
