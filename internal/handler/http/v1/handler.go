package v1

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/websocket"
	"github.com/shenikar/guardian/internal/models"
	"github.com/shenikar/guardian/internal/service"
	"github.com/shenikar/guardian/internal/stream"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	contactService service.ContactService
	safetyService  service.SafetyService
	hub            *stream.Hub
	logger         *logrus.Logger
	validate       *validator.Validate
	jwtSecret      string
	upgrader       websocket.Upgrader
	now            func() time.Time
}

func NewHandler(contactService service.ContactService, safetyService service.SafetyService, hub *stream.Hub, logger *logrus.Logger, jwtSecret string, allowedOrigins []string) *Handler {
	return &Handler{
		contactService: contactService,
		safetyService:  safetyService,
		hub:            hub,
		logger:         logger,
		validate:       validator.New(),
		jwtSecret:      jwtSecret,
		upgrader:       newUpgrader(allowedOrigins),
		now:            time.Now,
	}
}

// respondError переводит доменные ошибки в HTTP-статусы
func (h *Handler) respondError(c *gin.Context, log *logrus.Entry, err error) {
	switch {
	case errors.Is(err, models.ErrUnauthenticated):
		log.WithError(err).Warn("Unauthenticated request")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
	case errors.Is(err, models.ErrNotFound):
		log.WithError(err).Warn("Resource not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "contact not found"})
	case errors.Is(err, models.ErrNoActiveSession):
		log.WithError(err).Warn("No active safety session")
		c.JSON(http.StatusConflict, gin.H{"error": "no active safety session"})
	case errors.Is(err, models.ErrSensorFault):
		log.WithError(err).Warn("Location sensor fault")
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "kind": models.KindSensorFault})
	case errors.Is(err, models.ErrStorageFailure):
		log.WithError(err).Error("Storage failure")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage unavailable", "kind": models.KindStorageFailure})
	default:
		log.WithError(err).Error("Unexpected service error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// bindContact разбирает и проверяет тело запроса контакта
func (h *Handler) bindContact(c *gin.Context, log *logrus.Entry) (ContactRequest, bool) {
	var input ContactRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return input, false
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return input, false
	}
	return input, true
}

// @Summary List emergency contacts
// @Description Get the confirmed emergency contact list of the current user, in insertion order.
// @Tags Contacts
// @Produce json
// @Security BearerAuth
// @Success 200 {array} ContactResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 503 {object} map[string]string "Storage unavailable"
// @Router /contacts [get]
func (h *Handler) listContacts(c *gin.Context) {
	id := identityFrom(c)
	log := h.logger.WithField("method", "listContacts").WithField("user_id", id.UserID)

	list, err := h.contactService.ListContacts(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelsToContactResponses(list))
}

// @Summary Add an emergency contact
// @Description Append a contact. A primary contact demotes every other entry. Returns the whole list.
// @Tags Contacts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param contact body ContactRequest true "Contact"
// @Success 201 {array} ContactResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 503 {object} map[string]string "Storage unavailable"
// @Router /contacts [post]
func (h *Handler) addContact(c *gin.Context) {
	id := identityFrom(c)
	log := h.logger.WithField("method", "addContact").WithField("user_id", id.UserID)

	input, ok := h.bindContact(c, log)
	if !ok {
		return
	}

	list, err := h.contactService.AddContact(c.Request.Context(), id, DTOToContactFields(input))
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, ModelsToContactResponses(list))
}

// @Summary Edit an emergency contact
// @Description Replace the fields of a contact. Setting isPrimary demotes every other entry. Returns the whole list.
// @Tags Contacts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Contact ID"
// @Param contact body ContactRequest true "Contact"
// @Success 200 {array} ContactResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Contact not found"
// @Failure 503 {object} map[string]string "Storage unavailable"
// @Router /contacts/{id} [put]
func (h *Handler) editContact(c *gin.Context) {
	id := identityFrom(c)
	contactID := c.Param("id")
	log := h.logger.WithField("method", "editContact").WithField("user_id", id.UserID).WithField("contact_id", contactID)

	input, ok := h.bindContact(c, log)
	if !ok {
		return
	}

	list, err := h.contactService.EditContact(c.Request.Context(), id, contactID, DTOToContactFields(input))
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelsToContactResponses(list))
}

// @Summary Delete an emergency contact
// @Description Remove a contact. Removing the primary contact leaves the list without one. Returns the whole list.
// @Tags Contacts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Contact ID"
// @Success 200 {array} ContactResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Contact not found"
// @Failure 503 {object} map[string]string "Storage unavailable"
// @Router /contacts/{id} [delete]
func (h *Handler) deleteContact(c *gin.Context) {
	id := identityFrom(c)
	contactID := c.Param("id")
	log := h.logger.WithField("method", "deleteContact").WithField("user_id", id.UserID).WithField("contact_id", contactID)

	list, err := h.contactService.DeleteContact(c.Request.Context(), id, contactID)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelsToContactResponses(list))
}

// @Summary Open the safety session
// @Description Open the dashboard session of the current user. Idempotent.
// @Tags Session
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SessionResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /session [post]
func (h *Handler) openSession(c *gin.Context) {
	id := identityFrom(c)
	log := h.logger.WithField("method", "openSession").WithField("user_id", id.UserID)

	view, err := h.safetyService.OpenSession(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToSessionResponse(view))
}

// @Summary Get the safety session
// @Description Get status, tracking flag, SOS press state, location history and primary contact.
// @Tags Session
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SessionResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "No active safety session"
// @Router /session [get]
func (h *Handler) getSession(c *gin.Context) {
	id := identityFrom(c)
	log := h.logger.WithField("method", "getSession").WithField("user_id", id.UserID)

	view, err := h.safetyService.GetSession(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToSessionResponse(view))
}

// @Summary Close the safety session
// @Description Leave the dashboard: tracking stops and the session is destroyed.
// @Tags Session
// @Security BearerAuth
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /session [delete]
func (h *Handler) closeSession(c *gin.Context) {
	id := identityFrom(c)
	log := h.logger.WithField("method", "closeSession").WithField("user_id", id.UserID)

	if err := h.safetyService.CloseSession(c.Request.Context(), id); err != nil {
		h.respondError(c, log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type sessionCommand func(c *gin.Context, id models.Identity) (*models.SessionView, error)

// runSessionCommand выполняет команду сессии и отвечает снимком
func (h *Handler) runSessionCommand(method string, cmd sessionCommand) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := identityFrom(c)
		log := h.logger.WithField("method", method).WithField("user_id", id.UserID)

		view, err := cmd(c, id)
		if err != nil {
			h.respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, ModelToSessionResponse(view))
	}
}

// @Summary Start location tracking
// @Description Safe -> Monitoring. History is cleared. A second call is a no-op.
// @Tags Session
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SessionResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "No active safety session"
// @Failure 422 {object} map[string]string "Location sensor fault"
// @Router /session/tracking/start [post]
func (h *Handler) startTracking(c *gin.Context, id models.Identity) (*models.SessionView, error) {
	return h.safetyService.StartTracking(c.Request.Context(), id)
}

// @Summary Stop location tracking
// @Description Monitoring -> Safe. History stays readable.
// @Tags Session
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SessionResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "No active safety session"
// @Router /session/tracking/stop [post]
func (h *Handler) stopTracking(c *gin.Context, id models.Identity) (*models.SessionView, error) {
	return h.safetyService.StopTracking(c.Request.Context(), id)
}

// @Summary Press the SOS button
// @Description Begin a hold. Holding for the threshold (2s by default) raises the alert.
// @Tags SOS
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SessionResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "No active safety session"
// @Router /session/sos/press [post]
func (h *Handler) pressSOS(c *gin.Context, id models.Identity) (*models.SessionView, error) {
	return h.safetyService.PressBegin(c.Request.Context(), id)
}

// @Summary Release the SOS button
// @Description End a hold. A release before the threshold cancels the activation.
// @Tags SOS
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SessionResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "No active safety session"
// @Router /session/sos/release [post]
func (h *Handler) releaseSOS(c *gin.Context, id models.Identity) (*models.SessionView, error) {
	return h.safetyService.PressEnd(c.Request.Context(), id)
}

// @Summary Resolve the alert
// @Description Clear the alert. Status falls back to Monitoring or Safe.
// @Tags SOS
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SessionResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "No active safety session"
// @Router /session/sos/resolve [post]
func (h *Handler) resolveAlert(c *gin.Context, id models.Identity) (*models.SessionView, error) {
	return h.safetyService.ResolveAlert(c.Request.Context(), id)
}

// @Summary Report a location fix
// @Description Device pushes a position fix into the location stream of the current user.
// @Tags Location
// @Accept json
// @Security BearerAuth
// @Param fix body CoordinateDTO true "Location fix"
// @Success 202 "Accepted"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /location/fixes [post]
func (h *Handler) reportFix(c *gin.Context) {
	id := identityFrom(c)
	log := h.logger.WithField("method", "reportFix").WithField("user_id", id.UserID)

	var input CoordinateDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.safetyService.ReportFix(c.Request.Context(), id, DTOToCoordinate(input, h.now())); err != nil {
		h.respondError(c, log, err)
		return
	}
	c.Status(http.StatusAccepted)
}

// @Summary Report a sensor fault
// @Description Device reports that the position source failed (permission denied, unavailable, timeout).
// @Tags Location
// @Accept json
// @Security BearerAuth
// @Param fault body FaultRequest true "Sensor fault"
// @Success 202 "Accepted"
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /location/faults [post]
func (h *Handler) reportFault(c *gin.Context) {
	id := identityFrom(c)
	log := h.logger.WithField("method", "reportFault").WithField("user_id", id.UserID)

	var input FaultRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.safetyService.ReportFault(c.Request.Context(), id, input.Message); err != nil {
		h.respondError(c, log, err)
		return
	}
	c.Status(http.StatusAccepted)
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
