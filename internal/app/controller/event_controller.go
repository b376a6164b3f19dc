package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	gorillaws "github.com/gorilla/websocket"
	apperrors "github.com/ikkim/brandsite-backend/internal/errors"
	"github.com/ikkim/brandsite-backend/internal/middleware"
	ws "github.com/ikkim/brandsite-backend/internal/websocket"
)

type EventController struct {
	hub      *ws.Hub
	tickets  ws.TicketStore
	upgrader *gorillaws.Upgrader
}

func NewEventController(hub *ws.Hub, tickets ws.TicketStore, allowedOrigins []string) *EventController {
	return &EventController{
		hub:      hub,
		tickets:  tickets,
		upgrader: ws.NewUpgrader(allowedOrigins),
	}
}

// IssueTicket hands an authenticated admin a single-use socket ticket
// POST /admin/events/ticket
func (ctrl *EventController) IssueTicket(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	ticket, err := ctrl.tickets.Issue(c.Request.Context(), userID)
	if err != nil {
		log.Error("Failed to issue event ticket", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ticket":     ticket,
		"expires_in": int(ws.TicketTTL.Seconds()),
	})
}

// Connect upgrades to the admin event stream. The ticket is not logged.
// GET /admin/events/ws?ticket=
func (ctrl *EventController) Connect(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, err := ctrl.tickets.Redeem(c.Request.Context(), c.Query("ticket"))
	if err != nil {
		if !errors.Is(err, ws.ErrInvalidTicket) {
			log.Error("Failed to redeem event ticket", err)
		}
		apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthTokenInvalid, "Invalid or expired ticket")
		return
	}

	conn, err := ctrl.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("Failed to upgrade to WebSocket", err)
		return
	}

	ws.Serve(ctrl.hub, conn, userID)

	log.Info("Admin event stream connected", map[string]interface{}{
		"user_id": userID,
	})
}
