package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	gorillaws "github.com/gorilla/websocket"
	ws "github.com/ikkim/brandsite-backend/internal/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventController_TicketAndStream(t *testing.T) {
	hub := ws.NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	ctrl := NewEventController(hub, ws.NewMemoryTicketStore(ws.TicketTTL), nil)
	router := newAdminRouter()
	router.POST("/admin/events/ticket", ctrl.IssueTicket)
	router.GET("/admin/events/ws", ctrl.Connect)

	server := httptest.NewServer(router)
	defer server.Close()

	w := doJSON(t, router, http.MethodPost, "/admin/events/ticket", nil)
	require.Equal(t, http.StatusOK, w.Code)
	ticket := decode(t, w)["ticket"].(string)

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/admin/events/ws?ticket=" + ticket
	conn, _, err := gorillaws.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	hub.Publish("contact.created", map[string]string{"full_name": "Jane"})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)

	var event ws.Event
	require.NoError(t, json.Unmarshal(msg, &event))
	assert.Equal(t, "contact.created", event.Type)

	// Tickets are single use.
	_, resp, err := gorillaws.DefaultDialer.Dial(wsURL, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
