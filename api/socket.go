package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"gastroguide/internal/logger"
	"gastroguide/model"
	"gastroguide/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	socketReadLimit    = 16 * 1024
	socketIdleTimeout  = 10 * time.Minute
	socketWriteTimeout = 10 * time.Second
)

// socketMessage is one inbound frame. Plain text frames are accepted too.
type socketMessage struct {
	Message string `json:"message"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ChatSocketHandler keeps one dialogue engine for the lifetime of the
// connection. Turns are processed in order on the reading goroutine.
func ChatSocketHandler(chatSvc *service.ChatService, log logger.Logger) gin.HandlerFunc {
	log = logger.Component(log, "ChatSocket")
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.WithError(err).Warn("websocket upgrade failed", nil)
			return
		}
		defer conn.Close()

		conn.SetReadLimit(socketReadLimit)
		engine := chatSvc.NewConversation()
		ctx := c.Request.Context()

		for {
			_ = conn.SetReadDeadline(time.Now().Add(socketIdleTimeout))
			_, frame, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					log.WithError(err).Debug("websocket closed", nil)
				}
				return
			}

			text := parseFrame(frame)
			if text == "" {
				continue
			}

			resp, err := engine.ProcessTurn(ctx, text)
			if err != nil {
				log.WithError(err).Error("chat turn failed", nil)
				resp = model.ErrorResponse()
			}

			_ = conn.SetWriteDeadline(time.Now().Add(socketWriteTimeout))
			if err := conn.WriteJSON(resp); err != nil {
				log.WithError(err).Debug("websocket write failed", nil)
				return
			}
		}
	}
}

func parseFrame(frame []byte) string {
	var msg socketMessage
	if err := json.Unmarshal(frame, &msg); err == nil {
		return strings.TrimSpace(msg.Message)
	}
	return strings.TrimSpace(string(frame))
}
