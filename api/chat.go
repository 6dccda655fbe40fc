package api

import (
	"net/http"

	"gastroguide/internal/apperrors"
	"gastroguide/internal/logger"
	"gastroguide/model"
	"gastroguide/service"

	"github.com/gin-gonic/gin"
)

// ChatHandler runs one turn. A failed turn still answers with the neutral
// error reply so the client can render something.
func ChatHandler(chatSvc *service.ChatService, log logger.Logger) gin.HandlerFunc {
	log = logger.Component(log, "ChatHandler")
	return func(c *gin.Context) {
		var req model.ChatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			fail(c, apperrors.NewValidationError("body", "Invalid JSON body"))
			return
		}

		resp, err := chatSvc.HandleMessage(c.Request.Context(), req)
		if err != nil {
			if service.IsClientError(err) {
				fail(c, err)
				return
			}
			log.WithError(err).Error("chat turn failed", map[string]interface{}{"session_id": req.SessionID})
			body := gin.H{
				"success":  false,
				"error":    publicMessage(err),
				"response": model.ErrorResponse(),
			}
			if resp != nil {
				body["session_id"] = resp.SessionID
			}
			c.JSON(http.StatusInternalServerError, body)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":    true,
			"session_id": resp.SessionID,
			"response":   resp.Response,
		})
	}
}

func GetSessionHandler(chatSvc *service.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("session_id")
		convo, err := chatSvc.GetContext(c.Request.Context(), id)
		if err != nil {
			fail(c, err)
			return
		}
		if convo == nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Session not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "session_id": id, "context": convo})
	}
}

func ResetSessionHandler(chatSvc *service.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("session_id")
		if err := chatSvc.ResetSession(c.Request.Context(), id); err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Session " + id + " reset"})
	}
}
