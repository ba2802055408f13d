package realtime

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"contentstudio-backend/internal/shared"
)

// NewStreamHandler returns a handler that streams change events for the
// tables in the "tables" query parameter (comma separated) as
// server-sent events. The subscription is torn down when the client
// disconnects.
func NewStreamHandler(feed *Feed) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(shared.SubscribableTables))
	for _, t := range shared.SubscribableTables {
		allowed[t] = struct{}{}
	}

	return func(c *gin.Context) {
		var tables []string
		for _, t := range strings.Split(c.Query("tables"), ",") {
			t = strings.TrimSpace(t)
			if t == "" {
				continue
			}
			if _, ok := allowed[t]; !ok {
				c.JSON(http.StatusBadRequest, gin.H{
					"success": false,
					"error":   gin.H{"code": "INVALID_TABLE", "message": "unknown table: " + t},
				})
				return
			}
			tables = append(tables, t)
		}
		if len(tables) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   gin.H{"code": "INVALID_REQUEST", "message": "tables query parameter is required"},
			})
			return
		}

		sub, err := feed.Subscribe(c.Request.Context(), tables...)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   gin.H{"code": "SUBSCRIBE_FAILED", "message": err.Error()},
			})
			return
		}
		defer sub.Close()

		c.Writer.Header().Set("Content-Type", "text/event-stream")
		c.Writer.Header().Set("Cache-Control", "no-cache")
		c.Writer.Header().Set("Connection", "keep-alive")

		c.Stream(func(w io.Writer) bool {
			select {
			case ev, ok := <-sub.Events():
				if !ok {
					return false
				}
				c.SSEvent("change", ev)
				return true
			case <-c.Request.Context().Done():
				return false
			}
		})
	}
}
