// Package room contains the room/bed management endpoints. Plain persistence
// behind the auth gate, no state machine of its own
package room

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"dormhub/room-api/internal"
	"dormhub/room-api/internal/model"
)

func RoomList(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	var rooms []model.Room

	err := d.DB.
		Preload("Beds").
		Where("user_id = ?", userID).
		Find(&rooms).
		Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch rooms", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"roomCount": len(rooms),
		"rooms":     rooms,
	})
}
