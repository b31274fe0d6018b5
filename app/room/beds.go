package room

import (
	"net/http"

	"github.com/gin-gonic/gin"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"dormhub/room-api/internal"
	"dormhub/room-api/internal/model"
)

type bedBody struct {
	Label    string `json:"label"`
	Occupant string `json:"occupant"`
}

func BedAdd(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	roomID := c.Param("id")
	if roomID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "No room ID provided",
			"requestID": requestID,
		})
		return
	}

	var data bedBody
	if err := c.ShouldBind(&data); err != nil || data.Label == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "A bed label is required",
			"requestID": requestID,
		})
		return
	}

	// Ownership check before any write
	err := d.DB.
		Where("user_id = ? AND id = ?", userID, roomID).
		First(&model.Room{}).
		Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"error":     "Room not found. It either doesn't exist or you don't own it",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to check room ownership", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	bedID, err := gonanoid.Generate(charset, 16)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to generate bed ID", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	newBed := model.Bed{
		ID:       bedID,
		RoomID:   roomID,
		Label:    data.Label,
		Occupant: data.Occupant,
	}

	if err := d.DB.Create(&newBed).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to create bed", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"msg": "Bed added successfully",
		"bed": newBed,
	})
}
