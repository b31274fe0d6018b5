package room

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"dormhub/room-api/internal"
	"dormhub/room-api/internal/model"
)

const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

type createBody struct {
	RoomNo int `json:"roomNo"`
}

func RoomCreate(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	var data createBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	if data.RoomNo <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Room number must be bigger than 0",
			"requestID": requestID,
		})
		return
	}

	var taken bool

	r := d.DB.Model(model.Room{}).
		Select("count(*) > 0").
		Where("room_no = ?", data.RoomNo).
		First(&taken)
	if r.Error != nil && r.Error != gorm.ErrRecordNotFound {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to check if room exists", zap.Error(r.Error), zap.String("requestID", requestID))
		return
	}

	if taken {
		c.JSON(http.StatusConflict, gin.H{
			"error":     "This room number is already taken",
			"requestID": requestID,
		})
		return
	}

	roomID, err := gonanoid.Generate(charset, 16)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to generate room ID", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	newRoom := model.Room{
		ID:        roomID,
		RoomNo:    data.RoomNo,
		UserID:    userID,
		CreatedAt: time.Now(),
	}

	if err := d.DB.Create(&newRoom).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to create room", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"msg":  "Room created successfully",
		"room": newRoom,
	})
}
