package user

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"dormhub/room-api/internal"
	"dormhub/room-api/internal/verify"
	"dormhub/room-api/pkg/validators"
)

// UserVerify consumes a mailed one-time code. 200 only on true success:
// a missing record is 404, an expired one 410 (with a fresh code mailed out)
// and a wrong code 422
func UserVerify(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	email := c.Query("email")
	if err := validators.EmailValidator(email); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	otp, err := strconv.Atoi(c.Query("otp"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "No valid verification code provided",
			"requestID": requestID,
		})
		return
	}

	outcome, verified, err := d.Verifier.Consume(email, otp)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to consume verification code", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	switch outcome {
	case verify.OutcomeNotFound:
		c.JSON(http.StatusNotFound, gin.H{
			"error":     "No pending verification found for this email",
			"requestID": requestID,
		})

	case verify.OutcomeExpired:
		c.JSON(http.StatusGone, gin.H{
			"error":     "Verification code expired. A new one was mailed to you",
			"requestID": requestID,
		})

	case verify.OutcomeMismatch:
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":     "Invalid verification code",
			"requestID": requestID,
		})

	case verify.OutcomeVerified:
		token, err := d.Sessions.Issue(verified)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to issue session token", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"msg":       "Email verified successfully",
			"token":     token,
			"user":      newUserResponse(verified),
			"requestID": requestID,
		})
	}
}
