package handlers

import (
	"net/http"

	"appealapp/src/response"
	"appealapp/src/utils"

	"github.com/gin-gonic/gin"
)

// AuthStatusHandler returns the status of the caller's token (valid/expired)
func AuthStatusHandler(c *gin.Context) {
	uid, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "token expired"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "valid", "user_id": uid})
}
