package utils

import (
	"errors"

	"appealapp/src/types"

	"github.com/gin-gonic/gin"
)

func GetClaimsFromContext(c *gin.Context) (*types.Claims, error) {
	claimsVal, exists := c.Get("claims")
	if !exists {
		return nil, errors.New("user claims not found in context")
	}

	claims, ok := claimsVal.(*types.Claims)
	if !ok {
		return nil, errors.New("invalid claims type in context")
	}
	return claims, nil
}

func GetUserIDFromContext(c *gin.Context) (uint, error) {
	claims, err := GetClaimsFromContext(c)
	if err != nil {
		return 0, err
	}
	return claims.UserID, nil
}
