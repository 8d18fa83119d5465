package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/gradetrack-api/internal/middleware"
	appErrors "github.com/noah-isme/gradetrack-api/pkg/errors"
	"github.com/noah-isme/gradetrack-api/pkg/response"
)

// currentUserID returns the authenticated user id, writing a 401 and returning false when absent.
func currentUserID(c *gin.Context) (string, bool) {
	claims := middleware.CurrentUser(c)
	if claims == nil || claims.UserID == "" {
		response.Error(c, appErrors.ErrUnauthorized)
		return "", false
	}
	return claims.UserID, true
}

func bindError(err error, message string) error {
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, message)
}
