package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	apperrors "github.com/yashrajoria/atelier-backend/common/errors"
	"github.com/yashrajoria/atelier-backend/common/logger"
)

// respondError renders err as {code, message, error}. Unexpected failures are
// logged with the request id and their cause is never sent to the client.
func respondError(c *gin.Context, err error) {
	appErr := apperrors.As(err)
	if appErr.Code >= http.StatusInternalServerError {
		logger.Error(c, appErr.Message, appErr.Err)
	}
	if appErr.ErrorCode == "" {
		appErr = appErr.WithCode(defaultErrorCode(appErr.Code))
	}
	c.JSON(appErr.Code, appErr)
}

func defaultErrorCode(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "VALIDATION_ERROR"
	case http.StatusUnauthorized:
		return "UNAUTHORIZED"
	case http.StatusForbidden:
		return "FORBIDDEN"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusConflict:
		return "CONFLICT"
	case http.StatusServiceUnavailable:
		return "SERVICE_UNAVAILABLE"
	default:
		return "INTERNAL_ERROR"
	}
}

func respondBindError(c *gin.Context, err error) {
	respondError(c, apperrors.Validation("Invalid request: "+err.Error()))
}

// parseUUIDParam reads a UUID path parameter, answering 400 when malformed.
func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		respondError(c, apperrors.Validation("Invalid "+name))
		return uuid.Nil, false
	}
	return id, true
}

// parsePaginationParams extracts and validates page/limit query params.
func parsePaginationParams(c *gin.Context) (int, int) {
	const maxLimit = 100
	pageInt, limitInt := 1, 10
	if p, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil && p > 0 {
		pageInt = p
	}
	if l, err := strconv.Atoi(c.DefaultQuery("limit", "10")); err == nil && l > 0 {
		limitInt = l
	}
	if limitInt > maxLimit {
		limitInt = maxLimit
	}
	return pageInt, limitInt
}
