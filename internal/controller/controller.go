package controller

import (
	"errors"
	"net/http"

	"github.com/GradGlobe-org/admin-panel-sub000/internal/dto"
	"github.com/GradGlobe-org/admin-panel-sub000/internal/service"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RespondError maps the service failure taxonomy to HTTP statuses and
// machine-readable codes. Distinct codes let the client tell "you can't
// take this" from "you ran out of time" from "already submitted".
func RespondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotEligible):
		ctx.JSON(http.StatusForbidden, dto.ErrorResponse{Code: "not_eligible", Message: "You are not enrolled in a course containing this test"})
	case errors.Is(err, service.ErrExpired):
		ctx.JSON(http.StatusGone, dto.ErrorResponse{Code: "expired", Message: "The time for this test has expired"})
	case errors.Is(err, service.ErrInvalidTransition):
		ctx.JSON(http.StatusConflict, dto.ErrorResponse{Code: "invalid_transition", Message: "Operation not allowed in the attempt's current state"})
	case errors.Is(err, service.ErrInvalidQuestion):
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: "invalid_question", Message: "Question does not belong to this test"})
	case errors.Is(err, service.ErrInvalidOption):
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: "invalid_option", Message: "Selected option does not belong to this question"})
	case errors.Is(err, service.ErrTooManyOptions):
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: "too_many_options", Message: "This question accepts only one selected option"})
	case errors.Is(err, service.ErrNotCompleted):
		ctx.JSON(http.StatusConflict, dto.ErrorResponse{Code: "not_completed", Message: "The attempt has not been submitted yet"})
	case errors.Is(err, service.ErrUnauthenticated):
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Code: "unauthenticated", Message: "Authentication required"})
	case errors.Is(err, gorm.ErrRecordNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Code: "not_found", Message: "Resource not found"})
	default:
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Code: "internal", Message: "Internal server error", Details: []string{err.Error()}})
	}
}
