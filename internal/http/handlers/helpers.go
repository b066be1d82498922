package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/proposalgen/proposal-backend/internal/dto"
	"github.com/proposalgen/proposal-backend/internal/pkg/apperror"
	"github.com/proposalgen/proposal-backend/internal/validation"
)

// Адреса, куда клиент возвращается после ошибки.
const proposalsPath = "/api/proposals"

func proposalPath(id int64) string {
	return fmt.Sprintf("%s/%d", proposalsPath, id)
}

// respondAppError отвечает по коду AppError. Неизвестные ошибки уходят в ErrorHandler.
func respondAppError(c *gin.Context, err error, redirect string) {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code == apperror.ErrCodeInternal {
		_ = c.Error(err)
		return
	}

	resp := dto.ErrorResponse{
		Error:    appErr.Message,
		Code:     string(appErr.Code),
		Redirect: redirect,
	}

	var fields validation.Errors
	if errors.As(err, &fields) {
		resp.Fields = fields
		resp.Error = "validation failed"
	}

	status := appErr.HTTPStatus
	if status == 0 {
		status = http.StatusInternalServerError
	}
	c.JSON(status, resp)
}
