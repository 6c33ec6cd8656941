package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string { return e.Message }

func BadRequest(message string) *APIError {
	return &APIError{Code: http.StatusBadRequest, Message: message}
}

func InternalError(message string) *APIError {
	return &APIError{Code: http.StatusInternalServerError, Message: message}
}

type HandlerFunc func(ctx *gin.Context) (any, *APIError)

// created marks a result that should be answered with 201.
type created struct {
	body any
}

// Created wraps a handler result so it is written with 201 Created.
func Created(body any) any {
	return created{body: body}
}

func ResolveEndpoint(h HandlerFunc) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		result, apiErr := h(ctx)
		if apiErr != nil {
			ctx.JSON(apiErr.Code, gin.H{"error": apiErr.Message})
			return
		}

		if c, ok := result.(created); ok {
			ctx.JSON(http.StatusCreated, c.body)
			return
		}
		ctx.JSON(http.StatusOK, result)
	}
}
