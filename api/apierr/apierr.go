// Package apierr maps service errors to HTTP responses.
package apierr

import (
	"errors"
	"net/http"

	dmn "github.com/HeartlessDevil29/Labirint/domain"
	"github.com/HeartlessDevil29/Labirint/maze"
	"github.com/HeartlessDevil29/Labirint/service"
	"github.com/gin-gonic/gin"
)

var badRequest = []error{
	maze.ErrInsufficientData,
	maze.ErrOutOfBounds,
	maze.ErrInvalidResolution,
	maze.ErrInvalidCoordinate,
	maze.ErrInvalidDimensions,
	maze.ErrGridTooLarge,
	service.ErrNoFixes,
	service.ErrTooManyFixes,
}

var notFound = []error{
	service.ErrNoSession,
	service.ErrSessionNotFound,
	dmn.ErrRouteNotFound,
}

// Status returns the HTTP status code for err.
func Status(err error) int {
	for _, target := range badRequest {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}
	for _, target := range notFound {
		if errors.Is(err, target) {
			return http.StatusNotFound
		}
	}
	if errors.Is(err, service.ErrRouteFinished) {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// Respond writes err as a JSON error body with its mapped status.
// Storage failures are reported without their details.
func Respond(ctx *gin.Context, err error) {
	status := Status(err)
	message := err.Error()
	if status == http.StatusInternalServerError && !errors.Is(err, maze.ErrUnreachableTarget) {
		message = "internal server error"
	}
	ctx.JSON(status, gin.H{"error": message})
}
