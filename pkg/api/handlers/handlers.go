// Package handlers implements the HTTP API on top of the store layer.
//
// Error contract: missing required fields respond 400 naming the fields,
// uniqueness conflicts respond 409 naming the clashing row, unknown devices
// respond 404, and any store failure responds 500 with the underlying
// message. Store failures are logged and never retried.
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/mzafar/homehub/pkg/api/types"
)

func missingFields(c *gin.Context, fields ...string) {
	c.JSON(http.StatusBadRequest, types.ErrorResponse{
		Error: "Missing required fields: " + strings.Join(fields, ", "),
	})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: msg})
}

func notFound(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, types.ErrorResponse{Error: msg})
}

func conflict(c *gin.Context, msg string) {
	c.JSON(http.StatusConflict, types.ErrorResponse{Error: msg})
}

func storeError(c *gin.Context, err error, details string) {
	log.Error().Err(err).Str("path", c.Request.URL.Path).Msg(details)
	c.JSON(http.StatusInternalServerError, types.ErrorResponse{
		Error:   err.Error(),
		Details: details,
	})
}
