// Package handler maps HTTP requests onto the catalog services.
package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"storefront/internal/errs"
)

// writeError answers {"error": msg}; the cause is only logged.
func writeError(c *gin.Context, component string, err error) {
	status := errs.StatusCode(err)
	ev := log.Ctx(c.Request.Context()).Warn()
	if status >= 500 {
		ev = log.Ctx(c.Request.Context()).Error()
	}
	ev.Err(err).Str("component", component).Int("status", status).Msg("")
	c.JSON(status, gin.H{"error": errs.Message(err)})
}

// parseID reads the :id path parameter; only positive integers are valid.
func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, errs.ErrInvalidProductID
	}
	return uint(id), nil
}
