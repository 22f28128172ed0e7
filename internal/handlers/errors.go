package handlers

import (
	"errors"

	"github.com/adwyte/synergysphere-web/internal/session"
	"github.com/adwyte/synergysphere-web/internal/upstream"
	"github.com/adwyte/synergysphere-web/pkg/response"
	"github.com/gin-gonic/gin"
)

// upstreamError maps a backend failure onto the response envelope. Backend
// error bodies pass through verbatim so the shell shows the same text the
// API sent; only transport failures get a message of our own.
func upstreamError(c *gin.Context, err error) {
	var authErr *session.AuthError
	if errors.As(err, &authErr) {
		response.Unauthorized(c, authErr.Message)
		return
	}

	var ue *upstream.Error
	if errors.As(err, &ue) {
		switch ue.Kind {
		case upstream.KindAuth:
			response.Unauthorized(c, ue.Body)
		case upstream.KindMembership:
			response.Forbidden(c, ue.Body)
		case upstream.KindNetwork:
			response.BadGateway(c, "backend unreachable")
		default:
			c.JSON(ue.Status, response.Response{Code: ue.Status, Message: ue.Body})
		}
		return
	}

	response.ServerError(c, err.Error())
}
