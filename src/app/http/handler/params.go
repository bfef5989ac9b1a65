package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"inventory/src/app/http/response"
	"inventory/src/app/middleware"
)

// pathID parses the :id path parameter, answering 400 when it is not a UUID.
func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ValidationError(c, "id", "id must be a valid UUID", middleware.GetRequestID(c))
		return uuid.Nil, false
	}
	return id, true
}

// bindJSON decodes the body into req, answering 400 on malformed input.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.BadRequest(c, "invalid payload: "+err.Error(), middleware.GetRequestID(c))
		return false
	}
	return true
}

func fail(c *gin.Context, err error) {
	response.FromDomainError(c, err, middleware.GetRequestID(c))
}
