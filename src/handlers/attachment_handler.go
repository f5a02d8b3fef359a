package handlers

import (
	"net/http"

	"appealapp/src/response"
	"appealapp/src/storage"

	"github.com/gin-gonic/gin"
)

type AttachmentHandler struct {
	store storage.Store
}

func NewAttachmentHandler(store storage.Store) *AttachmentHandler {
	return &AttachmentHandler{store: store}
}

// GetAttachment streams a stored attachment back to the caller.
// @Summary Download attachment
// @Tags complaints
// @Produce octet-stream
// @Param object path string true "Stored object name"
// @Success 200
// @Failure 404 {object} response.ErrorResponse
// @Router /uploads/{object} [get]
func (h *AttachmentHandler) GetAttachment(c *gin.Context) {
	objectName := c.Param("object")

	obj, contentType, err := h.store.Get(c.Request.Context(), objectName)
	if err != nil {
		c.JSON(http.StatusNotFound, response.ErrorResponse{Error: "Attachment not found"})
		return
	}
	defer obj.Close()

	c.DataFromReader(http.StatusOK, -1, contentType, obj, nil)
}
