package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"appealapp/src/dto"
	"appealapp/src/response"
	"appealapp/src/services"
	"appealapp/src/utils"
	"appealapp/src/validation"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ComplaintHandler struct {
	service *services.ComplaintService
}

func NewComplaintHandler(service *services.ComplaintService) *ComplaintHandler {
	return &ComplaintHandler{service: service}
}

// CreateComplaint accepts a multipart complaint submission.
// @Summary Submit complaint
// @Tags complaints
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param userType formData string true "individual or organization"
// @Param name formData string true "Full name or company contact name"
// @Param phone formData string true "Contact phone"
// @Param email formData string true "Contact email"
// @Param description formData string true "Violation description"
// @Param inn formData string false "Tax identifier (required for organizations)"
// @Param agreement formData bool true "Data processing consent"
// @Param terms formData bool true "Terms consent"
// @Param photo formData file false "Resolution scan (JPEG/PNG/PDF, max 5 MB)"
// @Success 201 {object} response.SuccessResponse
// @Failure 400 {object} response.ValidationErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /api/complaints [post]
func (h *ComplaintHandler) CreateComplaint(c *gin.Context) {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	var input dto.CreateComplaintDTO
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	file, err := c.FormFile("photo")
	if err != nil && !errors.Is(err, http.ErrMissingFile) {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	complaint, err := h.service.Create(c.Request.Context(), userID, input, file)
	if err != nil {
		var fieldErrs validation.Errors
		if errors.As(err, &fieldErrs) {
			c.JSON(http.StatusBadRequest, response.ValidationErrorResponse{
				Error:  "validation failed",
				Fields: fieldErrs,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, response.SuccessResponse{Data: complaint})
}

// GetMyComplaints lists the caller's complaints, newest first.
// @Summary My complaints
// @Tags complaints
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.SuccessResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /api/complaints [get]
func (h *ComplaintHandler) GetMyComplaints(c *gin.Context) {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	complaints, err := h.service.GetUserComplaints(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, response.SuccessResponse{Data: complaints})
}

// GetAllComplaints lists every complaint for admin review.
// @Summary All complaints (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.SuccessResponse
// @Failure 403 {object} response.ErrorResponse
// @Router /api/admin/complaints [get]
func (h *ComplaintHandler) GetAllComplaints(c *gin.Context) {
	complaints, err := h.service.GetAllComplaints()
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, response.SuccessResponse{Data: complaints})
}

// UpdateComplaintStatus applies an admin status transition.
// @Summary Update complaint status (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Complaint ID"
// @Param input body dto.UpdateComplaintStatusDTO true "New status"
// @Success 200 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/admin/complaints/{id}/status [put]
func (h *ComplaintHandler) UpdateComplaintStatus(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid ID"})
		return
	}

	var input dto.UpdateComplaintStatusDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	complaint, err := h.service.UpdateStatus(uint(id), input.Status)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, response.ErrorResponse{Error: "Complaint not found"})
			return
		}
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, response.SuccessResponse{Data: complaint})
}
