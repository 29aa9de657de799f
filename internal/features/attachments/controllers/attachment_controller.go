package attachments_controllers

import (
	"io"
	"net/http"

	attachments_services "github.com/Betocasasa/projecthub-backend/internal/features/attachments/services"
	users_middleware "github.com/Betocasasa/projecthub-backend/internal/features/users/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AttachmentController struct {
	attachmentService *attachments_services.AttachmentService
}

func (c *AttachmentController) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/tasks/:id/attachments", c.UploadAttachment)
	router.GET("/tasks/:id/attachments", c.GetTaskAttachments)

	attachmentRoutes := router.Group("/attachments")
	attachmentRoutes.DELETE("/:id", c.DeleteAttachment)
	attachmentRoutes.GET("/:id/download", c.DownloadAttachment)
}

// UploadAttachment
// @Summary Upload a task attachment
// @Description Upload a file (up to 20 MiB) and attach it to a task
// @Tags attachments
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Param file formData file true "File to upload"
// @Success 200 {object} attachments_dto.AttachmentResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /tasks/{id}/attachments [post]
func (c *AttachmentController) UploadAttachment(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	taskID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID"})
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing file in request"})
		return
	}

	attachment, err := c.attachmentService.UploadAttachment(taskID, fileHeader, user)
	if err != nil {
		switch err.Error() {
		case "insufficient permissions to access task":
			ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case "task not found":
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	ctx.JSON(http.StatusOK, attachment)
}

// GetTaskAttachments
// @Summary List task attachments
// @Tags attachments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Success 200 {object} attachments_dto.ListAttachmentsResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /tasks/{id}/attachments [get]
func (c *AttachmentController) GetTaskAttachments(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	taskID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID"})
		return
	}

	response, err := c.attachmentService.GetTaskAttachments(taskID, user)
	if err != nil {
		switch err.Error() {
		case "insufficient permissions to access task":
			ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case "task not found":
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// DeleteAttachment
// @Summary Delete an attachment
// @Tags attachments
// @Security BearerAuth
// @Param id path string true "Attachment ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /attachments/{id} [delete]
func (c *AttachmentController) DeleteAttachment(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	attachmentID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid attachment ID"})
		return
	}

	if err := c.attachmentService.DeleteAttachment(attachmentID, user); err != nil {
		switch err.Error() {
		case "insufficient permissions to access task":
			ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case "attachment not found", "task not found":
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Attachment deleted successfully"})
}

// DownloadAttachment
// @Summary Download an attachment
// @Description Stream the attachment bytes, used by the local storage driver
// @Tags attachments
// @Produce octet-stream
// @Security BearerAuth
// @Param id path string true "Attachment ID"
// @Success 200 {file} binary
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /attachments/{id}/download [get]
func (c *AttachmentController) DownloadAttachment(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	attachmentID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid attachment ID"})
		return
	}

	attachment, reader, err := c.attachmentService.OpenAttachment(attachmentID, user)
	if err != nil {
		switch err.Error() {
		case "insufficient permissions to access task":
			ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case "attachment not found", "task not found":
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}
	defer reader.Close()

	ctx.Header("Content-Disposition", `attachment; filename="`+attachment.FileName+`"`)
	ctx.Header("Content-Type", attachment.ContentType)
	ctx.Status(http.StatusOK)
	io.Copy(ctx.Writer, reader)
}
