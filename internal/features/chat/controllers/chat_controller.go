package chat_controllers

import (
	"errors"
	"net/http"
	"strconv"

	chat_dto "github.com/Betocasasa/projecthub-backend/internal/features/chat/dto"
	chat_enums "github.com/Betocasasa/projecthub-backend/internal/features/chat/enums"
	chat_models "github.com/Betocasasa/projecthub-backend/internal/features/chat/models"
	chat_services "github.com/Betocasasa/projecthub-backend/internal/features/chat/services"
	tasks_services "github.com/Betocasasa/projecthub-backend/internal/features/tasks/services"
	users_middleware "github.com/Betocasasa/projecthub-backend/internal/features/users/middleware"
	users_models "github.com/Betocasasa/projecthub-backend/internal/features/users/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ChatController struct {
	chatService *chat_services.ChatService
	taskService *tasks_services.TaskService
}

func (c *ChatController) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/tasks/:id/chat", c.SendMessage)
	router.GET("/tasks/:id/chat", c.GetHistory)
}

// SendMessage
// @Summary Send a chat message
// @Description Append a message to the task's chat log and broadcast it to the task room
// @Tags chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Param request body chat_dto.SendMessageRequestDTO true "Message data"
// @Success 200 {object} chat_models.TaskMessage
// @Failure 400 {object} chat_models.ChatError
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} chat_models.ChatError
// @Failure 429 {object} chat_models.ChatError
// @Failure 500 {object} chat_models.ChatError
// @Router /tasks/{id}/chat [post]
func (c *ChatController) SendMessage(ctx *gin.Context) {
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

	var request chat_dto.SendMessageRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, chat_models.NewChatError(
			chat_enums.ChatErrorCodeInvalidPayload, "invalid message payload"))
		return
	}

	if !c.checkTaskAccess(ctx, taskID, user) {
		return
	}

	message, err := c.chatService.AppendMessage(taskID, user.ID, &request)
	if err != nil {
		respondChatError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, message)
}

// GetHistory
// @Summary Get task chat history
// @Description Get the task's chat log in append order, optionally only the most recent messages
// @Tags chat
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Param limit query int false "Return only the N most recent messages"
// @Success 200 {object} chat_dto.GetHistoryResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} chat_models.ChatError
// @Router /tasks/{id}/chat [get]
func (c *ChatController) GetHistory(ctx *gin.Context) {
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

	limit := 0
	if limitParam := ctx.Query("limit"); limitParam != "" {
		limit, err = strconv.Atoi(limitParam)
		if err != nil || limit < 0 {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter"})
			return
		}
	}

	if !c.checkTaskAccess(ctx, taskID, user) {
		return
	}

	messages, err := c.chatService.GetHistory(taskID, limit)
	if err != nil {
		respondChatError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, chat_dto.GetHistoryResponseDTO{Messages: messages})
}

func (c *ChatController) checkTaskAccess(
	ctx *gin.Context,
	taskID uuid.UUID,
	user *users_models.User,
) bool {
	if _, err := c.taskService.GetTask(taskID, user); err != nil {
		switch err.Error() {
		case "task not found":
			ctx.JSON(http.StatusNotFound, chat_models.NewChatError(
				chat_enums.ChatErrorCodeTaskNotFound, "task not found"))
		case "insufficient permissions to access task":
			ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return false
	}

	return true
}

func respondChatError(ctx *gin.Context, err error) {
	var chatError *chat_models.ChatError
	if !errors.As(err, &chatError) {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(chatErrorStatus(chatError), chatError)
}

func chatErrorStatus(chatError *chat_models.ChatError) int {
	switch chatError.Code {
	case chat_enums.ChatErrorCodeUnauthenticated:
		return http.StatusUnauthorized
	case chat_enums.ChatErrorCodeTaskNotFound:
		return http.StatusNotFound
	case chat_enums.ChatErrorCodeNotJoined:
		return http.StatusForbidden
	case chat_enums.ChatErrorCodeRateLimited:
		return http.StatusTooManyRequests
	case chat_enums.ChatErrorCodeStorageFailure:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}
