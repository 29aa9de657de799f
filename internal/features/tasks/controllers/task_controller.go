package tasks_controllers

import (
	"net/http"

	tasks_dto "github.com/Betocasasa/projecthub-backend/internal/features/tasks/dto"
	tasks_services "github.com/Betocasasa/projecthub-backend/internal/features/tasks/services"
	users_middleware "github.com/Betocasasa/projecthub-backend/internal/features/users/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TaskController struct {
	taskService *tasks_services.TaskService
}

func (c *TaskController) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/projects/:id/tasks", c.CreateTask)
	router.GET("/projects/:id/tasks", c.GetProjectTasks)

	taskRoutes := router.Group("/tasks")
	taskRoutes.GET("/:id", c.GetTask)
	taskRoutes.PUT("/:id", c.UpdateTask)
	taskRoutes.DELETE("/:id", c.DeleteTask)
	taskRoutes.GET("/:id/participants", c.GetParticipants)
	taskRoutes.POST("/:id/participants", c.AddParticipant)
	taskRoutes.DELETE("/:id/participants/:userId", c.RemoveParticipant)
}

// CreateTask
// @Summary Create a new task
// @Description Create a new task inside a project, the creator joins the task thread automatically
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param request body tasks_dto.CreateTaskRequestDTO true "Task creation data"
// @Success 200 {object} tasks_models.Task
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /projects/{id}/tasks [post]
func (c *TaskController) CreateTask(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID"})
		return
	}

	var request tasks_dto.CreateTaskRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	task, err := c.taskService.CreateTask(projectID, &request, user)
	if err != nil {
		switch err.Error() {
		case "insufficient permissions to create tasks in this project":
			ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case "project not found":
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	ctx.JSON(http.StatusOK, task)
}

// GetProjectTasks
// @Summary List project tasks
// @Description Get all tasks of a project, optionally filtered by status, priority and assignee
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param status query string false "Filter by status"
// @Param priority query string false "Filter by priority"
// @Param assigneeId query string false "Filter by assignee"
// @Param createdFrom query string false "Only tasks created at or after this time"
// @Param createdTo query string false "Only tasks created at or before this time"
// @Success 200 {object} tasks_dto.ListTasksResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /projects/{id}/tasks [get]
func (c *TaskController) GetProjectTasks(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID"})
		return
	}

	var filters tasks_dto.ListTasksRequestDTO
	if err := ctx.ShouldBindQuery(&filters); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	response, err := c.taskService.GetProjectTasks(projectID, &filters, user)
	if err != nil {
		switch err.Error() {
		case "insufficient permissions to view project tasks":
			ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case "project not found":
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// GetTask
// @Summary Get task details
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Success 200 {object} tasks_models.Task
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /tasks/{id} [get]
func (c *TaskController) GetTask(ctx *gin.Context) {
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

	task, err := c.taskService.GetTask(taskID, user)
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

	ctx.JSON(http.StatusOK, task)
}

// UpdateTask
// @Summary Update task
// @Description Update task title, description, status, priority and assignee
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Param request body tasks_dto.UpdateTaskRequestDTO true "Task update data"
// @Success 200 {object} tasks_models.Task
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /tasks/{id} [put]
func (c *TaskController) UpdateTask(ctx *gin.Context) {
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

	var request tasks_dto.UpdateTaskRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	task, err := c.taskService.UpdateTask(taskID, &request, user)
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

	ctx.JSON(http.StatusOK, task)
}

// DeleteTask
// @Summary Delete task
// @Description Delete a task together with its chat history and participants
// @Tags tasks
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /tasks/{id} [delete]
func (c *TaskController) DeleteTask(ctx *gin.Context) {
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

	if err := c.taskService.DeleteTask(taskID, user); err != nil {
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

	ctx.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

// GetParticipants
// @Summary List task participants
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Success 200 {object} tasks_dto.GetParticipantsResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /tasks/{id}/participants [get]
func (c *TaskController) GetParticipants(ctx *gin.Context) {
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

	response, err := c.taskService.GetParticipants(taskID, user)
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

// AddParticipant
// @Summary Add task participant
// @Description Add a user to the task thread
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Param request body tasks_dto.AddParticipantRequestDTO true "Participant data"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /tasks/{id}/participants [post]
func (c *TaskController) AddParticipant(ctx *gin.Context) {
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

	var request tasks_dto.AddParticipantRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := c.taskService.AddParticipant(taskID, request.UserID, user); err != nil {
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

	ctx.JSON(http.StatusOK, gin.H{"message": "Participant added successfully"})
}

// RemoveParticipant
// @Summary Remove task participant
// @Tags tasks
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Param userId path string true "User ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /tasks/{id}/participants/{userId} [delete]
func (c *TaskController) RemoveParticipant(ctx *gin.Context) {
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

	participantUserID, err := uuid.Parse(ctx.Param("userId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	if err := c.taskService.RemoveParticipant(taskID, participantUserID, user); err != nil {
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

	ctx.JSON(http.StatusOK, gin.H{"message": "Participant removed successfully"})
}
