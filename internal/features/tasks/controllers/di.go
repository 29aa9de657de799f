package tasks_controllers

import (
	tasks_services "github.com/Betocasasa/projecthub-backend/internal/features/tasks/services"
)

var taskController = &TaskController{
	tasks_services.GetTaskService(),
}

func GetTaskController() *TaskController {
	return taskController
}
