package chat_gateway

import (
	chat_services "github.com/Betocasasa/projecthub-backend/internal/features/chat/services"
	tasks_services "github.com/Betocasasa/projecthub-backend/internal/features/tasks/services"
	users_services "github.com/Betocasasa/projecthub-backend/internal/features/users/services"
	"github.com/Betocasasa/projecthub-backend/internal/util/logger"
)

var gateway = NewGateway(
	chat_services.GetChatService(),
	tasks_services.GetTaskService(),
	users_services.GetUserService(),
	logger.GetLogger(),
)

var gatewayController = &GatewayController{
	gateway: gateway,
}

func GetGateway() *Gateway {
	return gateway
}

func GetGatewayController() *GatewayController {
	return gatewayController
}

// SetupDependencies wires the gateway into message fan-out and into user
// deactivation.
func SetupDependencies() {
	chat_services.GetChatService().SetRoomBroadcaster(gateway)
	users_services.GetManagementService().SetSessionCloser(gateway)
}
