package system_healthcheck

import (
	"github.com/Betocasasa/projecthub-backend/internal/downdetect"
)

var healthcheckService = &HealthcheckService{
	downdetect.GetDowndetectService(),
}
var healthcheckController = &HealthcheckController{
	healthcheckService,
}

func GetHealthcheckController() *HealthcheckController {
	return healthcheckController
}
