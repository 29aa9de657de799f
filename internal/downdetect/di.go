package downdetect

var downdetectService = &DowndetectService{}
var downdetectController = &DowndetectController{
	downdetectService,
}

func GetDowndetectService() *DowndetectService {
	return downdetectService
}

func GetDowndetectController() *DowndetectController {
	return downdetectController
}
