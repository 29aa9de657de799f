package system_healthcheck

import (
	"fmt"

	"github.com/Betocasasa/projecthub-backend/internal/config"
	"github.com/Betocasasa/projecthub-backend/internal/downdetect"

	"github.com/shirou/gopsutil/v4/disk"
)

// Disk space below this makes the health report degraded, attachments stop
// fitting long before the OS runs out completely.
const minFreeDiskBytes = 1 * 1024 * 1024 * 1024

type ComponentStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type DiskStatus struct {
	Status       string  `json:"status"`
	TotalBytes   uint64  `json:"totalBytes"`
	FreeBytes    uint64  `json:"freeBytes"`
	UsedPercent  float64 `json:"usedPercent"`
	MinFreeBytes uint64  `json:"minFreeBytes"`
}

type HealthStatusResponse struct {
	Status   string          `json:"status"`
	Database ComponentStatus `json:"database"`
	Cache    ComponentStatus `json:"cache"`
	Disk     DiskStatus      `json:"disk"`
}

type HealthcheckService struct {
	downdetectService *downdetect.DowndetectService
}

func (s *HealthcheckService) GetHealthStatus() *HealthStatusResponse {
	response := &HealthStatusResponse{
		Status:   "ok",
		Database: ComponentStatus{Status: "ok"},
		Cache:    ComponentStatus{Status: "ok"},
	}

	if err := s.downdetectService.CheckDatabase(); err != nil {
		response.Status = "degraded"
		response.Database = ComponentStatus{Status: "unavailable", Error: err.Error()}
	}

	if err := s.downdetectService.CheckCache(); err != nil {
		response.Status = "degraded"
		response.Cache = ComponentStatus{Status: "unavailable", Error: err.Error()}
	}

	diskStatus, err := s.checkDisk()
	if err != nil {
		response.Status = "degraded"
		response.Disk = DiskStatus{Status: "unknown"}
	} else {
		response.Disk = *diskStatus
		if diskStatus.Status != "ok" {
			response.Status = "degraded"
		}
	}

	return response
}

func (s *HealthcheckService) checkDisk() (*DiskStatus, error) {
	usage, err := disk.Usage(config.GetEnv().BackendRootPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read disk usage: %w", err)
	}

	status := "ok"
	if usage.Free < minFreeDiskBytes {
		status = "low_disk_space"
	}

	return &DiskStatus{
		Status:       status,
		TotalBytes:   usage.Total,
		FreeBytes:    usage.Free,
		UsedPercent:  usage.UsedPercent,
		MinFreeBytes: minFreeDiskBytes,
	}, nil
}
