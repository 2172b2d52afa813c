package system_healthcheck

import (
	"context"
	"fmt"
	"time"

	"teamboard/internal/cache"
	"teamboard/internal/storage"

	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"
)

type HealthcheckService struct{}

type HealthStatus struct {
	Status            string  `json:"status"`
	Database          string  `json:"database"`
	Cache             string  `json:"cache"`
	MemoryUsedPercent float64 `json:"memoryUsedPercent"`
	DiskUsedPercent   float64 `json:"diskUsedPercent"`
}

func (s *HealthcheckService) GetHealthStatus() *HealthStatus {
	status := &HealthStatus{
		Status:   "ok",
		Database: "ok",
		Cache:    "ok",
	}

	if err := s.pingDatabase(); err != nil {
		status.Status = "degraded"
		status.Database = "unavailable"
	}

	if err := s.pingCache(); err != nil {
		status.Status = "degraded"
		status.Cache = "unavailable"
	}

	if memoryStats, err := mem.VirtualMemory(); err == nil {
		status.MemoryUsedPercent = memoryStats.UsedPercent
	}

	if diskStats, err := disk.Usage("/"); err == nil {
		status.DiskUsedPercent = diskStats.UsedPercent
	}

	return status
}

func (s *HealthcheckService) pingCache() error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	client := cache.GetCache()

	return client.Do(ctx, client.B().Ping().Build()).Error()
}

func (s *HealthcheckService) pingDatabase() error {
	db, err := storage.GetDb().DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}

	return db.Ping()
}
