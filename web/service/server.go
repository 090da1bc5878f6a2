package service

import (
	"time"

	"github.com/astatica/portfolio/config"
	"github.com/astatica/portfolio/logger"
	"github.com/astatica/portfolio/web/entity"
	"github.com/astatica/portfolio/web/middleware"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

var startTime = time.Now()

// ServerService reports process health for the admin page.
type ServerService struct{}

// GetStatus returns a best-effort status snapshot; metric collection
// failures are logged, not fatal.
func (s *ServerService) GetStatus() *entity.Status {
	status := &entity.Status{
		Version:  config.GetVersion(),
		Uptime:   uint64(time.Since(startTime).Seconds()),
		Requests: middleware.RequestsServed(),
	}

	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		status.Cpu = percents[0]
	} else if err != nil {
		logger.Warning("get cpu percent failed:", err)
	}

	if memInfo, err := mem.VirtualMemory(); err == nil {
		status.MemUsed = memInfo.Used
		status.MemTotal = memInfo.Total
	} else {
		logger.Warning("get virtual memory failed:", err)
	}

	return status
}
