package job

import (
	"context"
	"log"

	"smmagent/internal/service"
)

// ConnectionCheckJob periodically probes every registered platform so broken
// credentials show up in the logs before a scheduled publish hits them.
type ConnectionCheckJob struct {
	ds service.DispatchService
}

func NewConnectionCheckJob(ds service.DispatchService) *ConnectionCheckJob {
	return &ConnectionCheckJob{ds: ds}
}

func (c *ConnectionCheckJob) CheckConnections() {
	ctx := context.Background()

	for _, platform := range c.ds.SupportedPlatforms() {
		if !c.ds.TestConnection(ctx, platform) {
			log.Printf("Connection check failed for platform %s", platform)
		}
	}
}
