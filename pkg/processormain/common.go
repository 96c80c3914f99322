// Package processormain contains the shared orchestration for the heartbeat cmds
package processormain

import (
	"context"
	"runtime"

	log "github.com/golang/glog"

	"github.com/juicetools/juicebox-heartbeat/pkg/helpers"
	"github.com/juicetools/juicebox-heartbeat/pkg/model"
	"github.com/juicetools/juicebox-heartbeat/pkg/processor"
	"github.com/juicetools/juicebox-heartbeat/pkg/utils"
)

// RunHeartbeat runs one heartbeat pass: load checkpoints, process both
// event categories, persist the updated checkpoints. The returned error
// is non-nil only on a checkpoint persistence failure, which is fatal for
// the run: events already delivered would be re-announced next run.
func RunHeartbeat(config *utils.HeartbeatConfig, persister model.CheckpointPersister) error {
	cps, err := persister.Checkpoints()
	if err != nil {
		return model.NewPersistenceError(err)
	}

	proc := processor.NewEventProcessor(&processor.NewEventProcessorParams{
		Fetcher:                  helpers.EventFetcher(config),
		MetadataResolver:         helpers.MetadataResolver(config),
		IdentityResolver:         helpers.IdentityResolver(config),
		Builder:                  helpers.NotificationBuilder(config),
		Channel:                  helpers.DeliveryChannel(config),
		ErrorLog:                 helpers.ErrorLog(config),
		PaymentWebhookURLs:       config.PaymentWebhookURLs,
		ProjectCreateWebhookURLs: config.ProjectCreateWebhookURLs,
		MaxConcurrentEvents:      config.MaxConcurrentEvents,
	})

	updated := proc.Process(context.Background(), cps)

	err = persister.SaveCheckpoints(updated)
	if err != nil {
		return model.NewPersistenceError(err)
	}

	log.Infof("Done running heartbeat: %v", runtime.NumGoroutine())
	return nil
}
