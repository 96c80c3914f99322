// Package processormain contains the shared orchestration for the heartbeat cmds
package processormain

import (
	"os"
	"time"

	log "github.com/golang/glog"
	"github.com/robfig/cron"

	"github.com/juicetools/juicebox-heartbeat/pkg/model"
	"github.com/juicetools/juicebox-heartbeat/pkg/utils"
)

const (
	checkRunSecs = 5
)

func checkCron(cr *cron.Cron) {
	entries := cr.Entries()
	for _, entry := range entries {
		log.Infof("Heartbeat run times: prev: %v, next: %v\n", entry.Prev, entry.Next)
	}
}

// HeartbeatCronMain contains the logic to run the heartbeat using a cronjob
func HeartbeatCronMain(config *utils.HeartbeatConfig, persister model.CheckpointPersister) {
	cr := cron.New()
	err := cr.AddFunc(config.CronConfig, func() {
		runErr := RunHeartbeat(config, persister)
		if runErr != nil {
			log.Errorf("Error running heartbeat: err: %v", runErr)
			os.Exit(1)
		}
	})
	if err != nil {
		log.Errorf("Error starting: err: %v", err)
		os.Exit(1)
	}
	cr.Start()

	// Blocks here while the cron process runs
	for range time.After(checkRunSecs * time.Second) {
		checkCron(cr)
	}
}
