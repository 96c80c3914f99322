package main

import (
	"flag"
	"os"

	log "github.com/golang/glog"
	"github.com/joho/godotenv"

	"github.com/juicetools/juicebox-heartbeat/pkg/helpers"
	"github.com/juicetools/juicebox-heartbeat/pkg/processormain"
	"github.com/juicetools/juicebox-heartbeat/pkg/utils"
)

func main() {
	_ = godotenv.Load() // nolint: gosec

	config := &utils.HeartbeatConfig{}
	flag.Usage = func() {
		config.OutputUsage()
		os.Exit(0)
	}
	flag.Parse()

	err := config.PopulateFromEnv()
	if err != nil {
		config.OutputUsage()
		log.Errorf("Invalid heartbeat config: err: %v\n", err)
		os.Exit(2)
	}

	persister, err := helpers.CheckpointPersister(config)
	if err != nil {
		log.Errorf("Error initializing persister: err: %v", err)
		os.Exit(2)
	}

	log.Infof("Juicebox Heartbeat initialized.")

	err = processormain.RunHeartbeat(config, persister)
	if err != nil {
		log.Errorf("Error running heartbeat: err: %v", err)
		os.Exit(1)
	}
}
