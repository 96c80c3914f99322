// Package helpers contains various common helper functions.
// Normally they are shared functions used by the cmds.
package helpers

import (
	"time"

	"github.com/juicetools/juicebox-heartbeat/pkg/builder"
	"github.com/juicetools/juicebox-heartbeat/pkg/delivery"
	"github.com/juicetools/juicebox-heartbeat/pkg/fetcher"
	"github.com/juicetools/juicebox-heartbeat/pkg/model"
	"github.com/juicetools/juicebox-heartbeat/pkg/persistence"
	"github.com/juicetools/juicebox-heartbeat/pkg/resolver"
	"github.com/juicetools/juicebox-heartbeat/pkg/textconv"
	"github.com/juicetools/juicebox-heartbeat/pkg/utils"
)

// CheckpointPersister is a helper function to return the correct checkpoint
// persister based on the given configuration
func CheckpointPersister(config *utils.HeartbeatConfig) (model.CheckpointPersister, error) {
	if config.PersisterType == utils.PersisterTypePostgresql {
		persister, err := persistence.NewPostgresPersister(
			config.PersisterPostgresAddress,
			config.PersisterPostgresPort,
			config.PersisterPostgresUser,
			config.PersisterPostgresPw,
			config.PersisterPostgresDbname,
		)
		if err != nil {
			return nil, err
		}
		err = persister.CreateTables()
		if err != nil {
			return nil, err
		}
		return persister, nil
	}
	if config.PersisterType == utils.PersisterTypeFile {
		return persistence.NewFilePersister(config.PersisterFilePath), nil
	}
	// Default to the NullPersister
	return &persistence.NullPersister{}, nil
}

// EventFetcher is a helper function to return the subgraph event fetcher
// from the configuration
func EventFetcher(config *utils.HeartbeatConfig) model.EventFetcher {
	return fetcher.NewSubgraphFetcher(config.SubgraphURL, httpTimeout(config))
}

// MetadataResolver is a helper function to return the metadata resolver
// from the configuration
func MetadataResolver(config *utils.HeartbeatConfig) model.MetadataResolver {
	return resolver.NewIpfsMetadataResolver(config.IpfsGatewayURL, httpTimeout(config))
}

// IdentityResolver is a helper function to return the identity resolver
// from the configuration
func IdentityResolver(config *utils.HeartbeatConfig) model.IdentityResolver {
	return resolver.NewEnsIdentityResolver(config.EnsAPIURL, httpTimeout(config))
}

// NotificationBuilder is a helper function to return the notification
// builder from the configuration
func NotificationBuilder(config *utils.HeartbeatConfig) *builder.NotificationBuilder {
	return builder.NewNotificationBuilder(
		config.ProjectBaseURL,
		config.TxBaseURL,
		config.IpfsGatewayURL,
		textconv.NewMarkdownConverter(),
	)
}

// DeliveryChannel is a helper function to return the webhook delivery
// channel from the configuration
func DeliveryChannel(config *utils.HeartbeatConfig) model.DeliveryChannel {
	return delivery.NewDiscordChannel(httpTimeout(config))
}

// ErrorLog is a helper function to return the error log from the
// configuration
func ErrorLog(config *utils.HeartbeatConfig) model.ErrorLogger {
	return delivery.NewFileErrorLog(config.ErrorLogPath)
}

func httpTimeout(config *utils.HeartbeatConfig) time.Duration {
	return time.Duration(config.HTTPTimeoutSecs) * time.Second
}
