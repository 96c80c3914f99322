// Package processor contains the run coordinator for the heartbeat
package processor // import "github.com/juicetools/juicebox-heartbeat/pkg/processor"

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	log "github.com/golang/glog"
	"golang.org/x/sync/errgroup"

	"github.com/juicetools/juicebox-heartbeat/pkg/builder"
	"github.com/juicetools/juicebox-heartbeat/pkg/model"
)

const (
	defaultMaxConcurrentEvents = 5
)

// NewEventProcessorParams contains the components to pass to NewEventProcessor
type NewEventProcessorParams struct {
	Fetcher                  model.EventFetcher
	MetadataResolver         model.MetadataResolver
	IdentityResolver         model.IdentityResolver
	Builder                  *builder.NotificationBuilder
	Channel                  model.DeliveryChannel
	ErrorLog                 model.ErrorLogger
	PaymentWebhookURLs       []string
	ProjectCreateWebhookURLs []string
	MaxConcurrentEvents      int
}

// NewEventProcessor is a convenience function to init an EventProcessor
func NewEventProcessor(params *NewEventProcessorParams) *EventProcessor {
	maxConcurrent := params.MaxConcurrentEvents
	if maxConcurrent <= 0 {
		maxConcurrent = defaultMaxConcurrentEvents
	}
	return &EventProcessor{
		fetcher:                  params.Fetcher,
		metadataResolver:         params.MetadataResolver,
		identityResolver:         params.IdentityResolver,
		builder:                  params.Builder,
		channel:                  params.Channel,
		errorLog:                 params.ErrorLog,
		paymentWebhookURLs:       params.PaymentWebhookURLs,
		projectCreateWebhookURLs: params.ProjectCreateWebhookURLs,
		maxConcurrentEvents:      maxConcurrent,
	}
}

// EventProcessor handles one run: fetch new events per category, enrich
// them, build notifications and deliver them. The two categories are
// independent failure domains; an event's timestamp is folded into its
// category checkpoint only after every destination confirmed delivery.
type EventProcessor struct {
	fetcher                  model.EventFetcher
	metadataResolver         model.MetadataResolver
	identityResolver         model.IdentityResolver
	builder                  *builder.NotificationBuilder
	channel                  model.DeliveryChannel
	errorLog                 model.ErrorLogger
	paymentWebhookURLs       []string
	projectCreateWebhookURLs []string
	maxConcurrentEvents      int
}

// Process runs both categories concurrently against the given checkpoints
// and returns the new checkpoints. The returned checkpoints never move
// backward; a category whose fetch failed keeps its prior value.
func (e *EventProcessor) Process(ctx context.Context, cps model.Checkpoints) model.Checkpoints {
	var payTs, createTs int64
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		payTs = e.processPayEvents(groupCtx, cps[model.CategoryPayment])
		return nil
	})
	group.Go(func() error {
		createTs = e.processProjectCreateEvents(groupCtx, cps[model.CategoryProjectCreate])
		return nil
	})
	_ = group.Wait() // nolint: gosec

	updated := cps.Copy()
	updated.Advance(model.CategoryPayment, payTs)
	updated.Advance(model.CategoryProjectCreate, createTs)
	return updated
}

func (e *EventProcessor) processPayEvents(ctx context.Context, sinceTs int64) int64 {
	events, err := e.fetcher.PayEventsSince(ctx, sinceTs)
	if err != nil {
		log.Errorf("Error fetching pay events: err: %v", err)
		e.errorLog.Append(err.Error())
		return sinceTs
	}
	if len(events) == 0 {
		return sinceTs
	}

	delivered := make([]int64, len(events))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(e.maxConcurrentEvents)
	for index, event := range events {
		index, event := index, event
		group.Go(func() error {
			if e.processPayEvent(groupCtx, event) {
				delivered[index] = event.Timestamp()
			}
			return nil
		})
	}
	_ = group.Wait() // nolint: gosec

	newTs := sinceTs
	for _, ts := range delivered {
		if ts > newTs {
			newTs = ts
		}
	}
	return newTs
}

func (e *EventProcessor) processPayEvent(ctx context.Context, event *model.PayEvent) bool {
	log.Infof("Handling payment for project %v", event.ProjectID())
	metadata, identity := e.enrich(ctx, event.MetadataURI(), event.Beneficiary())
	notification := e.builder.PaymentNotification(event, metadata, identity)
	return e.deliverAll(ctx, e.paymentWebhookURLs, notification)
}

func (e *EventProcessor) processProjectCreateEvents(ctx context.Context, sinceTs int64) int64 {
	events, err := e.fetcher.ProjectCreateEventsSince(ctx, sinceTs)
	if err != nil {
		log.Errorf("Error fetching project create events: err: %v", err)
		e.errorLog.Append(err.Error())
		return sinceTs
	}
	if len(events) == 0 {
		return sinceTs
	}

	delivered := make([]int64, len(events))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(e.maxConcurrentEvents)
	for index, event := range events {
		index, event := index, event
		group.Go(func() error {
			if e.processProjectCreateEvent(groupCtx, event) {
				delivered[index] = event.Timestamp()
			}
			return nil
		})
	}
	_ = group.Wait() // nolint: gosec

	newTs := sinceTs
	for _, ts := range delivered {
		if ts > newTs {
			newTs = ts
		}
	}
	return newTs
}

func (e *EventProcessor) processProjectCreateEvent(ctx context.Context,
	event *model.ProjectCreateEvent) bool {
	log.Infof("Handling new project %v", event.ProjectID())
	metadata, identity := e.enrich(ctx, event.MetadataURI(), event.Creator())
	notification := e.builder.ProjectCreateNotification(event, metadata, identity)
	return e.deliverAll(ctx, e.projectCreateWebhookURLs, notification)
}

// enrich resolves metadata and identity concurrently. A failed resolution
// degrades to a nil result and is logged, it never aborts the event.
func (e *EventProcessor) enrich(ctx context.Context, metadataURI string,
	address common.Address) (*model.ProjectMetadata, *model.DisplayIdentity) {
	var metadata *model.ProjectMetadata
	var identity *model.DisplayIdentity

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		resolved, err := e.metadataResolver.ResolveMetadata(groupCtx, metadataURI)
		if err != nil {
			log.Errorf("Error resolving metadata: err: %v", err)
			e.errorLog.Append(err.Error())
			return nil
		}
		metadata = resolved
		return nil
	})
	group.Go(func() error {
		resolved, err := e.identityResolver.ResolveIdentity(groupCtx, address)
		if err != nil {
			log.Errorf("Error resolving identity: err: %v", err)
			e.errorLog.Append(err.Error())
			return nil
		}
		identity = resolved
		return nil
	})
	_ = group.Wait() // nolint: gosec

	return metadata, identity
}

// deliverAll sends the notification to every destination independently.
// Returns true only when all destinations succeeded.
func (e *EventProcessor) deliverAll(ctx context.Context, destinations []string,
	notification *model.Notification) bool {
	allDelivered := true
	for _, destination := range destinations {
		err := e.channel.Send(ctx, destination, notification)
		if err != nil {
			log.Errorf("Error delivering notification: err: %v", err)
			e.errorLog.Append(err.Error())
			allDelivered = false
		}
	}
	return allDelivered
}
