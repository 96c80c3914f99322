// Package delivery contains the webhook delivery channel and the error log
package delivery // import "github.com/juicetools/juicebox-heartbeat/pkg/delivery"

import (
	"bytes"
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"time"

	log "github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/juicetools/juicebox-heartbeat/pkg/model"
)

const (
	maxEmbedColor = 16777215
)

type embedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type embedThumbnail struct {
	URL string `json:"url"`
}

type embed struct {
	Title     string          `json:"title"`
	URL       string          `json:"url"`
	Color     int             `json:"color"`
	Fields    []embedField    `json:"fields"`
	Thumbnail *embedThumbnail `json:"thumbnail,omitempty"`
}

type webhookPayload struct {
	Embeds []embed `json:"embeds"`
}

// NewDiscordChannel creates a delivery channel posting Discord webhook embeds
func NewDiscordChannel(timeout time.Duration) *DiscordChannel {
	return &DiscordChannel{
		httpClient: &http.Client{Timeout: timeout},
	}
}

// DiscordChannel delivers notifications as Discord webhook embeds. Each
// destination is posted to independently.
type DiscordChannel struct {
	httpClient *http.Client
}

// Send posts the notification to the webhook at destination. Returns a
// DeliveryError on transport failure or a non-2xx response.
func (c *DiscordChannel) Send(ctx context.Context, destination string,
	notification *model.Notification) error {
	log.Infof("New webhook post: %v", notification.Title())

	fields := make([]embedField, len(notification.Fields()))
	for index, field := range notification.Fields() {
		fields[index] = embedField{
			Name:   field.Label,
			Value:  field.Value,
			Inline: field.Inline,
		}
	}

	var thumbnail *embedThumbnail
	if notification.ThumbnailURL() != "" {
		thumbnail = &embedThumbnail{URL: notification.ThumbnailURL()}
	}

	payload := &webhookPayload{
		Embeds: []embed{
			{
				Title:     notification.Title(),
				URL:       notification.TargetURL(),
				Color:     rand.Intn(maxEmbedColor + 1), // nolint: gosec
				Fields:    fields,
				Thumbnail: thumbnail,
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return model.NewDeliveryError(destination, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, destination,
		bytes.NewReader(body))
	if err != nil {
		return model.NewDeliveryError(destination, err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return model.NewDeliveryError(destination, err)
	}
	defer res.Body.Close() // nolint: errcheck

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		return model.NewDeliveryError(destination,
			errors.Errorf("Error posting webhook: status: %v", res.StatusCode))
	}
	return nil
}
