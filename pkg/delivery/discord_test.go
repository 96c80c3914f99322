package delivery_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/juicetools/juicebox-heartbeat/pkg/delivery"
	"github.com/juicetools/juicebox-heartbeat/pkg/model"
)

type capturedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type capturedEmbed struct {
	Title     string          `json:"title"`
	URL       string          `json:"url"`
	Color     int             `json:"color"`
	Fields    []capturedField `json:"fields"`
	Thumbnail *struct {
		URL string `json:"url"`
	} `json:"thumbnail"`
}

type capturedPayload struct {
	Embeds []capturedEmbed `json:"embeds"`
}

func testNotification(thumbnailURL string) *model.Notification {
	return model.NewNotification(
		"Payment to Acme",
		"https://juicebox.money/v2/p/42",
		[]model.NotificationField{
			{Label: "Amount", Value: "2.5 ETH", Inline: true},
			{Label: "Transaction", Value: "[Etherscan](https://etherscan.io/tx/0xabc)", Inline: true},
		},
		thumbnailURL,
	)
}

func TestSend(t *testing.T) {
	var payload capturedPayload
	var contentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		body, _ := io.ReadAll(r.Body) // nolint: errcheck
		err := json.Unmarshal(body, &payload)
		if err != nil {
			t.Errorf("Should have sent valid json: err: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	channel := delivery.NewDiscordChannel(5 * time.Second)
	err := channel.Send(context.Background(), server.URL,
		testNotification("https://ipfs.io/ipfs/QmLogo"))
	if err != nil {
		t.Fatalf("Should not have received an error: err: %v", err)
	}

	if contentType != "application/json" {
		t.Errorf("Content type should be json but it is %v", contentType)
	}
	if len(payload.Embeds) != 1 {
		t.Fatalf("Should have posted exactly one embed but posted %v", len(payload.Embeds))
	}

	posted := payload.Embeds[0]
	if posted.Title != "Payment to Acme" {
		t.Errorf("Title should be 'Payment to Acme' but it is %v", posted.Title)
	}
	if posted.URL != "https://juicebox.money/v2/p/42" {
		t.Errorf("URL should be the project URL but it is %v", posted.URL)
	}
	if posted.Color < 0 || posted.Color > 16777215 {
		t.Errorf("Color should be a valid embed color but it is %v", posted.Color)
	}
	if len(posted.Fields) != 2 {
		t.Fatalf("Should have posted 2 fields but posted %v", len(posted.Fields))
	}
	if posted.Fields[0].Name != "Amount" || posted.Fields[0].Value != "2.5 ETH" {
		t.Errorf("First field should be the amount but it is %v", posted.Fields[0])
	}
	if !posted.Fields[0].Inline {
		t.Errorf("Amount field should be inline")
	}
	if posted.Thumbnail == nil || posted.Thumbnail.URL != "https://ipfs.io/ipfs/QmLogo" {
		t.Errorf("Thumbnail should be the logo URL but it is %v", posted.Thumbnail)
	}
}

func TestSendNoThumbnail(t *testing.T) {
	var rawBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawBody, _ = io.ReadAll(r.Body) // nolint: errcheck
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	channel := delivery.NewDiscordChannel(5 * time.Second)
	err := channel.Send(context.Background(), server.URL, testNotification(""))
	if err != nil {
		t.Fatalf("Should not have received an error: err: %v", err)
	}

	var generic map[string]interface{}
	err = json.Unmarshal(rawBody, &generic)
	if err != nil {
		t.Fatalf("Should have sent valid json: err: %v", err)
	}
	embeds := generic["embeds"].([]interface{})
	posted := embeds[0].(map[string]interface{})
	if _, found := posted["thumbnail"]; found {
		t.Errorf("Thumbnail key should be omitted when there is no logo")
	}
}

func TestSendBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	channel := delivery.NewDiscordChannel(5 * time.Second)
	err := channel.Send(context.Background(), server.URL, testNotification(""))
	if err == nil {
		t.Fatalf("Should have received an error for a non 2xx response")
	}
	var deliveryErr *model.DeliveryError
	if !errors.As(err, &deliveryErr) {
		t.Errorf("Should have received a delivery error: err: %v", err)
	}
	if deliveryErr.Destination != server.URL {
		t.Errorf("Error should carry the destination but it is %v", deliveryErr.Destination)
	}
}

func TestSendTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	channel := delivery.NewDiscordChannel(5 * time.Second)
	err := channel.Send(context.Background(), server.URL, testNotification(""))
	if err == nil {
		t.Fatalf("Should have received an error for an unreachable webhook")
	}
	var deliveryErr *model.DeliveryError
	if !errors.As(err, &deliveryErr) {
		t.Errorf("Should have received a delivery error: err: %v", err)
	}
}
