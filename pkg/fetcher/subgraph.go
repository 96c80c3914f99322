// Package fetcher contains the subgraph event fetcher for the heartbeat
package fetcher // import "github.com/juicetools/juicebox-heartbeat/pkg/fetcher"

import (
	"context"
	"math/big"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/shurcooL/graphql"

	"github.com/juicetools/juicebox-heartbeat/pkg/model"
)

// BigInt is the subgraph BigInt scalar used for timestamp filter variables
type BigInt int64

// NewSubgraphFetcher creates a fetcher against the subgraph at url
func NewSubgraphFetcher(url string, timeout time.Duration) *SubgraphFetcher {
	httpClient := &http.Client{Timeout: timeout}
	return &SubgraphFetcher{
		client: graphql.NewClient(url, httpClient),
	}
}

// SubgraphFetcher retrieves events from the Juicebox subgraph. It issues
// one query per category per run with an exclusive timestamp lower bound,
// so an event exactly at the checkpoint is never re-delivered.
type SubgraphFetcher struct {
	client *graphql.Client
}

type rawProject struct {
	Handle      string `graphql:"handle"`
	MetadataURI string `graphql:"metadataUri"`
}

type rawPayEvent struct {
	Project     rawProject `graphql:"project"`
	Amount      string     `graphql:"amount"`
	ProjectID   int64      `graphql:"projectId"`
	Beneficiary string     `graphql:"beneficiary"`
	TxHash      string     `graphql:"txHash"`
	Pv          string     `graphql:"pv"`
	Timestamp   int64      `graphql:"timestamp"`
	Note        string     `graphql:"note"`
}

type rawProjectCreateEvent struct {
	Project   rawProject `graphql:"project"`
	From      string     `graphql:"from"`
	ProjectID int64      `graphql:"projectId"`
	TxHash    string     `graphql:"txHash"`
	Pv        string     `graphql:"pv"`
	Timestamp int64      `graphql:"timestamp"`
}

// PayEventsSince returns payment events strictly newer than sinceTs
func (f *SubgraphFetcher) PayEventsSince(ctx context.Context, sinceTs int64) (
	[]*model.PayEvent, error) {
	var query struct {
		PayEvents []rawPayEvent `graphql:"payEvents(where: {timestamp_gt: $since})"`
	}
	variables := map[string]interface{}{
		"since": BigInt(sinceTs),
	}
	err := f.client.Query(ctx, &query, variables)
	if err != nil {
		return nil, model.NewFetchError(model.CategoryPayment, err)
	}

	events := make([]*model.PayEvent, len(query.PayEvents))
	for index, raw := range query.PayEvents {
		event, convErr := payEventFromRaw(&raw)
		if convErr != nil {
			return nil, model.NewFetchError(model.CategoryPayment, convErr)
		}
		events[index] = event
	}
	return events, nil
}

// ProjectCreateEventsSince returns project creation events strictly newer
// than sinceTs
func (f *SubgraphFetcher) ProjectCreateEventsSince(ctx context.Context, sinceTs int64) (
	[]*model.ProjectCreateEvent, error) {
	var query struct {
		ProjectCreateEvents []rawProjectCreateEvent `graphql:"projectCreateEvents(where: {timestamp_gt: $since})"`
	}
	variables := map[string]interface{}{
		"since": BigInt(sinceTs),
	}
	err := f.client.Query(ctx, &query, variables)
	if err != nil {
		return nil, model.NewFetchError(model.CategoryProjectCreate, err)
	}

	events := make([]*model.ProjectCreateEvent, len(query.ProjectCreateEvents))
	for index, raw := range query.ProjectCreateEvents {
		event, convErr := projectCreateEventFromRaw(&raw)
		if convErr != nil {
			return nil, model.NewFetchError(model.CategoryProjectCreate, convErr)
		}
		events[index] = event
	}
	return events, nil
}

func payEventFromRaw(raw *rawPayEvent) (*model.PayEvent, error) {
	if raw.Timestamp <= 0 {
		return nil, errors.Errorf("Invalid timestamp for pay event: %v", raw.Timestamp)
	}
	amount, ok := new(big.Int).SetString(raw.Amount, 10)
	if !ok {
		return nil, errors.Errorf("Invalid amount for pay event: %v", raw.Amount)
	}
	if !common.IsHexAddress(raw.Beneficiary) {
		return nil, errors.Errorf("Invalid beneficiary address: %v", raw.Beneficiary)
	}
	return model.NewPayEvent(&model.PayEventParams{
		ProjectID:   raw.ProjectID,
		Pv:          model.ProtocolVersion(raw.Pv),
		Handle:      raw.Project.Handle,
		MetadataURI: raw.Project.MetadataURI,
		Amount:      amount,
		Beneficiary: common.HexToAddress(raw.Beneficiary),
		TxHash:      common.HexToHash(raw.TxHash),
		Timestamp:   raw.Timestamp,
		Note:        raw.Note,
	}), nil
}

func projectCreateEventFromRaw(raw *rawProjectCreateEvent) (*model.ProjectCreateEvent, error) {
	if raw.Timestamp <= 0 {
		return nil, errors.Errorf("Invalid timestamp for project create event: %v", raw.Timestamp)
	}
	if !common.IsHexAddress(raw.From) {
		return nil, errors.Errorf("Invalid creator address: %v", raw.From)
	}
	return model.NewProjectCreateEvent(&model.ProjectCreateEventParams{
		ProjectID:   raw.ProjectID,
		Pv:          model.ProtocolVersion(raw.Pv),
		Handle:      raw.Project.Handle,
		MetadataURI: raw.Project.MetadataURI,
		Creator:     common.HexToAddress(raw.From),
		TxHash:      common.HexToHash(raw.TxHash),
		Timestamp:   raw.Timestamp,
	}), nil
}
