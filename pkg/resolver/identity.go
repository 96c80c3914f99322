// Package resolver contains the metadata and identity resolvers for the heartbeat
package resolver // import "github.com/juicetools/juicebox-heartbeat/pkg/resolver"

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/juicetools/juicebox-heartbeat/pkg/model"
)

// ensJSON is the shape of the ENS resolution API response
type ensJSON struct {
	Name string `json:"name"`
}

// NewEnsIdentityResolver creates an identity resolver against the ENS
// API at apiURL
func NewEnsIdentityResolver(apiURL string, timeout time.Duration) *EnsIdentityResolver {
	return &EnsIdentityResolver{
		apiURL:     apiURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// EnsIdentityResolver resolves an address to its ENS name via an HTTP API
type EnsIdentityResolver struct {
	apiURL     string
	httpClient *http.Client
}

// ResolveIdentity resolves the display identity for address. When the
// address has no ENS name, the identity falls back to the address itself.
// Returns a ResolutionError on transport failure.
func (r *EnsIdentityResolver) ResolveIdentity(ctx context.Context, address common.Address) (
	*model.DisplayIdentity, error) {
	requestURL := fmt.Sprintf("%v/%v", r.apiURL, address.Hex())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, model.NewResolutionError(address.Hex(), err)
	}
	res, err := r.httpClient.Do(req)
	if err != nil {
		return nil, model.NewResolutionError(address.Hex(), err)
	}
	defer res.Body.Close() // nolint: errcheck

	if res.StatusCode != http.StatusOK {
		return nil, model.NewResolutionError(address.Hex(),
			errors.Errorf("Error resolving name: status: %v", res.StatusCode))
	}

	ens := &ensJSON{}
	err = json.NewDecoder(res.Body).Decode(ens)
	if err != nil {
		return nil, model.NewResolutionError(address.Hex(), err)
	}
	return model.NewDisplayIdentity(address, ens.Name), nil
}
