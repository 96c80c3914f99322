// Package resolver contains the metadata and identity resolvers for the heartbeat
package resolver // import "github.com/juicetools/juicebox-heartbeat/pkg/resolver"

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/juicetools/juicebox-heartbeat/pkg/model"
)

// metadataJSON is the shape of the project metadata document on the
// content store. All fields optional.
type metadataJSON struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	LogoURI     string `json:"logoUri"`
}

// NewIpfsMetadataResolver creates a metadata resolver against the IPFS
// gateway at gatewayURL
func NewIpfsMetadataResolver(gatewayURL string, timeout time.Duration) *IpfsMetadataResolver {
	return &IpfsMetadataResolver{
		gatewayURL: gatewayURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// IpfsMetadataResolver retrieves project metadata documents from a
// content addressed store via an HTTP gateway
type IpfsMetadataResolver struct {
	gatewayURL string
	httpClient *http.Client
}

// ResolveMetadata retrieves and parses the project metadata document at
// metadataURI. Returns a ResolutionError when the document is
// unreachable or not parseable JSON.
func (r *IpfsMetadataResolver) ResolveMetadata(ctx context.Context, metadataURI string) (
	*model.ProjectMetadata, error) {
	requestURL := fmt.Sprintf("%v/%v", r.gatewayURL, metadataURI)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, model.NewResolutionError(metadataURI, err)
	}
	res, err := r.httpClient.Do(req)
	if err != nil {
		return nil, model.NewResolutionError(metadataURI, err)
	}
	defer res.Body.Close() // nolint: errcheck

	if res.StatusCode != http.StatusOK {
		return nil, model.NewResolutionError(metadataURI,
			errors.Errorf("Error retrieving metadata: status: %v", res.StatusCode))
	}

	metadata := &metadataJSON{}
	err = json.NewDecoder(res.Body).Decode(metadata)
	if err != nil {
		return nil, model.NewResolutionError(metadataURI, err)
	}
	return model.NewProjectMetadata(metadata.Name, metadata.Description, metadata.LogoURI), nil
}
