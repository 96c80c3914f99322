package resolver_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/juicetools/juicebox-heartbeat/pkg/model"
	"github.com/juicetools/juicebox-heartbeat/pkg/resolver"
)

func TestResolveMetadata(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/QmMetadata" {
			t.Errorf("Should have requested the metadata address, got %v", r.URL.Path)
		}
		fmt.Fprint(w, `{"name": "Acme", "description": "Things", "logoUri": "ipfs://x/QmLogo"}`)
	}))
	defer server.Close()

	r := resolver.NewIpfsMetadataResolver(server.URL, 5*time.Second)
	metadata, err := r.ResolveMetadata(context.Background(), "QmMetadata")
	if err != nil {
		t.Fatalf("Should not have failed resolving metadata: err: %v", err)
	}
	if metadata.Name() != "Acme" {
		t.Errorf("Name should be Acme but it is %v", metadata.Name())
	}
	if metadata.Description() != "Things" {
		t.Errorf("Description should be Things but it is %v", metadata.Description())
	}
	if metadata.LogoAddress() != "QmLogo" {
		t.Errorf("Logo address should be QmLogo but it is %v", metadata.LogoAddress())
	}
}

func TestResolveMetadataUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	r := resolver.NewIpfsMetadataResolver(server.URL, 5*time.Second)
	_, err := r.ResolveMetadata(context.Background(), "QmMissing")
	resErr := &model.ResolutionError{}
	if err == nil || !errors.As(err, &resErr) {
		t.Errorf("Should have failed with a ResolutionError but got %v", err)
	}
}

func TestResolveMetadataBadJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html>not json</html>`)
	}))
	defer server.Close()

	r := resolver.NewIpfsMetadataResolver(server.URL, 5*time.Second)
	_, err := r.ResolveMetadata(context.Background(), "QmBad")
	resErr := &model.ResolutionError{}
	if err == nil || !errors.As(err, &resErr) {
		t.Errorf("Should have failed with a ResolutionError but got %v", err)
	}
}

func TestResolveIdentity(t *testing.T) {
	address := common.HexToAddress("0x1111111111111111111111111111111111111111")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"name": "acme.eth"}`)
	}))
	defer server.Close()

	r := resolver.NewEnsIdentityResolver(server.URL, 5*time.Second)
	identity, err := r.ResolveIdentity(context.Background(), address)
	if err != nil {
		t.Fatalf("Should not have failed resolving identity: err: %v", err)
	}
	if identity.Name() != "acme.eth" {
		t.Errorf("Name should be acme.eth but it is %v", identity.Name())
	}
}

func TestResolveIdentityNoName(t *testing.T) {
	address := common.HexToAddress("0x1111111111111111111111111111111111111111")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"name": null}`)
	}))
	defer server.Close()

	r := resolver.NewEnsIdentityResolver(server.URL, 5*time.Second)
	identity, err := r.ResolveIdentity(context.Background(), address)
	if err != nil {
		t.Fatalf("Should not have failed resolving identity: err: %v", err)
	}
	if identity.Name() != address.Hex() {
		t.Errorf("Identity should fall back to the address but it is %v", identity.Name())
	}
}

func TestResolveIdentityTransportFailure(t *testing.T) {
	address := common.HexToAddress("0x1111111111111111111111111111111111111111")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	r := resolver.NewEnsIdentityResolver(server.URL, 5*time.Second)
	_, err := r.ResolveIdentity(context.Background(), address)
	resErr := &model.ResolutionError{}
	if err == nil || !errors.As(err, &resErr) {
		t.Errorf("Should have failed with a ResolutionError but got %v", err)
	}
}
