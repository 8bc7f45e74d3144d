package opensearch

import (
	// Go Internal Packages
	"context"
	"crypto/tls"
	"net/http"

	// Local Packages
	config "wiki-stream/config"
	errors "wiki-stream/errors"

	// External Packages
	opensearchgo "github.com/opensearch-project/opensearch-go/v2"
	"github.com/opensearch-project/opensearch-go/v2/opensearchapi"
)

// Connect connects to the opensearch cluster and returns the client.
func Connect(ctx context.Context, conf config.OpenSearch) (*opensearchgo.Client, error) {
	client, err := opensearchgo.NewClient(opensearchgo.Config{
		Addresses: conf.Addresses,
		Username:  conf.Username,
		Password:  conf.Password,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: conf.InsecureSkipVerify}, //nolint:gosec // local clusters run self-signed
		},
	})
	if err != nil {
		return nil, errors.E(errors.Internal, "cannot create opensearch client", err)
	}

	if conf.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, conf.Timeout)
		defer cancel()
	}

	// Ping the cluster to verify the connection.
	res, err := opensearchapi.PingRequest{}.Do(ctx, client)
	if err != nil {
		return nil, errors.E(errors.Unavailable, "cannot reach opensearch", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, responseErr("cannot reach opensearch", res)
	}

	return client, nil
}
