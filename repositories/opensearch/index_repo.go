package opensearch

import (
	// Go Internal Packages
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	// Local Packages
	errors "wiki-stream/errors"
	models "wiki-stream/models"

	// External Packages
	"github.com/opensearch-project/opensearch-go/v2/opensearchapi"
)

type IndexRepository struct {
	transport opensearchapi.Transport
}

// NewIndexRepository accepts the *opensearch.Client returned by Connect or
// any other transport.
func NewIndexRepository(transport opensearchapi.Transport) *IndexRepository {
	return &IndexRepository{transport: transport}
}

// IndexExists reports whether index is present in the cluster
func (r *IndexRepository) IndexExists(ctx context.Context, index string) (bool, error) {
	res, err := opensearchapi.IndicesExistsRequest{Index: []string{index}}.Do(ctx, r.transport)
	if err != nil {
		return false, errors.E(errors.Unavailable, "cannot check index "+index, err)
	}
	defer res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	}
	return false, responseErr("cannot check index "+index, res)
}

// CreateIndex creates index, with mapping as its "mappings" when given
func (r *IndexRepository) CreateIndex(ctx context.Context, index string, mapping json.RawMessage) error {
	body := map[string]json.RawMessage{}
	if len(mapping) > 0 {
		body["mappings"] = mapping
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return errors.E(errors.Invalid, "cannot encode index mapping", err)
	}

	res, err := opensearchapi.IndicesCreateRequest{Index: index, Body: bytes.NewReader(payload)}.Do(ctx, r.transport)
	if err != nil {
		return errors.E(errors.Unavailable, "cannot create index "+index, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return responseErr("cannot create index "+index, res)
	}
	return nil
}

type bulkResponse struct {
	Errors bool                      `json:"errors"`
	Items  []map[string]bulkItemResp `json:"items"`
}

type bulkItemResp struct {
	ID     string `json:"_id"`
	Status int    `json:"status"`
	Error  *struct {
		Type   string `json:"type"`
		Reason string `json:"reason"`
	} `json:"error,omitempty"`
}

// BulkIndex indexes docs with a single bulk request. Documents rejected by
// the cluster are reported in the result, not as an error.
func (r *IndexRepository) BulkIndex(ctx context.Context, index string, docs []models.Document) (models.BulkResult, error) {
	if len(docs) == 0 {
		return models.BulkResult{}, nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, doc := range docs {
		meta := map[string]map[string]string{"index": {"_index": index, "_id": doc.ID}}
		if err := enc.Encode(meta); err != nil {
			return models.BulkResult{}, errors.E(errors.Invalid, "cannot encode bulk action", err)
		}
		if err := enc.Encode(doc.Source); err != nil {
			return models.BulkResult{}, errors.E(errors.Invalid, "cannot encode document "+doc.ID, err)
		}
	}

	res, err := opensearchapi.BulkRequest{Index: index, Body: &buf}.Do(ctx, r.transport)
	if err != nil {
		return models.BulkResult{}, errors.E(errors.Unavailable, "bulk request failed", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return models.BulkResult{}, responseErr("bulk request failed", res)
	}

	var resp bulkResponse
	if err = json.NewDecoder(res.Body).Decode(&resp); err != nil {
		return models.BulkResult{}, errors.E(errors.Internal, "cannot decode bulk response", err)
	}

	result := models.BulkResult{}
	for _, item := range resp.Items {
		for _, op := range item {
			if op.Status >= 200 && op.Status < 300 {
				result.Indexed++
				continue
			}
			failure := models.BulkFailure{ID: op.ID, Status: op.Status}
			if op.Error != nil {
				failure.Reason = op.Error.Type + ": " + op.Error.Reason
			}
			result.Failed = append(result.Failed, failure)
		}
	}
	return result, nil
}

// responseErr turns an error response into an error, 5xx is Unavailable and
// anything else Invalid.
func responseErr(msg string, res *opensearchapi.Response) error {
	body, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
	kind := errors.Invalid
	if res.StatusCode >= http.StatusInternalServerError {
		kind = errors.Unavailable
	}
	return errors.E(kind, msg, fmt.Errorf("status %d: %s", res.StatusCode, strings.TrimSpace(string(body))))
}
