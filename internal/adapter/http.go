package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-field-survey/internal/config"
	"github.com/MKhiriev/go-field-survey/internal/logger"
	"github.com/MKhiriev/go-field-survey/internal/utils"
	"github.com/MKhiriev/go-field-survey/models"
	"github.com/go-resty/resty/v2"
)

const (
	healthPath       = "/api/health"
	observationsPath = "/api/observations"
	migrateIDsPath   = "/api/migrate-ids"
)

type httpRemoteStore struct {
	client *utils.HTTPClient
	logger *logger.Logger
}

// NewHTTPRemoteStore constructs an HTTP/REST implementation of [RemoteStore].
// It normalises and validates the base URL from adapterCfg.HTTPAddress and
// configures the underlying HTTP client with the resolved base URL and request
// timeout. Requests are never retried by the transport; the sync pass decides
// what to do with a failure.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPRemoteStore(adapterCfg config.ClientAdapter, logger *logger.Logger) (RemoteStore, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client := utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout)

	return &httpRemoteStore{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// CheckHealth implements [RemoteStore]. It GETs /api/health.
func (h *httpRemoteStore) CheckHealth(ctx context.Context) (models.HealthStatus, error) {
	var status models.HealthStatus

	resp, err := h.newRequest(ctx).
		SetResult(&status).
		Get(healthPath)
	if err != nil {
		return models.HealthStatus{}, fmt.Errorf("health request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.HealthStatus{}, err
	}

	return status, nil
}

// ListObservations implements [RemoteStore]. The listing may be a bare array
// or an object wrapping it under "observations" or "data".
func (h *httpRemoteStore) ListObservations(ctx context.Context) ([]models.Observation, error) {
	resp, err := h.newRequest(ctx).
		Get(observationsPath)
	if err != nil {
		return nil, fmt.Errorf("list observations request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	docs, err := decodeListing(resp.Body())
	if err != nil {
		return nil, err
	}

	var partial *PartialListingError
	items := make([]models.Observation, 0, len(docs))
	for i, doc := range docs {
		o, err := models.FromDocument(doc)
		if err == nil {
			items = append(items, o)
			continue
		}

		// one bad document must not hide the rest of the collection
		if partial == nil {
			partial = &PartialListingError{}
		}
		id := models.DocumentRemoteID(doc)
		if id == "" {
			partial.Anonymous++
		} else {
			partial.IDs = append(partial.IDs, id)
		}
		h.logger.Warn().Err(err).
			Str("func", "httpRemoteStore.ListObservations").
			Int("index", i).
			Str("remote_id", id).
			Msg("undecodable remote document")
	}

	if partial != nil {
		return items, partial
	}
	return items, nil
}

// GetObservation implements [RemoteStore].
func (h *httpRemoteStore) GetObservation(ctx context.Context, remoteID string) (models.Observation, error) {
	var doc map[string]any

	resp, err := h.newRequest(ctx).
		SetPathParam("id", remoteID).
		SetResult(&doc).
		Get(observationsPath + "/{id}")
	if err != nil {
		return models.Observation{}, fmt.Errorf("get observation request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Observation{}, err
	}

	o, err := models.FromDocument(doc)
	if err != nil {
		return models.Observation{}, fmt.Errorf("%w: %w", ErrUnexpectedResponse, err)
	}
	return o, nil
}

// CreateObservation implements [RemoteStore]. The body is the flattened
// payload plus timestamps and version; identifier fields are never sent.
func (h *httpRemoteStore) CreateObservation(ctx context.Context, o models.Observation) (models.PushResult, error) {
	var doc map[string]any

	resp, err := h.newRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(o.ToDocument()).
		SetResult(&doc).
		Post(observationsPath)
	if err != nil {
		return models.PushResult{}, fmt.Errorf("create observation request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.PushResult{}, err
	}

	return decodePushResult(doc)
}

// UpdateObservation implements [RemoteStore].
func (h *httpRemoteStore) UpdateObservation(ctx context.Context, remoteID string, o models.Observation) (models.PushResult, error) {
	var doc map[string]any

	resp, err := h.newRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetPathParam("id", remoteID).
		SetBody(o.ToDocument()).
		SetResult(&doc).
		Put(observationsPath + "/{id}")
	if err != nil {
		return models.PushResult{}, fmt.Errorf("update observation request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.PushResult{}, err
	}

	res, err := decodePushResult(doc)
	if err != nil {
		return models.PushResult{}, err
	}
	if res.RemoteID == "" {
		res.RemoteID = remoteID
	}
	return res, nil
}

// DeleteObservation implements [RemoteStore].
func (h *httpRemoteStore) DeleteObservation(ctx context.Context, remoteID string) error {
	resp, err := h.newRequest(ctx).
		SetPathParam("id", remoteID).
		Delete(observationsPath + "/{id}")
	if err != nil {
		return fmt.Errorf("delete observation request: %w", err)
	}

	return mapHTTPError(resp)
}

// MigrateLegacyIDs implements [RemoteStore].
func (h *httpRemoteStore) MigrateLegacyIDs(ctx context.Context) (models.MigrationReport, error) {
	var report models.MigrationReport

	resp, err := h.newRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetResult(&report).
		Post(migrateIDsPath)
	if err != nil {
		return models.MigrationReport{}, fmt.Errorf("migrate ids request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.MigrationReport{}, err
	}

	return report, nil
}

func decodeListing(body []byte) ([]map[string]any, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, fmt.Errorf("%w: empty listing", ErrUnexpectedResponse)
	}

	switch body[0] {
	case '[':
		var docs []map[string]any
		if err := json.Unmarshal(body, &docs); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnexpectedResponse, err)
		}
		return docs, nil
	case '{':
		var wrapped struct {
			Observations []map[string]any `json:"observations"`
			Data         []map[string]any `json:"data"`
		}
		if err := json.Unmarshal(body, &wrapped); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnexpectedResponse, err)
		}
		if wrapped.Observations != nil {
			return wrapped.Observations, nil
		}
		if wrapped.Data != nil {
			return wrapped.Data, nil
		}
		return nil, fmt.Errorf("%w: listing object has no observations", ErrUnexpectedResponse)
	}

	return nil, fmt.Errorf("%w: listing is neither an array nor an object", ErrUnexpectedResponse)
}

// decodePushResult reads {_id|id, version, modified}. `_id` wins over `id`.
func decodePushResult(doc map[string]any) (models.PushResult, error) {
	if doc == nil {
		return models.PushResult{}, fmt.Errorf("%w: empty push response", ErrUnexpectedResponse)
	}

	o, err := models.FromDocument(doc)
	if err != nil {
		return models.PushResult{}, fmt.Errorf("%w: %w", ErrUnexpectedResponse, err)
	}

	res := models.PushResult{RemoteID: o.RemoteID, Version: o.Version}
	if m, ok := doc["modified"].(float64); ok {
		res.Modified = int64(m)
	}
	return res, nil
}

var _ RemoteStore = (*httpRemoteStore)(nil)

func (h *httpRemoteStore) newRequest(ctx context.Context) *resty.Request {
	return h.client.R().SetContext(ctx)
}
