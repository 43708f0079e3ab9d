// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-sync-engine/internal/config"
	"github.com/MKhiriev/go-sync-engine/internal/logger"
	"github.com/MKhiriev/go-sync-engine/internal/utils"
	"github.com/MKhiriev/go-sync-engine/models"
	"github.com/go-resty/resty/v2"
)

const (
	headerHash    = "HashSHA256"
	headerCycleID = "X-Sync-Cycle-ID"
)

// pushRequest is the body of POST /api/sync/{type}/push.
type pushRequest struct {
	Mutations []models.MutationRequest `json:"mutations"`
	Length    int                      `json:"length"`
}

// pushResponse is the body returned by POST /api/sync/{type}/push.
type pushResponse struct {
	Results []models.MutationResult `json:"results"`
}

type httpRemoteAPI struct {
	client *utils.HTTPClient

	hashKey string
	token   string
	now     func() time.Time

	logger *logger.Logger
}

// NewHTTPRemoteAPI constructs an HTTP/REST implementation of [RemoteSyncAPI].
// It normalises and validates the base URL from adapterCfg.HTTPAddress,
// configures the underlying HTTP client with the resolved base URL, request
// timeout and bearer token, and initialises the shared HMAC hasher pool used
// to sign push bodies when appCfg.HashKey is set.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPRemoteAPI(adapterCfg config.ClientAdapter, appCfg config.ClientApp, logger *logger.Logger) (RemoteSyncAPI, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}

	token := strings.TrimSpace(adapterCfg.Token)
	client := utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout, token)

	if appCfg.HashKey != "" {
		utils.InitHasherPool(appCfg.HashKey)
	}

	if sub, err := utils.ParseSubjectFromJWT(token); err == nil {
		logger.Info().Str("account", sub).Msg("remote sync api configured")
	}

	return &httpRemoteAPI{
		client:  client,
		hashKey: appCfg.HashKey,
		token:   token,
		now:     time.Now,
		logger:  logger,
	}, nil
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

// PushBatch implements [RemoteSyncAPI]. It POSTs mutations to
// POST /api/sync/{type}/push and decodes one result per processed mutation.
// When a hash key is configured the body is signed into the HashSHA256
// header.
func (h *httpRemoteAPI) PushBatch(ctx context.Context, entityType models.EntityType, mutations []models.MutationRequest) ([]models.MutationResult, error) {
	body, err := json.Marshal(pushRequest{Mutations: mutations, Length: len(mutations)})
	if err != nil {
		return nil, fmt.Errorf("%w: encode push request: %w", ErrBadRequest, err)
	}

	req, err := h.request(ctx)
	if err != nil {
		return nil, err
	}
	if h.hashKey != "" {
		req.SetHeader(headerHash, utils.HashHex(body))
	}

	resp, err := req.
		SetPathParam("type", string(entityType)).
		SetBody(body).
		Post("/api/sync/{type}/push")
	if err != nil {
		return nil, fmt.Errorf("%w: push request: %w", ErrTransport, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var pr pushResponse
	if err = json.Unmarshal(resp.Body(), &pr); err != nil {
		return nil, fmt.Errorf("%w: decode push response: %w", ErrTransport, err)
	}

	return pr.Results, nil
}

// PullChanges implements [RemoteSyncAPI] with
// GET /api/sync/{type}/changes?since=<unix ms>.
func (h *httpRemoteAPI) PullChanges(ctx context.Context, entityType models.EntityType, since int64) (models.ChangeSet, error) {
	req, err := h.request(ctx)
	if err != nil {
		return models.ChangeSet{}, err
	}

	req.SetQueryParam("since", strconv.FormatInt(since, 10))
	return h.pull(req, entityType, "/api/sync/{type}/changes")
}

// PullFull implements [RemoteSyncAPI] with GET /api/sync/{type}/full.
func (h *httpRemoteAPI) PullFull(ctx context.Context, entityType models.EntityType) (models.ChangeSet, error) {
	req, err := h.request(ctx)
	if err != nil {
		return models.ChangeSet{}, err
	}

	return h.pull(req, entityType, "/api/sync/{type}/full")
}

func (h *httpRemoteAPI) pull(req *resty.Request, entityType models.EntityType, path string) (models.ChangeSet, error) {
	resp, err := req.SetPathParam("type", string(entityType)).Get(path)
	if err != nil {
		return models.ChangeSet{}, fmt.Errorf("%w: pull request: %w", ErrTransport, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.ChangeSet{}, err
	}

	var cs models.ChangeSet
	if err = json.Unmarshal(resp.Body(), &cs); err != nil {
		return models.ChangeSet{}, fmt.Errorf("%w: decode change set: %w", ErrTransport, err)
	}
	return cs, nil
}

// request prepares a request carrying ctx and the running cycle id. An
// expired bearer token fails fast with ErrUnauthorized instead of costing a
// round trip.
func (h *httpRemoteAPI) request(ctx context.Context) (*resty.Request, error) {
	if h.token != "" && utils.TokenExpired(h.token, h.now()) {
		return nil, fmt.Errorf("%w: bearer token expired", ErrUnauthorized)
	}

	req := h.client.R().SetContext(ctx)
	if cycleID, ok := utils.GetCycleIDFromContext(ctx); ok {
		req.SetHeader(headerCycleID, cycleID)
	}
	return req, nil
}
