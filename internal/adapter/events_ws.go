// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/MKhiriev/go-sync-engine/internal/config"
	"github.com/MKhiriev/go-sync-engine/internal/logger"
	"github.com/MKhiriev/go-sync-engine/models"
	"github.com/gorilla/websocket"
)

const (
	DefaultReconnectDelay = 5 * time.Second
	defaultHandshake      = 10 * time.Second
)

type wsEventSource struct {
	url            string
	token          string
	reconnectDelay time.Duration
	dialer         *websocket.Dialer
	logger         *logger.Logger
}

// NewWSEventSource returns an [EventSource] reading JSON encoded
// [models.LiveEvent] frames from adapterCfg.EventsAddress. The connection is
// re-dialled after reconnectDelay whenever it drops.
func NewWSEventSource(adapterCfg config.ClientAdapter, reconnectDelay time.Duration, logger *logger.Logger) (EventSource, error) {
	u, err := url.Parse(strings.TrimSpace(adapterCfg.EventsAddress))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}
	if u.Scheme != "ws" && u.Scheme != "wss" || u.Host == "" {
		return nil, fmt.Errorf("%w: events address must be ws:// or wss://", ErrInvalidAddress)
	}
	if reconnectDelay <= 0 {
		reconnectDelay = DefaultReconnectDelay
	}

	return &wsEventSource{
		url:            u.String(),
		token:          strings.TrimSpace(adapterCfg.Token),
		reconnectDelay: reconnectDelay,
		dialer:         &websocket.Dialer{HandshakeTimeout: defaultHandshake},
		logger:         logger,
	}, nil
}

// Run implements [EventSource]. It returns ctx.Err() once ctx is cancelled and
// ErrUnauthorized when the server rejects the handshake with 401.
func (s *wsEventSource) Run(ctx context.Context, out chan<- models.LiveEvent) error {
	for {
		err := s.readConn(ctx, out)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if errors.Is(err, ErrUnauthorized) {
			return err
		}
		s.logger.Warn().Err(err).Str("func", "wsEventSource.Run").Dur("retry_in", s.reconnectDelay).Msg("live event stream dropped")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.reconnectDelay):
		}
	}
}

func (s *wsEventSource) readConn(ctx context.Context, out chan<- models.LiveEvent) error {
	header := http.Header{}
	if s.token != "" {
		header.Set("Authorization", "Bearer "+s.token)
	}

	conn, resp, err := s.dialer.DialContext(ctx, s.url, header)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusUnauthorized {
			return fmt.Errorf("%w: events handshake", ErrUnauthorized)
		}
		return fmt.Errorf("%w: dial events: %w", ErrTransport, err)
	}
	defer conn.Close()

	// unblocks ReadJSON on cancellation
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	s.logger.Info().Str("func", "wsEventSource.readConn").Str("url", s.url).Msg("live event stream connected")

	for {
		_, frame, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("%w: read event: %w", ErrTransport, err)
		}

		var ev models.LiveEvent
		if err = json.Unmarshal(frame, &ev); err != nil || !validLiveEvent(ev) {
			s.logger.Warn().Err(err).Str("func", "wsEventSource.readConn").
				Str("entity_type", string(ev.EntityType)).
				Msg("skipping malformed live event")
			continue
		}

		select {
		case out <- ev:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func validLiveEvent(ev models.LiveEvent) bool {
	if !ev.EntityType.Valid() || ev.Record.ServerID == "" {
		return false
	}
	return ev.Kind == models.LiveUpsert || ev.Kind == models.LiveDelete
}
