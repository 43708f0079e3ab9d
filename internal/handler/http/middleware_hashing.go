// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"crypto/hmac"
	"io"
	"net/http"

	"github.com/MKhiriev/go-sync-engine/internal/app"
	"github.com/MKhiriev/go-sync-engine/internal/logger"
	"github.com/MKhiriev/go-sync-engine/internal/utils"
)

const hashHeader = "HashSHA256"

// withIntegrityCheck rejects write requests whose HashSHA256 header is not
// the hex HMAC-SHA256 of the body under the configured hash key. It is a
// pass-through when no key is configured.
func (h *Handler) withIntegrityCheck(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.hashKey == "" {
			next.ServeHTTP(w, r)
			return
		}
		log := logger.FromRequest(r)

		body, err := io.ReadAll(r.Body)
		if err != nil {
			log.Err(err).Str("func", "*Handler.withIntegrityCheck").Msg("failed to read request body")
			utils.WriteError(w, app.MsgFailedToReadBody, http.StatusInternalServerError)
			return
		}
		r.Body = io.NopCloser(bytes.NewReader(body))

		got := r.Header.Get(hashHeader)
		want := utils.HashString(string(body), h.hashKey)
		if !hmac.Equal([]byte(got), []byte(want)) {
			log.Error().Str("func", "*Handler.withIntegrityCheck").
				Str("hash_from_request", got).
				Msg("hashes are not equal")
			utils.WriteError(w, ErrIntegrityCheckFailed.Error(), http.StatusBadRequest)
			return
		}

		next.ServeHTTP(w, r)
	})
}
