// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly.
//
// Example usage:
//
//	client := utils.NewHTTPClient("https://api.example.com", 30*time.Second, token)
//	resp, err := client.R().Get("/api/health")
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates a resty client bound to baseURL.
//
// A positive timeout limits every request. A non-empty token is sent as
// "Authorization: Bearer <token>" on every request. JSON is the default
// content type.
func NewHTTPClient(baseURL string, timeout time.Duration, token string) *HTTPClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")

	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	if token != "" {
		client.SetAuthToken(token)
	}

	return &HTTPClient{Client: client}
}
