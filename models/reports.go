// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// PushFailure is a mutation the server rejected for a permanent reason.
type PushFailure struct {
	EntityType EntityType `json:"entity_type"`
	ClientID   string     `json:"client_id"`
	Reason     string     `json:"reason"`
}

// PushReport aggregates the outcome of one PushAll call.
type PushReport struct {
	Succeeded  []string         `json:"succeeded"`
	Failed     []PushFailure    `json:"failed"`
	Conflicted []ConflictRecord `json:"conflicted"`

	// Skipped counts entries flagged non-retryable by an earlier push.
	Skipped int `json:"skipped"`

	// TransportErrors holds the entity types whose batch got no response.
	TransportErrors map[EntityType]error `json:"-"`
}

// PullReport aggregates the outcome of one Pull call.
type PullReport struct {
	Applied   int              `json:"applied"`
	Conflicts []ConflictRecord `json:"conflicts"`

	// Failures holds the entity types whose change set could not be fetched
	// or applied; their cursors were left untouched.
	Failures map[EntityType]error `json:"-"`
}

// CycleResult is the outcome of one push-pull cycle.
type CycleResult struct {
	Pushed     int              `json:"pushed"`
	Pulled     int              `json:"pulled"`
	Conflicts  []ConflictRecord `json:"conflicts"`
	Failed     []PushFailure    `json:"failed"`
	Mode       PullMode         `json:"mode"`
	StartedAt  time.Time        `json:"started_at"`
	FinishedAt time.Time        `json:"finished_at"`
	Err        error            `json:"-"`
}

// OK reports whether the cycle completed without transport or storage errors.
func (r CycleResult) OK() bool {
	return r.Err == nil
}

// Unresolved returns the conflicts escalated to manual resolution during the
// cycle.
func (r CycleResult) Unresolved() []ConflictRecord {
	var out []ConflictRecord
	for _, c := range r.Conflicts {
		if c.Outcome == OutcomeEscalated {
			out = append(out, c)
		}
	}
	return out
}
