// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"time"

	"github.com/MKhiriev/go-sync-engine/internal/adapter"
	"github.com/MKhiriev/go-sync-engine/internal/config"
	"github.com/MKhiriev/go-sync-engine/internal/logger"
	"github.com/MKhiriev/go-sync-engine/internal/validators"
	"github.com/MKhiriev/go-sync-engine/models"
)

type pushEngine struct {
	journal   ChangeJournal
	resolver  ConflictResolver
	remote    adapter.RemoteSyncAPI
	validator validators.Validator
	now       func() time.Time

	entityTypes []models.EntityType
	batchSize   int
	timeout     time.Duration
}

// NewPushEngine returns a PushEngine sending the journal of every configured
// entity type in batches of at most workers.PushBatchSize mutations.
func NewPushEngine(journal ChangeJournal, resolver ConflictResolver, remote adapter.RemoteSyncAPI, workers config.ClientWorkers, requestTimeout time.Duration) PushEngine {
	batchSize := workers.PushBatchSize
	if batchSize <= 0 {
		batchSize = config.DefaultPushBatchSize
	}
	return &pushEngine{
		journal:     journal,
		resolver:    resolver,
		remote:      remote,
		validator:   validators.NewSyncValidator(),
		now:         time.Now,
		entityTypes: workers.EntityTypes,
		batchSize:   batchSize,
		timeout:     requestTimeout,
	}
}

// PushAll pushes each entity type independently. A batch that gets no
// response aborts that type only and is recorded in TransportErrors. A batch
// the server refuses as a whole is resent one mutation at a time; refused
// mutations are flagged non-retryable and listed in Failed. Storage and
// identity errors abort the whole push.
func (p *pushEngine) PushAll(ctx context.Context) (models.PushReport, error) {
	report := models.PushReport{TransportErrors: make(map[models.EntityType]error)}
	log := logger.FromContext(ctx)

	for _, entityType := range p.entityTypes {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		pending, err := p.journal.PendingMutations(ctx, entityType)
		if err != nil {
			return report, err
		}

		batch := make([]models.SyncRecord, 0, len(pending))
		for _, rec := range pending {
			if rec.NonRetryable {
				report.Skipped++
				continue
			}
			batch = append(batch, rec)
		}

		for start := 0; start < len(batch); start += p.batchSize {
			chunk := batch[start:min(start+p.batchSize, len(batch))]
			err = p.pushChunk(ctx, entityType, chunk, &report)
			if errors.Is(err, ErrValidation) {
				err = p.isolateRefused(ctx, entityType, chunk, err, &report)
			}
			if err != nil {
				if isFatal(err) || ctx.Err() != nil {
					return report, err
				}
				log.Err(err).
					Str("func", "pushEngine.PushAll").
					Str("entity_type", entityType.String()).
					Int("batch_len", len(chunk)).
					Msg("push batch failed, remaining mutations stay pending")
				report.TransportErrors[entityType] = err
				break
			}
		}
	}

	log.Info().
		Int("succeeded", len(report.Succeeded)).
		Int("failed", len(report.Failed)).
		Int("conflicted", len(report.Conflicted)).
		Int("skipped", report.Skipped).
		Msg("push finished")
	return report, nil
}

func (p *pushEngine) pushChunk(ctx context.Context, entityType models.EntityType, chunk []models.SyncRecord, report *models.PushReport) error {
	log := logger.FromContext(ctx)

	requests := make([]models.MutationRequest, 0, len(chunk))
	for _, rec := range chunk {
		requests = append(requests, models.MutationRequest{
			ClientID:     rec.ClientID,
			ServerID:     rec.ServerID,
			Action:       rec.Action,
			Payload:      rec.Payload,
			LastModified: rec.LastModified,
			BaseVersion:  rec.BaseVersion,
		})
	}

	callCtx, cancel := withTimeout(ctx, p.timeout)
	results, err := p.remote.PushBatch(callCtx, entityType, requests)
	cancel()
	if err != nil {
		return mapAdapterError(entityType, "push", err)
	}

	byClientID := make(map[string]models.MutationResult, len(results))
	for _, res := range results {
		byClientID[res.ClientID] = res
	}

	for _, rec := range chunk {
		res, ok := byClientID[rec.ClientID]
		if !ok {
			log.Warn().
				Str("entity_type", entityType.String()).
				Str("client_id", rec.ClientID).
				Msg("no result for pushed mutation, it stays pending")
			continue
		}
		if res.ServerID == "" {
			res.ServerID = rec.ServerID
		}
		if err = p.validator.Validate(ctx, res); err != nil {
			log.Warn().Err(err).
				Str("entity_type", entityType.String()).
				Str("client_id", rec.ClientID).
				Msg("malformed push result, mutation stays pending")
			continue
		}

		switch res.Status {
		case models.MutationAccepted:
			if err = p.journal.MarkPushed(ctx, rec, res.ServerID, res.LastModified); err != nil {
				return err
			}
			report.Succeeded = append(report.Succeeded, rec.ClientID)

		case models.MutationConflict:
			conflict := p.conflictFromResult(entityType, rec, res)
			outcome, err := p.resolver.Adjudicate(ctx, conflict)
			if err != nil {
				if isFatal(err) {
					return err
				}
				continue
			}
			conflict.Outcome = outcome
			report.Conflicted = append(report.Conflicted, conflict)

		case models.MutationRejected:
			if err = p.reject(ctx, entityType, rec.ClientID, res.Reason, report); err != nil {
				return err
			}
		}
	}

	return nil
}

// isolateRefused resends a refused batch one mutation at a time so that only
// the offending mutations are flagged.
func (p *pushEngine) isolateRefused(ctx context.Context, entityType models.EntityType, chunk []models.SyncRecord, refusal error, report *models.PushReport) error {
	if len(chunk) == 1 {
		return p.reject(ctx, entityType, chunk[0].ClientID, refusal.Error(), report)
	}

	for _, rec := range chunk {
		err := p.pushChunk(ctx, entityType, []models.SyncRecord{rec}, report)
		if errors.Is(err, ErrValidation) {
			err = p.reject(ctx, entityType, rec.ClientID, err.Error(), report)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (p *pushEngine) reject(ctx context.Context, entityType models.EntityType, clientID, reason string, report *models.PushReport) error {
	if err := p.journal.MarkRejected(ctx, entityType, clientID, reason); err != nil {
		return err
	}
	report.Failed = append(report.Failed, models.PushFailure{
		EntityType: entityType,
		ClientID:   clientID,
		Reason:     reason,
	})
	return nil
}

func (p *pushEngine) conflictFromResult(entityType models.EntityType, rec models.SyncRecord, res models.MutationResult) models.ConflictRecord {
	conflict := models.ConflictRecord{
		EntityType:         entityType,
		ClientID:           rec.ClientID,
		ServerID:           res.ServerID,
		LocalPayload:       rec.Payload,
		LocalLastModified:  rec.LastModified,
		ServerLastModified: res.LastModified,
		DetectedAt:         p.now().UTC(),
	}
	if cur := res.Current; cur != nil {
		if cur.ServerID != "" {
			conflict.ServerID = cur.ServerID
		}
		conflict.ServerPayload = cur.Payload
		conflict.ServerLastModified = cur.LastModified
		conflict.ServerDeleted = cur.Deleted
	}
	return conflict
}

// withTimeout bounds a single network call. A zero timeout leaves ctx as is.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
