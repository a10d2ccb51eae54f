package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-field-survey/internal/logger"
	"github.com/MKhiriev/go-field-survey/internal/store"
	"github.com/MKhiriev/go-field-survey/internal/validators"
	"github.com/MKhiriev/go-field-survey/models"
)

const (
	exportDateLayout   = "2006-01-02"
	unnamedStationSlug = "sans-nom"
)

var fileNameUnsafe = regexp.MustCompile(`[\s/\\]+`)

// ExportFileName is the file name of a full export of n records made on date.
func ExportFileName(date time.Time, n int) string {
	return fmt.Sprintf("tramway-observations-%s-%dobs.json", date.Format(exportDateLayout), n)
}

// ObservationFileName is the file name of a single-record export. It is built
// from the station name and the survey date, falling back to "sans-nom" and
// now's date.
func ObservationFileName(o models.Observation, now time.Time) string {
	station := strings.TrimSpace(o.Payload.String("lieustation"))
	if station == "" {
		station = unnamedStationSlug
	}
	date := strings.TrimSpace(o.Payload.String("date"))
	if date == "" {
		date = now.Format(exportDateLayout)
	}
	name := fmt.Sprintf("observation-%s-%s.json", station, date)
	return fileNameUnsafe.ReplaceAllString(name, "-")
}

type clientTransferService struct {
	observations store.LocalObservationRepository
	sync         ClientSyncService
	normalizer   *IdentityNormalizer
	validator    validators.Validator
	locker       sync.Locker
	logger       *logger.Logger
}

// NewClientTransferService builds the import/export service.
func NewClientTransferService(
	storages *store.ClientStorages,
	syncService ClientSyncService,
	normalizer *IdentityNormalizer,
	locker sync.Locker,
	logger *logger.Logger,
) ClientTransferService {
	return &clientTransferService{
		observations: storages.Observations,
		sync:         syncService,
		normalizer:   normalizer,
		validator:    validators.NewObservationValidator(),
		locker:       locker,
		logger:       logger,
	}
}

func (t *clientTransferService) Export(ctx context.Context, w io.Writer) (int, error) {
	all, err := t.observations.GetAllObservations(ctx)
	if err != nil {
		return 0, mapStoreError(err)
	}

	if err := writeIndented(w, all); err != nil {
		return 0, err
	}
	return len(all), nil
}

func (t *clientTransferService) ExportOne(ctx context.Context, id string, w io.Writer) (models.Observation, error) {
	o, err := findObservation(ctx, t.observations, id)
	if err != nil {
		return models.Observation{}, err
	}

	if err := writeIndented(w, o); err != nil {
		return models.Observation{}, err
	}
	return o, nil
}

func writeIndented(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode export: %w", err)
	}
	return nil
}

// Import implements ClientTransferService. A record that cannot be decoded or
// validated is rejected on its own; a local store failure aborts the import.
func (t *clientTransferService) Import(ctx context.Context, r io.Reader) (models.ImportReport, error) {
	log := logger.FromContext(ctx)

	items, err := splitImport(r)
	if err != nil {
		return models.ImportReport{}, err
	}

	existing, err := t.observations.GetAllObservations(ctx)
	if err != nil {
		return models.ImportReport{}, mapStoreError(err)
	}
	byRemoteID := make(map[string]string, len(existing))
	for _, o := range existing {
		if IsCanonicalID(o.RemoteID) {
			byRemoteID[o.RemoteID] = o.LogicalID
		}
	}

	var report models.ImportReport
	for i, item := range items {
		o, err := t.decodeRecord(ctx, item)
		if err != nil {
			report.Rejected = append(report.Rejected, models.ImportRejection{Index: i, Reason: err.Error()})
			continue
		}

		// a record already known under its remote id is merged, not duplicated
		if key, ok := byRemoteID[o.RemoteID]; ok && IsCanonicalID(o.RemoteID) {
			o.LogicalID = key
		}

		saved, err := t.merge(ctx, o)
		if err != nil {
			log.Err(err).
				Str("func", "clientTransferService.Import").
				Int("index", i).
				Msg("failed to save imported observation")
			return report, err
		}
		if IsCanonicalID(saved.RemoteID) {
			byRemoteID[saved.RemoteID] = saved.LogicalID
		}

		report.Imported++
		report.LogicalIDs = append(report.LogicalIDs, saved.LogicalID)
	}

	if report.Imported > 0 {
		if err := t.sync.Refresh(ctx); err != nil {
			log.Err(err).Str("func", "clientTransferService.Import").Msg("failed to refresh snapshot")
		}
		t.sync.Trigger(ctx)
	}

	return report, nil
}

// splitImport reads a JSON array or a single JSON object.
func splitImport(r io.Reader) ([]json.RawMessage, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedImport, err)
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrMalformedImport)
	}

	switch raw[0] {
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedImport, err)
		}
		return items, nil
	case '{':
		if !json.Valid(raw) {
			return nil, fmt.Errorf("%w: invalid json object", ErrMalformedImport)
		}
		return []json.RawMessage{raw}, nil
	}

	return nil, fmt.Errorf("%w: expected a json array or object", ErrMalformedImport)
}

// decodeRecord accepts either an envelope ({"logicalId", ..., "payload":{}})
// or a legacy flat document.
func (t *clientTransferService) decodeRecord(ctx context.Context, item json.RawMessage) (models.Observation, error) {
	var doc map[string]any
	if err := json.Unmarshal(item, &doc); err != nil || doc == nil {
		return models.Observation{}, errors.New("record is not a json object")
	}

	var o models.Observation
	if isEnvelope(doc) {
		if err := json.Unmarshal(item, &o); err != nil {
			return models.Observation{}, fmt.Errorf("invalid envelope: %w", err)
		}
	} else {
		var err error
		if o, err = models.FromDocument(doc); err != nil {
			return models.Observation{}, err
		}
	}

	if err := t.validator.Validate(ctx, o, validators.FieldVersion, validators.FieldTimestamps, validators.FieldPayload); err != nil {
		return models.Observation{}, err
	}

	if o.LogicalID == "" && o.RemoteID == "" {
		o.LogicalID = t.normalizer.NewTemporaryID()
	}
	o = t.normalizer.Normalize(o)
	o.Synced = false

	return o, nil
}

func isEnvelope(doc map[string]any) bool {
	_, hasLogicalID := doc["logicalId"]
	_, payloadIsObject := doc["payload"].(map[string]any)
	return hasLogicalID && payloadIsObject
}

// merge saves an imported record. Over an existing record it keeps the
// original creation time and remote id and never lowers the version.
func (t *clientTransferService) merge(ctx context.Context, o models.Observation) (models.Observation, error) {
	t.locker.Lock()
	defer t.locker.Unlock()

	existing, err := t.observations.GetObservation(ctx, o.LogicalID)
	switch {
	case err == nil:
		o.Version = max(o.Version, existing.Version)
		o.CreatedAt = existing.CreatedAt
		if o.RemoteID == "" {
			o.RemoteID = existing.RemoteID
		}
		if o.UpdatedAt.Before(o.CreatedAt) {
			o.UpdatedAt = o.CreatedAt
		}
	case !errors.Is(err, store.ErrObservationNotFound):
		return models.Observation{}, mapStoreError(err)
	}

	if err := t.observations.SaveObservation(ctx, o); err != nil {
		return models.Observation{}, mapStoreError(err)
	}
	return o, nil
}
