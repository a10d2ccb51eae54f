package service

import (
	"sync"
	"time"

	"github.com/MKhiriev/go-field-survey/internal/adapter"
	"github.com/MKhiriev/go-field-survey/internal/logger"
	"github.com/MKhiriev/go-field-survey/internal/store"
	"github.com/MKhiriev/go-field-survey/internal/utils"
)

// ClientServices groups the client-side services. All of them share one
// record lock and one normalizer.
type ClientServices struct {
	SyncService        ClientSyncService
	SyncJob            ClientSyncJob
	ObservationService ClientObservationService
	TransferService    ClientTransferService
}

// NewClientServices wires the services over storages and the remote API.
func NewClientServices(
	storages *store.ClientStorages,
	remote adapter.RemoteStore,
	probe adapter.ConnectivityProbe,
	clock utils.Clock,
	syncInterval time.Duration,
	logger *logger.Logger,
) *ClientServices {
	normalizer := NewIdentityNormalizer(clock)
	locker := &sync.Mutex{}

	syncSvc := NewClientSyncService(storages, remote, probe, normalizer, locker, logger)

	return &ClientServices{
		SyncService:        syncSvc,
		SyncJob:            NewClientSyncJob(syncSvc, syncInterval),
		ObservationService: NewClientObservationService(storages, remote, probe, syncSvc, normalizer, locker, logger),
		TransferService:    NewClientTransferService(storages, syncSvc, normalizer, locker, logger),
	}
}
