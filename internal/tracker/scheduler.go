package tracker

import (
	"sync"
	"tatico/internal/providers"
	"tatico/internal/structures"
	"tatico/internal/tracker/interfaces"
	"time"

	"github.com/roylee0704/gron"
)

// Scheduler owns the background jobs: the periodic snapshot flush and the
// daily verse freshness check that prefetches the new day's verse after
// midnight.
type Scheduler struct {
	config  *structures.Config
	logger  providers.Logger
	store   providers.StoreProviderInterface
	verses  providers.VerseProviderInterface
	metrics providers.MetricsProviderInterface
	cron    *gron.Cron
	opsMu   sync.Mutex
}

func (s *Scheduler) Init() {
	s.cron = gron.New()

	s.cron.AddFunc(gron.Every(s.config.Persistence.SaveInterval), func() {
		s.opsMu.Lock()
		defer s.opsMu.Unlock()

		start := time.Now()
		if err := s.store.Flush(); err != nil {
			s.logger.Errorf(providers.TypeStore, "Error while persisting data: %s", err)
			return
		}
		s.metrics.ObservePersistenceDuration(time.Since(start))
	})

	s.cron.AddFunc(gron.Every(s.config.Verse.RefreshInterval), func() {
		// Today is a no-op while the cached verse is current.
		verse := s.verses.Today()
		s.logger.Debugf(providers.TypeVerse, "Verse check done: %s", verse.Reference)
	})

	s.cron.Start()
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *Scheduler) Persist() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	s.logger.Infof(providers.TypeStore, "Persisting snapshot to file...")
	start := time.Now()
	if err := s.store.Flush(); err != nil {
		s.logger.Errorf(providers.TypeStore, "Error while persisting data: %s", err)
		return err
	}
	s.metrics.ObservePersistenceDuration(time.Since(start))
	return nil
}

func NewScheduler(config *structures.Config, logger providers.Logger, store providers.StoreProviderInterface, verses providers.VerseProviderInterface, metrics providers.MetricsProviderInterface) interfaces.SchedulerInterface {
	return &Scheduler{
		config:  config,
		logger:  logger,
		store:   store,
		verses:  verses,
		metrics: metrics,
	}
}
