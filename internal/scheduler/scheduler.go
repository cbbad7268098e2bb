package scheduler

import (
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"rentcompare/server/internal/catalog"
	"rentcompare/server/internal/snapshot"
)

// Scheduler polls the catalog file and replaces the snapshot when its
// content fingerprint changes. A fresh load discards all prior derived
// state; readers mid-request keep the snapshot they already hold.
type Scheduler struct {
	store    *snapshot.Store
	logger   *logrus.Logger
	path     string
	interval time.Duration
	stopChan chan struct{}
	wg       sync.WaitGroup
}

// NewScheduler creates a scheduler watching the catalog file at path.
func NewScheduler(store *snapshot.Store, logger *logrus.Logger, path string, interval time.Duration) *Scheduler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
		logger.SetLevel(logrus.InfoLevel)
	}

	return &Scheduler{
		store:    store,
		logger:   logger,
		path:     path,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

// Start begins the polling loop. A non-positive interval disables polling.
func (s *Scheduler) Start() {
	if s.interval <= 0 {
		s.logger.Info("Catalog polling disabled")
		return
	}

	s.wg.Add(1)
	go s.run()
}

func (s *Scheduler) run() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.checkAndReload()
		}
	}
}

// checkAndReload fingerprints the catalog file and reloads the snapshot when
// it no longer matches the current version.
func (s *Scheduler) checkAndReload() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		s.logger.WithError(err).WithField("path", s.path).Error("Failed to read catalog file")
		return
	}

	version := catalog.Fingerprint(data)
	if version == s.store.Current().Version {
		return
	}

	s.logger.WithFields(logrus.Fields{
		"path":    s.path,
		"version": version,
	}).Info("Catalog file changed, reloading snapshot")

	if _, err := s.store.Reload(); err != nil {
		s.logger.WithError(err).Error("Failed to reload snapshot")
	}
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	close(s.stopChan)
	s.wg.Wait()
}
