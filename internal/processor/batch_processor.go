package processor

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"rentcompare/server/config"
	"rentcompare/server/internal/database"
	"rentcompare/server/internal/models"
	"rentcompare/server/internal/queue"
)

// TxRunner runs a function inside a database transaction. *gorm.DB
// satisfies it.
type TxRunner interface {
	Transaction(fc func(tx *gorm.DB) error, opts ...*sql.TxOptions) error
}

// BatchProcessor drains the ingest queue, upserting catalog listing batches
// into the input table with transaction and retry handling.
type BatchProcessor struct {
	db          TxRunner
	logger      *logrus.Logger
	config      *config.Config
	queue       *queue.ListingQueue
	onProcessed func(count int)
}

// NewBatchProcessor creates a new batch processor instance
func NewBatchProcessor(db TxRunner, queue *queue.ListingQueue, config *config.Config, logger *logrus.Logger) *BatchProcessor {
	return &BatchProcessor{
		db:     db,
		queue:  queue,
		config: config,
		logger: logger,
	}
}

// SetOnProcessed registers a callback invoked after each successfully
// persisted batch, typically to trigger a snapshot reload. Must be called
// before Start.
func (p *BatchProcessor) SetOnProcessed(fn func(count int)) {
	p.onProcessed = fn
}

// Start subscribes the processor to the ingest queue and spins up the
// configured number of queue consumers.
func (p *BatchProcessor) Start() {
	p.queue.Subscribe(func(batch []*models.Listing) error {
		return p.processBatch(batch)
	})
	for i := 0; i < p.config.Ingest.ProcessorCount; i++ {
		p.queue.Start()
	}
}

// processBatch handles a single batch of listings with transaction and retry logic
func (p *BatchProcessor) processBatch(batch []*models.Listing) error {
	var err error
	for attempt := 0; attempt <= p.config.Ingest.MaxRetries; attempt++ {
		if attempt > 0 {
			p.logger.Infof("Retrying batch processing, attempt %d of %d", attempt, p.config.Ingest.MaxRetries)
			time.Sleep(time.Duration(p.config.Ingest.RetryDelay) * time.Second)
		}

		err = p.db.Transaction(func(tx *gorm.DB) error {
			if err := database.UpsertListings(tx, batch); err != nil {
				return fmt.Errorf("failed to upsert listings batch: %w", err)
			}
			return nil
		})

		if err == nil {
			p.logger.Infof("Successfully processed batch of %d listings", len(batch))
			if p.onProcessed != nil {
				p.onProcessed(len(batch))
			}
			return nil
		}

		p.logger.Errorf("Batch processing failed: %v", err)
	}

	return fmt.Errorf("failed to process batch after %d attempts: %w", p.config.Ingest.MaxRetries, err)
}

// EnqueueAll splits listings into batches of the configured size and pushes
// them onto the ingest queue, returning the number of queued batches.
func (p *BatchProcessor) EnqueueAll(listings []models.Listing) (int, error) {
	size := p.config.Ingest.MaxBatchSize
	if size <= 0 {
		size = len(listings)
	}

	batches := 0
	for start := 0; start < len(listings); start += size {
		end := start + size
		if end > len(listings) {
			end = len(listings)
		}
		batch := make([]*models.Listing, 0, end-start)
		for i := start; i < end; i++ {
			l := listings[i]
			batch = append(batch, &l)
		}
		if err := p.queue.Push(batch); err != nil {
			return batches, err
		}
		batches++
	}
	return batches, nil
}
