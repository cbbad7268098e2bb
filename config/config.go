package config

import "github.com/caarlos0/env/v6"

type Config struct {
	// Server configuration
	Server struct {
		// Port the HTTP API listens on
		Port int `env:"SERVER_PORT" envDefault:"5250"`
	}

	// Catalog source configuration
	Catalog struct {
		// Path to the rent catalog CSV
		CSVPath string `env:"CATALOG_CSV" envDefault:"data/mmr_rent_data.csv"`

		// Path to the SQLite database holding the input table
		DBPath string `env:"CATALOG_DB" envDefault:"database/rentcompare.db"`

		// Load the catalog from the database instead of the CSV file
		FromDatabase bool `env:"CATALOG_FROM_DB" envDefault:"false"`

		// Seconds between catalog file change checks (0 disables polling)
		PollInterval int `env:"CATALOG_POLL_SECONDS" envDefault:"0"`
	}

	// Ingest configuration
	Ingest struct {
		// Maximum number of listings per upsert batch
		MaxBatchSize int `env:"INGEST_MAX_BATCH_SIZE" envDefault:"100"`

		// Number of concurrent batch processors
		ProcessorCount int `env:"INGEST_PROCESSOR_COUNT" envDefault:"1"`

		// Maximum number of retries for failed batches
		MaxRetries int `env:"INGEST_MAX_RETRIES" envDefault:"3"`

		// Delay between retries in seconds
		RetryDelay int `env:"INGEST_RETRY_DELAY" envDefault:"5"`

		// Buffer size of the ingest queue
		QueueSize int `env:"INGEST_QUEUE_SIZE" envDefault:"10"`
	}
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
