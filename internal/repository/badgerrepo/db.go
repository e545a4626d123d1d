package badgerrepo

import (
	"errors"
	"fmt"
	"os"

	"interiorhub-web/pkg/logger"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"
)

// zerologAdapter routes badger's internal logging through the app logger.
type zerologAdapter struct {
	log *zerolog.Logger
}

func (l *zerologAdapter) Errorf(format string, args ...interface{}) {
	l.log.Error().Msgf(format, args...)
}

func (l *zerologAdapter) Warningf(format string, args ...interface{}) {
	l.log.Warn().Msgf(format, args...)
}

func (l *zerologAdapter) Infof(format string, args ...interface{}) {
	l.log.Debug().Msgf(format, args...)
}

func (l *zerologAdapter) Debugf(format string, args ...interface{}) {
	l.log.Trace().Msgf(format, args...)
}

// Open opens the saved-designs database at dir, or in memory when inMemory is set.
func Open(dir string, inMemory bool) (*badger.DB, error) {
	if !inMemory && dir == "" {
		return nil, errors.New("path is required for persistent database")
	}

	var opts badger.Options
	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("create database directory %s: %w", dir, err)
		}
		opts = badger.DefaultOptions(dir)
	}

	l := logger.Get().With().Str("component", "badger").Logger()
	opts = opts.WithLogger(&zerologAdapter{log: &l})

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger database: %w", err)
	}
	return db, nil
}
