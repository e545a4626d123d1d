package badgerrepo

import (
	"context"
	"fmt"
	"math"

	"interiorhub-web/internal/domain"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
)

// DesignRepository keeps saved designs under design:{visitor}:{inverted time}:{id},
// so a forward prefix scan yields newest first.
type DesignRepository struct {
	db *badger.DB
}

func NewDesignRepository(db *badger.DB) *DesignRepository {
	return &DesignRepository{db: db}
}

func visitorPrefix(visitorID string) []byte {
	return []byte(fmt.Sprintf("design:%s:", visitorID))
}

func designKey(visitorID string, d domain.SavedDesign) []byte {
	inverted := uint64(math.MaxInt64 - d.CreatedAt.UnixNano())
	return []byte(fmt.Sprintf("design:%s:%020d:%s", visitorID, inverted, d.ID))
}

func (r *DesignRepository) Append(ctx context.Context, visitorID string, design domain.SavedDesign) error {
	if visitorID == "" {
		return fmt.Errorf("visitor id is required")
	}
	val, err := json.Marshal(design)
	if err != nil {
		return fmt.Errorf("failed to encode design: %w", err)
	}
	err = r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(designKey(visitorID, design), val)
	})
	if err != nil {
		return fmt.Errorf("failed to save design: %w", err)
	}
	return nil
}

func (r *DesignRepository) List(ctx context.Context, visitorID string) ([]domain.SavedDesign, error) {
	designs := []domain.SavedDesign{}
	if visitorID == "" {
		return designs, nil
	}

	prefix := visitorPrefix(visitorID)
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var d domain.SavedDesign
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &d)
			}); err != nil {
				return fmt.Errorf("failed to decode design %s: %w", it.Item().Key(), err)
			}
			designs = append(designs, d)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return designs, nil
}
