package boltdb

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"
)

const keyClientID = "client_id"

// SaveClientID persists the install-unique client identifier
func (s *Storage) SaveClientID(ctx context.Context, id string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}

		if err := bucket.Put([]byte(keyClientID), []byte(id)); err != nil {
			return fmt.Errorf("failed to save client id: %w", err)
		}

		return nil
	})
}

// GetClientID returns the stored client ID, or "" when none exists yet
func (s *Storage) GetClientID(ctx context.Context) (string, error) {
	var id string

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}

		// Отсутствующий ID не ошибка, это первый запуск клиента
		if data := bucket.Get([]byte(keyClientID)); data != nil {
			id = string(data)
		}
		return nil
	})

	if err != nil {
		return "", fmt.Errorf("failed to get client id: %w", err)
	}

	return id, nil
}
