package database

import (
	"github.com/upper/db/v4"
	"time"
	"vincit.fi/image-viewer/common/logger"
)

type StatusKey string

const (
	SettingsSaved StatusKey = "settings_saved"
)

type StatusStore struct {
	database   *Database
	collection db.Collection
}

func NewStatusStore(database *Database) *StatusStore {
	return &StatusStore{
		database: database,
	}
}

func (s *StatusStore) getCollection() db.Collection {
	if s.collection == nil {
		s.collection = s.database.Session().Collection("status")
	}
	return s.collection
}

func (s *StatusStore) GetStatus(key StatusKey) (*Status, error) {
	var status Status
	if err := s.getCollection().Find(db.Cond{"key": key}).One(&status); err != nil {
		return nil, err
	} else {
		return &status, nil
	}
}

func (s *StatusStore) UpdateTimestamp(key StatusKey, timestamp time.Time) error {
	logger.Debug.Printf("Updating %s to %s", key, timestamp)
	status := &Status{
		Key:       key,
		Timestamp: timestamp,
	}
	result := s.getCollection().Find(db.Cond{"key": key})
	if exists, err := result.Exists(); err != nil {
		return err
	} else if exists {
		return result.Update(status)
	}
	_, err := s.getCollection().Insert(status)
	return err
}
