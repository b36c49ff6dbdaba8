package database

import (
	"github.com/upper/db/v4"
	"time"
)

// SettingStore is a plain name/value table.
type SettingStore struct {
	database   *Database
	collection db.Collection
}

func NewSettingStore(database *Database) *SettingStore {
	return &SettingStore{
		database: database,
	}
}

func (s *SettingStore) getCollection() db.Collection {
	if s.collection == nil {
		s.collection = s.database.Session().Collection("setting")
	}
	return s.collection
}

func (s *SettingStore) GetAll() (map[string]string, error) {
	var settings []Setting
	if err := s.getCollection().Find().OrderBy("name").All(&settings); err != nil {
		return nil, err
	}
	values := make(map[string]string, len(settings))
	for _, setting := range settings {
		values[setting.Name] = setting.Value
	}
	return values, nil
}

func (s *SettingStore) Get(name string) (string, bool, error) {
	var setting Setting
	err := s.getCollection().Find(db.Cond{"name": name}).One(&setting)
	if err == db.ErrNoMoreRows {
		return "", false, nil
	} else if err != nil {
		return "", false, err
	}
	return setting.Value, true, nil
}

// PutAll replaces the given values in a single transaction.
func (s *SettingStore) PutAll(values map[string]string) error {
	now := time.Now()
	return s.database.Session().Tx(func(session db.Session) error {
		collection := session.Collection("setting")
		for name, value := range values {
			setting := &Setting{Name: name, Value: value, ModifiedTimestamp: now}
			result := collection.Find(db.Cond{"name": name})
			if exists, err := result.Exists(); err != nil {
				return err
			} else if exists {
				if err := result.Update(setting); err != nil {
					return err
				}
			} else if _, err := collection.Insert(setting); err != nil {
				return err
			}
		}
		return nil
	})
}
