package session

import (
	"fmt"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Store is a durable string key-value store. Get never fails: a missing or
// unreadable key yields def.
type Store interface {
	Save(key, value string) error
	Get(key, def string) string
	Delete(keys ...string) error
}

type entry struct {
	Key   string `gorm:"column:entry_key;primaryKey"`
	Value string `gorm:"not null"`
}

func (entry) TableName() string { return "session_entries" }

type GormStore struct {
	DB *gorm.DB
}

// OpenFile opens (or creates) a SQLite session file at path.
func OpenFile(path string) (*GormStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}
	return NewGormStore(db)
}

func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&entry{}); err != nil {
		return nil, fmt.Errorf("migrate session store: %w", err)
	}
	return &GormStore{DB: db}, nil
}

func (s *GormStore) Save(key, value string) error {
	e := entry{Key: key, Value: value}
	err := s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "entry_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&e).Error
	if err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func (s *GormStore) Get(key, def string) string {
	var e entry
	if err := s.DB.Where("entry_key = ?", key).First(&e).Error; err != nil {
		return def
	}
	return e.Value
}

func (s *GormStore) Delete(keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := s.DB.Where("entry_key IN ?", keys).Delete(&entry{}).Error; err != nil {
		return fmt.Errorf("delete session keys: %w", err)
	}
	return nil
}

func (s *GormStore) Close() error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (s *MemoryStore) Save(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *MemoryStore) Get(key, def string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if v, ok := s.values[key]; ok {
		return v
	}
	return def
}

func (s *MemoryStore) Delete(keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		delete(s.values, k)
	}
	return nil
}

func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}
