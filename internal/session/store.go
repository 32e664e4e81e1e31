// Package session persists the mutable settings of the drop widget: the
// selected tier, its picture and the output directory.
package session

import (
	"errors"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const sessionID = 1

// FileName is the database file created inside the application data directory.
const FileName = "session.sqlite3"

// Store handles session persistence
type Store struct {
	db *gorm.DB
}

// Open opens (or creates) the session database at dbPath.
func Open(dbPath string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open session database %s: %w", dbPath, err)
	}

	if err := db.AutoMigrate(&Session{}); err != nil {
		return nil, fmt.Errorf("migrate session database: %w", err)
	}

	return &Store{db: db}, nil
}

// Get returns the session, creating it from seed on first use.
// The seed is ignored once a session exists.
func (s *Store) Get(seed Seed) (*Session, error) {
	return s.getOrCreate(seed)
}

// SetTier records the selected tier and its picture.
func (s *Store) SetTier(tier, picture string) (*Session, error) {
	sess, err := s.getOrCreate(Seed{})
	if err != nil {
		return nil, err
	}
	sess.Tier = tier
	sess.Picture = picture
	if err := s.db.Save(sess).Error; err != nil {
		return nil, fmt.Errorf("save tier: %w", err)
	}
	return sess, nil
}

// SetOutputDir records the directory compressed files are written to.
func (s *Store) SetOutputDir(dir string) (*Session, error) {
	sess, err := s.getOrCreate(Seed{})
	if err != nil {
		return nil, err
	}
	sess.OutputDir = dir
	if err := s.db.Save(sess).Error; err != nil {
		return nil, fmt.Errorf("save output directory: %w", err)
	}
	return sess, nil
}

// Close releases the underlying connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *Store) getOrCreate(seed Seed) (*Session, error) {
	var sess Session

	result := s.db.First(&sess, sessionID)
	if result.Error == nil {
		return &sess, nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("load session: %w", result.Error)
	}

	sess = Session{
		ID:        sessionID,
		Tier:      seed.Tier,
		Picture:   seed.Picture,
		OutputDir: seed.OutputDir,
	}
	if err := s.db.Create(&sess).Error; err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return &sess, nil
}
