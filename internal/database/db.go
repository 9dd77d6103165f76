// Package database persists the store's collections as keyed textual
// records: one row per collection, the whole value serialized as JSON and
// overwritten on every write. A missing or unparsable record is never a hard
// failure — the caller falls back to its default and keeps going.
package database

import (
	"encoding/json"
	"log"
	"os"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Record - one keyed collection snapshot (products, purchases, sales, user).
type Record struct {
	Key       string `gorm:"primaryKey;size:64"`
	Value     string
	UpdatedAt time.Time
}

// KV wraps the records table behind the simple read/write contract the
// store expects.
type KV struct {
	db *gorm.DB
}

// Connect opens the records database.
//
// With DB_DSN set in .env we use MySQL (multi-terminal setups); otherwise
// everything lives in a local SQLite file, which is the normal single-shop
// deployment. SQLITE_PATH overrides the default ./smartstore.db.
func Connect() (*KV, error) {
	dsn := os.Getenv("DB_DSN")

	var db *gorm.DB
	var err error

	if dsn != "" {
		// Wait for MySQL to be ready
		for i := 0; i < 5; i++ {
			db, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
				Logger: logger.Default.LogMode(logger.Warn),
			})
			if err == nil {
				break
			}
			log.Printf("Failed to connect to database. Retrying in 2 seconds... (%d/5)", i+1)
			time.Sleep(2 * time.Second)
		}
		if err != nil {
			return nil, err
		}
		log.Println("✅ Connected to MySQL")
	} else {
		path := os.Getenv("SQLITE_PATH")
		if path == "" {
			path = "smartstore.db"
		}
		db, err = gorm.Open(sqlite.Open(path), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		})
		if err != nil {
			return nil, err
		}
		log.Println("✅ Using local records file: " + path)
	}

	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, err
	}

	return &KV{db: db}, nil
}

// Read loads the record under key into out. It reports false when the key is
// missing or holds something that won't decode, so the caller keeps its
// fallback value.
func (kv *KV) Read(key string, out interface{}) bool {
	var rec Record
	if err := kv.db.First(&rec, "key = ?", key).Error; err != nil {
		return false
	}
	if !decode(rec.Value, out) {
		log.Printf("⚠️ Record %q is corrupt, falling back to defaults", key)
		return false
	}
	return true
}

// Write serializes val and overwrites the whole record under key.
func (kv *KV) Write(key string, val interface{}) error {
	b, err := json.Marshal(val)
	if err != nil {
		return err
	}

	rec := Record{Key: key, Value: string(b), UpdatedAt: time.Now()}
	return kv.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		UpdateAll: true,
	}).Create(&rec).Error
}

// decode parses a stored value; false means corrupt (or empty).
func decode(raw string, out interface{}) bool {
	if raw == "" {
		return false
	}
	return json.Unmarshal([]byte(raw), out) == nil
}
