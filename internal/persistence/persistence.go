package persistence

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/markusressel/i8kfans/internal/policy"
	"github.com/markusressel/i8kfans/internal/ui"
	bolt "go.etcd.io/bbolt"
)

const (
	BucketActuations = "actuations"
)

var ErrNotFound = errors.New("no actuation history found")

// FanRecord is the state of a single fan at the time of an actuation.
type FanRecord struct {
	Temperature int               `json:"temperature"`
	Current     policy.SpeedLevel `json:"current"`
	Target      policy.SpeedLevel `json:"target"`
	// Command is the wire form sent to the actuator, "-" for an unchanged fan
	Command string `json:"command"`
}

// ActuationRecord is a single level change issued by the control loop.
type ActuationRecord struct {
	Time time.Time `json:"time"`
	Cpu  FanRecord `json:"cpu"`
	Gpu  FanRecord `json:"gpu"`
}

func NewFanRecord(state policy.FanState) FanRecord {
	return FanRecord{
		Temperature: state.Temperature,
		Current:     state.Current,
		Target:      state.Target,
		Command:     state.Command().String(),
	}
}

// NewActuationRecord captures the given decision at the given time.
func NewActuationRecord(t time.Time, decision policy.Decision) ActuationRecord {
	return ActuationRecord{
		Time: t,
		Cpu:  NewFanRecord(decision.Cpu),
		Gpu:  NewFanRecord(decision.Gpu),
	}
}

type Persistence interface {
	Init() error

	SaveActuation(record ActuationRecord) error
	// LoadActuations returns up to limit records, newest first. A limit <= 0 returns all records.
	LoadActuations(limit int) ([]ActuationRecord, error)
	LoadLatestActuation() (ActuationRecord, error)
	// Prune removes all but the newest keep records
	Prune(keep int) error
	DeleteHistory() error
}

type persistence struct {
	dbPath string
}

func NewPersistence(dbPath string) Persistence {
	p := &persistence{
		dbPath: dbPath,
	}
	return p
}

func (p persistence) Init() (err error) {
	// get parent path of dbPath
	parentDir := filepath.Dir(p.dbPath)
	_, err = os.Stat(parentDir)
	if errors.Is(err, os.ErrNotExist) {
		// create directory
		ui.Info("Creating directory for db: %s", parentDir)
		err = os.MkdirAll(parentDir, 0755)
		if err != nil {
			return err
		}
	}
	return nil
}

// the db is opened per operation, so the CLI can read it while the daemon is running
func (p persistence) openPersistence() (db *bolt.DB, err error) {
	db, err = bolt.Open(p.dbPath, 0600, &bolt.Options{Timeout: 10 * time.Second})
	if err != nil {
		return nil, err
	}
	return db, nil
}

// timeKey encodes t as big endian unix nanos, so cursor order is time order
func timeKey(t time.Time) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, uint64(t.UnixNano()))
	return key
}

func (p persistence) SaveActuation(record ActuationRecord) (err error) {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	data, err := json.Marshal(record)
	if err != nil {
		return err
	}

	return db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(BucketActuations))
		if err != nil {
			return fmt.Errorf("create bucket: %s", err)
		}
		return b.Put(timeKey(record.Time), data)
	})
}

func (p persistence) LoadActuations(limit int) ([]ActuationRecord, error) {
	db, err := p.openPersistence()
	if err != nil {
		return nil, err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	var result []ActuationRecord
	err = db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketActuations))
		if b == nil {
			return nil
		}

		c := b.Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			if limit > 0 && len(result) >= limit {
				break
			}
			var record ActuationRecord
			if err := json.Unmarshal(v, &record); err != nil {
				ui.Warning("Skipping unreadable actuation record: %v", err)
				continue
			}
			result = append(result, record)
		}
		return nil
	})

	return result, err
}

func (p persistence) LoadLatestActuation() (ActuationRecord, error) {
	records, err := p.LoadActuations(1)
	if err != nil {
		return ActuationRecord{}, err
	}
	if len(records) <= 0 {
		return ActuationRecord{}, ErrNotFound
	}
	return records[0], nil
}

func (p persistence) Prune(keep int) error {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	return db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketActuations))
		if b == nil {
			// nothing recorded yet
			return nil
		}

		// collect first, deleting while iterating skips keys
		var keys [][]byte
		c := b.Cursor()
		for k, _ := c.First(); k != nil; k, _ = c.Next() {
			keys = append(keys, append([]byte(nil), k...))
		}

		excess := len(keys) - keep
		if excess <= 0 {
			return nil
		}
		keys = keys[:excess]
		for _, k := range keys {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
}

func (p persistence) DeleteHistory() error {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	return db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket([]byte(BucketActuations)) == nil {
			// no history yet
			return nil
		}
		return tx.DeleteBucket([]byte(BucketActuations))
	})
}
