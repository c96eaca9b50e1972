package store

import (
	"encoding/binary"

	"go.etcd.io/bbolt"
)

// schemaVersion is bumped whenever the bucket layout changes.
const schemaVersion uint64 = 1

const schemaVersionKey = "_schema_version"

// migrate creates the buckets that focusplug needs and records the schema
// version alongside the settings.
func (c *Client) migrate(tx *bbolt.Tx) error {
	settings, err := tx.CreateBucketIfNotExists([]byte(settingsBucket))
	if err != nil {
		return err
	}

	_, err = tx.CreateBucketIfNotExists([]byte(sessionBucket))
	if err != nil {
		return err
	}

	if v := settings.Get([]byte(schemaVersionKey)); len(v) == 8 &&
		binary.BigEndian.Uint64(v) >= schemaVersion {
		return nil
	}

	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, schemaVersion)

	return settings.Put([]byte(schemaVersionKey), buf)
}
