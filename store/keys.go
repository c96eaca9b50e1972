package store

import (
	"encoding/json"
	"errors"
)

// Keys of the settings space.
const (
	KeyCurrentStreak         = "currentStreak"
	KeyTodaysSessions        = "todaysSessions"
	KeyTodaysFocusTime       = "todaysFocusTime"
	KeyTotalSessions         = "totalSessions"
	KeyTotalFocusTime        = "totalFocusTime"
	KeyLastSessionDate       = "lastSessionDate"
	KeyLastSaveDate          = "lastSaveDate"
	KeyBlockedWebsites       = "blockedWebsites"
	KeyWebsiteBlockerEnabled = "websiteBlockerEnabled"
)

// Load decodes the JSON value stored under key into a T. The boolean result
// is false when the key has never been written.
func Load[T any](r Reader, key string) (T, bool, error) {
	var v T

	b, err := r.Get(key)
	if errors.Is(err, ErrNotFound) {
		return v, false, nil
	}

	if err != nil {
		return v, false, err
	}

	if err := json.Unmarshal(b, &v); err != nil {
		return v, false, errDecodeValue.Fmt(key).Wrap(err)
	}

	return v, true, nil
}

// Encode converts entries to their stored JSON form.
func Encode(entries map[string]any) (map[string][]byte, error) {
	encoded := make(map[string][]byte, len(entries))

	for k, v := range entries {
		b, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}

		encoded[k] = b
	}

	return encoded, nil
}
