package theme

import "github.com/catpaladin/inkwell/internal/db"

// preferenceKey is the single row under which the mode is stored.
const preferenceKey = "theme"

// DBStore persists the mode in the preferences table.
type DBStore struct {
	db *db.DB
}

// NewDBStore wraps an open database as a theme store.
func NewDBStore(database *db.DB) *DBStore {
	return &DBStore{db: database}
}

func (s *DBStore) Get() (Mode, bool, error) {
	value, ok, err := s.db.GetPreference(preferenceKey)
	if err != nil || !ok {
		return "", false, err
	}
	mode := Mode(value)
	if !mode.Valid() {
		return "", false, nil
	}
	return mode, true, nil
}

func (s *DBStore) Set(mode Mode) error {
	return s.db.SetPreference(preferenceKey, string(mode))
}
