package store

import (
	"database/sql"
	"fmt"
)

// CreateUser inserts a new credential row.
//
// No uniqueness check is applied to the username: duplicate usernames are
// permitted and the first matching row wins on reads. Password is stored in
// clear text. Both are deliberate fidelity to the legacy on-device store;
// neither is acceptable for anything beyond a single-user device database.
func (s *Store) CreateUser(username, password string) error {
	_, err := s.db.Exec(`
		INSERT INTO users (username, password)
		VALUES (?, ?)
	`, username, password)

	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// AuthenticateUser reports whether a credential row exists with an exact
// string match on both username and password. A missing user is not an
// error, just false.
func (s *Store) AuthenticateUser(username, password string) (bool, error) {
	var id int64
	err := s.db.QueryRow(`
		SELECT id FROM users WHERE username = ? AND password = ?
	`, username, password).Scan(&id)

	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to authenticate user: %w", err)
	}

	return true, nil
}
