package database

import (
	"database/sql"
	"fmt"

	"git.sr.ht/~jakintosh/tutor/internal/service"
)

func (s *SQLiteStore) InsertUser(
	user *service.User,
) error {
	_, err := s.db.Exec(`
		INSERT INTO users (id, name, username, password_hash, role)
		VALUES (?1, ?2, ?3, ?4, ?5);`,
		user.ID,
		user.Name,
		user.Username,
		user.PasswordHash,
		user.Role,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", service.ErrHandleExists, user.Username)
		}
		return fmt.Errorf("couldn't insert into users: %v", err)
	}
	return nil
}

// GetUser returns sql.ErrNoRows (unwrapped) when username is unknown.
func (s *SQLiteStore) GetUser(
	username string,
) (
	*service.User,
	error,
) {
	row := s.db.QueryRow(`
		SELECT id, name, username, password_hash, role
		FROM users u
		WHERE u.username=?1;`,
		username,
	)

	user := &service.User{}
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Username,
		&user.PasswordHash,
		&user.Role,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *SQLiteStore) UpdatePasswordHash(
	userID string,
	hash string,
) error {
	result, err := s.db.Exec(`
		UPDATE users
		SET password_hash=?1
		WHERE id=?2;`,
		hash,
		userID,
	)
	if err != nil {
		return fmt.Errorf("couldn't update users: %v", err)
	}
	if resultsEmpty(result) {
		return sql.ErrNoRows
	}
	return nil
}

func (s *SQLiteStore) ListUsers() ([]service.User, error) {
	rows, err := s.db.Query(`
		SELECT id, name, username, role
		FROM users
		ORDER BY name;`,
	)
	if err != nil {
		return nil, fmt.Errorf("couldn't query users: %v", err)
	}
	defer rows.Close()

	users := []service.User{}
	for rows.Next() {
		var user service.User
		if err := rows.Scan(&user.ID, &user.Name, &user.Username, &user.Role); err != nil {
			return nil, fmt.Errorf("couldn't scan user: %v", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("couldn't iterate users: %v", err)
	}
	return users, nil
}
