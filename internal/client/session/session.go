// Package session persists the signed-in user and its tokens in a local
// SQLite database so the CLI can resume after a restart.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/gophforum/internal/client/session/migrations"
	"github.com/dmitrijs2005/gophforum/internal/dbx"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

const (
	keyUser         = "user"
	keyAccessToken  = "access_token"
	keyRefreshToken = "refresh_token"
)

// User is the cached identity of the signed-in user.
type User struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	IsModerator bool   `json:"is_moderator"`
}

type Session struct {
	User         User
	AccessToken  string
	RefreshToken string
}

type Store struct {
	db *sql.DB
}

// gooseUpContext is a seam for tests.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, ".")
}

// Open opens (creating if needed) the session database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("session migrations: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Load returns the stored session, or nil when nobody is signed in.
func (s *Store) Load(ctx context.Context) (*Session, error) {
	kv := newKVRepository(s.db)

	raw, err := kv.Get(ctx, keyUser)
	if err != nil || raw == nil {
		return nil, err
	}
	var out Session
	if err := json.Unmarshal(raw, &out.User); err != nil {
		return nil, fmt.Errorf("corrupt session user: %w", err)
	}

	access, err := kv.Get(ctx, keyAccessToken)
	if err != nil {
		return nil, err
	}
	refresh, err := kv.Get(ctx, keyRefreshToken)
	if err != nil {
		return nil, err
	}
	out.AccessToken, out.RefreshToken = string(access), string(refresh)
	return &out, nil
}

// Save replaces the stored session atomically.
func (s *Store) Save(ctx context.Context, sess *Session) error {
	raw, err := json.Marshal(sess.User)
	if err != nil {
		return err
	}
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		kv := newKVRepository(tx)
		if err := kv.Clear(ctx); err != nil {
			return err
		}
		if err := kv.Set(ctx, keyUser, raw); err != nil {
			return err
		}
		if err := kv.Set(ctx, keyAccessToken, []byte(sess.AccessToken)); err != nil {
			return err
		}
		return kv.Set(ctx, keyRefreshToken, []byte(sess.RefreshToken))
	})
}

// SaveTokens updates the tokens of the stored session.
func (s *Store) SaveTokens(ctx context.Context, access, refresh string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		kv := newKVRepository(tx)
		if err := kv.Set(ctx, keyAccessToken, []byte(access)); err != nil {
			return err
		}
		return kv.Set(ctx, keyRefreshToken, []byte(refresh))
	})
}

// Clear forgets the signed-in user.
func (s *Store) Clear(ctx context.Context) error {
	return newKVRepository(s.db).Clear(ctx)
}
