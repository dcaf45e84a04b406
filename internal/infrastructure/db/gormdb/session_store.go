package gormdb

import (
	"bytes"
	"context"
	"encoding/base32"
	"encoding/gob"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const defaultSessionMaxAge = 86400

// sessionRecord is one row of the session table.
type sessionRecord struct {
	SID       string    `gorm:"column:sid;primaryKey;size:64"`
	Data      []byte    `gorm:"column:sess;not null"`
	ExpiresAt time.Time `gorm:"column:expire;index;not null"`
}

func (sessionRecord) TableName() string { return "session" }

func init() {
	// Flashes are stored as []interface{}.
	gob.Register([]interface{}{})
}

// SessionStore is a gorilla sessions.Store that keeps session values in the
// session table and only the signed session id in the cookie.
type SessionStore struct {
	db      *gorm.DB
	Codecs  []securecookie.Codec
	Options *sessions.Options
	now     func() time.Time
}

// NewSessionStore creates a store. keyPairs are passed to securecookie to
// sign (and optionally encrypt) the session id cookie.
func NewSessionStore(db *gorm.DB, keyPairs ...[]byte) *SessionStore {
	return &SessionStore{
		db:     db,
		Codecs: securecookie.CodecsFromPairs(keyPairs...),
		Options: &sessions.Options{
			Path:     "/",
			MaxAge:   defaultSessionMaxAge,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		},
		now: time.Now,
	}
}

// Get returns the session cached in the request registry, loading it on
// first use.
func (s *SessionStore) Get(r *http.Request, name string) (*sessions.Session, error) {
	return sessions.GetRegistry(r).Get(s, name)
}

// New loads the session named by the request cookie or starts a fresh one.
// An unreadable cookie or a missing row yields a new session.
func (s *SessionStore) New(r *http.Request, name string) (*sessions.Session, error) {
	session := sessions.NewSession(s, name)
	opts := *s.Options
	session.Options = &opts
	session.IsNew = true

	c, err := r.Cookie(name)
	if err != nil {
		return session, nil
	}
	if err := securecookie.DecodeMulti(name, c.Value, &session.ID, s.Codecs...); err != nil {
		return session, nil
	}
	if err := s.load(r.Context(), session); err == nil {
		session.IsNew = false
	}
	return session, nil
}

// Save persists the session and writes its cookie. A negative MaxAge
// deletes the row and expires the cookie.
func (s *SessionStore) Save(r *http.Request, w http.ResponseWriter, session *sessions.Session) error {
	if session.Options.MaxAge < 0 {
		if err := s.delete(r.Context(), session); err != nil {
			return err
		}
		http.SetCookie(w, sessions.NewCookie(session.Name(), "", session.Options))
		return nil
	}

	if session.ID == "" {
		session.ID = strings.TrimRight(
			base32.StdEncoding.EncodeToString(securecookie.GenerateRandomKey(32)), "=")
	}
	if err := s.save(r.Context(), session); err != nil {
		return err
	}

	encoded, err := securecookie.EncodeMulti(session.Name(), session.ID, s.Codecs...)
	if err != nil {
		return err
	}
	http.SetCookie(w, sessions.NewCookie(session.Name(), encoded, session.Options))
	return nil
}

// Cleanup deletes expired rows every interval until ctx is cancelled.
func (s *SessionStore) Cleanup(ctx context.Context, interval time.Duration, log zerolog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.DeleteExpired(ctx)
			if err != nil {
				log.Error().Err(err).Msg("session cleanup failed")
				continue
			}
			if n > 0 {
				log.Debug().Int64("deleted", n).Msg("expired sessions removed")
			}
		}
	}
}

// DeleteExpired removes every row past its expiry.
func (s *SessionStore) DeleteExpired(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).Where("expire < ?", s.now().UTC()).Delete(&sessionRecord{})
	return res.RowsAffected, res.Error
}

func (s *SessionStore) maxAge(session *sessions.Session) time.Duration {
	age := session.Options.MaxAge
	if age == 0 {
		age = s.Options.MaxAge
	}
	return time.Duration(age) * time.Second
}

func (s *SessionStore) save(ctx context.Context, session *sessions.Session) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(session.Values); err != nil {
		return fmt.Errorf("encode session values: %w", err)
	}

	rec := sessionRecord{
		SID:       session.ID,
		Data:      buf.Bytes(),
		ExpiresAt: s.now().UTC().Add(s.maxAge(session)),
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "sid"}},
		DoUpdates: clause.AssignmentColumns([]string{"sess", "expire"}),
	}).Create(&rec).Error
}

func (s *SessionStore) load(ctx context.Context, session *sessions.Session) error {
	var rec sessionRecord
	err := s.db.WithContext(ctx).First(&rec, "sid = ? AND expire > ?", session.ID, s.now().UTC()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errors.New("session not found")
	}
	if err != nil {
		return err
	}
	if err := gob.NewDecoder(bytes.NewReader(rec.Data)).Decode(&session.Values); err != nil {
		return fmt.Errorf("decode session values: %w", err)
	}
	return nil
}

func (s *SessionStore) delete(ctx context.Context, session *sessions.Session) error {
	if session.ID == "" {
		return nil
	}
	return s.db.WithContext(ctx).Delete(&sessionRecord{}, "sid = ?", session.ID).Error
}
