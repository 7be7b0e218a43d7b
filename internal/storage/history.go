// Copyright (c) 2024-2025 Cogitto Health
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/cogitto/cogitto-tui/internal/model"
	"github.com/cogitto/cogitto-tui/internal/util"
)

// =============================================================================
// ERRORS
// =============================================================================

// ErrSessionNotFound is returned when a session has no stored messages.
var ErrSessionNotFound = &HistoryError{Message: "session not found"}

// HistoryError represents a history-store error.
type HistoryError struct {
	Message string
}

func (e *HistoryError) Error() string {
	return e.Message
}

// Is implements errors.Is support.
func (e *HistoryError) Is(target error) bool {
	t, ok := target.(*HistoryError)
	return ok && e.Message == t.Message
}

// =============================================================================
// HISTORY STORE
// =============================================================================

// HistoryStore is the SQLite-backed chat history. It implements
// session.Recorder.
type HistoryStore struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS messages (
	session_id       TEXT NOT NULL,
	message_id       TEXT NOT NULL,
	conversation_id  TEXT NOT NULL DEFAULT '',
	role             TEXT NOT NULL,
	content          TEXT NOT NULL,
	risk_level       TEXT NOT NULL DEFAULT '',
	ai_model         TEXT NOT NULL DEFAULT '',
	confidence_score REAL NOT NULL DEFAULT 0,
	medications      TEXT NOT NULL DEFAULT '[]',
	created_at       INTEGER NOT NULL,
	PRIMARY KEY (session_id, message_id)
);

CREATE INDEX IF NOT EXISTS idx_messages_session_time
	ON messages(session_id, created_at);
`

// OpenHistory opens (and if needed creates) the history database at
// path.
func OpenHistory(path string) (*HistoryStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA temp_store=MEMORY",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &HistoryStore{db: db}, nil
}

// Close releases the database handle.
func (s *HistoryStore) Close() error {
	return s.db.Close()
}

// =============================================================================
// SAVE
// =============================================================================

// SaveMessage appends one message to the history. Re-saving the same
// (session, message) pair overwrites it, so replays are harmless.
func (s *HistoryStore) SaveMessage(sessionID, conversationID string, msg model.Message) error {
	meds, err := json.Marshal(msg.MentionedMedications)
	if err != nil {
		meds = []byte("[]")
	}

	_, err = s.db.Exec(`
		INSERT OR REPLACE INTO messages
			(session_id, message_id, conversation_id, role, content,
			 risk_level, ai_model, confidence_score, medications, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sessionID, msg.ID, conversationID, msg.Role.String(), msg.Content,
		msg.RiskLevel.String(), msg.AIModel, msg.ConfidenceScore,
		string(meds), msg.Timestamp.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to save message: %w", err)
	}
	return nil
}

// =============================================================================
// SESSION LISTING
// =============================================================================

// SessionMeta summarizes one stored session for listings.
type SessionMeta struct {
	SessionID      string
	ConversationID string
	StartedAt      time.Time
	LastAt         time.Time
	MessageCount   int
	Preview        string // first user message, truncated
}

// ListSessions returns stored sessions, most recent activity first.
func (s *HistoryStore) ListSessions() ([]SessionMeta, error) {
	rows, err := s.db.Query(`
		SELECT session_id,
		       MAX(conversation_id),
		       MIN(created_at),
		       MAX(created_at),
		       COUNT(*)
		FROM messages
		GROUP BY session_id
		ORDER BY MAX(created_at) DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var metas []SessionMeta
	for rows.Next() {
		var meta SessionMeta
		var started, last int64
		if err := rows.Scan(&meta.SessionID, &meta.ConversationID, &started, &last, &meta.MessageCount); err != nil {
			return nil, err
		}
		meta.StartedAt = time.Unix(started, 0)
		meta.LastAt = time.Unix(last, 0)
		metas = append(metas, meta)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range metas {
		metas[i].Preview = s.firstUserMessage(metas[i].SessionID)
	}
	return metas, nil
}

// firstUserMessage returns a truncated preview of the session's first
// user message, or "" when the session holds none.
func (s *HistoryStore) firstUserMessage(sessionID string) string {
	var content string
	err := s.db.QueryRow(`
		SELECT content FROM messages
		WHERE session_id = ? AND role = 'user'
		ORDER BY created_at ASC LIMIT 1`, sessionID).Scan(&content)
	if err != nil {
		return ""
	}
	content = strings.ReplaceAll(content, "\n", " ")
	return util.TruncateWidth(content, 60)
}

// =============================================================================
// MESSAGE RETRIEVAL
// =============================================================================

// SessionMessages returns the stored transcript of one session, oldest
// first.
func (s *HistoryStore) SessionMessages(sessionID string) ([]model.Message, error) {
	rows, err := s.db.Query(`
		SELECT message_id, role, content, risk_level, ai_model,
		       confidence_score, medications, created_at
		FROM messages
		WHERE session_id = ?
		ORDER BY created_at ASC, rowid ASC`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	defer rows.Close()

	var msgs []model.Message
	for rows.Next() {
		var (
			msg     model.Message
			role    string
			risk    string
			meds    string
			created int64
		)
		if err := rows.Scan(&msg.ID, &role, &msg.Content, &risk, &msg.AIModel,
			&msg.ConfidenceScore, &meds, &created); err != nil {
			return nil, err
		}
		msg.Role = model.Role(role)
		msg.RiskLevel = model.RiskLevel(risk)
		msg.Timestamp = time.Unix(created, 0)
		// Corrupt medication JSON degrades to an empty list.
		_ = json.Unmarshal([]byte(meds), &msg.MentionedMedications)
		msgs = append(msgs, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(msgs) == 0 {
		return nil, ErrSessionNotFound
	}
	return msgs, nil
}

// SearchMessages returns sessions whose content matches the query,
// case-insensitive, most recent first.
func (s *HistoryStore) SearchMessages(query string) ([]SessionMeta, error) {
	if query == "" {
		return s.ListSessions()
	}

	all, err := s.ListSessions()
	if err != nil {
		return nil, err
	}

	var results []SessionMeta
	for _, meta := range all {
		var n int
		err := s.db.QueryRow(`
			SELECT COUNT(*) FROM messages
			WHERE session_id = ? AND content LIKE ?`,
			meta.SessionID, "%"+query+"%").Scan(&n)
		if err != nil {
			return nil, err
		}
		if n > 0 {
			results = append(results, meta)
		}
	}
	return results, nil
}

// =============================================================================
// MAINTENANCE
// =============================================================================

// Prune deletes messages older than the retention window. A zero or
// negative retention keeps everything.
func (s *HistoryStore) Prune(retention time.Duration) (int64, error) {
	if retention <= 0 {
		return 0, nil
	}
	cutoff := time.Now().Add(-retention).Unix()

	res, err := s.db.Exec(`DELETE FROM messages WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune history: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// DeleteSession removes one session's messages.
func (s *HistoryStore) DeleteSession(sessionID string) error {
	res, err := s.db.Exec(`DELETE FROM messages WHERE session_id = ?`, sessionID)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// Clear removes all stored history.
func (s *HistoryStore) Clear() error {
	_, err := s.db.Exec(`DELETE FROM messages`)
	return err
}

// =============================================================================
// SESSION LIST FORMATTING
// =============================================================================

// FormatSessionList renders session metadata as a plain text table for
// the history command.
func FormatSessionList(sessions []SessionMeta) string {
	if len(sessions) == 0 {
		return "No chat history found."
	}

	var sb strings.Builder
	sb.WriteString("Chat history:\n")
	sb.WriteString(strings.Repeat("-", 78) + "\n")
	sb.WriteString(util.PadWidth("Session", 34) + " " +
		util.PadWidth("Last activity", 17) + " " +
		util.PadWidth("Msgs", 5) + " Preview\n")
	sb.WriteString(strings.Repeat("-", 78) + "\n")

	for _, s := range sessions {
		sb.WriteString(util.PadWidth(s.SessionID, 34) + " " +
			util.PadWidth(s.LastAt.Format("2006-01-02 15:04"), 17) + " " +
			util.PadWidth(fmt.Sprintf("%d", s.MessageCount), 5) + " " +
			util.TruncateWidth(s.Preview, 25) + "\n")
	}
	return sb.String()
}
