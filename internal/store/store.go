package store

import (
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"github.com/keagud/gptty/internal/apperrors"
	"github.com/keagud/gptty/internal/chatmodel"
)

// Save upserts thread and its title, writes every message whose
// timestamp strictly exceeds the maximum already stored for this
// thread (making repeated saves idempotent), and upserts its
// summaries. Message and summary writes happen inside one transaction.
func (s *Store) Save(thread *chatmodel.Thread) error {
	tx, err := s.db.Begin()
	if err != nil {
		return apperrors.Store("begin save transaction", err)
	}
	defer tx.Rollback() //nolint:errcheck

	id := thread.StrID()

	if _, err := tx.Exec(
		`INSERT INTO thread(id, model) VALUES (?, ?)
		 ON CONFLICT(id) DO UPDATE SET model = excluded.model`,
		id, string(thread.Model),
	); err != nil {
		return apperrors.Store("upsert thread", err)
	}

	if thread.Title != nil {
		if _, err := tx.Exec(
			`INSERT INTO title(id, content) VALUES (?, ?)
			 ON CONFLICT(id) DO UPDATE SET content = excluded.content`,
			id, *thread.Title,
		); err != nil {
			return apperrors.Store("upsert title", err)
		}
	}

	var maxTimestamp sql.NullFloat64
	row := tx.QueryRow(`SELECT MAX(timestamp) FROM message WHERE thread_id = ?`, id)
	if err := row.Scan(&maxTimestamp); err != nil {
		return apperrors.Store("read max stored timestamp", err)
	}

	insertMessage, err := tx.Prepare(
		`INSERT INTO message(thread_id, role, content, timestamp, tokens) VALUES (?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return apperrors.Store("prepare message insert", err)
	}
	defer insertMessage.Close()

	for _, m := range thread.Messages {
		epoch := m.TimestampEpoch()
		if maxTimestamp.Valid && epoch <= maxTimestamp.Float64 {
			continue
		}

		var tokens sql.NullInt64
		if m.Tokens != nil {
			tokens = sql.NullInt64{Int64: int64(*m.Tokens), Valid: true}
		}

		if _, err := insertMessage.Exec(id, m.Role.ToNum(), m.Content, epoch, tokens); err != nil {
			return apperrors.Store("insert message", err)
		}
	}

	for _, sm := range thread.Summaries {
		if _, err := tx.Exec(
			`INSERT INTO summary(thread_id, start_index, end_index, content) VALUES (?, ?, ?, ?)
			 ON CONFLICT(thread_id, start_index, end_index) DO UPDATE SET content = excluded.content`,
			id, sm.StartIndex, sm.EndIndex, sm.Content,
		); err != nil {
			return apperrors.Store("upsert summary", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return apperrors.Store("commit save transaction", err)
	}

	return nil
}

// Load reads the thread with the given identifier, its messages in
// ascending timestamp order, its title if any, and its summaries.
func (s *Store) Load(id uuid.UUID) (*chatmodel.Thread, error) {
	strID := simpleUUID(id)

	var model string
	row := s.db.QueryRow(`SELECT model FROM thread WHERE id = ?`, strID)
	if err := row.Scan(&model); err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.Store("thread not found", err)
		}
		return nil, apperrors.Store("read thread", err)
	}

	messages, err := s.loadMessages(strID)
	if err != nil {
		return nil, err
	}

	thread := chatmodel.NewThread(messages, chatmodel.Model(model), id, chatmodel.DefaultPrompt())

	var title string
	titleRow := s.db.QueryRow(`SELECT content FROM title WHERE id = ?`, strID)
	switch err := titleRow.Scan(&title); err {
	case nil:
		thread.Title = &title
	case sql.ErrNoRows:
	default:
		return nil, apperrors.Store("read title", err)
	}

	summaries, err := s.loadSummaries(strID)
	if err != nil {
		return nil, err
	}
	thread.Summaries = summaries

	return thread, nil
}

func (s *Store) loadMessages(threadID string) ([]*chatmodel.Message, error) {
	rows, err := s.db.Query(
		`SELECT role, content, timestamp, tokens FROM message WHERE thread_id = ? ORDER BY timestamp ASC`,
		threadID,
	)
	if err != nil {
		return nil, apperrors.Store("read messages", err)
	}
	defer rows.Close()

	var messages []*chatmodel.Message
	for rows.Next() {
		var roleNum int
		var content string
		var timestamp float64
		var tokens sql.NullInt64

		if err := rows.Scan(&roleNum, &content, &timestamp, &tokens); err != nil {
			return nil, apperrors.Store("scan message row", err)
		}

		role, err := chatmodel.RoleFromNum(roleNum)
		if err != nil {
			return nil, err
		}

		m := chatmodel.NewMessageFromEpoch(role, content, timestamp)
		if tokens.Valid {
			n := int(tokens.Int64)
			m.Tokens = &n
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Store("iterate message rows", err)
	}

	return messages, nil
}

func (s *Store) loadSummaries(threadID string) ([]chatmodel.Summary, error) {
	rows, err := s.db.Query(
		`SELECT start_index, end_index, content FROM summary WHERE thread_id = ?`,
		threadID,
	)
	if err != nil {
		return nil, apperrors.Store("read summaries", err)
	}
	defer rows.Close()

	var summaries []chatmodel.Summary
	for rows.Next() {
		var sm chatmodel.Summary
		if err := rows.Scan(&sm.StartIndex, &sm.EndIndex, &sm.Content); err != nil {
			return nil, apperrors.Store("scan summary row", err)
		}
		summaries = append(summaries, sm)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Store("iterate summary rows", err)
	}

	return summaries, nil
}

// LoadAll reads every thread identifier and loads each one in full.
func (s *Store) LoadAll() ([]*chatmodel.Thread, error) {
	rows, err := s.db.Query(`SELECT id FROM thread`)
	if err != nil {
		return nil, apperrors.Store("read thread ids", err)
	}

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, apperrors.Store("scan thread id", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, apperrors.Store("iterate thread ids", err)
	}
	rows.Close()

	threads := make([]*chatmodel.Thread, 0, len(ids))
	for _, idStr := range ids {
		id, err := uuid.Parse(idStr)
		if err != nil {
			return nil, apperrors.Parse("stored thread id is not a valid uuid", err)
		}
		thread, err := s.Load(id)
		if err != nil {
			return nil, err
		}
		threads = append(threads, thread)
	}

	return threads, nil
}

// Delete removes a thread's messages, title, and summaries, then the
// thread row itself, in that order. It reports whether the thread
// existed.
func (s *Store) Delete(id uuid.UUID) (bool, error) {
	strID := simpleUUID(id)

	tx, err := s.db.Begin()
	if err != nil {
		return false, apperrors.Store("begin delete transaction", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.Exec(`DELETE FROM message WHERE thread_id = ?`, strID); err != nil {
		return false, apperrors.Store("delete messages", err)
	}
	if _, err := tx.Exec(`DELETE FROM title WHERE id = ?`, strID); err != nil {
		return false, apperrors.Store("delete title", err)
	}
	if _, err := tx.Exec(`DELETE FROM summary WHERE thread_id = ?`, strID); err != nil {
		return false, apperrors.Store("delete summaries", err)
	}

	result, err := tx.Exec(`DELETE FROM thread WHERE id = ?`, strID)
	if err != nil {
		return false, apperrors.Store("delete thread", err)
	}

	if err := tx.Commit(); err != nil {
		return false, apperrors.Store("commit delete transaction", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, apperrors.Store("read rows affected", err)
	}

	return affected > 0, nil
}

// simpleUUID matches chatmodel.Thread.StrID: the identifier's simple
// (no-dash) hex form, which is how thread ids are stored as primary
// keys.
func simpleUUID(id uuid.UUID) string {
	return strings.ReplaceAll(id.String(), "-", "")
}
