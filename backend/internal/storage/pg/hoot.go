package pg

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/itchan-dev/hoots/shared/domain"
	internal_errors "github.com/itchan-dev/hoots/shared/errors"
)

const selectHoot = `
    SELECT id, title, text, author_id, comments, created_at, updated_at
    FROM hoots`

// commentRecord is the stored shape of a comment inside hoots.comments
type commentRecord struct {
	Id        domain.CommentId   `json:"id"`
	Text      domain.CommentText `json:"text"`
	Author    domain.UserId      `json:"author"`
	CreatedAt time.Time          `json:"created_at"`
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *Storage) CreateHoot(ctx context.Context, hoot domain.Hoot) error {
	comments, err := encodeComments(hoot.Comments)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
        INSERT INTO hoots (id, title, text, author_id, comments, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
    `, hoot.Id, hoot.Title, hoot.Text, hoot.Author, comments, hoot.CreatedAt, hoot.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert hoot: %w", err)
	}
	return nil
}

func (s *Storage) GetHoot(ctx context.Context, id domain.HootId) (domain.Hoot, error) {
	return scanHoot(s.db.QueryRowContext(ctx, selectHoot+" WHERE id = $1", id))
}

func (s *Storage) ListHoots(ctx context.Context) ([]domain.Hoot, error) {
	rows, err := s.db.QueryContext(ctx, selectHoot+" ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch hoots: %w", err)
	}
	defer rows.Close()

	hoots := []domain.Hoot{}
	for rows.Next() {
		hoot, err := scanHoot(rows)
		if err != nil {
			return nil, err
		}
		hoots = append(hoots, hoot)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return hoots, nil
}

// ModifyHoot locks the hoot row for the whole read-modify-write, so concurrent
// modifications of one hoot are applied one after another.
func (s *Storage) ModifyHoot(ctx context.Context, id domain.HootId, mutate func(*domain.Hoot) error) (domain.Hoot, error) {
	var working domain.Hoot
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		current, err := scanHoot(tx.QueryRowContext(ctx, selectHoot+" WHERE id = $1 FOR UPDATE", id))
		if err != nil {
			return err
		}

		working = current.Clone()
		if err := mutate(&working); err != nil {
			return err
		}
		working.Id = current.Id
		working.Author = current.Author
		working.CreatedAt = current.CreatedAt

		comments, err := encodeComments(working.Comments)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `
            UPDATE hoots
            SET title = $2, text = $3, comments = $4, updated_at = $5
            WHERE id = $1
        `, id, working.Title, working.Text, comments, working.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to update hoot: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.Hoot{}, err
	}
	return working, nil
}

// DeleteHoot removes the hoot row; its comments live in the same row and go with it.
func (s *Storage) DeleteHoot(ctx context.Context, id domain.HootId, check func(domain.Hoot) error) (domain.Hoot, error) {
	var hoot domain.Hoot
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		hoot, err = scanHoot(tx.QueryRowContext(ctx, selectHoot+" WHERE id = $1 FOR UPDATE", id))
		if err != nil {
			return err
		}
		if err := check(hoot.Clone()); err != nil {
			return err
		}

		result, err := tx.ExecContext(ctx, "DELETE FROM hoots WHERE id = $1", id)
		if err != nil {
			return fmt.Errorf("failed to delete hoot: %w", err)
		}
		if affected, _ := result.RowsAffected(); affected == 0 {
			return internal_errors.NotFound("Hoot")
		}
		return nil
	})
	if err != nil {
		return domain.Hoot{}, err
	}
	return hoot, nil
}

func scanHoot(row rowScanner) (domain.Hoot, error) {
	var hoot domain.Hoot
	var comments []byte
	err := row.Scan(
		&hoot.Id, &hoot.Title, &hoot.Text, &hoot.Author,
		&comments, &hoot.CreatedAt, &hoot.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Hoot{}, internal_errors.NotFound("Hoot")
		}
		return domain.Hoot{}, fmt.Errorf("failed to scan hoot: %w", err)
	}
	hoot.CreatedAt = hoot.CreatedAt.UTC()
	hoot.UpdatedAt = hoot.UpdatedAt.UTC()

	if hoot.Comments, err = decodeComments(comments); err != nil {
		return domain.Hoot{}, err
	}
	return hoot, nil
}

func encodeComments(comments []domain.Comment) (string, error) {
	records := make([]commentRecord, len(comments))
	for i, c := range comments {
		records[i] = commentRecord{Id: c.Id, Text: c.Text, Author: c.Author, CreatedAt: c.CreatedAt}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("failed to encode comments: %w", err)
	}
	return string(data), nil
}

func decodeComments(data []byte) ([]domain.Comment, error) {
	var records []commentRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode comments: %w", err)
	}
	comments := make([]domain.Comment, len(records))
	for i, r := range records {
		comments[i] = domain.Comment{Id: r.Id, Text: r.Text, Author: r.Author, CreatedAt: r.CreatedAt.UTC()}
	}
	return comments, nil
}
