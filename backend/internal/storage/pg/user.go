package pg

import (
	"context"
	"fmt"

	"github.com/itchan-dev/hoots/shared/domain"
	"github.com/lib/pq"
)

// GetProfiles reads author profiles for hydration. Unknown ids are skipped.
func (s *Storage) GetProfiles(ctx context.Context, ids []domain.UserId) (map[domain.UserId]domain.UserProfile, error) {
	profiles := make(map[domain.UserId]domain.UserProfile, len(ids))
	if len(ids) == 0 {
		return profiles, nil
	}

	rows, err := s.db.QueryContext(ctx, `
        SELECT id, username, created_at
        FROM users
        WHERE id = ANY($1)
    `, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profiles: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p domain.UserProfile
		if err := rows.Scan(&p.Id, &p.Username, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		p.CreatedAt = p.CreatedAt.UTC()
		profiles[p.Id] = p
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return profiles, nil
}
