package repository

import (
	"context"
	"fmt"

	"mancala_arena/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ArchiveRepository persists finished games. Live rooms never touch the
// database; this is a write-mostly history table.
type ArchiveRepository struct {
	db *pgxpool.Pool
}

func NewArchiveRepository(db *pgxpool.Pool) *ArchiveRepository {
	return &ArchiveRepository{db: db}
}

func (r *ArchiveRepository) Record(ctx context.Context, rec *domain.GameRecord) error {
	query := `
		INSERT INTO mancala_games
			(room_id, room_code, player1_id, player2_id, player1_name, player2_name,
			 winner, store1, store2, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (room_id) DO NOTHING
	`
	_, err := r.db.Exec(ctx, query,
		rec.RoomID, rec.RoomCode,
		rec.Player1ID, rec.Player2ID, rec.Player1Name, rec.Player2Name,
		string(rec.Winner), rec.Store1, rec.Store2, rec.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("insert game record: %w", err)
	}
	return nil
}

// RecentByPlayer lists a player's most recently finished games.
func (r *ArchiveRepository) RecentByPlayer(ctx context.Context, playerID string, limit int) ([]*domain.GameRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT id, room_id, room_code, player1_id, player2_id,
		       player1_name, player2_name, winner, store1, store2, finished_at
		FROM mancala_games
		WHERE player1_id = $1 OR player2_id = $1
		ORDER BY finished_at DESC
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, playerID, limit)
	if err != nil {
		return nil, fmt.Errorf("select game records: %w", err)
	}
	defer rows.Close()

	var records []*domain.GameRecord
	for rows.Next() {
		var rec domain.GameRecord
		var winner string
		if err := rows.Scan(
			&rec.ID, &rec.RoomID, &rec.RoomCode,
			&rec.Player1ID, &rec.Player2ID,
			&rec.Player1Name, &rec.Player2Name,
			&winner, &rec.Store1, &rec.Store2, &rec.FinishedAt,
		); err != nil {
			return nil, fmt.Errorf("scan game record: %w", err)
		}
		rec.Winner = domain.Winner(winner)
		records = append(records, &rec)
	}
	return records, rows.Err()
}
