package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/crediwise/crediwise/internal/models"
)

// CreateRecommendationLog persists one ranking snapshot for analytics.
// Rankings are stored as JSONB; the log is append-only.
func (r *Repository) CreateRecommendationLog(log *models.RecommendationLog) error {
	rankings, err := json.Marshal(log.Rankings)
	if err != nil {
		return fmt.Errorf("failed to marshal rankings: %w", err)
	}
	top, err := json.Marshal(log.TopRecommendation)
	if err != nil {
		return fmt.Errorf("failed to marshal top recommendation: %w", err)
	}

	query := `
		INSERT INTO crediwise.recommendation_logs
			(user_id, transaction_amount, category, merchant_name, rankings, top_recommendation, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err = r.db.QueryRow(query, log.UserID, log.TransactionAmount, log.Category,
		log.MerchantName, rankings, top).
		Scan(&log.ID, &log.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create recommendation log: %w", err)
	}
	return nil
}

// FindRecommendationLogs lists a user's recent recommendation logs.
func (r *Repository) FindRecommendationLogs(userID int64, limit int) ([]models.RecommendationLog, error) {
	query := `
		SELECT id, user_id, transaction_amount, category, merchant_name, rankings, top_recommendation, created_at
		FROM crediwise.recommendation_logs
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`
	rows, err := r.db.Query(query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recommendation logs: %w", err)
	}
	defer rows.Close()

	var logs []models.RecommendationLog
	for rows.Next() {
		var log models.RecommendationLog
		var merchant sql.NullString
		var rankings, top []byte
		if err := rows.Scan(&log.ID, &log.UserID, &log.TransactionAmount, &log.Category,
			&merchant, &rankings, &top, &log.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan recommendation log: %w", err)
		}
		log.MerchantName = merchant.String
		if err := json.Unmarshal(rankings, &log.Rankings); err != nil {
			return nil, fmt.Errorf("failed to unmarshal rankings: %w", err)
		}
		if len(top) > 0 {
			if err := json.Unmarshal(top, &log.TopRecommendation); err != nil {
				return nil, fmt.Errorf("failed to unmarshal top recommendation: %w", err)
			}
		}
		logs = append(logs, log)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate recommendation logs: %w", err)
	}
	return logs, nil
}
