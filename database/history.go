// Package database хранит историю сканирований цен в SQLite
package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"pricefinder/aggregation"
	"pricefinder/scanner"
)

// HistoryStore хранилище истории сканирований
type HistoryStore struct {
	conn *sql.DB
}

// ScanRecord одна запись истории сканирований
type ScanRecord struct {
	ID           string                   `json:"id"`
	ProductName  string                   `json:"product_name"`
	SearchQuery  string                   `json:"search_query"`
	BestPrice    *scanner.PriceCandidate  `json:"best_price,omitempty"`
	AllResults   []scanner.PriceCandidate `json:"all_results"`
	VariantCount int                      `json:"variant_count"`
	CreatedAt    time.Time                `json:"created_at"`
}

// NewHistoryStore открывает базу истории и создает схему при необходимости
func NewHistoryStore(dbPath string) (*HistoryStore, error) {
	conn, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("открытие базы истории: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("проверка подключения к базе истории: %w", err)
	}

	store := &HistoryStore{conn: conn}
	if err := store.createSchema(); err != nil {
		conn.Close()
		return nil, err
	}

	log.Printf("[HistoryStore] База истории открыта: %s", dbPath)
	return store, nil
}

// Close закрывает подключение к базе истории
func (s *HistoryStore) Close() error {
	return s.conn.Close()
}

// createSchema создает таблицу истории сканирований
func (s *HistoryStore) createSchema() error {
	const schema = `
	CREATE TABLE IF NOT EXISTS price_scans (
		id TEXT PRIMARY KEY,
		product_name TEXT NOT NULL,
		search_query TEXT NOT NULL,
		best_price_json TEXT,
		all_results_json TEXT NOT NULL,
		variant_count INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_price_scans_created_at ON price_scans(created_at);
	CREATE INDEX IF NOT EXISTS idx_price_scans_product_name ON price_scans(product_name);
	`

	if _, err := s.conn.Exec(schema); err != nil {
		return fmt.Errorf("создание схемы истории: %w", err)
	}
	return nil
}

// SaveScan сохраняет результат сканирования и возвращает идентификатор записи
func (s *HistoryStore) SaveScan(ctx context.Context, productName, searchQuery string, result *aggregation.AggregatedResult) (string, error) {
	id := uuid.New().String()

	var bestJSON sql.NullString
	if result.BestOverall != nil {
		raw, err := json.Marshal(result.BestOverall)
		if err != nil {
			return "", fmt.Errorf("сериализация лучшей цены: %w", err)
		}
		bestJSON = sql.NullString{String: string(raw), Valid: true}
	}

	allJSON, err := json.Marshal(result.AllResults)
	if err != nil {
		return "", fmt.Errorf("сериализация результатов: %w", err)
	}

	_, err = s.conn.ExecContext(ctx, `
		INSERT INTO price_scans (id, product_name, search_query, best_price_json, all_results_json, variant_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, productName, searchQuery, bestJSON, string(allJSON), len(result.VariantsUsed), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("сохранение сканирования: %w", err)
	}

	return id, nil
}

// RecentScans возвращает последние записи истории, не больше limit
func (s *HistoryStore) RecentScans(ctx context.Context, limit int) ([]ScanRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.conn.QueryContext(ctx, `
		SELECT id, product_name, search_query, best_price_json, all_results_json, variant_count, created_at
		FROM price_scans
		ORDER BY created_at DESC, id
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("чтение истории: %w", err)
	}
	defer rows.Close()

	records := make([]ScanRecord, 0, limit)
	for rows.Next() {
		var (
			record    ScanRecord
			bestJSON  sql.NullString
			allJSON   string
			createdAt string
		)

		if err := rows.Scan(&record.ID, &record.ProductName, &record.SearchQuery, &bestJSON, &allJSON, &record.VariantCount, &createdAt); err != nil {
			return nil, fmt.Errorf("чтение записи истории: %w", err)
		}

		if bestJSON.Valid {
			var best scanner.PriceCandidate
			if err := json.Unmarshal([]byte(bestJSON.String), &best); err != nil {
				return nil, fmt.Errorf("разбор лучшей цены записи %s: %w", record.ID, err)
			}
			record.BestPrice = &best
		}

		if err := json.Unmarshal([]byte(allJSON), &record.AllResults); err != nil {
			return nil, fmt.Errorf("разбор результатов записи %s: %w", record.ID, err)
		}

		if ts, err := time.Parse(time.RFC3339, createdAt); err == nil {
			record.CreatedAt = ts
		}

		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("обход истории: %w", err)
	}

	return records, nil
}
