package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/studykit/matchgrid/internal/deck"
)

// ErrDeckNotFound is returned by ReadDeck for an unknown deck id.
var ErrDeckNotFound = errors.New("deck not found")

// WriteDeck upserts a deck and its cards in a single transaction.
// Re-importing an existing deck replaces its cards wholesale - a deck's
// card order defines the pool indices sessions store, so partial updates
// would corrupt saved sessions.
func (s *Store) WriteDeck(ctx context.Context, d deck.Deck) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("write deck %s: begin tx: %w", d.ID, err)
	}
	defer tx.Rollback() // No-op if committed

	_, err = tx.ExecContext(ctx, `
		INSERT INTO decks (id, name) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name
	`, d.ID, d.Name)
	if err != nil {
		return fmt.Errorf("write deck %s: %w", d.ID, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM cards WHERE deck_id = ?`, d.ID); err != nil {
		return fmt.Errorf("write deck %s: clear cards: %w", d.ID, err)
	}

	for idx, card := range d.Cards {
		sides, err := json.Marshal(card.Sides)
		if err != nil {
			return fmt.Errorf("write deck %s: card %d: %w", d.ID, idx, err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO cards (deck_id, idx, sides) VALUES (?, ?, ?)
		`, d.ID, idx, string(sides))
		if err != nil {
			return fmt.Errorf("write deck %s: card %d: %w", d.ID, idx, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("write deck %s: commit: %w", d.ID, err)
	}
	return nil
}

// ReadDeck loads a deck with its cards in stored index order.
// Returns ErrDeckNotFound for an unknown id.
func (s *Store) ReadDeck(ctx context.Context, id string) (deck.Deck, error) {
	d := deck.Deck{ID: id}

	err := s.db.QueryRowContext(ctx, `
		SELECT name FROM decks WHERE id = ?
	`, id).Scan(&d.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return deck.Deck{}, fmt.Errorf("read deck %s: %w", id, ErrDeckNotFound)
		}
		return deck.Deck{}, fmt.Errorf("read deck %s: %w", id, err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT sides FROM cards WHERE deck_id = ? ORDER BY idx ASC
	`, id)
	if err != nil {
		return deck.Deck{}, fmt.Errorf("read deck %s: cards: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var sidesJSON string
		if err := rows.Scan(&sidesJSON); err != nil {
			return deck.Deck{}, fmt.Errorf("read deck %s: scan card: %w", id, err)
		}
		var sides map[string]string
		if err := json.Unmarshal([]byte(sidesJSON), &sides); err != nil {
			return deck.Deck{}, fmt.Errorf("read deck %s: decode card: %w", id, err)
		}
		d.Cards = append(d.Cards, deck.Card{Sides: sides})
	}
	if err := rows.Err(); err != nil {
		return deck.Deck{}, fmt.Errorf("read deck %s: iterate cards: %w", id, err)
	}

	return d, nil
}

// ListDecks returns every stored deck id and name with its card count,
// ordered by id for stable output.
func (s *Store) ListDecks(ctx context.Context) ([]DeckInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT d.id, d.name, COUNT(c.deck_id)
		FROM decks d
		LEFT JOIN cards c ON c.deck_id = d.id
		GROUP BY d.id, d.name
		ORDER BY d.id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list decks: %w", err)
	}
	defer rows.Close()

	infos := []DeckInfo{}
	for rows.Next() {
		var info DeckInfo
		if err := rows.Scan(&info.ID, &info.Name, &info.Cards); err != nil {
			return nil, fmt.Errorf("list decks: scan: %w", err)
		}
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list decks: iterate: %w", err)
	}

	return infos, nil
}

// DeckInfo is a deck directory entry.
type DeckInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Cards int    `json:"cards"`
}
