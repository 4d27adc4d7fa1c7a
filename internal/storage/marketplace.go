package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"peels/internal/models"
	"peels/internal/usecases"
)

const itemColumns = `i.id, i.name, i.type, i.price, i.description, i.image_url, i.created_at`

type MarketStorage struct {
	db DB
}

func NewMarketStorage(db DB) *MarketStorage {
	return &MarketStorage{db: db}
}

func scanItem(row pgx.Row, it *models.MarketplaceItem, extra ...any) error {
	dest := []any{&it.ID, &it.Name, &it.Type, &it.Price, &it.Description, &it.ImageURL, &it.CreatedAt}
	return row.Scan(append(dest, extra...)...)
}

// ListItems returns the catalogue, optionally filtered by item type.
func (s *MarketStorage) ListItems(ctx context.Context, itemType string) ([]models.MarketplaceItem, error) {
	op := "internal/storage/marketplace.go ListItems"

	rows, err := s.db.Query(ctx, `
	SELECT `+itemColumns+` FROM marketplace_items i
	WHERE $1 = '' OR i.type = $1
	ORDER BY i.type, i.price, i.name`, itemType)
	if err != nil {
		return nil, mapErr(op, err)
	}
	defer rows.Close()

	items := []models.MarketplaceItem{}
	for rows.Next() {
		var it models.MarketplaceItem
		if err := scanItem(rows, &it); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		items = append(items, it)
	}
	return items, mapErr(op, rows.Err())
}

func (s *MarketStorage) GetItem(ctx context.Context, id int) (models.MarketplaceItem, error) {
	op := "internal/storage/marketplace.go GetItem"

	var it models.MarketplaceItem
	if err := scanItem(s.db.QueryRow(ctx, `SELECT `+itemColumns+` FROM marketplace_items i WHERE i.id = $1`, id), &it); err != nil {
		return models.MarketplaceItem{}, mapErr(op, err)
	}
	return it, nil
}

func (s *MarketStorage) OwnsItem(ctx context.Context, userID, itemID int) (bool, error) {
	op := "internal/storage/marketplace.go OwnsItem"

	var ok bool
	err := s.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM user_items WHERE user_id = $1 AND item_id = $2)`, userID, itemID).Scan(&ok)
	if err != nil {
		return false, mapErr(op, err)
	}
	return ok, nil
}

// Purchase spends the user's bananas on an item. Balance, ledger, ownership
// and character rows change together or not at all.
func (s *MarketStorage) Purchase(ctx context.Context, userID, itemID int) (models.Purchase, error) {
	op := "internal/storage/marketplace.go Purchase"

	var p models.Purchase
	err := inTx(ctx, s.db, func(tx pgx.Tx) error {
		if err := scanItem(tx.QueryRow(ctx, `SELECT `+itemColumns+` FROM marketplace_items i WHERE i.id = $1`, itemID), &p.Item); err != nil {
			return err
		}

		var balance int
		if err := tx.QueryRow(ctx, `SELECT bananas FROM users WHERE id = $1 FOR UPDATE`, userID).Scan(&balance); err != nil {
			return err
		}

		var owned bool
		err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM user_items WHERE user_id = $1 AND item_id = $2)`, userID, itemID).Scan(&owned)
		if err != nil {
			return err
		}
		if owned {
			return usecases.ErrAlreadyOwned
		}
		if balance < p.Item.Price {
			return usecases.ErrInsufficientBananas
		}

		p.Balance = balance - p.Item.Price
		if p.Item.Price > 0 {
			if _, err := tx.Exec(ctx, `UPDATE users SET bananas = $2, updated_at = now() WHERE id = $1`, userID, p.Balance); err != nil {
				return err
			}
			_, err := tx.Exec(ctx, `INSERT INTO bananas (user_id, amount, reason) VALUES ($1, $2, $3)`,
				userID, -p.Item.Price, "purchase:"+p.Item.Name)
			if err != nil {
				return err
			}
		}

		if _, err := tx.Exec(ctx, `INSERT INTO user_items (user_id, item_id) VALUES ($1, $2)`, userID, itemID); err != nil {
			return err
		}

		if p.Item.Type == models.ItemCharacter {
			c := &models.Character{UserID: userID, ItemID: itemID, Nickname: p.Item.Name}
			err := tx.QueryRow(ctx, `
			INSERT INTO characters (user_id, item_id, nickname)
			VALUES ($1, $2, $3)
			RETURNING id, created_at`, c.UserID, c.ItemID, c.Nickname).Scan(&c.ID, &c.CreatedAt)
			if err != nil {
				return err
			}
			p.Character = c
		}
		return nil
	})
	if err != nil {
		return models.Purchase{}, mapErr(op, err)
	}
	return p, nil
}

func (s *MarketStorage) ListUserItems(ctx context.Context, userID int) ([]models.UserItem, error) {
	op := "internal/storage/marketplace.go ListUserItems"

	rows, err := s.db.Query(ctx, `
	SELECT `+itemColumns+`, ui.user_id, ui.purchased_at
	FROM user_items ui
	JOIN marketplace_items i ON i.id = ui.item_id
	WHERE ui.user_id = $1
	ORDER BY ui.purchased_at DESC`, userID)
	if err != nil {
		return nil, mapErr(op, err)
	}
	defer rows.Close()

	items := []models.UserItem{}
	for rows.Next() {
		var ui models.UserItem
		if err := scanItem(rows, &ui.Item, &ui.UserID, &ui.PurchasedAt); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		ui.ItemID = ui.Item.ID
		items = append(items, ui)
	}
	return items, mapErr(op, rows.Err())
}

func (s *MarketStorage) ListCharacters(ctx context.Context, userID int) ([]models.Character, error) {
	op := "internal/storage/marketplace.go ListCharacters"

	rows, err := s.db.Query(ctx, `
	SELECT id, user_id, item_id, nickname, created_at FROM characters
	WHERE user_id = $1
	ORDER BY created_at`, userID)
	if err != nil {
		return nil, mapErr(op, err)
	}
	defer rows.Close()

	chars := []models.Character{}
	for rows.Next() {
		var c models.Character
		if err := rows.Scan(&c.ID, &c.UserID, &c.ItemID, &c.Nickname, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		chars = append(chars, c)
	}
	return chars, mapErr(op, rows.Err())
}

func (s *MarketStorage) RenameCharacter(ctx context.Context, id, userID int, nickname string) (models.Character, error) {
	op := "internal/storage/marketplace.go RenameCharacter"

	var c models.Character
	err := s.db.QueryRow(ctx, `
	UPDATE characters SET nickname = $3
	WHERE id = $1 AND user_id = $2
	RETURNING id, user_id, item_id, nickname, created_at`, id, userID, nickname).
		Scan(&c.ID, &c.UserID, &c.ItemID, &c.Nickname, &c.CreatedAt)
	if err != nil {
		return models.Character{}, mapErr(op, err)
	}
	return c, nil
}
