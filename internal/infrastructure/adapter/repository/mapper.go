package repository

import (
	"encoding/json"
	"fmt"

	"github.com/amirhossein-jamali/peer-market/internal/domain/entity"
	"github.com/amirhossein-jamali/peer-market/internal/infrastructure/adapter/model"
)

// usersToModels converts the ledger into rows, recording stored order in Position
func usersToModels(users []entity.User) ([]model.User, error) {
	rows := make([]model.User, 0, len(users))
	for i, u := range users {
		row := model.User{
			Username:     u.Username,
			Name:         u.Name,
			Balance:      u.Balance.Cents(),
			Position:     i,
			Items:        make([]model.Item, 0, len(u.Items)),
			Transactions: make([]model.Transaction, 0, len(u.Transactions)),
		}

		for j, item := range u.Items {
			attrs, err := encodeAttributes(item.Attributes)
			if err != nil {
				return nil, fmt.Errorf("user %q item %d: %w", u.Username, item.ID, err)
			}
			row.Items = append(row.Items, model.Item{
				ItemID:     item.ID,
				Position:   j,
				Price:      item.Price.Cents(),
				Attributes: attrs,
			})
		}

		for j, txn := range u.Transactions {
			row.Transactions = append(row.Transactions, model.Transaction{
				Position: j,
				ItemID:   txn.ItemID,
				Seller:   txn.Seller,
				Buyer:    txn.Buyer,
				Price:    txn.Price.Cents(),
				Date:     txn.Date.UTC(),
			})
		}

		rows = append(rows, row)
	}
	return rows, nil
}

// modelsToUsers converts rows loaded in position order back into the ledger
func modelsToUsers(rows []model.User) ([]entity.User, error) {
	users := make([]entity.User, 0, len(rows))
	for _, row := range rows {
		u := entity.User{
			Username:     row.Username,
			Name:         row.Name,
			Balance:      entity.Money(row.Balance),
			Items:        make([]entity.Item, 0, len(row.Items)),
			Transactions: make([]entity.Transaction, 0, len(row.Transactions)),
		}

		for _, item := range row.Items {
			attrs, err := decodeAttributes(item.Attributes)
			if err != nil {
				return nil, fmt.Errorf("user %q item %d: %w", row.Username, item.ItemID, err)
			}
			u.Items = append(u.Items, entity.Item{
				ID:         item.ItemID,
				Price:      entity.Money(item.Price),
				Attributes: attrs,
			})
		}

		for _, txn := range row.Transactions {
			u.Transactions = append(u.Transactions, entity.Transaction{
				ItemID: txn.ItemID,
				Seller: txn.Seller,
				Buyer:  txn.Buyer,
				Price:  entity.Money(txn.Price),
				Date:   txn.Date.UTC(),
			})
		}

		users = append(users, u)
	}
	return users, nil
}

func encodeAttributes(attrs map[string]json.RawMessage) (string, error) {
	if len(attrs) == 0 {
		return "", nil
	}
	data, err := json.Marshal(attrs)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decodeAttributes(raw string) (map[string]json.RawMessage, error) {
	if raw == "" {
		return nil, nil
	}
	var attrs map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &attrs); err != nil {
		return nil, fmt.Errorf("corrupt item attributes: %w", err)
	}
	if len(attrs) == 0 {
		return nil, nil
	}
	return attrs, nil
}
