package dto

import (
	"github.com/amirhossein-jamali/peer-market/internal/domain/entity"
	"github.com/amirhossein-jamali/peer-market/internal/domain/port/usecase"
)

// RegisterRequest represents the API request for creating a user
type RegisterRequest struct {
	Name     string `form:"name" json:"name" binding:"required"`
	Username string `form:"user_name" json:"user_name" binding:"required"`
	Balance  Scalar `form:"balance" json:"balance"`
}

// LoginRequest represents the API request for checking a username
type LoginRequest struct {
	Username string `form:"user_name" json:"user_name" binding:"required"`
}

// LoginResponse represents the API response for a known username
type LoginResponse struct {
	Username string `json:"user_name"`
}

// UserResponse represents one user with balance, items and purchase history
type UserResponse struct {
	Username     string                `json:"user_name"`
	Name         string                `json:"name"`
	Balance      entity.Money          `json:"balance"`
	Items        []entity.Item         `json:"items"`
	Transactions []TransactionResponse `json:"transactions"`
}

// UserPageResponse is the storefront seen by one user: their own account and
// everything the other users are selling
type UserPageResponse struct {
	User       UserResponse        `json:"user"`
	UsersItems []usecase.UserItems `json:"usersItems"`
}

// UserItemsResponse lists the items owned by one user
type UserItemsResponse struct {
	Username string        `json:"user_name"`
	Items    []entity.Item `json:"items"`
}

// NewUserResponse maps a domain user to its API form
func NewUserResponse(user *entity.User) UserResponse {
	items := user.Items
	if items == nil {
		items = []entity.Item{}
	}

	transactions := make([]TransactionResponse, 0, len(user.Transactions))
	for _, txn := range user.Transactions {
		transactions = append(transactions, NewTransactionResponse(txn))
	}

	return UserResponse{
		Username:     user.Username,
		Name:         user.Name,
		Balance:      user.Balance,
		Items:        items,
		Transactions: transactions,
	}
}
