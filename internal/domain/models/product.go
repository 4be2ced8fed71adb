package models

import "time"

// Product is the single inventory entity. The integer ID doubles as the
// Mongo document key; zero means "not yet assigned" and the repository
// allocates the next sequence value on insert.
type Product struct {
	ID          int       `bson:"_id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	CreatedDate time.Time `bson:"created_date" json:"createdDate"`
	Stock       int       `bson:"stock" json:"stock"`
}

// StockAdjustment is the body of the stock PATCH endpoints. Amount is a
// pointer so a missing or null payload can be told apart from amount 0.
type StockAdjustment struct {
	Amount *int `json:"amount"`
}
