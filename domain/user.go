package domain

import "time"

type BankInfo struct {
	FirstName      string `bson:"first_name" json:"first_name"`
	LastName       string `bson:"last_name" json:"last_name"`
	CardNumber     string `bson:"card_number" json:"card_number"`
	ExpirationDate string `bson:"expiration_date" json:"expiration_date"`
}

// User owns a live cart and the history of issued commands.
type User struct {
	ID           string    `bson:"_id,omitempty" json:"-"`
	Email        string    `bson:"email" json:"email"`
	FirstName    string    `bson:"first_name" json:"first_name"`
	LastName     string    `bson:"last_name" json:"last_name"`
	Cart         Cart      `bson:"cart" json:"cart"`
	Commands     []Command `bson:"commands" json:"commands"`
	Subscription string    `bson:"subscription,omitempty" json:"subscription,omitempty"`
	BankInfo     *BankInfo `bson:"bank_info,omitempty" json:"bank_info,omitempty"`
	CreatedAt    time.Time `bson:"creation_date" json:"creation_date"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}
