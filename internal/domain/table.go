package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TableStatus string

const (
	TableAvailable TableStatus = "available"
	TableActive    TableStatus = "active"
	TableBilled    TableStatus = "billed"
)

func (s TableStatus) Valid() bool {
	switch s {
	case TableAvailable, TableActive, TableBilled:
		return true
	}
	return false
}

type Table struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Number    string             `bson:"table_number" json:"table_number"`
	Capacity  int                `bson:"capacity" json:"capacity"`
	Status    TableStatus        `bson:"status" json:"status"`
	QRCode    string             `bson:"qr_code,omitempty" json:"qr_code,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}
