package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a donation listing. The bson keys keep the wire format of the
// existing collection, including the historical "reciever" spelling and the
// mongoose-style createdAt/updatedAt timestamps.
type Product struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name        string              `bson:"name" json:"name"`
	Description string              `bson:"description" json:"description"`
	State       string              `bson:"state" json:"state"`
	PurchasedAt time.Time           `bson:"purchased_at" json:"purchased_at"`
	Owner       primitive.ObjectID  `bson:"owner" json:"owner"`
	Reciever    *primitive.ObjectID `bson:"reciever,omitempty" json:"reciever,omitempty"`
	Available   bool                `bson:"available" json:"available"`
	Images      []string            `bson:"images" json:"images"`
	DonatedAt   *time.Time          `bson:"donated_at,omitempty" json:"donated_at,omitempty"`
	CreatedAt   time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// PopulatedProduct is a product with its owner and reciever references
// resolved to full user records. The outer fields shadow the embedded id
// fields when serialized, and User excludes the password from JSON.
type PopulatedProduct struct {
	*Product
	Owner    *User `json:"owner"`
	Reciever *User `json:"reciever,omitempty"`
}

// ProductInput carries the writable product fields for create and update.
// Images is filled from the upload middleware, not from the request body.
// Field order matters: validation reports the first failing field only.
type ProductInput struct {
	Name        string    `json:"name" form:"name" validate:"required"`
	Description string    `json:"description" form:"description" validate:"required"`
	State       string    `json:"state" form:"state" validate:"required"`
	PurchasedAt time.Time `json:"purchased_at" validate:"required"`
	Images      []string  `json:"-" validate:"required,min=1"`
}
