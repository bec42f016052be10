package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email          string             `bson:"email" json:"email" validate:"required,email"`
	Nickname       string             `bson:"nickname,omitempty" json:"nickname,omitempty"`
	HashedPassword string             `bson:"hashed_password" json:"-"`
	FullName       string             `bson:"full_name" json:"full_name"`
	IsAdmin        bool               `bson:"is_admin" json:"is_admin"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updated_at"`
}
