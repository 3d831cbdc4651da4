package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// User is an account in the "users" collection. Records are created at
// registration and never mutated or deleted. The username carries a unique
// index; the password is stored as a bcrypt hash and never serialised.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Username string             `bson:"username" json:"username"`
	Password string             `bson:"password" json:"-"`
}
