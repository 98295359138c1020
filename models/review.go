package models

import "time"

// Review is unique per (user, product) and starts unapproved.
type Review struct {
	ReviewID   string    `json:"reviewId" bson:"reviewId"`
	UserID     string    `json:"userId" bson:"userId"`
	ProductID  string    `json:"productId" bson:"productId"`
	Rating     int       `json:"rating" bson:"rating"`
	Title      string    `json:"title,omitempty" bson:"title,omitempty"`
	Comment    string    `json:"comment,omitempty" bson:"comment,omitempty"`
	IsApproved bool      `json:"isApproved" bson:"isApproved"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt"`
}
