package models

import "time"

// Upload records a hosted image so it can be deleted later by PublicID.
type Upload struct {
	PublicID  string    `json:"publicId" bson:"publicId"`
	UserID    string    `json:"userId" bson:"userId"`
	URL       string    `json:"url" bson:"url"`
	Folder    string    `json:"folder" bson:"folder"`
	Width     int       `json:"width" bson:"width"`
	Height    int       `json:"height" bson:"height"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}
