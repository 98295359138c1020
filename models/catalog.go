package models

import "time"

type Category struct {
	CategoryID  string    `json:"categoryId" bson:"categoryId"`
	Name        string    `json:"name" bson:"name"`
	Slug        string    `json:"slug" bson:"slug"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	ParentID    string    `json:"parentId,omitempty" bson:"parentId,omitempty"`
	IsActive    bool      `json:"isActive" bson:"isActive"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
}

type ProductImage struct {
	URL      string `json:"url" bson:"url"`
	PublicID string `json:"publicId" bson:"publicId"`
	Alt      string `json:"alt,omitempty" bson:"alt,omitempty"`
}

type Product struct {
	ProductID        string         `json:"productId" bson:"productId"`
	Name             string         `json:"name" bson:"name"`
	Slug             string         `json:"slug" bson:"slug"`
	SKU              string         `json:"sku" bson:"sku"`
	Description      string         `json:"description,omitempty" bson:"description,omitempty"`
	ShortDescription string         `json:"shortDescription,omitempty" bson:"shortDescription,omitempty"`
	Price            float64        `json:"price" bson:"price"`
	ComparePrice     float64        `json:"comparePrice,omitempty" bson:"comparePrice,omitempty"`
	Quantity         int            `json:"quantity" bson:"quantity"`
	TrackQuantity    bool           `json:"trackQuantity" bson:"trackQuantity"`
	Tags             []string       `json:"tags,omitempty" bson:"tags,omitempty"`
	Images           []ProductImage `json:"images,omitempty" bson:"images,omitempty"`
	CategoryID       string         `json:"categoryId,omitempty" bson:"categoryId,omitempty"`
	IsActive         bool           `json:"isActive" bson:"isActive"`
	IsFeatured       bool           `json:"isFeatured,omitempty" bson:"isFeatured,omitempty"`
	CreatedAt        time.Time      `json:"createdAt" bson:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt" bson:"updatedAt"`
}
