package models

import "time"

// Role is the closed set of account roles.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleCustomer Role = "CUSTOMER"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleCustomer
}

type User struct {
	UserID    string    `json:"userId" bson:"userId"`
	Email     string    `json:"email" bson:"email"`
	Password  string    `json:"-" bson:"password"`
	FirstName string    `json:"firstName" bson:"firstName"`
	LastName  string    `json:"lastName" bson:"lastName"`
	Phone     string    `json:"phone,omitempty" bson:"phone,omitempty"`
	Role      Role      `json:"role" bson:"role"`
	IsActive  bool      `json:"isActive" bson:"isActive"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

type Address struct {
	AddressID    string    `json:"addressId" bson:"addressId"`
	UserID       string    `json:"userId" bson:"userId"`
	FirstName    string    `json:"firstName" bson:"firstName"`
	LastName     string    `json:"lastName" bson:"lastName"`
	Company      string    `json:"company,omitempty" bson:"company,omitempty"`
	AddressLine1 string    `json:"addressLine1" bson:"addressLine1"`
	AddressLine2 string    `json:"addressLine2,omitempty" bson:"addressLine2,omitempty"`
	City         string    `json:"city" bson:"city"`
	State        string    `json:"state" bson:"state"`
	ZipCode      string    `json:"zipCode" bson:"zipCode"`
	Country      string    `json:"country" bson:"country"`
	Phone        string    `json:"phone,omitempty" bson:"phone,omitempty"`
	IsDefault    bool      `json:"isDefault" bson:"isDefault"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
}
