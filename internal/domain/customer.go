package domain

import "time"

type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

type Customer struct {
	ID              string    `json:"id"`
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	HomeAddress     Address   `json:"homeAddress"`
	DeliveryAddress *Address  `json:"deliveryAddress,omitempty"`
	JoinDate        time.Time `json:"joinDate"`
}
