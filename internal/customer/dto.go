package customer

import "rentstock/internal/domain"

type AddressDTO struct {
	Street  string `json:"street" validate:"required"`
	City    string `json:"city" validate:"required"`
	State   string `json:"state" validate:"required"`
	ZipCode string `json:"zipCode" validate:"required"`
	Country string `json:"country" validate:"required"`
}

type UpsertCustomerRequest struct {
	FirstName       string      `json:"firstName" validate:"required"`
	LastName        string      `json:"lastName" validate:"required"`
	Email           string      `json:"email" validate:"required,email"`
	Phone           string      `json:"phone" validate:"required"`
	HomeAddress     AddressDTO  `json:"homeAddress" validate:"required"`
	DeliveryAddress *AddressDTO `json:"deliveryAddress,omitempty" validate:"omitempty"`
}

func addressToDomain(a AddressDTO) domain.Address {
	return domain.Address{
		Street:  a.Street,
		City:    a.City,
		State:   a.State,
		ZipCode: a.ZipCode,
		Country: a.Country,
	}
}

func (r UpsertCustomerRequest) toSpec() Spec {
	spec := Spec{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Email:       r.Email,
		Phone:       r.Phone,
		HomeAddress: addressToDomain(r.HomeAddress),
	}
	if r.DeliveryAddress != nil {
		addr := addressToDomain(*r.DeliveryAddress)
		spec.DeliveryAddress = &addr
	}
	return spec
}
