package domain

type RentalStatus string

const (
	RentalStatusPending  RentalStatus = "pending"
	RentalStatusApproved RentalStatus = "approved"
	RentalStatusRejected RentalStatus = "rejected"
	RentalStatusReturned RentalStatus = "returned"
)

func (s RentalStatus) Valid() bool {
	switch s {
	case RentalStatusPending, RentalStatusApproved, RentalStatusRejected, RentalStatusReturned:
		return true
	}
	return false
}

type Rental struct {
	RentalID         string       `json:"rental_id"`
	CustomerUsername string       `json:"customer_username"`
	CarID            string       `json:"car_id"`
	StartDate        string       `json:"start_date"`
	EndDate          string       `json:"end_date"`
	TotalCost        float64      `json:"total_cost"`
	AdditionalFees   float64      `json:"additional_fees"`
	Status           RentalStatus `json:"status"`
	ReturnDate       *string      `json:"return_date,omitempty"`
}

// NewRental builds a booking in the initial pending state. The id is minted
// by the caller from the rental sequence.
func NewRental(rentalID, customer, carID, startDate, endDate string, totalCost, additionalFees float64) *Rental {
	return &Rental{
		RentalID:         rentalID,
		CustomerUsername: customer,
		CarID:            carID,
		StartDate:        startDate,
		EndDate:          endDate,
		TotalCost:        totalCost,
		AdditionalFees:   additionalFees,
		Status:           RentalStatusPending,
	}
}

// Approve, Reject, and Return flip only the rental's own state. The system
// is responsible for the matching car availability change.
func (r *Rental) Approve() {
	r.Status = RentalStatusApproved
}

func (r *Rental) Reject() {
	r.Status = RentalStatusRejected
}

func (r *Rental) Return(returnDate string) {
	r.Status = RentalStatusReturned
	r.ReturnDate = &returnDate
}

// Active reports whether the rental holds its car, i.e. the car must be
// unavailable for as long as this is true.
func (r *Rental) Active() bool {
	return r.Status == RentalStatusPending || r.Status == RentalStatusApproved
}
