package domain

import "fmt"

type Car struct {
	CarID        string  `json:"car_id"`
	Make         string  `json:"make"`
	Model        string  `json:"model"`
	Year         int32   `json:"year"`
	Mileage      int32   `json:"mileage"`
	AvailableNow bool    `json:"available_now"`
	MinRentDays  int32   `json:"min_rent_days"`
	MaxRentDays  int32   `json:"max_rent_days"`
	DailyRate    float64 `json:"daily_rate"`
	FuelType     string  `json:"fuel_type"`
}

func (c *Car) Validate() error {
	if c.CarID == "" {
		return fmt.Errorf("car id is required: %w", ErrValidation)
	}
	if c.MinRentDays > c.MaxRentDays {
		return fmt.Errorf("minimum rental days cannot be greater than maximum rental days: %w", ErrValidation)
	}
	if c.Mileage < 0 {
		return fmt.Errorf("mileage cannot be negative: %w", ErrValidation)
	}
	if c.DailyRate < 0 {
		return fmt.Errorf("daily rate cannot be negative: %w", ErrValidation)
	}
	return nil
}

// UpdateMileage raises the odometer reading. Mileage can not be rolled back;
// a reading at or below the current one is silently ignored.
func (c *Car) UpdateMileage(newMileage int32) {
	if newMileage > c.Mileage {
		c.Mileage = newMileage
	}
}

// UpdateDetails overwrites the mutable attributes wholesale.
func (c *Car) UpdateDetails(make, model string, year, mileage int32, dailyRate float64, available bool) {
	c.Make = make
	c.Model = model
	c.Year = year
	c.Mileage = mileage
	c.DailyRate = dailyRate
	c.AvailableNow = available
}
