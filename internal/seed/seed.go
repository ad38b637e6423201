// Package seed imports the initial fleet from a tabular CSV source. It runs
// once on an empty store; rows whose car id already exists are skipped so a
// re-run never clobbers live availability state.
package seed

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"car-rental-backend/internal/domain"
	"car-rental-backend/internal/logger"
	"car-rental-backend/internal/repository"
)

var columns = []string{
	"car_id", "make", "model", "year", "mileage", "available_now",
	"min_rent_days", "max_rent_days", "daily_rate", "fuel_type",
}

// ImportCars reads the CSV file at path and inserts each row as a car.
// It returns the number of cars inserted.
func ImportCars(ctx context.Context, path string, carRepo repository.CarRepository) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening seed file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("reading seed header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}
	for _, col := range columns {
		if _, ok := index[col]; !ok {
			return 0, fmt.Errorf("seed file is missing column %q", col)
		}
	}

	imported := 0
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("reading seed row: %w", err)
		}

		car, err := carFromRecord(record, index)
		if err != nil {
			return imported, fmt.Errorf("seed line %d: %w", line, err)
		}
		if err := car.Validate(); err != nil {
			return imported, fmt.Errorf("seed line %d: %w", line, err)
		}

		if err := carRepo.Create(ctx, car); err != nil {
			if errors.Is(err, domain.ErrConflict) {
				logger.Warn("Skipping already seeded car", "car_id", car.CarID)
				continue
			}
			return imported, err
		}
		imported++
	}
	return imported, nil
}

func carFromRecord(record []string, index map[string]int) (*domain.Car, error) {
	field := func(name string) string { return record[index[name]] }

	year, err := strconv.ParseInt(field("year"), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid year %q", field("year"))
	}
	mileage, err := strconv.ParseInt(field("mileage"), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid mileage %q", field("mileage"))
	}
	available, err := strconv.ParseBool(field("available_now"))
	if err != nil {
		return nil, fmt.Errorf("invalid available_now %q", field("available_now"))
	}
	minDays, err := strconv.ParseInt(field("min_rent_days"), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid min_rent_days %q", field("min_rent_days"))
	}
	maxDays, err := strconv.ParseInt(field("max_rent_days"), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid max_rent_days %q", field("max_rent_days"))
	}
	rate, err := strconv.ParseFloat(field("daily_rate"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid daily_rate %q", field("daily_rate"))
	}

	return &domain.Car{
		CarID:        field("car_id"),
		Make:         field("make"),
		Model:        field("model"),
		Year:         int32(year),
		Mileage:      int32(mileage),
		AvailableNow: available,
		MinRentDays:  int32(minDays),
		MaxRentDays:  int32(maxDays),
		DailyRate:    rate,
		FuelType:     field("fuel_type"),
	}, nil
}
