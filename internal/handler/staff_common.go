package handler

import (
	"github.com/Camilo-marin10/restaurante/internal/booking"
	"github.com/Camilo-marin10/restaurante/internal/repository"
)

// StaffHandler bundles everything the staff endpoints need: table and
// hours management, the full reservation book and the admission
// pipeline for creating and editing bookings on behalf of customers.
type StaffHandler struct {
	Tables       *repository.TableRepo
	Hours        *repository.HoursRepo
	Reservations *repository.ReservationRepo
	Users        *repository.UserRepo
	Admission    *booking.AdmissionService
	Sweeper      *booking.Sweeper
	Clock        booking.Clock
	BcryptCost   int
}

func NewStaffHandler(tables *repository.TableRepo, hours *repository.HoursRepo, reservations *repository.ReservationRepo, users *repository.UserRepo, admission *booking.AdmissionService, sweeper *booking.Sweeper, clock booking.Clock, bcryptCost int) *StaffHandler {
	if tables == nil || hours == nil || reservations == nil || users == nil || admission == nil || sweeper == nil || clock == nil {
		panic("nil dependency passed to NewStaffHandler")
	}
	return &StaffHandler{
		Tables:       tables,
		Hours:        hours,
		Reservations: reservations,
		Users:        users,
		Admission:    admission,
		Sweeper:      sweeper,
		Clock:        clock,
		BcryptCost:   bcryptCost,
	}
}
