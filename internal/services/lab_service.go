// This file implements room and equipment administration, including the
// PC seeding that accompanies room creation and bulk laptop registration.
package services

import (
	"context"
	"fmt"

	"github.com/vrash12/laboratory-management/internal/models"
	"github.com/vrash12/laboratory-management/internal/repository"
)

// RoomPCCount is the number of PCs seeded into every new laboratory room.
const RoomPCCount = 35

// LabService manages rooms and their equipment.
type LabService struct {
	roomRepo      *repository.RoomRepository
	equipmentRepo *repository.EquipmentRepository
}

// NewLabService creates and returns a new LabService instance.
func NewLabService() *LabService {
	return &LabService{
		roomRepo:      repository.NewRoomRepository(),
		equipmentRepo: repository.NewEquipmentRepository(),
	}
}

// CreateRoom creates a laboratory room and seeds it with PC-1 through
// PC-35, all operational and available.
func (s *LabService) CreateRoom(ctx context.Context, actor models.Actor, name string) (*models.Room, error) {
	if !actor.Role.IsAdmin() {
		return nil, ErrNotAuthorized
	}

	exists, err := s.roomRepo.ExistsByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("room %q already exists", name)
	}

	room := &models.Room{RoomName: name}
	if err := s.roomRepo.Create(ctx, room); err != nil {
		return nil, err
	}

	for i := 1; i <= RoomPCCount; i++ {
		pc := &models.Equipment{
			RoomID:        &room.ID,
			EquipmentName: fmt.Sprintf("PC-%d", i),
			Status:        models.EquipmentStatusOperational,
			IsAvailable:   true,
			EquipmentType: models.EquipmentPC,
		}
		if err := s.equipmentRepo.Create(ctx, pc); err != nil {
			return nil, err
		}
	}

	return room, nil
}

// AddLaptops creates laptops named Laptop-<i> for i in
// [startingIndex, startingIndex+count), skipping indexes whose name is
// already taken. Laptops belong to no room. Returns the names actually
// created, which may be fewer than count when names collide.
func (s *LabService) AddLaptops(ctx context.Context, actor models.Actor, count, startingIndex int) ([]string, error) {
	if !actor.Role.IsAdmin() {
		return nil, ErrNotAuthorized
	}
	if count < 1 {
		return nil, fmt.Errorf("laptop count must be positive")
	}
	if startingIndex < 1 {
		return nil, fmt.Errorf("starting index must be positive")
	}

	var created []string
	for i := startingIndex; i < startingIndex+count; i++ {
		name := fmt.Sprintf("Laptop-%d", i)

		exists, err := s.equipmentRepo.ExistsByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if exists {
			continue
		}

		laptop := &models.Equipment{
			EquipmentName: name,
			Status:        models.EquipmentStatusOperational,
			IsAvailable:   true,
			EquipmentType: models.EquipmentLaptop,
		}
		if err := s.equipmentRepo.Create(ctx, laptop); err != nil {
			return nil, err
		}
		created = append(created, name)
	}

	return created, nil
}

// UpdateEquipment rewrites an item's name, status, and availability.
func (s *LabService) UpdateEquipment(ctx context.Context, actor models.Actor, equipment *models.Equipment) error {
	if !actor.Role.IsAdmin() {
		return ErrNotAuthorized
	}
	return s.equipmentRepo.Update(ctx, equipment)
}

// DeleteEquipment removes an item along with its assignments, maintenance,
// and issue history via cascading deletes.
func (s *LabService) DeleteEquipment(ctx context.Context, actor models.Actor, equipmentID int) error {
	if !actor.Role.IsAdmin() {
		return ErrNotAuthorized
	}
	return s.equipmentRepo.Delete(ctx, equipmentID)
}

// DeleteRoom removes a room and, through cascade, its equipment.
func (s *LabService) DeleteRoom(ctx context.Context, actor models.Actor, roomID int) error {
	if !actor.Role.IsAdmin() {
		return ErrNotAuthorized
	}
	return s.roomRepo.Delete(ctx, roomID)
}
