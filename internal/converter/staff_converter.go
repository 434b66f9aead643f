package converter

import (
	"github.com/Syeddabbas07/chest-ray/internal/delivery/dto"
	"github.com/Syeddabbas07/chest-ray/internal/domain/entity"

	"github.com/samber/lo"
)

// HealthWorkerToResponse converts a HealthWorker entity to HealthWorkerResponse DTO
func HealthWorkerToResponse(profile *entity.HealthWorker) *dto.HealthWorkerResponse {
	if profile == nil {
		return nil
	}

	return &dto.HealthWorkerResponse{
		ID:               profile.ID,
		AccountID:        profile.AccountID,
		Login:            profile.Account.Login,
		Name:             profile.Name,
		AppointedCountry: profile.AppointedCountry,
		AppointedClinic:  profile.AppointedClinic,
		ContactDetails:   profile.ContactDetails,
	}
}

// HealthWorkersToResponses converts a slice of HealthWorker entities to slice of HealthWorkerResponse DTOs
func HealthWorkersToResponses(profiles []entity.HealthWorker) []dto.HealthWorkerResponse {
	return lo.Map(profiles, func(profile entity.HealthWorker, _ int) dto.HealthWorkerResponse {
		return *HealthWorkerToResponse(&profile)
	})
}

// ExpertToResponse converts an Expert entity to ExpertResponse DTO
func ExpertToResponse(profile *entity.Expert) *dto.ExpertResponse {
	if profile == nil {
		return nil
	}

	return &dto.ExpertResponse{
		ID:             profile.ID,
		AccountID:      profile.AccountID,
		Login:          profile.Account.Login,
		Name:           profile.Name,
		ContactDetails: profile.ContactDetails,
		Speciality:     profile.Speciality,
		Country:        profile.Country,
		Clinic:         profile.Clinic,
	}
}

// AdminToResponse converts an Admin entity to AdminResponse DTO
func AdminToResponse(profile *entity.Admin) *dto.AdminResponse {
	if profile == nil {
		return nil
	}

	return &dto.AdminResponse{
		ID:             profile.ID,
		AccountID:      profile.AccountID,
		ContactDetails: profile.ContactDetails,
	}
}
