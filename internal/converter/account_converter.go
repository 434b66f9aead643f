package converter

import (
	"github.com/Syeddabbas07/chest-ray/internal/delivery/dto"
	"github.com/Syeddabbas07/chest-ray/internal/domain/entity"

	"github.com/samber/lo"
)

// AccountToResponse converts an Account entity to AccountResponse DTO
func AccountToResponse(account *entity.Account) *dto.AccountResponse {
	if account == nil {
		return nil
	}

	return &dto.AccountResponse{
		ID:        account.ID,
		Login:     account.Login,
		Role:      string(account.Role),
		RoleLabel: account.Role.Label(),
		CreatedAt: account.CreatedAt,
		LastLogin: account.LastLogin,
	}
}

// AccountsToResponses converts a slice of Account entities to slice of AccountResponse DTOs
func AccountsToResponses(accounts []entity.Account) []dto.AccountResponse {
	return lo.Map(accounts, func(account entity.Account, _ int) dto.AccountResponse {
		return *AccountToResponse(&account)
	})
}

// AuditLogsToResponses converts audit entries for display
func AuditLogsToResponses(logs []entity.AuditLog) []dto.AuditLogResponse {
	return lo.Map(logs, func(log entity.AuditLog, _ int) dto.AuditLogResponse {
		return dto.AuditLogResponse{
			ID:        log.ID,
			Action:    log.Action,
			Metadata:  []byte(log.Metadata),
			CreatedAt: log.CreatedAt,
		}
	})
}
