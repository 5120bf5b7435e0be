package usecase

import (
	"fmt"
	"time"

	"github.com/borgia-ae/borgia-api/internal/application/dto"
	"github.com/borgia-ae/borgia-api/internal/domain"
	"github.com/borgia-ae/borgia-api/internal/domain/entity"
	"github.com/borgia-ae/borgia-api/internal/domain/repository"
)

// SettingUseCase lectura y versionado de la configuración editable.
type SettingUseCase struct {
	repo repository.SettingRepository
}

// NewSettingUseCase construye el caso de uso.
func NewSettingUseCase(repo repository.SettingRepository) *SettingUseCase {
	return &SettingUseCase{repo: repo}
}

// Current devuelve la última versión, o los valores por defecto si no hay ninguna.
func (uc *SettingUseCase) Current() (*entity.Setting, error) {
	s, err := uc.repo.Current()
	if err != nil {
		return nil, err
	}
	if s == nil {
		return entity.DefaultSetting(), nil
	}
	return s, nil
}

// Get devuelve la versión vigente como DTO.
func (uc *SettingUseCase) Get() (*dto.SettingResponse, error) {
	s, err := uc.Current()
	if err != nil {
		return nil, err
	}
	return toSettingResponse(s), nil
}

// Update crea una nueva versión a partir de la vigente; nunca modifica versiones anteriores.
func (uc *SettingUseCase) Update(actorID int64, in dto.UpdateSettingRequest) (*dto.SettingResponse, error) {
	cur, err := uc.Current()
	if err != nil {
		return nil, err
	}
	next := *cur
	next.Version = 0
	next.CreatedAt = time.Time{}
	next.UpdatedBy = actorID
	if in.CenterName != nil {
		next.CenterName = *in.CenterName
	}
	if in.MarginProfit != nil {
		if in.MarginProfit.IsNegative() {
			return nil, fmt.Errorf("%w: margin_profit no puede ser negativo", domain.ErrInvalidInput)
		}
		next.MarginProfit = *in.MarginProfit
	}
	if in.BalanceThresholdPurchase != nil {
		next.BalanceThresholdPurchase = *in.BalanceThresholdPurchase
	}
	if err := uc.repo.Append(&next); err != nil {
		return nil, err
	}
	return toSettingResponse(&next), nil
}

func toSettingResponse(s *entity.Setting) *dto.SettingResponse {
	return &dto.SettingResponse{
		Version:                  s.Version,
		CenterName:               s.CenterName,
		MarginProfit:             s.MarginProfit,
		BalanceThresholdPurchase: s.BalanceThresholdPurchase,
		UpdatedBy:                s.UpdatedBy,
		CreatedAt:                s.CreatedAt,
	}
}
