package usecase

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/borgia-ae/borgia-api/internal/application/dto"
	"github.com/borgia-ae/borgia-api/internal/domain"
	"github.com/borgia-ae/borgia-api/internal/domain/entity"
	"github.com/borgia-ae/borgia-api/internal/domain/ledger"
	"github.com/borgia-ae/borgia-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos de una tienda.
// La pertenencia producto-tienda ya la garantiza el resolver de permisos antes de llegar aquí.
type ProductUseCase struct {
	repo     repository.ProductRepository
	settings *SettingUseCase
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, settings *SettingUseCase) *ProductUseCase {
	return &ProductUseCase{repo: repo, settings: settings}
}

// Create crea un producto activo en la tienda.
func (uc *ProductUseCase) Create(shopID int64, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.UpstreamPrice.IsNegative() || in.ManualPrice.IsNegative() {
		return nil, fmt.Errorf("%w: los precios no pueden ser negativos", domain.ErrInvalidInput)
	}
	factor := decimal.NewFromInt(1)
	if in.CorrectingFactor != nil {
		if !in.CorrectingFactor.IsPositive() {
			return nil, fmt.Errorf("%w: correcting_factor debe ser positivo", domain.ErrInvalidInput)
		}
		factor = *in.CorrectingFactor
	}
	product := &entity.Product{
		ShopID:           shopID,
		Name:             in.Name,
		Unit:             in.Unit,
		IsManualPrice:    in.IsManualPrice,
		ManualPrice:      in.ManualPrice,
		UpstreamPrice:    in.UpstreamPrice,
		CorrectingFactor: factor,
		IsActive:         true,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return uc.toResponse(product)
}

// Get devuelve el producto con su precio vigente.
func (uc *ProductUseCase) Get(p *entity.Product) (*dto.ProductResponse, error) {
	return uc.toResponse(p)
}

// ListByShop productos no eliminados de la tienda.
func (uc *ProductUseCase) ListByShop(shopID int64) ([]dto.ProductResponse, error) {
	products, err := uc.repo.ListByShop(shopID)
	if err != nil {
		return nil, err
	}
	s, err := uc.settings.Current()
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, len(products))
	for i, p := range products {
		out[i] = *toProductResponse(p, s.MarginProfit)
	}
	return out, nil
}

// Update modifica nombre, unidad y datos del precio automático.
func (uc *ProductUseCase) Update(p *entity.Product, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Unit != nil {
		p.Unit = *in.Unit
	}
	if in.UpstreamPrice != nil {
		if in.UpstreamPrice.IsNegative() {
			return nil, fmt.Errorf("%w: upstream_price negativo", domain.ErrInvalidInput)
		}
		p.UpstreamPrice = *in.UpstreamPrice
	}
	if in.CorrectingFactor != nil {
		if !in.CorrectingFactor.IsPositive() {
			return nil, fmt.Errorf("%w: correcting_factor debe ser positivo", domain.ErrInvalidInput)
		}
		p.CorrectingFactor = *in.CorrectingFactor
	}
	if err := uc.repo.Update(p); err != nil {
		return nil, err
	}
	return uc.toResponse(p)
}

// UpdatePrice activa el precio manual (>= 0) o vuelve al automático.
func (uc *ProductUseCase) UpdatePrice(p *entity.Product, in dto.UpdatePriceRequest) (*dto.ProductResponse, error) {
	if in.ManualPrice.IsNegative() {
		return nil, fmt.Errorf("%w: manual_price negativo", domain.ErrInvalidInput)
	}
	p.IsManualPrice = in.IsManualPrice
	if in.IsManualPrice {
		p.ManualPrice = in.ManualPrice
	}
	if err := uc.repo.Update(p); err != nil {
		return nil, err
	}
	return uc.toResponse(p)
}

// ToggleActive activa o desactiva el producto.
func (uc *ProductUseCase) ToggleActive(p *entity.Product) (*dto.ProductResponse, error) {
	p.IsActive = !p.IsActive
	if err := uc.repo.Update(p); err != nil {
		return nil, err
	}
	return uc.toResponse(p)
}

// Remove baja lógica: el producto deja de listarse pero las ventas lo siguen referenciando.
func (uc *ProductUseCase) Remove(p *entity.Product) error {
	p.IsRemoved = true
	p.IsActive = false
	return uc.repo.Update(p)
}

func (uc *ProductUseCase) toResponse(p *entity.Product) (*dto.ProductResponse, error) {
	s, err := uc.settings.Current()
	if err != nil {
		return nil, err
	}
	return toProductResponse(p, s.MarginProfit), nil
}

func toProductResponse(p *entity.Product, margin decimal.Decimal) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:               p.ID,
		ShopID:           p.ShopID,
		Name:             p.Name,
		Unit:             p.Unit,
		IsManualPrice:    p.IsManualPrice,
		ManualPrice:      p.ManualPrice,
		UpstreamPrice:    p.UpstreamPrice,
		CorrectingFactor: p.CorrectingFactor,
		AutomaticPrice:   ledger.AutomaticPrice(p, margin),
		Price:            ledger.Price(p, margin),
		IsActive:         p.IsActive,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}
