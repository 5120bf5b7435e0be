package dto

import "github.com/shopspring/decimal"

// MonthlyPoint importe agregado de un mes (etiqueta "Jan-26").
type MonthlyPoint struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// ShopTotal importe agregado por tienda.
type ShopTotal struct {
	Shop   ShopSummary     `json:"shop"`
	Amount decimal.Decimal `json:"amount"`
}

// MembersWorkboardResponse panel de cualquier miembro autenticado.
type MembersWorkboardResponse struct {
	User                 UserResponse          `json:"user"`
	Sales                []LedgerEventResponse `json:"sales"`
	Transfers            []LedgerEventResponse `json:"transfers"`
	Rechargings          []LedgerEventResponse `json:"rechargings"`
	ExceptionalMovements []LedgerEventResponse `json:"exceptional_movements"`
	ShopTotals           []ShopTotal           `json:"shop_totals"`
	Monthly              []MonthlyPoint        `json:"monthly"`
}

// ManagersWorkboardResponse panel de presidents.
type ManagersWorkboardResponse struct {
	Sales []LedgerEventResponse `json:"sales"`
}

// ShopWorkboardResponse panel de una tienda con su menú lateral.
type ShopWorkboardResponse struct {
	Shop    ShopResponse          `json:"shop"`
	Sales   []LedgerEventResponse `json:"sales"`
	Monthly []MonthlyPoint        `json:"monthly"`
	NavTree []NavLink             `json:"nav_tree"`
}

// CheckupResponse resumen de actividad de una tienda.
type CheckupResponse struct {
	Shop          ShopResponse    `json:"shop"`
	SalesCount    int             `json:"sales_count"`
	SalesAmount   decimal.Decimal `json:"sales_amount"`
	ProductsCount int             `json:"products_count"`
	TopProducts   []ProductSold   `json:"top_products"`
	Monthly       []MonthlyPoint  `json:"monthly"`
}

// ProductSold cantidad e importe vendidos de un producto.
type ProductSold struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Amount    decimal.Decimal `json:"amount"`
}
