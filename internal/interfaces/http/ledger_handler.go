package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/borgia-ae/borgia-api/internal/application/dto"
	"github.com/borgia-ae/borgia-api/internal/application/ledger"
	"github.com/borgia-ae/borgia-api/internal/domain/authz"
)

const (
	defaultSalesLimit = 50
	maxSalesLimit     = 500
)

// LedgerHandler ventas, transferencias, recargas y movimientos excepcionales.
type LedgerHandler struct {
	uc    *ledger.LedgerUseCase
	guard *Guard
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(uc *ledger.LedgerUseCase, guard *Guard) *LedgerHandler {
	return &LedgerHandler{uc: uc, guard: guard}
}

// ListSales godoc
// @Summary      Ventas de la tienda
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        group_name  path   string  true   "Grupo con el que se actúa"
// @Param        shop_pk     path   int     true   "ID de la tienda"
// @Param        limit       query  int     false  "Máximo de ventas"  default(50)
// @Success      200  {array}   dto.LedgerEventResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /{group_name}/shops/{shop_pk}/sales/ [get]
func (h *LedgerHandler) ListSales(c *fiber.Ctx) error {
	shopID, err := paramID(c, "shop_pk")
	if err != nil {
		return err
	}
	if _, err := h.guard.Require(c, "view_sale", authz.OnShop(shopID)); err != nil {
		return err
	}
	limit := c.QueryInt("limit", defaultSalesLimit)
	if limit <= 0 {
		limit = defaultSalesLimit
	}
	if limit > maxSalesLimit {
		limit = maxSalesLimit
	}
	out, err := h.uc.ListShopSales(shopID, limit)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Sale godoc
// @Summary      Registrar una venta
// @Description  El comprador paga el total al precio vigente; 409 si el saldo no alcanza.
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        group_name  path  string           true  "Grupo con el que se actúa"
// @Param        shop_pk     path  int              true  "ID de la tienda"
// @Param        body        body  dto.SaleRequest  true  "Comprador y líneas"
// @Success      201  {object}  dto.LedgerEventResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /{group_name}/shops/{shop_pk}/sales/ [post]
func (h *LedgerHandler) Sale(c *fiber.Ctx) error {
	shopID, err := paramID(c, "shop_pk")
	if err != nil {
		return err
	}
	if _, err := h.guard.Require(c, "add_sale", authz.OnShop(shopID)); err != nil {
		return err
	}
	var in dto.SaleRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Sale(c.UserContext(), GetUserID(c), shopID, in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Transfer godoc
// @Summary      Transferir saldo a otro miembro
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        group_name  path  string               true  "Grupo con el que se actúa"
// @Param        body        body  dto.TransferRequest  true  "Destinatario, importe y justificación"
// @Success      201  {object}  dto.LedgerEventResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /{group_name}/transfers/ [post]
func (h *LedgerHandler) Transfer(c *fiber.Ctx) error {
	if _, err := h.guard.Require(c, "add_transfert", authz.Global()); err != nil {
		return err
	}
	var in dto.TransferRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Transfer(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Recharging godoc
// @Summary      Registrar una recarga
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        group_name  path  string                 true  "Grupo con el que se actúa"
// @Param        body        body  dto.RechargingRequest  true  "Usuario, importe y medio de pago"
// @Success      201  {object}  dto.LedgerEventResponse
// @Router       /{group_name}/rechargings/ [post]
func (h *LedgerHandler) Recharging(c *fiber.Ctx) error {
	if _, err := h.guard.Require(c, "add_recharging", authz.Global()); err != nil {
		return err
	}
	var in dto.RechargingRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Recharging(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ExceptionalMovement godoc
// @Summary      Registrar un movimiento excepcional
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        group_name  path  string                          true  "Grupo con el que se actúa"
// @Param        body        body  dto.ExceptionalMovementRequest  true  "Destinatario, importe, sentido y justificación"
// @Success      201  {object}  dto.LedgerEventResponse
// @Router       /{group_name}/exceptionalmovements/ [post]
func (h *LedgerHandler) ExceptionalMovement(c *fiber.Ctx) error {
	if _, err := h.guard.Require(c, "add_exceptionnalmovement", authz.Global()); err != nil {
		return err
	}
	var in dto.ExceptionalMovementRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	out, err := h.uc.ExceptionalMovement(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
