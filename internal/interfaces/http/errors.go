package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/AgroPedidos-api/internal/application/dto"
	"github.com/jhoicas/AgroPedidos-api/internal/domain"
)

// sentinelStatus mapea cada error de dominio a su código HTTP y código de API.
var sentinelStatus = []struct {
	err    error
	status int
	code   string
}{
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrInvalidQuantity, fiber.StatusBadRequest, "INVALID_QUANTITY"},
	{domain.ErrMissingReason, fiber.StatusBadRequest, "MISSING_REASON"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrProductNotFound, fiber.StatusNotFound, "PRODUCT_NOT_FOUND"},
	{domain.ErrOrderNotFound, fiber.StatusNotFound, "ORDER_NOT_FOUND"},
	{domain.ErrUserNotFound, fiber.StatusNotFound, "USER_NOT_FOUND"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrEmailAlreadyExists, fiber.StatusConflict, "EMAIL_EXISTS"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrInsufficientStock, fiber.StatusConflict, "INSUFFICIENT_STOCK"},
	{domain.ErrInsufficientAvailable, fiber.StatusConflict, "INSUFFICIENT_AVAILABLE"},
	{domain.ErrNegativeStock, fiber.StatusConflict, "NEGATIVE_STOCK"},
	{domain.ErrBelowReserved, fiber.StatusConflict, "BELOW_RESERVED"},
	{domain.ErrOverRelease, fiber.StatusConflict, "OVER_RELEASE"},
	{domain.ErrOverDeduct, fiber.StatusConflict, "OVER_DEDUCT"},
	{domain.ErrIllegalTransition, fiber.StatusConflict, "ILLEGAL_TRANSITION"},
	{domain.ErrSignatureMismatch, fiber.StatusUnauthorized, "SIGNATURE_MISMATCH"},
}

// errorResponse traduce un error de caso de uso a la respuesta HTTP. Los
// errores de dominio conservan su mensaje (ya viene pensado para el usuario);
// cualquier otro error es un 500.
func errorResponse(c *fiber.Ctx, err error) error {
	for _, m := range sentinelStatus {
		if errors.Is(err, m.err) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: err.Error()})
		}
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
