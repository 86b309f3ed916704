package serverutils

import (
	"noter-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// BindBody decodes the JSON body into req and validates it.
func BindBody(ctx *fiber.Ctx, req interface{}) error {
	if err := ctx.BodyParser(req); err != nil {
		return apperror.Validation("Invalid request body")
	}
	return ValidateRequest(req)
}

// QueryUUID reads an optional uuid query parameter. present is false when the
// parameter is missing; an empty value or "null" yields (nil, true).
func QueryUUID(ctx *fiber.Ctx, name string) (id *uuid.UUID, present bool, err error) {
	if !ctx.Context().QueryArgs().Has(name) {
		return nil, false, nil
	}
	raw := ctx.Query(name)
	if raw == "" || raw == "null" {
		return nil, true, nil
	}
	parsed, err := uuid.Parse(raw)
	if err != nil {
		return nil, true, apperror.Validation("Invalid %s", name)
	}
	return &parsed, true, nil
}
