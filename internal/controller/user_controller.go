package controller

import (
	"noter-be/internal/pkg/serverutils"
	"noter-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IUserController interface {
	RegisterRoutes(r fiber.Router)
	Directory(ctx *fiber.Ctx) error
	Profile(ctx *fiber.Ctx) error
	Content(ctx *fiber.Ctx) error
}

type userController struct {
	userService service.IUserService
	guard       serverutils.AuthGuard
}

func NewUserController(userService service.IUserService, guard serverutils.AuthGuard) IUserController {
	return &userController{
		userService: userService,
		guard:       guard,
	}
}

func (c *userController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/user/v1")
	h.Use(c.guard.Optional)
	h.Get("", c.Directory)
	h.Get(":id", c.Profile)
	h.Get(":id/content", c.Content)
}

func (c *userController) Directory(ctx *fiber.Ctx) error {
	res, err := c.userService.Directory(ctx.UserContext())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list users", res))
}

func (c *userController) Profile(ctx *fiber.Ctx) error {
	id, err := serverutils.ParseUUIDParam(ctx, "id", "User not found")
	if err != nil {
		return err
	}

	res, err := c.userService.Profile(ctx.UserContext(), serverutils.CallerID(ctx), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show user", res))
}

func (c *userController) Content(ctx *fiber.Ctx) error {
	id, err := serverutils.ParseUUIDParam(ctx, "id", "User not found")
	if err != nil {
		return err
	}

	res, err := c.userService.Content(ctx.UserContext(), serverutils.CallerID(ctx), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show user content", res))
}
