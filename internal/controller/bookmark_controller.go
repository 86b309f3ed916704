package controller

import (
	"noter-be/internal/pkg/serverutils"
	"noter-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IBookmarkController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Toggle(ctx *fiber.Ctx) error
}

type bookmarkController struct {
	bookmarkService service.IBookmarkService
	guard           serverutils.AuthGuard
}

func NewBookmarkController(bookmarkService service.IBookmarkService, guard serverutils.AuthGuard) IBookmarkController {
	return &bookmarkController{
		bookmarkService: bookmarkService,
		guard:           guard,
	}
}

func (c *bookmarkController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/bookmark/v1")
	h.Get("", c.guard.Required, c.List)
	// Optional so that a missing note answers 404 before identity is checked.
	h.Post(":noteId", c.guard.Optional, c.Toggle)
}

func (c *bookmarkController) List(ctx *fiber.Ctx) error {
	userId, err := serverutils.RequireCaller(ctx)
	if err != nil {
		return err
	}

	res, err := c.bookmarkService.List(ctx.UserContext(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list bookmarks", res))
}

func (c *bookmarkController) Toggle(ctx *fiber.Ctx) error {
	noteId, err := serverutils.ParseUUIDParam(ctx, "noteId", "Note not found")
	if err != nil {
		return err
	}

	res, err := c.bookmarkService.Toggle(ctx.UserContext(), serverutils.CallerID(ctx), noteId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success toggle bookmark", res))
}
