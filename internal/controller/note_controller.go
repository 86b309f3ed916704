package controller

import (
	"noter-be/internal/dto"
	"noter-be/internal/pkg/serverutils"
	"noter-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type INoteController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type noteController struct {
	noteService service.INoteService
	guard       serverutils.AuthGuard
}

func NewNoteController(noteService service.INoteService, guard serverutils.AuthGuard) INoteController {
	return &noteController{
		noteService: noteService,
		guard:       guard,
	}
}

func (c *noteController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/note/v1")
	h.Get("", c.guard.Required, c.List)
	h.Post("", c.guard.Required, c.Create)
	h.Get(":id", c.guard.Optional, c.Show)
	// Optional so that an unknown id answers 404 before identity is checked.
	h.Put(":id", c.guard.Optional, c.Update)
	h.Delete(":id", c.guard.Optional, c.Delete)
}

func (c *noteController) List(ctx *fiber.Ctx) error {
	userId, err := serverutils.RequireCaller(ctx)
	if err != nil {
		return err
	}

	folderId, present, err := serverutils.QueryUUID(ctx, "folderId")
	if err != nil {
		return err
	}
	req := dto.ListNotesRequest{FolderId: dto.OptionalUUID{Set: present, Value: folderId}}

	res, err := c.noteService.List(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list notes", res))
}

func (c *noteController) Show(ctx *fiber.Ctx) error {
	id, err := serverutils.ParseUUIDParam(ctx, "id", "Note not found")
	if err != nil {
		return err
	}

	res, err := c.noteService.Show(ctx.UserContext(), serverutils.CallerID(ctx), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show note", res))
}

func (c *noteController) Create(ctx *fiber.Ctx) error {
	userId, err := serverutils.RequireCaller(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateNoteRequest
	if err := serverutils.BindBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.noteService.Create(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create note", res))
}

func (c *noteController) Update(ctx *fiber.Ctx) error {
	id, err := serverutils.ParseUUIDParam(ctx, "id", "Note not found")
	if err != nil {
		return err
	}

	var req dto.UpdateNoteRequest
	if err := serverutils.BindBody(ctx, &req); err != nil {
		return err
	}
	req.Id = id

	res, err := c.noteService.Update(ctx.UserContext(), serverutils.CallerID(ctx), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update note", res))
}

func (c *noteController) Delete(ctx *fiber.Ctx) error {
	id, err := serverutils.ParseUUIDParam(ctx, "id", "Note not found")
	if err != nil {
		return err
	}

	if err := c.noteService.Delete(ctx.UserContext(), serverutils.CallerID(ctx), id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete note", nil))
}
