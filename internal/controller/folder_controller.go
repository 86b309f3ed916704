package controller

import (
	"noter-be/internal/dto"
	"noter-be/internal/pkg/serverutils"
	"noter-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IFolderController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type folderController struct {
	folderService service.IFolderService
	guard         serverutils.AuthGuard
}

func NewFolderController(folderService service.IFolderService, guard serverutils.AuthGuard) IFolderController {
	return &folderController{
		folderService: folderService,
		guard:         guard,
	}
}

func (c *folderController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/folder/v1")
	h.Get("", c.guard.Required, c.List)
	h.Post("", c.guard.Required, c.Create)
	h.Get(":id", c.guard.Optional, c.Show)
	// Optional so that an unknown id answers 404 before identity is checked.
	h.Put(":id", c.guard.Optional, c.Update)
	h.Delete(":id", c.guard.Optional, c.Delete)
}

func (c *folderController) List(ctx *fiber.Ctx) error {
	userId, err := serverutils.RequireCaller(ctx)
	if err != nil {
		return err
	}

	parentId, _, err := serverutils.QueryUUID(ctx, "parentId")
	if err != nil {
		return err
	}

	res, err := c.folderService.List(ctx.UserContext(), userId, parentId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list folders", res))
}

func (c *folderController) Show(ctx *fiber.Ctx) error {
	id, err := serverutils.ParseUUIDParam(ctx, "id", "Folder not found")
	if err != nil {
		return err
	}

	res, err := c.folderService.Show(ctx.UserContext(), serverutils.CallerID(ctx), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show folder", res))
}

func (c *folderController) Create(ctx *fiber.Ctx) error {
	userId, err := serverutils.RequireCaller(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateFolderRequest
	if err := serverutils.BindBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.folderService.Create(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create folder", res))
}

func (c *folderController) Update(ctx *fiber.Ctx) error {
	id, err := serverutils.ParseUUIDParam(ctx, "id", "Folder not found")
	if err != nil {
		return err
	}

	var req dto.UpdateFolderRequest
	if err := serverutils.BindBody(ctx, &req); err != nil {
		return err
	}
	req.Id = id

	res, err := c.folderService.Update(ctx.UserContext(), serverutils.CallerID(ctx), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update folder", res))
}

func (c *folderController) Delete(ctx *fiber.Ctx) error {
	id, err := serverutils.ParseUUIDParam(ctx, "id", "Folder not found")
	if err != nil {
		return err
	}

	req := dto.DeleteFolderRequest{
		Id:           id,
		KeepContents: ctx.QueryBool("keepContents", false),
	}

	res, err := c.folderService.Delete(ctx.UserContext(), serverutils.CallerID(ctx), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success delete folder", res))
}
