package controller

import (
	"noter-be/internal/dto"
	"noter-be/internal/pkg/serverutils"
	"noter-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IPublicController interface {
	RegisterRoutes(r fiber.Router)
	Notes(ctx *fiber.Ctx) error
	Folders(ctx *fiber.Ctx) error
	Explore(ctx *fiber.Ctx) error
}

type publicController struct {
	publicService service.IPublicService
	guard         serverutils.AuthGuard
}

func NewPublicController(publicService service.IPublicService, guard serverutils.AuthGuard) IPublicController {
	return &publicController{
		publicService: publicService,
		guard:         guard,
	}
}

func (c *publicController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/public/v1")
	h.Get("notes", c.guard.Optional, c.Notes)
	h.Get("folders", c.Folders)
	h.Get("explore", c.guard.Optional, c.Explore)
}

func (c *publicController) Notes(ctx *fiber.Ctx) error {
	res, err := c.publicService.PublicNotes(ctx.UserContext(), serverutils.CallerID(ctx), ctx.QueryInt("limit", 0))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list public notes", res))
}

func (c *publicController) Folders(ctx *fiber.Ctx) error {
	parentId, _, err := serverutils.QueryUUID(ctx, "parentId")
	if err != nil {
		return err
	}

	res, err := c.publicService.PublicFolders(ctx.UserContext(), parentId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list public folders", res))
}

// Explore accepts a general limit that overrides both per-section limits.
func (c *publicController) Explore(ctx *fiber.Ctx) error {
	req := dto.ExploreRequest{
		NotesLimit:   ctx.QueryInt("notesLimit", 0),
		FoldersLimit: ctx.QueryInt("foldersLimit", 0),
	}
	if limit := ctx.QueryInt("limit", 0); limit > 0 {
		req.NotesLimit = limit
		req.FoldersLimit = limit
	}

	res, err := c.publicService.Explore(ctx.UserContext(), serverutils.CallerID(ctx), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success explore", res))
}
