package controller

import (
	"noter-be/internal/dto"
	"noter-be/internal/pkg/serverutils"
	"noter-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISearchController interface {
	RegisterRoutes(r fiber.Router)
	Search(ctx *fiber.Ctx) error
}

type searchController struct {
	searchService service.ISearchService
	guard         serverutils.AuthGuard
}

func NewSearchController(searchService service.ISearchService, guard serverutils.AuthGuard) ISearchController {
	return &searchController{
		searchService: searchService,
		guard:         guard,
	}
}

func (c *searchController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/search/v1")
	h.Get("", c.guard.Optional, c.Search)
}

func (c *searchController) Search(ctx *fiber.Ctx) error {
	req := dto.SearchRequest{
		Query: ctx.Query("q"),
		Type:  ctx.Query("type", "all"),
		Limit: ctx.QueryInt("limit", 0),
	}

	res, err := c.searchService.Search(ctx.UserContext(), serverutils.CallerID(ctx), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success search", res))
}
