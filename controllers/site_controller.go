package controllers

import (
	"strings"

	"sitestock-backend/services"

	"github.com/gofiber/fiber/v2"
)

// SiteController обрабатывает запросы к площадкам и справочнику материалов
type SiteController struct {
	store services.Store
}

// NewSiteController создает контроллер площадок
func NewSiteController(store services.Store) *SiteController {
	return &SiteController{store: store}
}

// CreateSiteRequest тело POST /sites
type CreateSiteRequest struct {
	Name string `json:"name"`
}

// GetSites возвращает все площадки
func (sc *SiteController) GetSites(c *fiber.Ctx) error {
	sites, err := sc.store.ListSites()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(sites)
}

// CreateSite регистрирует площадку
func (sc *SiteController) CreateSite(c *fiber.Ctx) error {
	var req CreateSiteRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return badRequest(c, "Site name is required")
	}

	site, err := sc.store.CreateSite(name)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(site)
}

// GetMaterials возвращает справочник материалов
func (sc *SiteController) GetMaterials(c *fiber.Ctx) error {
	materials, err := sc.store.ListMaterials()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(materials)
}
