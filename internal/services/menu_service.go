package services

import (
	"context"
	"log"
	"time"

	"dinetap/internal/caching"
	"dinetap/internal/common"
	"dinetap/internal/models"
	"dinetap/internal/repositories"
)

const (
	menuCacheTTL   = 5 * time.Minute
	imageURLExpiry = time.Hour
	maxPrice       = 100000.0
)

// MenuService is the tenant-scoped catalog of orderable items. Rating fields
// on items are read-only here; only the rating path writes them.
type MenuService interface {
	ListForTenant(ctx context.Context, tenantID int64) ([]*models.MenuItem, error)
	GetItem(ctx context.Context, tenantID, itemID int64) (*models.MenuItem, error)
	CreateItem(ctx context.Context, tenantID int64, req *MenuItemRequest) (*models.MenuItem, error)
	UpdateItem(ctx context.Context, tenantID, itemID int64, req *MenuItemRequest) (*models.MenuItem, error)
	SetOutOfStock(ctx context.Context, tenantID, itemID int64, outOfStock bool) error
	DeleteItem(ctx context.Context, tenantID, itemID int64) error
}

type MenuItemRequest struct {
	Name         string  `json:"name"`
	Description  *string `json:"description"`
	Price        float64 `json:"price"`
	Category     string  `json:"category"`
	ImageKey     *string `json:"image_key"`
	IsVegetarian bool    `json:"is_vegetarian"`
	IsSpicy      bool    `json:"is_spicy"`
	IsOutOfStock bool    `json:"is_out_of_stock"`
}

type menuService struct {
	menuRepo    repositories.MenuItemRepository
	tenantSvc   TenantService
	cacheSvc    caching.CacheService
	minioSvc    MinioService
	imageBucket string
}

func NewMenuService(menuRepo repositories.MenuItemRepository, tenantSvc TenantService, cacheSvc caching.CacheService, minioSvc MinioService, imageBucket string) MenuService {
	return &menuService{
		menuRepo:    menuRepo,
		tenantSvc:   tenantSvc,
		cacheSvc:    cacheSvc,
		minioSvc:    minioSvc,
		imageBucket: imageBucket,
	}
}

func (s *menuService) ListForTenant(ctx context.Context, tenantID int64) ([]*models.MenuItem, error) {
	if _, err := s.tenantSvc.Resolve(ctx, tenantID); err != nil {
		return nil, err
	}

	cached, found, err := s.cacheSvc.GetMenu(ctx, tenantID)
	if err != nil {
		log.Printf("WARN: menu cache read failed for tenant %d: %v", tenantID, err)
	} else if found {
		s.resolveImageURLs(ctx, cached)
		return cached, nil
	}

	items, err := s.menuRepo.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, common.Internal("list menu items", err)
	}

	if err := s.cacheSvc.SetMenu(ctx, tenantID, items, menuCacheTTL); err != nil {
		log.Printf("WARN: menu cache write failed for tenant %d: %v", tenantID, err)
	}
	s.resolveImageURLs(ctx, items)
	return items, nil
}

func (s *menuService) GetItem(ctx context.Context, tenantID, itemID int64) (*models.MenuItem, error) {
	if _, err := s.tenantSvc.Resolve(ctx, tenantID); err != nil {
		return nil, err
	}
	item, err := s.ownedItem(ctx, tenantID, itemID)
	if err != nil {
		return nil, err
	}
	s.resolveImageURLs(ctx, []*models.MenuItem{item})
	return item, nil
}

func (s *menuService) CreateItem(ctx context.Context, tenantID int64, req *MenuItemRequest) (*models.MenuItem, error) {
	if _, err := s.tenantSvc.Resolve(ctx, tenantID); err != nil {
		return nil, err
	}
	if err := validateMenuItemRequest(req); err != nil {
		return nil, err
	}

	item := &models.MenuItem{
		TenantID:     tenantID,
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		Category:     req.Category,
		ImageKey:     req.ImageKey,
		IsVegetarian: req.IsVegetarian,
		IsSpicy:      req.IsSpicy,
		IsOutOfStock: req.IsOutOfStock,
	}
	if err := s.menuRepo.Create(ctx, item); err != nil {
		return nil, common.Internal("create menu item", err)
	}

	s.invalidate(ctx, tenantID)
	return item, nil
}

func (s *menuService) UpdateItem(ctx context.Context, tenantID, itemID int64, req *MenuItemRequest) (*models.MenuItem, error) {
	if _, err := s.tenantSvc.Resolve(ctx, tenantID); err != nil {
		return nil, err
	}
	if err := validateMenuItemRequest(req); err != nil {
		return nil, err
	}

	item, err := s.ownedItem(ctx, tenantID, itemID)
	if err != nil {
		return nil, err
	}

	item.Name = req.Name
	item.Description = req.Description
	item.Price = req.Price
	item.Category = req.Category
	item.ImageKey = req.ImageKey
	item.IsVegetarian = req.IsVegetarian
	item.IsSpicy = req.IsSpicy
	item.IsOutOfStock = req.IsOutOfStock

	if err := s.menuRepo.Update(ctx, item); err != nil {
		return nil, common.Internal("update menu item", err)
	}

	s.invalidate(ctx, tenantID)
	return item, nil
}

func (s *menuService) SetOutOfStock(ctx context.Context, tenantID, itemID int64, outOfStock bool) error {
	if _, err := s.tenantSvc.Resolve(ctx, tenantID); err != nil {
		return err
	}
	if _, err := s.ownedItem(ctx, tenantID, itemID); err != nil {
		return err
	}

	if err := s.menuRepo.SetOutOfStock(ctx, tenantID, itemID, outOfStock); err != nil {
		return common.Internal("update menu item stock flag", err)
	}

	s.invalidate(ctx, tenantID)
	return nil
}

func (s *menuService) DeleteItem(ctx context.Context, tenantID, itemID int64) error {
	if _, err := s.tenantSvc.Resolve(ctx, tenantID); err != nil {
		return err
	}
	item, err := s.ownedItem(ctx, tenantID, itemID)
	if err != nil {
		return err
	}

	if err := s.menuRepo.Delete(ctx, tenantID, itemID); err != nil {
		return common.Internal("delete menu item", err)
	}

	if item.ImageKey != nil && s.minioSvc != nil {
		if err := s.minioSvc.DeleteImage(ctx, s.imageBucket, *item.ImageKey); err != nil {
			log.Printf("WARN: failed to remove image %s for menu item %d: %v", *item.ImageKey, itemID, err)
		}
	}

	s.invalidate(ctx, tenantID)
	return nil
}

// ownedItem fetches the row and checks ownership: absent rows are NotFound,
// rows that exist under another tenant are Forbidden.
func (s *menuService) ownedItem(ctx context.Context, tenantID, itemID int64) (*models.MenuItem, error) {
	item, err := s.menuRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, common.Internal("get menu item", err)
	}
	if item == nil {
		return nil, common.NotFoundf("menu item %d not found", itemID)
	}
	if item.TenantID != tenantID {
		return nil, common.Forbiddenf("menu item %d does not belong to this restaurant", itemID)
	}
	return item, nil
}

func (s *menuService) invalidate(ctx context.Context, tenantID int64) {
	if err := s.cacheSvc.DeleteMenu(ctx, tenantID); err != nil {
		log.Printf("WARN: menu cache invalidation failed for tenant %d: %v", tenantID, err)
	}
}

func (s *menuService) resolveImageURLs(ctx context.Context, items []*models.MenuItem) {
	if s.minioSvc == nil {
		return
	}
	for _, item := range items {
		if item.ImageKey == nil || *item.ImageKey == "" {
			continue
		}
		url, err := s.minioSvc.GetPresignedURL(ctx, s.imageBucket, *item.ImageKey, imageURLExpiry)
		if err != nil {
			log.Printf("WARN: presign failed for menu item %d: %v", item.ID, err)
			continue
		}
		item.ImageURL = url
	}
}

func validateMenuItemRequest(req *MenuItemRequest) error {
	if err := common.ValidateRequiredString(req.Name, "name"); err != nil {
		return err
	}
	if err := common.ValidateNonNegativeFloat(req.Price, "price", maxPrice); err != nil {
		return err
	}
	if err := common.ValidateOptionalString(req.Description, "description", 2000); err != nil {
		return err
	}
	return nil
}
