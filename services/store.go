package services

import (
	"errors"
	"time"

	"sitestock-backend/models"

	"gorm.io/gorm"
)

// PositionRow складская позиция вместе с названиями площадки и материала
type PositionRow struct {
	ID            uint
	SiteID        uint
	SiteName      string
	MaterialID    uint
	MaterialName  string
	Quantity      int
	DailyBurnRate float64
	LastUsedAt    *time.Time
}

// Store доступ к хранилищу площадок, материалов, позиций и журнала списаний
type Store interface {
	ListSites() ([]models.Site, error)
	CreateSite(name string) (*models.Site, error)
	SiteExists(id uint) (bool, error)
	ListMaterials() ([]models.Material, error)
	MaterialExists(id uint) (bool, error)

	ListPositions() ([]PositionRow, error)
	GetPosition(id uint) (*models.Inventory, error)
	FindPosition(siteID, materialID uint) (*models.Inventory, error)
	SurplusCandidates(siteID, materialID uint, minQuantity int) ([]PositionRow, error)
	CreatePosition(inv *models.Inventory) error
	DeletePosition(id uint) error
	RecordUsage(inventoryID uint, usedQuantity int, usedAt time.Time) error

	UsageSince(inventoryID uint, since time.Time) ([]models.InventoryUsage, error)
	UsageLog(inventoryID uint) ([]models.InventoryUsage, error)
	LastUsageAt(inventoryID uint) (*time.Time, error)
}

// GormStore реализация Store поверх GORM
type GormStore struct {
	db *gorm.DB
}

// NewGormStore создает хранилище
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// ListSites возвращает все площадки
func (s *GormStore) ListSites() ([]models.Site, error) {
	sites := []models.Site{}
	err := s.db.Order("id ASC").Find(&sites).Error
	return sites, err
}

// CreateSite регистрирует площадку
func (s *GormStore) CreateSite(name string) (*models.Site, error) {
	site := models.Site{Name: name}
	if err := s.db.Create(&site).Error; err != nil {
		return nil, err
	}
	return &site, nil
}

func (s *GormStore) SiteExists(id uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.Site{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// ListMaterials возвращает справочник материалов
func (s *GormStore) ListMaterials() ([]models.Material, error) {
	materials := []models.Material{}
	err := s.db.Order("id ASC").Find(&materials).Error
	return materials, err
}

func (s *GormStore) MaterialExists(id uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.Material{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (s *GormStore) positions() *gorm.DB {
	return s.db.Table("inventory").
		Select("inventory.id, inventory.site_id, sites.name AS site_name, " +
			"inventory.material_id, materials.name AS material_name, " +
			"inventory.quantity, inventory.daily_burn_rate, inventory.last_used_at").
		Joins("JOIN sites ON inventory.site_id = sites.id").
		Joins("JOIN materials ON inventory.material_id = materials.id")
}

// ListPositions возвращает все позиции с названиями площадок и материалов
func (s *GormStore) ListPositions() ([]PositionRow, error) {
	rows := []PositionRow{}
	err := s.positions().Order("inventory.id ASC").Scan(&rows).Error
	return rows, err
}

// GetPosition возвращает позицию по ID или ErrInventoryNotFound
func (s *GormStore) GetPosition(id uint) (*models.Inventory, error) {
	var inv models.Inventory
	if err := s.db.First(&inv, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInventoryNotFound
		}
		return nil, err
	}
	return &inv, nil
}

// FindPosition ищет позицию площадки по материалу; при дублях берется самая ранняя
func (s *GormStore) FindPosition(siteID, materialID uint) (*models.Inventory, error) {
	var inv models.Inventory
	err := s.db.Where("site_id = ? AND material_id = ?", siteID, materialID).
		Order("id ASC").First(&inv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "inventory", Message: "Inventory not found for this site and material"}
		}
		return nil, err
	}
	return &inv, nil
}

// SurplusCandidates позиции того же материала на других площадках с остатком не меньше minQuantity.
// Сначала самый большой остаток, затем меньший ID.
func (s *GormStore) SurplusCandidates(siteID, materialID uint, minQuantity int) ([]PositionRow, error) {
	rows := []PositionRow{}
	err := s.positions().
		Where("inventory.material_id = ? AND inventory.site_id <> ? AND inventory.quantity >= ?", materialID, siteID, minQuantity).
		Order("inventory.quantity DESC, inventory.id ASC").
		Scan(&rows).Error
	return rows, err
}

// CreatePosition добавляет позицию
func (s *GormStore) CreatePosition(inv *models.Inventory) error {
	return s.db.Create(inv).Error
}

// DeletePosition удаляет журнал списаний и саму позицию в одной транзакции
func (s *GormStore) DeletePosition(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Inventory{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrInventoryNotFound
		}

		if err := tx.Where("inventory_id = ?", id).Delete(&models.InventoryUsage{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Inventory{}, id).Error
	})
}

// RecordUsage списывает usedQuantity и пишет запись в журнал атомарно.
// Проверка остатка встроена в UPDATE, отдельного чтения нет.
func (s *GormStore) RecordUsage(inventoryID uint, usedQuantity int, usedAt time.Time) error {
	usedAt = usedAt.UTC()

	return s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Inventory{}).
			Where("id = ? AND quantity >= ?", inventoryID, usedQuantity).
			Updates(map[string]interface{}{
				"quantity":     gorm.Expr("quantity - ?", usedQuantity),
				"last_used_at": usedAt,
			})
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&models.Inventory{}).Where("id = ?", inventoryID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return ErrInventoryNotFound
			}
			return ErrExceedsStock
		}

		usage := models.InventoryUsage{
			InventoryID:  inventoryID,
			UsedQuantity: usedQuantity,
			UsedAt:       usedAt,
		}
		return tx.Create(&usage).Error
	})
}

// UsageSince списания позиции начиная с since, по возрастанию времени
func (s *GormStore) UsageSince(inventoryID uint, since time.Time) ([]models.InventoryUsage, error) {
	usage := []models.InventoryUsage{}
	err := s.db.Where("inventory_id = ? AND used_at >= ?", inventoryID, since.UTC()).
		Order("used_at ASC, id ASC").
		Find(&usage).Error
	return usage, err
}

// UsageLog весь журнал списаний позиции от старых к новым
func (s *GormStore) UsageLog(inventoryID uint) ([]models.InventoryUsage, error) {
	usage := []models.InventoryUsage{}
	err := s.db.Where("inventory_id = ?", inventoryID).
		Order("used_at ASC, id ASC").
		Find(&usage).Error
	return usage, err
}

// LastUsageAt время последнего списания или nil, если списаний не было
func (s *GormStore) LastUsageAt(inventoryID uint) (*time.Time, error) {
	var usage []models.InventoryUsage
	err := s.db.Where("inventory_id = ?", inventoryID).
		Order("used_at DESC, id DESC").
		Limit(1).
		Find(&usage).Error
	if err != nil || len(usage) == 0 {
		return nil, err
	}
	return &usage[0].UsedAt, nil
}
