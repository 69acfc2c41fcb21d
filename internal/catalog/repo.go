package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/adithyanarayan/stockline-backend/pkg/db/models"
	"github.com/adithyanarayan/stockline-backend/pkg/pagination"
)

// Repository provides product and variant persistence.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	Save(ctx context.Context, product *models.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	List(ctx context.Context, activeOnly bool, category *string, cursor *pagination.Cursor, limit int) ([]models.Product, error)
	ReplaceVariants(ctx context.Context, productID uuid.UUID, variants []models.ProductVariant) error
	VariantStock(ctx context.Context, productID uuid.UUID, size, color string) (int, bool, error)
	DecrementVariantStock(ctx context.Context, productID uuid.UUID, size, color string, quantity int) (bool, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a catalog repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

func (r *repository) Save(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Variants").
		Where("id = ?", id).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *repository) List(ctx context.Context, activeOnly bool, category *string, cursor *pagination.Cursor, limit int) ([]models.Product, error) {
	query := r.db.WithContext(ctx).
		Preload("Variants").
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if category != nil {
		query = query.Where("category = ?", *category)
	}
	if cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *repository) ReplaceVariants(ctx context.Context, productID uuid.UUID, variants []models.ProductVariant) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("product_id = ?", productID).Delete(&models.ProductVariant{}).Error; err != nil {
		return err
	}
	if len(variants) == 0 {
		return nil
	}
	for i := range variants {
		variants[i].ProductID = productID
	}
	return db.Create(&variants).Error
}

func (r *repository) VariantStock(ctx context.Context, productID uuid.UUID, size, color string) (int, bool, error) {
	var variant models.ProductVariant
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND size = ? AND color = ?", productID, size, color).
		First(&variant).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, false, nil
		}
		return 0, false, err
	}
	return variant.Stock, true, nil
}

// DecrementVariantStock applies a guarded decrement. The stock >= quantity
// predicate makes the write the authoritative sufficiency check; a zero
// rows-affected result means stock moved under the order between the
// pre-check and the write.
func (r *repository) DecrementVariantStock(ctx context.Context, productID uuid.UUID, size, color string, quantity int) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.ProductVariant{}).
		Where("product_id = ? AND size = ? AND color = ? AND stock >= ?", productID, size, color, quantity).
		Update("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
