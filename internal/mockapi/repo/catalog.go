package repo

import (
	"context"

	"gorm.io/gorm/clause"

	"github.com/diplomas-2025/agro-market/internal/mockapi/domain"
)

func (r *GormRepo) Products(ctx context.Context) ([]domain.Product, error) {
	var ps []domain.Product
	if err := r.DB.WithContext(ctx).Order("id").Find(&ps).Error; err != nil {
		return nil, err
	}
	return ps, nil
}

func (r *GormRepo) Product(ctx context.Context, id int) (*domain.Product, error) {
	var p domain.Product
	if err := r.DB.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GormRepo) Categories(ctx context.Context) ([]domain.Category, error) {
	var cs []domain.Category
	if err := r.DB.WithContext(ctx).Order("id").Find(&cs).Error; err != nil {
		return nil, err
	}
	return cs, nil
}

// FavoriteSet returns the ids of the user's favorite products.
func (r *GormRepo) FavoriteSet(ctx context.Context, userID int) (map[int]bool, error) {
	var favs []domain.Favorite
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Find(&favs).Error; err != nil {
		return nil, err
	}
	out := make(map[int]bool, len(favs))
	for _, f := range favs {
		out[f.ProductID] = true
	}
	return out, nil
}

// ToggleFavorite flips the favorite flag and reports the new value.
func (r *GormRepo) ToggleFavorite(ctx context.Context, userID, productID int) (bool, error) {
	fav := domain.Favorite{UserID: userID, ProductID: productID}
	res := r.DB.WithContext(ctx).Where(&fav).Delete(&domain.Favorite{})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return false, nil
	}
	if err := r.DB.WithContext(ctx).Create(&fav).Error; err != nil {
		return false, err
	}
	return true, nil
}

func (r *GormRepo) Reviews(ctx context.Context, productID int) ([]domain.Review, error) {
	var rs []domain.Review
	if err := r.DB.WithContext(ctx).Preload("User").Where("product_id = ?", productID).Order("id").Find(&rs).Error; err != nil {
		return nil, err
	}
	return rs, nil
}

func (r *GormRepo) HasReview(ctx context.Context, userID, productID int) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&domain.Review{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error
	return count > 0, err
}

func (r *GormRepo) CreateReview(ctx context.Context, rv *domain.Review) error {
	return r.DB.WithContext(ctx).Omit(clause.Associations).Create(rv).Error
}
