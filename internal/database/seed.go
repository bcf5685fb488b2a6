// internal/database/seed.go
package database

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/resalex/backend/internal/models"
)

const demoPassword = "password123"

// SeedDemoData loads a small demo catalog for local development. Safe to run
// repeatedly; existing usernames and product names are skipped.
func SeedDemoData(db *gorm.DB) error {
	logrus.Info("Seeding demo data...")

	if err := seedDemoUsers(db); err != nil {
		return err
	}
	if err := seedDemoProducts(db); err != nil {
		return err
	}
	if err := seedDemoOrders(db); err != nil {
		return err
	}

	logrus.Info("Demo data seeding completed")
	return nil
}

func seedDemoUsers(db *gorm.DB) error {
	demoUsers := []struct {
		Username string
		Email    string
		Role     models.UserRole
	}{
		{"admin", "admin@resalex.com", models.RoleAdmin},
		{"moderator1", "moderator@resalex.com", models.RoleModerator},
		{"seller1", "seller1@resalex.com", models.RoleSeller},
		{"seller2", "seller2@resalex.com", models.RoleSeller},
		{"buyer1", "buyer1@resalex.com", models.RoleUser},
		{"buyer2", "buyer2@resalex.com", models.RoleUser},
	}

	for _, u := range demoUsers {
		var count int64
		if err := db.Model(&models.User{}).Where("username = ?", u.Username).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check demo user %s: %w", u.Username, err)
		}
		if count > 0 {
			continue
		}

		user := &models.User{
			Username: u.Username,
			Email:    u.Email,
			Role:     u.Role,
			IsActive: true,
		}
		if err := user.SetPassword(demoPassword); err != nil {
			return fmt.Errorf("failed to set demo password: %w", err)
		}
		if err := db.Create(user).Error; err != nil {
			return fmt.Errorf("failed to create demo user %s: %w", u.Username, err)
		}
	}

	return nil
}

func seedDemoProducts(db *gorm.DB) error {
	var sellers []models.User
	if err := db.Where("role = ?", models.RoleSeller).Find(&sellers).Error; err != nil {
		return fmt.Errorf("failed to load demo sellers: %w", err)
	}
	if len(sellers) == 0 {
		return nil
	}

	demoProducts := []models.Product{
		{Name: "Air Jordan 1 Retro High OG", Brand: "Nike", Category: models.CategorySneakers, Condition: models.ConditionNew, Size: "US 9", Price: 180.00, Description: "Classic Air Jordan 1 in the original colorway. Brand new with tags."},
		{Name: "Yeezy Boost 350 V2", Brand: "Adidas", Category: models.CategorySneakers, Condition: models.ConditionLikeNew, Size: "US 10", Price: 220.00, Description: "Popular Yeezy model in excellent condition. Worn only a few times."},
		{Name: "Supreme Box Logo Hoodie", Brand: "Supreme", Category: models.CategoryClothing, Condition: models.ConditionGood, Size: "L", Price: 450.00, Description: "Iconic Supreme box logo hoodie. Good condition."},
		{Name: "Off-White x Nike Air Presto", Brand: "Nike", Category: models.CategorySneakers, Condition: models.ConditionNew, Size: "US 8.5", Price: 320.00, Description: "Off-White and Nike collaboration. New in the original box."},
		{Name: "Travis Scott x Air Jordan 1", Brand: "Nike", Category: models.CategorySneakers, Condition: models.ConditionLikeNew, Size: "US 9.5", Price: 1200.00, Description: "Exclusive Travis Scott collaboration. Very rare."},
		{Name: "Balenciaga Triple S", Brand: "Balenciaga", Category: models.CategorySneakers, Condition: models.ConditionGood, Size: "US 10.5", Price: 280.00, Description: "Stylish Balenciaga sneakers in good condition."},
		{Name: "Gucci GG Marmont Bag", Brand: "Gucci", Category: models.CategoryAccessories, Condition: models.ConditionLikeNew, Size: "One Size", Price: 890.00, Description: "Elegant Gucci bag, carefully used, excellent condition."},
		{Name: "iPhone 14 Pro Max", Brand: "Apple", Category: models.CategoryElectronics, Condition: models.ConditionNew, Size: "256GB", Price: 1100.00, Description: "New iPhone 14 Pro Max, factory sealed."},
	}

	for _, p := range demoProducts {
		var count int64
		if err := db.Model(&models.Product{}).Where("name = ?", p.Name).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check demo product %s: %w", p.Name, err)
		}
		if count > 0 {
			continue
		}

		p.SellerID = sellers[rand.Intn(len(sellers))].ID
		p.Status = models.ProductStatusApproved // pre-approved for the demo
		if err := db.Create(&p).Error; err != nil {
			return fmt.Errorf("failed to create demo product %s: %w", p.Name, err)
		}
	}

	return nil
}

func seedDemoOrders(db *gorm.DB) error {
	var orderCount int64
	if err := db.Model(&models.Order{}).Count(&orderCount).Error; err != nil {
		return fmt.Errorf("failed to count orders: %w", err)
	}
	if orderCount > 0 {
		return nil
	}

	var buyers []models.User
	if err := db.Where("role = ?", models.RoleUser).Find(&buyers).Error; err != nil {
		return fmt.Errorf("failed to load demo buyers: %w", err)
	}
	var products []models.Product
	if err := db.Where("status = ?", models.ProductStatusApproved).Find(&products).Error; err != nil {
		return fmt.Errorf("failed to load demo products: %w", err)
	}
	if len(buyers) == 0 || len(products) == 0 {
		return nil
	}

	demoOrders := []struct {
		Status  models.OrderStatus
		DaysAgo int
	}{
		{models.OrderStatusDelivered, 5},
		{models.OrderStatusShipped, 2},
		{models.OrderStatusPaid, 1},
		{models.OrderStatusPending, 0},
	}

	for _, o := range demoOrders {
		product := products[rand.Intn(len(products))]
		buyer := buyers[rand.Intn(len(buyers))]

		if buyer.ID == product.SellerID {
			continue
		}

		order := &models.Order{
			BuyerID:     buyer.ID,
			ProductID:   product.ID,
			TotalAmount: product.Price,
			Status:      o.Status,
		}
		if o.Status == models.OrderStatusShipped {
			order.TrackingNumber = fmt.Sprintf("TR%06d", rand.Intn(900000)+100000)
		}

		if err := db.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create demo order: %w", err)
		}

		backdated := time.Now().AddDate(0, 0, -o.DaysAgo)
		if err := db.Model(order).Update("created_at", backdated).Error; err != nil {
			return fmt.Errorf("failed to backdate demo order: %w", err)
		}
	}

	return nil
}
