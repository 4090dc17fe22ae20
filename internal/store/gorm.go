package store

import (
	"errors"
	"fmt"
	"log"

	"github.com/glebarez/sqlite"
	"github.com/mkvist/shelfmark/internal/config"
	"github.com/mkvist/shelfmark/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/hints"
)

// OpenGorm establishes a database connection based on the configured DB_TYPE
// and returns the persistent store.
func OpenGorm(cfg *config.Config) (Store, error) {
	var dialector gorm.Dialector

	switch cfg.DBType {
	case "mysql", "mariadb":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			cfg.DBUser,
			cfg.DBPassword,
			cfg.DBHost,
			cfg.DBPort,
			cfg.DBDatabase,
		)
		dialector = mysql.Open(dsn)

	case "postgres", "postgresql":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
			cfg.DBHost,
			cfg.DBUser,
			cfg.DBPassword,
			cfg.DBDatabase,
			cfg.DBPort,
		)
		dialector = postgres.Open(dsn)

	case "sqlite":
		// For SQLite, DBDatabase is the file path
		dialector = sqlite.Open(cfg.DBDatabase)

	case "sqlserver", "mssql":
		dsn := fmt.Sprintf("sqlserver://%s:%s@%s:%s?database=%s",
			cfg.DBUser,
			cfg.DBPassword,
			cfg.DBHost,
			cfg.DBPort,
			cfg.DBDatabase,
		)
		dialector = sqlserver.Open(dsn)

	default:
		return nil, fmt.Errorf("unsupported database type: %s", cfg.DBType)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying SQL DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.DBConnectionLimit)
	sqlDB.SetMaxIdleConns(cfg.DBConnectionLimit / 2)

	log.Printf("Connected to %s database: %s", cfg.DBType, cfg.DBDatabase)

	return NewGorm(db)
}

// NewGorm wraps an open gorm handle as a Store, running auto-migrations
// for all models first. Tests use it with an in-memory SQLite handle.
func NewGorm(db *gorm.DB) (Store, error) {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Work{},
		&models.Rating{},
		&models.Shelf{},
	); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return &gormStore{db: db}, nil
}

type gormStore struct {
	db *gorm.DB
}

func (s *gormStore) Users() UserRepo     { return gormUsers{s.db} }
func (s *gormStore) Works() WorkRepo     { return gormWorks{s.db} }
func (s *gormStore) Ratings() RatingRepo { return gormRatings{s.db} }
func (s *gormStore) Shelves() ShelfRepo  { return gormShelves{s.db} }

func (s *gormStore) Ping() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func (s *gormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// asStoreErr converts gorm's not-found error to the store sentinel.
func asStoreErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

type gormUsers struct{ db *gorm.DB }

func (r gormUsers) ByID(id uint64) (*models.User, error) {
	var u models.User
	if err := r.db.First(&u, "user_id = ?", id).Error; err != nil {
		return nil, asStoreErr(err)
	}
	return &u, nil
}

func (r gormUsers) ByUsername(username string) (*models.User, error) {
	var u models.User
	if err := r.db.First(&u, "username = ?", username).Error; err != nil {
		return nil, asStoreErr(err)
	}
	return &u, nil
}

func (r gormUsers) ByEmail(email string) (*models.User, error) {
	var u models.User
	if err := r.db.First(&u, "email = ?", email).Error; err != nil {
		return nil, asStoreErr(err)
	}
	return &u, nil
}

func (r gormUsers) All() ([]models.User, error) {
	var users []models.User
	if err := r.db.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r gormUsers) Create(u *models.User) error {
	return r.db.Create(u).Error
}

func (r gormUsers) Save(u *models.User) error {
	return r.db.Save(u).Error
}

func (r gormUsers) Delete(id uint64) error {
	result := r.db.Delete(&models.User{}, "user_id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

type gormWorks struct{ db *gorm.DB }

func (r gormWorks) ByID(id uint64) (*models.Work, error) {
	var w models.Work
	if err := r.db.First(&w, "work_id = ?", id).Error; err != nil {
		return nil, asStoreErr(err)
	}
	return &w, nil
}

func (r gormWorks) All() ([]models.Work, error) {
	var works []models.Work
	// Full catalog reads feed search and recommendations; the comment hint
	// marks them in slow-query logs.
	if err := r.db.Clauses(hints.CommentBefore("select", "catalog scan")).
		Find(&works).Error; err != nil {
		return nil, err
	}
	return works, nil
}

func (r gormWorks) Create(w *models.Work) error {
	return r.db.Create(w).Error
}

func (r gormWorks) Save(w *models.Work) error {
	return r.db.Save(w).Error
}

func (r gormWorks) Delete(id uint64) error {
	result := r.db.Delete(&models.Work{}, "work_id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

type gormRatings struct{ db *gorm.DB }

func (r gormRatings) ByID(id uint64) (*models.Rating, error) {
	var rating models.Rating
	if err := r.db.First(&rating, "rating_id = ?", id).Error; err != nil {
		return nil, asStoreErr(err)
	}
	return &rating, nil
}

func (r gormRatings) ByUserAndWork(userID, workID uint64) (*models.Rating, error) {
	var rating models.Rating
	if err := r.db.First(&rating, "user_id = ? AND work_id = ?", userID, workID).Error; err != nil {
		return nil, asStoreErr(err)
	}
	return &rating, nil
}

func (r gormRatings) ByUser(userID uint64) ([]models.Rating, error) {
	var ratings []models.Rating
	if err := r.db.Where("user_id = ?", userID).Find(&ratings).Error; err != nil {
		return nil, err
	}
	return ratings, nil
}

func (r gormRatings) ByWork(workID uint64) ([]models.Rating, error) {
	var ratings []models.Rating
	if err := r.db.Where("work_id = ?", workID).Find(&ratings).Error; err != nil {
		return nil, err
	}
	return ratings, nil
}

func (r gormRatings) Create(rating *models.Rating) error {
	return r.db.Create(rating).Error
}

func (r gormRatings) Save(rating *models.Rating) error {
	return r.db.Save(rating).Error
}

func (r gormRatings) Delete(id uint64) error {
	result := r.db.Delete(&models.Rating{}, "rating_id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r gormRatings) DeleteByUser(userID uint64) (int64, error) {
	result := r.db.Delete(&models.Rating{}, "user_id = ?", userID)
	return result.RowsAffected, result.Error
}

type gormShelves struct{ db *gorm.DB }

func (r gormShelves) ByID(id uint64) (*models.Shelf, error) {
	var s models.Shelf
	if err := r.db.First(&s, "shelf_id = ?", id).Error; err != nil {
		return nil, asStoreErr(err)
	}
	return &s, nil
}

func (r gormShelves) ByUser(userID uint64) ([]models.Shelf, error) {
	var shelves []models.Shelf
	if err := r.db.Where("user_id = ?", userID).Find(&shelves).Error; err != nil {
		return nil, err
	}
	return shelves, nil
}

func (r gormShelves) ByUserAndName(userID uint64, name string) (*models.Shelf, error) {
	var s models.Shelf
	if err := r.db.First(&s, "user_id = ? AND name = ?", userID, name).Error; err != nil {
		return nil, asStoreErr(err)
	}
	return &s, nil
}

func (r gormShelves) Create(s *models.Shelf) error {
	return r.db.Create(s).Error
}

func (r gormShelves) Save(s *models.Shelf) error {
	return r.db.Save(s).Error
}

func (r gormShelves) Delete(id uint64) error {
	result := r.db.Delete(&models.Shelf{}, "shelf_id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r gormShelves) DeleteByUser(userID uint64) (int64, error) {
	result := r.db.Delete(&models.Shelf{}, "user_id = ?", userID)
	return result.RowsAffected, result.Error
}
