package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"sitebrain/internal/auth"
	"sitebrain/internal/authz"
	"sitebrain/internal/httpserver"
	"sitebrain/internal/logger"
	"sitebrain/internal/models"
	"sitebrain/internal/store"
)

func main() {
	_ = godotenv.Load()
	lg := logger.New()
	defer lg.Sync()

	db, err := openDB(lg)
	if err != nil {
		lg.Fatalw("db connect failed", "error", err)
	}
	if err := db.AutoMigrate(
		&models.Role{}, &models.User{}, &models.Project{}, &models.Alert{},
		&models.Document{}, &models.AuditLog{}, &models.Session{},
	); err != nil {
		lg.Fatalw("automigrate failed", "error", err)
	}

	st := store.New(db, authz.DefaultCatalog())
	seedDefaults(db, lg)

	router := httpserver.NewRouter(st, lg)
	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}
	lg.Infow("listening", "port", port)
	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Fatal(err)
	}
}

func openDB(lg *zap.SugaredLogger) (*gorm.DB, error) {
	if os.Getenv("DB_DRIVER") == "sqlite" {
		path := os.Getenv("SQLITE_PATH")
		if path == "" {
			path = "sitebrain.db"
		}
		return gorm.Open(sqlite.Open(path), &gorm.Config{})
	}
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		lg.Fatalw("DATABASE_URL is empty")
	}
	return gorm.Open(postgres.Open(dsn), &gorm.Config{})
}

// seedDefaults populates an empty database with the standard roles, a
// default administrator, and sample projects with their alerts.
func seedDefaults(db *gorm.DB, lg *zap.SugaredLogger) {
	for _, def := range authz.DefaultRoles() {
		role := models.Role{
			Name:        def.Name,
			Description: def.Description,
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		}
		for _, d := range def.AllowedDocuments {
			role.AllowedDocuments = append(role.AllowedDocuments, string(d))
		}
		for _, s := range def.DataAccess {
			role.DataAccess = append(role.DataAccess, string(s))
		}
		for _, a := range def.Actions {
			role.Actions = append(role.Actions, string(a))
		}
		var count int64
		db.Model(&models.Role{}).Where("name = ?", def.Name).Count(&count)
		if count == 0 {
			if err := db.Create(&role).Error; err != nil {
				lg.Warnw("seed role failed", "role", def.Name, "error", err)
			}
		}
	}

	var users int64
	db.Model(&models.User{}).Count(&users)
	if users == 0 {
		hash, _ := auth.HashPassword(envOr("ADMIN_PASSWORD", "changeme"))
		admin := models.User{
			ID:           uuid.NewString(),
			Name:         "Administrator",
			Email:        "admin@sitebrain.local",
			PasswordHash: hash,
			RoleName:     "ceo",
			Projects:     models.StringList{authz.ProjectsAll},
			IsActive:     true,
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
		}
		if err := db.Create(&admin).Error; err != nil {
			lg.Warnw("seed admin failed", "error", err)
		} else {
			lg.Infow("seeded default admin", "email", admin.Email)
		}
	}

	var projects int64
	db.Model(&models.Project{}).Count(&projects)
	if projects == 0 {
		seed := []models.Project{
			{ID: "heritage_resort", Name: "Heritage Resort", DriveID: "heritage", CreatedAt: time.Now()},
			{ID: "boulevard_development", Name: "Boulevard Development", CreatedAt: time.Now()},
			{ID: "infrastructure_mc0a", Name: "Infrastructure MC0A", DriveID: "infra", CreatedAt: time.Now()},
			{ID: "cultural_district", Name: "Cultural District", CreatedAt: time.Now()},
		}
		for _, p := range seed {
			_ = db.Create(&p).Error
		}
		alerts := []models.Alert{
			{ProjectID: "heritage_resort", Category: "delay", Message: "Task A is behind schedule", CreatedAt: time.Now()},
			{ProjectID: "heritage_resort", Category: "budget", Message: "Overrun in section B", CreatedAt: time.Now()},
		}
		for _, a := range alerts {
			_ = db.Create(&a).Error
		}
		lg.Infow("seeded sample projects", "count", len(seed))
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
