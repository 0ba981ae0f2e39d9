package di

import (
	"gorm.io/gorm"

	"shopping_backend/internal/config"
	authadapters "shopping_backend/internal/feature/auth/adapters"
	authhandler "shopping_backend/internal/feature/auth/transport/handler"
	"shopping_backend/internal/feature/auth/usecase"
	jwtmw "shopping_backend/internal/platform/jwt"
	"shopping_backend/internal/platform/password"
)

// NewAuthHandler assembles the user store, the bounded bcrypt pool and the
// token codec behind the auth endpoints.
func NewAuthHandler(cfg config.Config, db *gorm.DB, codec *jwtmw.Codec) *authhandler.AuthHandler {
	users := authadapters.NewUserRepository(db)
	hasher := password.NewBcryptHasher(cfg.BcryptCost, cfg.HashWorkers)
	return authhandler.NewAuthHandler(usecase.NewAuthUsecase(users, hasher, codec))
}
