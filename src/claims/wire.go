package claims

import "gorm.io/gorm"

func Build(db *gorm.DB) *Handler {
	repo := NewRepository(db)
	service := NewService(repo)
	return NewHandler(service)
}
