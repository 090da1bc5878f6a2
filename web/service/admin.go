// Package service provides the business logic behind the portfolio API.
package service

import (
	"github.com/astatica/portfolio/database"
	"github.com/astatica/portfolio/database/model"
	"github.com/astatica/portfolio/logger"
	"github.com/astatica/portfolio/util/common"
	"github.com/astatica/portfolio/util/crypto"

	"gorm.io/gorm"
)

// AdminService verifies and manages administrator credentials. The admin
// collection is read-only at runtime except for the CLI update path.
type AdminService struct{}

// CheckAdmin returns the admin record when the username exists and the
// password matches its bcrypt hash, nil otherwise.
func (s *AdminService) CheckAdmin(username string, password string) *model.Admin {
	db := database.GetDB()

	admin := &model.Admin{}
	err := db.Model(model.Admin{}).
		Where("username = ?", username).
		First(admin).
		Error
	if err == gorm.ErrRecordNotFound {
		return nil
	} else if err != nil {
		logger.Warning("check admin err:", err)
		return nil
	}

	if !crypto.CheckPasswordHash(admin.PasswordHash, password) {
		return nil
	}

	return admin
}

// GetFirstAdmin returns the bootstrapped administrator record.
func (s *AdminService) GetFirstAdmin() (*model.Admin, error) {
	db := database.GetDB()

	admin := &model.Admin{}
	err := db.Model(model.Admin{}).First(admin).Error
	if err != nil {
		return nil, err
	}
	return admin, nil
}

// UpdateFirstAdmin resets the first administrator's credentials. Used by the
// CLI only; the HTTP surface has no credential mutation endpoint.
func (s *AdminService) UpdateFirstAdmin(username string, password string) error {
	if username == "" {
		return common.NewError("username can not be empty")
	} else if password == "" {
		return common.NewError("password can not be empty")
	}
	hash, err := crypto.HashPasswordAsBcrypt(password)
	if err != nil {
		return err
	}

	db := database.GetDB()
	admin := &model.Admin{}
	err = db.Model(model.Admin{}).First(admin).Error
	if database.IsNotFound(err) {
		admin.Username = username
		admin.PasswordHash = hash
		return db.Create(admin).Error
	} else if err != nil {
		return err
	}
	admin.Username = username
	admin.PasswordHash = hash
	return db.Save(admin).Error
}
