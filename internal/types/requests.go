package types

import "github.com/pageza/foodtrace/backend/internal/models"

// RegisterRequest is the body of a registration.
type RegisterRequest struct {
	Email           string `json:"email" form:"email" validate:"required,email,max=255"`
	Password        string `json:"password" form:"password" validate:"required,min=6,max=128"`
	ConfirmPassword string `json:"confirmPassword" form:"confirmPassword" validate:"required,eqfield=Password"`
}

// LoginRequest is the body of a login.
type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Token string `json:"token"`
}

// ChangePasswordRequest replaces the caller's password.
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" form:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" form:"newPassword" validate:"required,min=6,max=128,nefield=OldPassword"`
}

// DeleteUserRequest confirms self-service account deletion.
type DeleteUserRequest struct {
	Password        string `json:"password" form:"password" validate:"required"`
	ConfirmDeletion bool   `json:"confirmDeletion" form:"confirmDeletion" validate:"eq=true"`
}

// ProfileResponse describes the authenticated account.
type ProfileResponse struct {
	UserID uint   `json:"userId"`
	Email  string `json:"email"`
}

// ItemRequest is the writable shape of an Item. Client supplied ids and
// timestamps are not part of it and therefore never reach the store.
type ItemRequest struct {
	Name                string   `json:"name" form:"name" validate:"required,max=200"`
	Category            string   `json:"category" form:"category" validate:"required,max=50"`
	Certificate         string   `json:"certificate" form:"certificate" validate:"omitempty,max=100"`
	ImageURL            string   `json:"imageUrl" form:"imageUrl" validate:"omitempty,url,max=2048"`
	Energy              *float64 `json:"energy" form:"energy" validate:"omitempty,gte=0"`
	Carbohydrates       *float64 `json:"carbohydrates" form:"carbohydrates" validate:"omitempty,gte=0"`
	Sugar               *float64 `json:"sugar" form:"sugar" validate:"omitempty,gte=0"`
	Protein             *float64 `json:"protein" form:"protein" validate:"omitempty,gte=0"`
	Fat                 *float64 `json:"fat" form:"fat" validate:"omitempty,gte=0"`
	SaturatedFat        *float64 `json:"saturatedFat" form:"saturatedFat" validate:"omitempty,gte=0"`
	UnsaturatedFat      *float64 `json:"unsaturatedFat" form:"unsaturatedFat" validate:"omitempty,gte=0"`
	Fibre               *float64 `json:"fibre" form:"fibre" validate:"omitempty,gte=0"`
	Salt                *float64 `json:"salt" form:"salt" validate:"omitempty,gte=0"`
	CountryOfOrigin     string   `json:"countryOfOrigin" form:"countryOfOrigin" validate:"required,max=50"`
	CountryOfProvenance string   `json:"countryOfProvenance" form:"countryOfProvenance" validate:"required,max=50"`
}

// ToModel copies the request onto a new Item.
func (r *ItemRequest) ToModel() *models.Item {
	return &models.Item{
		Name:                r.Name,
		Category:            r.Category,
		Certificate:         r.Certificate,
		ImageURL:            r.ImageURL,
		Energy:              r.Energy,
		Carbohydrates:       r.Carbohydrates,
		Sugar:               r.Sugar,
		Protein:             r.Protein,
		Fat:                 r.Fat,
		SaturatedFat:        r.SaturatedFat,
		UnsaturatedFat:      r.UnsaturatedFat,
		Fibre:               r.Fibre,
		Salt:                r.Salt,
		CountryOfOrigin:     r.CountryOfOrigin,
		CountryOfProvenance: r.CountryOfProvenance,
	}
}

// ImageUploadRequest asks for a presigned upload URL for an item image.
type ImageUploadRequest struct {
	ContentType string `json:"contentType" validate:"required,oneof=image/jpeg image/png image/webp"`
}

// ImageUploadResponse returns where to PUT the image and where it will live.
type ImageUploadResponse struct {
	UploadURL string `json:"uploadUrl"`
	ImageURL  string `json:"imageUrl"`
	ExpiresIn int    `json:"expiresIn"`
}
