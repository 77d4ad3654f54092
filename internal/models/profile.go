package models

import "time"

// UserProfile holds the non-authentication attributes of an account. It is a
// one-to-one extension of User and is removed together with it.
type UserProfile struct {
	ID         uint       `json:"id" gorm:"primaryKey"`
	UserID     uint       `json:"user_id" gorm:"uniqueIndex;not null"`
	User       *User      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	NickName   string     `json:"nick_name" gorm:"type:varchar(150)"`
	Avatar     string     `json:"avatar" gorm:"type:varchar(255)"`
	Birthday   *time.Time `json:"birthday"`
	Gender     *bool      `json:"gender"` // false=female, true=male, nil=unset
	ProvinceID *uint      `json:"province_id"`
	Province   *Province  `json:"-" gorm:"constraint:OnDelete:SET NULL"`
}

// TableName keeps the legacy table name.
func (UserProfile) TableName() string {
	return "user_profile"
}

// GetNickName falls back to the username when no nick name is set.
func (p *UserProfile) GetNickName() string {
	if p.NickName != "" {
		return p.NickName
	}
	if p.User != nil {
		return p.User.Username
	}
	return ""
}

// Province is reference data pointed to by profiles; it is never owned by
// them.
type Province struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Name       string    `json:"name" gorm:"type:varchar(150);not null"`
	IsValid    bool      `json:"is_valid"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
	ModifiedAt time.Time `json:"modified_at" gorm:"autoUpdateTime"`
}
