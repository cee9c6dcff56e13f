package model

import (
	"time"
)

type User struct {
	ID           string `gorm:"primaryKey;type:varchar(36)"`
	Email        string `gorm:"uniqueIndex;not null"`
	Nickname     string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null" json:"-"`
	Tags         []Tag  `gorm:"foreignKey:CreatorID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Tag struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	Name      string `gorm:"not null;uniqueIndex:idx_tags_creator_name"`
	SortOrder int    `gorm:"not null;default:0"`
	CreatorID string `gorm:"type:varchar(36);not null;uniqueIndex:idx_tags_creator_name"`
	Creator   *User  `gorm:"foreignKey:CreatorID;references:ID"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TokenClass separates short-lived access tokens from single-use refresh tokens.
type TokenClass string

const (
	TokenClassAccess  TokenClass = "access"
	TokenClassRefresh TokenClass = "refresh"
)

type TokenPair struct {
	AccessToken  string
	RefreshToken string
	// ExpiresIn echoes the configured access-token lifetime, e.g. "30m".
	ExpiresIn  string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	UserID     string
}

// TagOrder is the whitelisted sort key for tag listings.
type TagOrder string

const (
	TagOrderID        TagOrder = "id"
	TagOrderName      TagOrder = "name"
	TagOrderSortOrder TagOrder = "sortOrder"
)

// ParseTagOrder maps a client supplied sort key to a known order.
// Unknown keys fall back to insertion order.
func ParseTagOrder(s string) TagOrder {
	switch TagOrder(s) {
	case TagOrderName, TagOrderSortOrder:
		return TagOrder(s)
	default:
		return TagOrderID
	}
}

type Page struct {
	Offset int
	Length int
}
