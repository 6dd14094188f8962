package domain

// User Model
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`                                         // Primary key
	Username string `gorm:"unique;not null" json:"username"`                              // Unique username
	Email    string `gorm:"unique;not null" json:"email"`                                 // Unique email address
	Password string `gorm:"not null" json:"-"`                                            // Hashed password, never serialized
	IsAdmin  bool   `gorm:"default:false" json:"is_admin"`                                // Administrator flag
	IsActive bool   `gorm:"default:true" json:"is_active"`                                // Active account flag
	Wallet   Wallet `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"wallet"` // One-to-one relationship with Wallet
}
