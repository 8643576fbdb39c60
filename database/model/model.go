// Package model defines the rows the memo panel persists.
package model

// User is an account. Password holds the bcrypt hash, never the plaintext.
type User struct {
	Id       int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Username string `json:"username" gorm:"uniqueIndex;not null"`
	Email    string `json:"email" gorm:"not null"`
	Password string `json:"-" gorm:"column:hashed_password;not null"`
}

// Memo is a note owned by exactly one user.
type Memo struct {
	Id      int    `json:"id" form:"id" gorm:"primaryKey;autoIncrement"`
	UserId  int    `json:"userId" gorm:"index;not null"`
	User    *User  `json:"-" gorm:"foreignKey:UserId;references:Id"`
	Title   string `json:"title" form:"title"`
	Content string `json:"content" form:"content"`
}

// MemoPatch carries a partial memo update. Nil fields are left unchanged.
type MemoPatch struct {
	Title   *string
	Content *string
}

// Empty reports whether the patch changes nothing.
func (p MemoPatch) Empty() bool {
	return p.Title == nil && p.Content == nil
}

// Apply copies the supplied fields onto m.
func (p MemoPatch) Apply(m *Memo) {
	if p.Title != nil {
		m.Title = *p.Title
	}
	if p.Content != nil {
		m.Content = *p.Content
	}
}
