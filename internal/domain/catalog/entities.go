package catalog

import (
	"errors"
	"time"
)

var (
	ErrNotFound     = errors.New("book not found")
	ErrInvalidInput = errors.New("invalid book input")
)

// Table: books
type Book struct {
	ID        uint64    `gorm:"primaryKey;column:id" json:"id"`
	Title     string    `gorm:"column:title;not null" json:"title"`
	Author    string    `gorm:"column:author;not null" json:"author"`
	ISBN      string    `gorm:"column:isbn;size:32;not null;index" json:"isbn"`
	Genre     string    `gorm:"column:genre;not null" json:"genre"`
	Year      string    `gorm:"column:year;size:8;not null" json:"year"`
	Quantity  int       `gorm:"column:quantity;not null;default:1" json:"quantity"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Book) TableName() string { return "books" }
