package models

import "time"

// NoImage is stored in BookImage when a note was created without a picture.
const NoImage = " "

// Note is a student's note about a book.
type Note struct {
	ID          string    `json:"_id"`
	StudentID   string    `json:"studentId"`
	BookName    string    `json:"bookName"`
	Author      string    `json:"author"`
	BookImage   string    `json:"bookImage"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
