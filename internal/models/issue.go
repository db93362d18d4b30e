package models

import "time"

type Issue struct {
	ID         string    `json:"_id"`
	Project    string    `json:"project"`
	Title      string    `json:"issue_title"`
	Text       string    `json:"issue_text"`
	CreatedBy  string    `json:"created_by"`
	AssignedTo string    `json:"assigned_to"`
	StatusText string    `json:"status_text"`
	Open       bool      `json:"open"`
	CreatedOn  time.Time `json:"created_on"`
	UpdatedOn  time.Time `json:"updated_on"`
}
