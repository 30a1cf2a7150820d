package models

import "time"

// Project represents a row in the projects table. Members and Tasks hold
// user and task ids respectively, stored as JSONB arrays.
type Project struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Members     []string   `json:"members,omitempty"`
	Tasks       []string   `json:"tasks,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// ProjectPatch describes a partial update. Only non-nil fields are applied.
type ProjectPatch struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	Members     *[]string  `json:"members"`
	Tasks       *[]string  `json:"tasks"`
}

// Apply copies the set fields of the patch onto the project.
func (p *ProjectPatch) Apply(pr *Project) {
	if p.Name != nil {
		pr.Name = *p.Name
	}
	if p.Description != nil {
		pr.Description = *p.Description
	}
	if p.DueDate != nil {
		pr.DueDate = p.DueDate
	}
	if p.Members != nil {
		pr.Members = *p.Members
	}
	if p.Tasks != nil {
		pr.Tasks = *p.Tasks
	}
}
