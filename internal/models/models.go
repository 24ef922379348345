// Package models holds the database models for the portfolio tables.
package models

import (
	"time"

	"gorm.io/gorm"
)

// ContactInfo is the portfolio owner's profile. By convention only the most
// recently created row is live.
type ContactInfo struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Name            string    `gorm:"not null" json:"name"`
	Title           string    `gorm:"not null" json:"title"`
	Email           string    `gorm:"not null" json:"email"`
	Phone           *string   `json:"phone"`
	Location        *string   `json:"location"`
	Website         *string   `json:"website"`
	Linkedin        *string   `json:"linkedin"`
	Github          *string   `json:"github"`
	Bio             *string   `json:"bio"`
	ProfileImageURL *string   `gorm:"column:profile_image_url" json:"profile_image_url"`
	CreatedAt       time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time `gorm:"not null" json:"updated_at"`
}

func (ContactInfo) TableName() string { return "contact_info" }

type Skill struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Name             string    `gorm:"not null" json:"name"`
	Category         string    `gorm:"not null;index" json:"category"` // e.g. "Frontend", "Backend"
	ProficiencyLevel int       `gorm:"not null" json:"proficiency_level"` // 1-10
	IsFeatured       bool      `gorm:"not null;default:false" json:"is_featured"`
	CreatedAt        time.Time `gorm:"not null" json:"created_at"`
}

func (Skill) TableName() string { return "skills" }

// Experience is a work history entry. A current position is expected to
// have a nil EndDate, but nothing enforces it.
type Experience struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	CompanyName string     `gorm:"not null" json:"company_name"`
	Position    string     `gorm:"not null" json:"position"`
	Description *string    `json:"description"`
	StartDate   time.Time  `gorm:"not null" json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	IsCurrent   bool       `gorm:"not null;default:false" json:"is_current"`
	Location    *string    `json:"location"`
	CompanyURL  *string    `gorm:"column:company_url" json:"company_url"`
	CreatedAt   time.Time  `gorm:"not null" json:"created_at"`
}

func (Experience) TableName() string { return "experience" }

// BeforeSave stores dates in UTC. SQLite compares them as text.
func (e *Experience) BeforeSave(*gorm.DB) error {
	e.StartDate = e.StartDate.UTC()
	e.EndDate = utcPtr(e.EndDate)
	return nil
}

type Project struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Title        string     `gorm:"not null" json:"title"`
	Description  string     `gorm:"not null" json:"description"`
	Technologies StringList `gorm:"not null" json:"technologies"`
	ProjectURL   *string    `gorm:"column:project_url" json:"project_url"`
	GithubURL    *string    `gorm:"column:github_url" json:"github_url"`
	ImageURL     *string    `gorm:"column:image_url" json:"image_url"`
	IsFeatured   bool       `gorm:"not null;default:false" json:"is_featured"`
	CreatedAt    time.Time  `gorm:"not null" json:"created_at"`
}

func (Project) TableName() string { return "projects" }

type Education struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Institution  string     `gorm:"not null" json:"institution"`
	Degree       string     `gorm:"not null" json:"degree"`
	FieldOfStudy *string    `json:"field_of_study"`
	StartDate    time.Time  `gorm:"not null" json:"start_date"`
	EndDate      *time.Time `json:"end_date"`
	GPA          *float64   `gorm:"column:gpa" json:"gpa"`
	Description  *string    `json:"description"`
	CreatedAt    time.Time  `gorm:"not null" json:"created_at"`
}

func (Education) TableName() string { return "education" }

func (e *Education) BeforeSave(*gorm.DB) error {
	e.StartDate = e.StartDate.UTC()
	e.EndDate = utcPtr(e.EndDate)
	return nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

// ContactSubmission is a message left through the public contact form.
type ContactSubmission struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"not null" json:"email"`
	Subject   *string   `json:"subject"`
	Message   string    `gorm:"not null" json:"message"`
	IsRead    bool      `gorm:"not null;default:false;index" json:"is_read"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (ContactSubmission) TableName() string { return "contact_submissions" }

// All returns one zero value of every model, in migration order.
func All() []any {
	return []any{
		&ContactInfo{},
		&Skill{},
		&Experience{},
		&Project{},
		&Education{},
		&ContactSubmission{},
	}
}
