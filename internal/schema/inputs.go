package schema

import "github.com/aTrapDeer/portfolio-backend/internal/models"

// IDInput addresses one row for get, delete and markRead.
type IDInput struct {
	ID uint `json:"id" validate:"required"`
}

// DeleteResult reports whether a row was actually removed.
type DeleteResult struct {
	Success bool `json:"success"`
}

// Contact info

type UpdateContactInfoInput struct {
	Name            Optional[string] `json:"name,omitzero" validate:"omitnil,min=1"`
	Title           Optional[string] `json:"title,omitzero" validate:"omitnil,min=1"`
	Email           Optional[string] `json:"email,omitzero" validate:"omitnil,email"`
	Phone           Nullable[string] `json:"phone,omitzero"`
	Location        Nullable[string] `json:"location,omitzero"`
	Website         Nullable[string] `json:"website,omitzero" validate:"omitnil,url"`
	Linkedin        Nullable[string] `json:"linkedin,omitzero" validate:"omitnil,url"`
	Github          Nullable[string] `json:"github,omitzero" validate:"omitnil,url"`
	Bio             Nullable[string] `json:"bio,omitzero"`
	ProfileImageURL Nullable[string] `json:"profile_image_url,omitzero" validate:"omitnil,url"`
}

// Fallbacks used when the first contact info row is created from a partial
// input.
const (
	DefaultContactName  = "John Doe"
	DefaultContactTitle = "Software Developer"
	DefaultContactEmail = "contact@example.com"
)

// NewContactInfo builds the first contact info row. Missing or empty
// required fields fall back to the defaults above; missing nullable fields
// are stored as null.
func (in UpdateContactInfoInput) NewContactInfo() models.ContactInfo {
	orDefault := func(f Optional[string], fallback string) string {
		if v, ok := f.Get(); ok && v != "" {
			return v
		}
		return fallback
	}
	return models.ContactInfo{
		Name:            orDefault(in.Name, DefaultContactName),
		Title:           orDefault(in.Title, DefaultContactTitle),
		Email:           orDefault(in.Email, DefaultContactEmail),
		Phone:           in.Phone.Ptr(),
		Location:        in.Location.Ptr(),
		Website:         in.Website.Ptr(),
		Linkedin:        in.Linkedin.Ptr(),
		Github:          in.Github.Ptr(),
		Bio:             in.Bio.Ptr(),
		ProfileImageURL: in.ProfileImageURL.Ptr(),
	}
}

func (in UpdateContactInfoInput) Changes() map[string]any {
	c := map[string]any{}
	setOptional(c, "name", in.Name)
	setOptional(c, "title", in.Title)
	setOptional(c, "email", in.Email)
	setNullable(c, "phone", in.Phone)
	setNullable(c, "location", in.Location)
	setNullable(c, "website", in.Website)
	setNullable(c, "linkedin", in.Linkedin)
	setNullable(c, "github", in.Github)
	setNullable(c, "bio", in.Bio)
	setNullable(c, "profile_image_url", in.ProfileImageURL)
	return c
}

// Skills

type CreateSkillInput struct {
	Name             string `json:"name" validate:"required"`
	Category         string `json:"category" validate:"required"`
	ProficiencyLevel int    `json:"proficiency_level" validate:"min=1,max=10"`
	IsFeatured       bool   `json:"is_featured"`
}

func (in CreateSkillInput) Model() models.Skill {
	return models.Skill{
		Name:             in.Name,
		Category:         in.Category,
		ProficiencyLevel: in.ProficiencyLevel,
		IsFeatured:       in.IsFeatured,
	}
}

type UpdateSkillInput struct {
	ID               uint             `json:"id" validate:"required"`
	Name             Optional[string] `json:"name,omitzero" validate:"omitnil,min=1"`
	Category         Optional[string] `json:"category,omitzero" validate:"omitnil,min=1"`
	ProficiencyLevel Optional[int]    `json:"proficiency_level,omitzero" validate:"omitnil,min=1,max=10"`
	IsFeatured       Optional[bool]   `json:"is_featured,omitzero"`
}

func (in UpdateSkillInput) Changes() map[string]any {
	c := map[string]any{}
	setOptional(c, "name", in.Name)
	setOptional(c, "category", in.Category)
	setOptional(c, "proficiency_level", in.ProficiencyLevel)
	setOptional(c, "is_featured", in.IsFeatured)
	return c
}

// Experience

type CreateExperienceInput struct {
	CompanyName string  `json:"company_name" validate:"required"`
	Position    string  `json:"position" validate:"required"`
	Description *string `json:"description"`
	StartDate   Date    `json:"start_date" validate:"required"`
	EndDate     *Date   `json:"end_date"`
	IsCurrent   bool    `json:"is_current"`
	Location    *string `json:"location"`
	CompanyURL  *string `json:"company_url" validate:"omitnil,url"`
}

func (in CreateExperienceInput) Model() models.Experience {
	return models.Experience{
		CompanyName: in.CompanyName,
		Position:    in.Position,
		Description: in.Description,
		StartDate:   in.StartDate.Time,
		EndDate:     timePtr(in.EndDate),
		IsCurrent:   in.IsCurrent,
		Location:    in.Location,
		CompanyURL:  in.CompanyURL,
	}
}

type UpdateExperienceInput struct {
	ID          uint             `json:"id" validate:"required"`
	CompanyName Optional[string] `json:"company_name,omitzero" validate:"omitnil,min=1"`
	Position    Optional[string] `json:"position,omitzero" validate:"omitnil,min=1"`
	Description Nullable[string] `json:"description,omitzero"`
	StartDate   Optional[Date]   `json:"start_date,omitzero"`
	EndDate     Nullable[Date]   `json:"end_date,omitzero"`
	IsCurrent   Optional[bool]   `json:"is_current,omitzero"`
	Location    Nullable[string] `json:"location,omitzero"`
	CompanyURL  Nullable[string] `json:"company_url,omitzero" validate:"omitnil,url"`
}

func (in UpdateExperienceInput) Changes() map[string]any {
	c := map[string]any{}
	setOptional(c, "company_name", in.CompanyName)
	setOptional(c, "position", in.Position)
	setNullable(c, "description", in.Description)
	setOptionalDate(c, "start_date", in.StartDate)
	setNullableDate(c, "end_date", in.EndDate)
	setOptional(c, "is_current", in.IsCurrent)
	setNullable(c, "location", in.Location)
	setNullable(c, "company_url", in.CompanyURL)
	return c
}

// Projects

type CreateProjectInput struct {
	Title        string   `json:"title" validate:"required"`
	Description  string   `json:"description" validate:"required"`
	Technologies []string `json:"technologies" validate:"required"`
	ProjectURL   *string  `json:"project_url" validate:"omitnil,url"`
	GithubURL    *string  `json:"github_url" validate:"omitnil,url"`
	ImageURL     *string  `json:"image_url" validate:"omitnil,url"`
	IsFeatured   bool     `json:"is_featured"`
}

func (in CreateProjectInput) Model() models.Project {
	return models.Project{
		Title:        in.Title,
		Description:  in.Description,
		Technologies: models.StringList(in.Technologies),
		ProjectURL:   in.ProjectURL,
		GithubURL:    in.GithubURL,
		ImageURL:     in.ImageURL,
		IsFeatured:   in.IsFeatured,
	}
}

type UpdateProjectInput struct {
	ID           uint               `json:"id" validate:"required"`
	Title        Optional[string]   `json:"title,omitzero" validate:"omitnil,min=1"`
	Description  Optional[string]   `json:"description,omitzero" validate:"omitnil,min=1"`
	Technologies Optional[[]string] `json:"technologies,omitzero"`
	ProjectURL   Nullable[string]   `json:"project_url,omitzero" validate:"omitnil,url"`
	GithubURL    Nullable[string]   `json:"github_url,omitzero" validate:"omitnil,url"`
	ImageURL     Nullable[string]   `json:"image_url,omitzero" validate:"omitnil,url"`
	IsFeatured   Optional[bool]     `json:"is_featured,omitzero"`
}

func (in UpdateProjectInput) Changes() map[string]any {
	c := map[string]any{}
	setOptional(c, "title", in.Title)
	setOptional(c, "description", in.Description)
	if v, ok := in.Technologies.Get(); ok {
		if v == nil {
			v = []string{}
		}
		c["technologies"] = models.StringList(v)
	}
	setNullable(c, "project_url", in.ProjectURL)
	setNullable(c, "github_url", in.GithubURL)
	setNullable(c, "image_url", in.ImageURL)
	setOptional(c, "is_featured", in.IsFeatured)
	return c
}

// Education

type CreateEducationInput struct {
	Institution  string   `json:"institution" validate:"required"`
	Degree       string   `json:"degree" validate:"required"`
	FieldOfStudy *string  `json:"field_of_study"`
	StartDate    Date     `json:"start_date" validate:"required"`
	EndDate      *Date    `json:"end_date"`
	GPA          *float64 `json:"gpa"`
	Description  *string  `json:"description"`
}

func (in CreateEducationInput) Model() models.Education {
	return models.Education{
		Institution:  in.Institution,
		Degree:       in.Degree,
		FieldOfStudy: in.FieldOfStudy,
		StartDate:    in.StartDate.Time,
		EndDate:      timePtr(in.EndDate),
		GPA:          in.GPA,
		Description:  in.Description,
	}
}

type UpdateEducationInput struct {
	ID           uint              `json:"id" validate:"required"`
	Institution  Optional[string]  `json:"institution,omitzero" validate:"omitnil,min=1"`
	Degree       Optional[string]  `json:"degree,omitzero" validate:"omitnil,min=1"`
	FieldOfStudy Nullable[string]  `json:"field_of_study,omitzero"`
	StartDate    Optional[Date]    `json:"start_date,omitzero"`
	EndDate      Nullable[Date]    `json:"end_date,omitzero"`
	GPA          Nullable[float64] `json:"gpa,omitzero"`
	Description  Nullable[string]  `json:"description,omitzero"`
}

func (in UpdateEducationInput) Changes() map[string]any {
	c := map[string]any{}
	setOptional(c, "institution", in.Institution)
	setOptional(c, "degree", in.Degree)
	setNullable(c, "field_of_study", in.FieldOfStudy)
	setOptionalDate(c, "start_date", in.StartDate)
	setNullableDate(c, "end_date", in.EndDate)
	setNullable(c, "gpa", in.GPA)
	setNullable(c, "description", in.Description)
	return c
}

// Contact submissions

type CreateContactSubmissionInput struct {
	Name    string  `json:"name" validate:"required"`
	Email   string  `json:"email" validate:"required,email"`
	Subject *string `json:"subject"`
	Message string  `json:"message" validate:"required"`
}

// Model always starts the submission unread.
func (in CreateContactSubmissionInput) Model() models.ContactSubmission {
	return models.ContactSubmission{
		Name:    in.Name,
		Email:   in.Email,
		Subject: in.Subject,
		Message: in.Message,
		IsRead:  false,
	}
}

func setOptional[T any](c map[string]any, column string, f Optional[T]) {
	if v, ok := f.Get(); ok {
		c[column] = v
	}
}

func setNullable[T any](c map[string]any, column string, f Nullable[T]) {
	if v, ok := f.Get(); ok {
		c[column] = v
	} else if f.IsNull() {
		c[column] = nil
	}
}

func setOptionalDate(c map[string]any, column string, f Optional[Date]) {
	if v, ok := f.Get(); ok {
		c[column] = v.Time
	}
}

func setNullableDate(c map[string]any, column string, f Nullable[Date]) {
	if v, ok := f.Get(); ok {
		c[column] = v.Time
	} else if f.IsNull() {
		c[column] = nil
	}
}
