// Package seed loads portfolio content from a YAML file through the same
// validated operations the API uses.
//
//	contact_info:
//	  name: Ana Example
//	  email: ana@example.com
//	skills:
//	  - {name: Go, category: Backend, proficiency_level: 9, is_featured: true}
//	experience:
//	  - company_name: Acme
//	    position: Engineer
//	    start_date: 2021-03-01
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/aTrapDeer/portfolio-backend/internal/portfolio"
	"github.com/aTrapDeer/portfolio-backend/internal/schema"
)

type entry = map[string]any

// File is the seed document. Entries use the same field names as the API.
type File struct {
	ContactInfo entry   `yaml:"contact_info"`
	Skills      []entry `yaml:"skills"`
	Experience  []entry `yaml:"experience"`
	Projects    []entry `yaml:"projects"`
	Education   []entry `yaml:"education"`
}

// Result counts what was written.
type Result struct {
	ContactInfo bool
	Skills      int
	Experience  int
	Projects    int
	Education   int
}

func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	return &f, nil
}

// Apply upserts the contact info and creates every listed row. It stops at
// the first invalid entry; rows written before it stay.
func Apply(ctx context.Context, svc *portfolio.Service, f *File) (Result, error) {
	var res Result
	var err error

	if len(f.ContactInfo) > 0 {
		var in schema.UpdateContactInfoInput
		if err := decode(f.ContactInfo, &in); err != nil {
			return res, fmt.Errorf("contact_info: %w", err)
		}
		if _, err := svc.UpdateContactInfo(ctx, in); err != nil {
			return res, fmt.Errorf("contact_info: %w", err)
		}
		res.ContactInfo = true
	}

	if res.Skills, err = createAll(ctx, "skills", f.Skills, svc.CreateSkill); err != nil {
		return res, err
	}
	if res.Experience, err = createAll(ctx, "experience", f.Experience, svc.CreateExperience); err != nil {
		return res, err
	}
	if res.Projects, err = createAll(ctx, "projects", f.Projects, svc.CreateProject); err != nil {
		return res, err
	}
	if res.Education, err = createAll(ctx, "education", f.Education, svc.CreateEducation); err != nil {
		return res, err
	}
	return res, nil
}

func createAll[In, Out any](ctx context.Context, section string, entries []entry, create func(context.Context, In) (Out, error)) (int, error) {
	for i, e := range entries {
		var in In
		if err := decode(e, &in); err != nil {
			return i, fmt.Errorf("%s[%d]: %w", section, i, err)
		}
		if _, err := create(ctx, in); err != nil {
			return i, fmt.Errorf("%s[%d]: %w", section, i, err)
		}
	}
	return len(entries), nil
}

// decode routes a YAML mapping through JSON so inputs see exactly what an API
// call would send.
func decode(e entry, dst any) error {
	raw, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return schema.Decode(raw, dst)
}
