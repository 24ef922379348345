package client

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/aTrapDeer/portfolio-backend/internal/models"
)

// Portfolio is everything the public site renders on first load.
type Portfolio struct {
	ContactInfo      *models.ContactInfo `json:"contact_info"`
	Experience       []models.Experience `json:"experience"`
	Projects         []models.Project    `json:"projects"`
	FeaturedProjects []models.Project    `json:"featured_projects"`
	Skills           []models.Skill      `json:"skills"`
	FeaturedSkills   []models.Skill      `json:"featured_skills"`
	Education        []models.Education  `json:"education"`
}

// LoadPortfolio fetches every collection concurrently. The first failure
// cancels the remaining calls.
func (c *Client) LoadPortfolio(ctx context.Context) (*Portfolio, error) {
	var p Portfolio
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		p.ContactInfo, err = c.ContactInfo(ctx)
		return err
	})
	g.Go(func() (err error) {
		p.Experience, err = c.Experience(ctx)
		return err
	})
	g.Go(func() (err error) {
		p.Projects, err = c.Projects(ctx)
		return err
	})
	g.Go(func() (err error) {
		p.FeaturedProjects, err = c.FeaturedProjects(ctx)
		return err
	})
	g.Go(func() (err error) {
		p.Skills, err = c.Skills(ctx)
		return err
	})
	g.Go(func() (err error) {
		p.FeaturedSkills, err = c.FeaturedSkills(ctx)
		return err
	})
	g.Go(func() (err error) {
		p.Education, err = c.Education(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &p, nil
}
