package rpc

import (
	"context"
	"net/http"

	"github.com/aTrapDeer/portfolio-backend/internal/portfolio"
	"github.com/aTrapDeer/portfolio-backend/internal/schema"
)

type handlerFunc func(ctx context.Context, input []byte) (any, error)

// procedure is one named remote call. Queries are served over GET and read
// their input from the "input" query parameter; mutations are POSTed.
type procedure struct {
	name     string
	mutation bool
	call     handlerFunc
}

func (p procedure) method() string {
	if p.mutation {
		return http.MethodPost
	}
	return http.MethodGet
}

func query[Out any](name string, fn func(context.Context) (Out, error)) procedure {
	return procedure{name: name, call: func(ctx context.Context, _ []byte) (any, error) {
		return fn(ctx)
	}}
}

func queryWith[In, Out any](name string, fn func(context.Context, In) (Out, error)) procedure {
	return procedure{name: name, call: decoding(fn)}
}

func mutation[In, Out any](name string, fn func(context.Context, In) (Out, error)) procedure {
	return procedure{name: name, mutation: true, call: decoding(fn)}
}

func decoding[In, Out any](fn func(context.Context, In) (Out, error)) handlerFunc {
	return func(ctx context.Context, raw []byte) (any, error) {
		var in In
		if err := schema.Decode(raw, &in); err != nil {
			return nil, err
		}
		return fn(ctx, in)
	}
}

// Procedures lists every procedure name the router serves.
func Procedures() []string {
	procs := procedures(nil)
	names := make([]string, 0, len(procs))
	for _, p := range procs {
		names = append(names, p.name)
	}
	return names
}

func procedures(svc *portfolio.Service) []procedure {
	return []procedure{
		query("healthcheck", func(context.Context) (portfolio.Health, error) {
			return svc.Health(), nil
		}),

		query("contactInfo.get", svc.ContactInfo),
		mutation("contactInfo.update", svc.UpdateContactInfo),

		query("skills.list", svc.Skills),
		query("skills.listFeatured", svc.FeaturedSkills),
		queryWith("skills.get", svc.Skill),
		mutation("skills.create", svc.CreateSkill),
		mutation("skills.update", svc.UpdateSkill),
		mutation("skills.delete", svc.DeleteSkill),

		query("experience.list", svc.Experience),
		queryWith("experience.get", svc.ExperienceByID),
		mutation("experience.create", svc.CreateExperience),
		mutation("experience.update", svc.UpdateExperience),
		mutation("experience.delete", svc.DeleteExperience),

		query("projects.list", svc.Projects),
		query("projects.listFeatured", svc.FeaturedProjects),
		queryWith("projects.get", svc.Project),
		mutation("projects.create", svc.CreateProject),
		mutation("projects.update", svc.UpdateProject),
		mutation("projects.delete", svc.DeleteProject),

		query("education.list", svc.Education),
		queryWith("education.get", svc.EducationByID),
		mutation("education.create", svc.CreateEducation),
		mutation("education.update", svc.UpdateEducation),
		mutation("education.delete", svc.DeleteEducation),

		mutation("contactSubmissions.create", svc.CreateContactSubmission),
		query("contactSubmissions.list", svc.ContactSubmissions),
		query("contactSubmissions.listUnread", svc.UnreadContactSubmissions),
		queryWith("contactSubmissions.get", svc.ContactSubmission),
		mutation("contactSubmissions.markRead", svc.MarkContactSubmissionRead),
	}
}
