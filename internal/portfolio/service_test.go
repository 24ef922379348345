package portfolio

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/aTrapDeer/portfolio-backend/internal/models"
	"github.com/aTrapDeer/portfolio-backend/internal/schema"
	"github.com/aTrapDeer/portfolio-backend/internal/store"
)

type recorder struct {
	mu          sync.Mutex
	changed     []string
	submissions []models.ContactSubmission
}

func (r *recorder) Changed(resource string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.changed = append(r.changed, resource)
}

func (r *recorder) SubmissionReceived(sub models.ContactSubmission) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.submissions = append(r.submissions, sub)
}

func newTestService(t *testing.T, opts ...Option) (*Service, *recorder) {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	st, err := store.Open(store.DriverSQLite, dsn, store.WithLogger(logger.Default.LogMode(logger.Silent)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.Migrate(context.Background()))

	rec := &recorder{}
	base := []Option{
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithChangeNotifier(rec),
		WithSubmissionNotifier(rec),
	}
	return New(st, append(base, opts...)...), rec
}

func mustDate(t *testing.T, s string) schema.Date {
	t.Helper()
	d, err := schema.ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestCreateSkillAppearsInList(t *testing.T) {
	ctx := context.Background()
	svc, rec := newTestService(t)

	// Warm the cache so the create has something to invalidate.
	before, err := svc.Skills(ctx)
	require.NoError(t, err)
	assert.Empty(t, before)

	skill, err := svc.CreateSkill(ctx, schema.CreateSkillInput{
		Name: "TypeScript", Category: "Frontend", ProficiencyLevel: 8, IsFeatured: true,
	})
	require.NoError(t, err)
	assert.NotZero(t, skill.ID)
	assert.Equal(t, "TypeScript", skill.Name)
	assert.Equal(t, 8, skill.ProficiencyLevel)
	assert.True(t, skill.IsFeatured)

	after, err := svc.Skills(ctx)
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.Equal(t, skill.ID, after[0].ID)
	assert.Equal(t, []string{ResourceSkills}, rec.changed)
}

func TestSkillsCategoryOrdering(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	for _, cat := range []string{"Frontend", "DevOps", "Backend", "Database"} {
		_, err := svc.CreateSkill(ctx, schema.CreateSkillInput{Name: cat + " skill", Category: cat, ProficiencyLevel: 5})
		require.NoError(t, err)
	}

	skills, err := svc.Skills(ctx)
	require.NoError(t, err)
	var cats []string
	for _, s := range skills {
		cats = append(cats, s.Category)
	}
	assert.Equal(t, []string{"Backend", "Database", "DevOps", "Frontend"}, cats)
}

func TestFeaturedSkillsSubset(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	inputs := []schema.CreateSkillInput{
		{Name: "Go", Category: "Backend", ProficiencyLevel: 7, IsFeatured: true},
		{Name: "Rust", Category: "Backend", ProficiencyLevel: 4},
		{Name: "SQL", Category: "Database", ProficiencyLevel: 9, IsFeatured: true},
		{Name: "CSS", Category: "Frontend", ProficiencyLevel: 6, IsFeatured: true},
	}
	for _, in := range inputs {
		_, err := svc.CreateSkill(ctx, in)
		require.NoError(t, err)
	}

	all, err := svc.Skills(ctx)
	require.NoError(t, err)
	featured, err := svc.FeaturedSkills(ctx)
	require.NoError(t, err)
	require.Len(t, featured, 3)

	ids := map[uint]bool{}
	for _, s := range all {
		ids[s.ID] = true
	}
	for i, s := range featured {
		assert.True(t, ids[s.ID])
		assert.True(t, s.IsFeatured)
		if i > 0 {
			assert.GreaterOrEqual(t, featured[i-1].ProficiencyLevel, s.ProficiencyLevel)
		}
	}
}

func TestUpdateSkillPartial(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	skill, err := svc.CreateSkill(ctx, schema.CreateSkillInput{Name: "Go", Category: "Backend", ProficiencyLevel: 6})
	require.NoError(t, err)

	// Cache the row so the update must invalidate it.
	_, err = svc.Skill(ctx, schema.IDInput{ID: skill.ID})
	require.NoError(t, err)

	updated, err := svc.UpdateSkill(ctx, schema.UpdateSkillInput{ID: skill.ID, ProficiencyLevel: schema.Of(9)})
	require.NoError(t, err)
	assert.Equal(t, 9, updated.ProficiencyLevel)
	assert.Equal(t, "Go", updated.Name)
	assert.Equal(t, "Backend", updated.Category)

	got, err := svc.Skill(ctx, schema.IDInput{ID: skill.ID})
	require.NoError(t, err)
	assert.Equal(t, 9, got.ProficiencyLevel)

	unchanged, err := svc.UpdateSkill(ctx, schema.UpdateSkillInput{ID: skill.ID})
	require.NoError(t, err)
	assert.Equal(t, updated.ProficiencyLevel, unchanged.ProficiencyLevel)
}

func TestUpdateNullsNullableColumns(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	end := mustDate(t, "2019-06-01")
	gpa := 3.5
	edu, err := svc.CreateEducation(ctx, schema.CreateEducationInput{
		Institution: "Tech", Degree: "BSc", StartDate: mustDate(t, "2015-09-01"), EndDate: &end, GPA: &gpa,
	})
	require.NoError(t, err)

	var in schema.UpdateEducationInput
	require.NoError(t, schema.Decode([]byte(`{"id":`+strconv.FormatUint(uint64(edu.ID), 10)+`,"gpa":null,"degree":"MSc"}`), &in))
	got, err := svc.UpdateEducation(ctx, in)
	require.NoError(t, err)
	assert.Nil(t, got.GPA)
	assert.Equal(t, "MSc", got.Degree)
	require.NotNil(t, got.EndDate)
	assert.True(t, end.Equal(*got.EndDate))
}

func TestUpdateMissingIDIsNotFound(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	const missing = 4242

	_, err := svc.UpdateSkill(ctx, schema.UpdateSkillInput{ID: missing, Name: schema.Of("x")})
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = svc.UpdateExperience(ctx, schema.UpdateExperienceInput{ID: missing})
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = svc.UpdateProject(ctx, schema.UpdateProjectInput{ID: missing})
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = svc.UpdateEducation(ctx, schema.UpdateEducationInput{ID: missing})
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = svc.MarkContactSubmissionRead(ctx, schema.IDInput{ID: missing})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteReportsSuccess(t *testing.T) {
	ctx := context.Background()
	svc, rec := newTestService(t)

	p, err := svc.CreateProject(ctx, schema.CreateProjectInput{
		Title: "Portfolio", Description: "This site", Technologies: []string{},
	})
	require.NoError(t, err)
	assert.NotNil(t, p.Technologies)

	_, err = svc.Projects(ctx)
	require.NoError(t, err)

	res, err := svc.DeleteProject(ctx, schema.IDInput{ID: p.ID})
	require.NoError(t, err)
	assert.True(t, res.Success)

	list, err := svc.Projects(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	res, err = svc.DeleteProject(ctx, schema.IDInput{ID: p.ID})
	require.NoError(t, err)
	assert.False(t, res.Success)

	assert.Equal(t, []string{ResourceProjects, ResourceProjects}, rec.changed)
}

func TestDeleteEveryResource(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	cases := []struct {
		name   string
		create func() (uint, error)
		count  func() (int, error)
		remove func(schema.IDInput) (schema.DeleteResult, error)
	}{
		{
			name: "skills",
			create: func() (uint, error) {
				row, err := svc.CreateSkill(ctx, schema.CreateSkillInput{Name: "Go", Category: "Backend", ProficiencyLevel: 8})
				if err != nil {
					return 0, err
				}
				return row.ID, nil
			},
			count: func() (int, error) {
				rows, err := svc.Skills(ctx)
				return len(rows), err
			},
			remove: func(in schema.IDInput) (schema.DeleteResult, error) { return svc.DeleteSkill(ctx, in) },
		},
		{
			name: "experience",
			create: func() (uint, error) {
				row, err := svc.CreateExperience(ctx, schema.CreateExperienceInput{
					CompanyName: "Acme", Position: "Engineer", StartDate: mustDate(t, "2021-03-01"),
				})
				if err != nil {
					return 0, err
				}
				return row.ID, nil
			},
			count: func() (int, error) {
				rows, err := svc.Experience(ctx)
				return len(rows), err
			},
			remove: func(in schema.IDInput) (schema.DeleteResult, error) { return svc.DeleteExperience(ctx, in) },
		},
		{
			name: "projects",
			create: func() (uint, error) {
				row, err := svc.CreateProject(ctx, schema.CreateProjectInput{
					Title: "Portfolio", Description: "This site", Technologies: []string{"Go"},
				})
				if err != nil {
					return 0, err
				}
				return row.ID, nil
			},
			count: func() (int, error) {
				rows, err := svc.Projects(ctx)
				return len(rows), err
			},
			remove: func(in schema.IDInput) (schema.DeleteResult, error) { return svc.DeleteProject(ctx, in) },
		},
		{
			name: "education",
			create: func() (uint, error) {
				row, err := svc.CreateEducation(ctx, schema.CreateEducationInput{
					Institution: "State", Degree: "BSc", StartDate: mustDate(t, "2014-09-01"),
				})
				if err != nil {
					return 0, err
				}
				return row.ID, nil
			},
			count: func() (int, error) {
				rows, err := svc.Education(ctx)
				return len(rows), err
			},
			remove: func(in schema.IDInput) (schema.DeleteResult, error) { return svc.DeleteEducation(ctx, in) },
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			id, err := tc.create()
			require.NoError(t, err)

			n, err := tc.count()
			require.NoError(t, err)
			require.Equal(t, 1, n)

			res, err := tc.remove(schema.IDInput{ID: id})
			require.NoError(t, err)
			assert.True(t, res.Success)

			n, err = tc.count()
			require.NoError(t, err)
			assert.Zero(t, n)

			res, err = tc.remove(schema.IDInput{ID: id})
			require.NoError(t, err)
			assert.False(t, res.Success)
		})
	}
}

func TestWriteDuringFetchIsNotCached(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	stale, err := cachedRead(svc, "skills.list", cacheKey(ResourceSkills, "list"), func() ([]models.Skill, error) {
		rows, err := svc.store.Skills(ctx)
		if err != nil {
			return nil, err
		}
		_, err = svc.CreateSkill(ctx, schema.CreateSkillInput{Name: "Go", Category: "Backend", ProficiencyLevel: 8})
		return rows, err
	})
	require.NoError(t, err)
	assert.Empty(t, stale)

	skills, err := svc.Skills(ctx)
	require.NoError(t, err)
	require.Len(t, skills, 1)
	assert.Equal(t, "Go", skills[0].Name)
}

func TestCachedResultsAreCopies(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	created, err := svc.CreateProject(ctx, schema.CreateProjectInput{
		Title: "Portfolio", Description: "This site", Technologies: []string{"Go"},
	})
	require.NoError(t, err)

	first, err := svc.Projects(ctx)
	require.NoError(t, err)
	require.Len(t, first, 1)
	first[0].Title = "changed"
	first[0].Technologies[0] = "changed"

	again, err := svc.Projects(ctx)
	require.NoError(t, err)
	require.Len(t, again, 1)
	assert.Equal(t, "Portfolio", again[0].Title)
	assert.Equal(t, []string{"Go"}, []string(again[0].Technologies))

	one, err := svc.Project(ctx, schema.IDInput{ID: created.ID})
	require.NoError(t, err)
	one.Title = "changed"
	one, err = svc.Project(ctx, schema.IDInput{ID: created.ID})
	require.NoError(t, err)
	assert.Equal(t, "Portfolio", one.Title)
}

func TestValidationRejectsBeforeStore(t *testing.T) {
	ctx := context.Background()
	svc, rec := newTestService(t)

	_, err := svc.CreateSkill(ctx, schema.CreateSkillInput{Name: "Go", Category: "Backend", ProficiencyLevel: 11})
	require.Error(t, err)
	assert.True(t, schema.IsValidationError(err))

	skills, err := svc.Skills(ctx)
	require.NoError(t, err)
	assert.Empty(t, skills)
	assert.Empty(t, rec.changed)

	_, err = svc.DeleteSkill(ctx, schema.IDInput{})
	assert.True(t, schema.IsValidationError(err))
}

func TestContactInfoSingleton(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	info, err := svc.ContactInfo(ctx)
	require.NoError(t, err)
	assert.Nil(t, info)

	first, err := svc.UpdateContactInfo(ctx, schema.UpdateContactInfoInput{Title: schema.Of("Engineer")})
	require.NoError(t, err)
	assert.Equal(t, schema.DefaultContactName, first.Name)
	assert.Equal(t, "Engineer", first.Title)
	assert.Equal(t, schema.DefaultContactEmail, first.Email)

	for i := 0; i < 5; i++ {
		_, err := svc.UpdateContactInfo(ctx, schema.UpdateContactInfoInput{Bio: schema.NullableOf("bio")})
		require.NoError(t, err)
	}
	_, err = svc.UpdateContactInfo(ctx, schema.UpdateContactInfoInput{Name: schema.Of("Ana")})
	require.NoError(t, err)

	info, err = svc.ContactInfo(ctx)
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, first.ID, info.ID)
	assert.Equal(t, "Ana", info.Name)
	assert.Equal(t, "Engineer", info.Title)
	require.NotNil(t, info.Bio)
	assert.Equal(t, "bio", *info.Bio)
}

func TestContactSubmissionFlow(t *testing.T) {
	ctx := context.Background()
	svc, rec := newTestService(t)

	var in schema.CreateContactSubmissionInput
	require.NoError(t, schema.Decode([]byte(`{"name":"Bo","email":"bo@example.com","subject":null,"message":"Hello"}`), &in))
	sub, err := svc.CreateContactSubmission(ctx, in)
	require.NoError(t, err)
	assert.False(t, sub.IsRead)
	assert.Nil(t, sub.Subject)
	require.Len(t, rec.submissions, 1)
	assert.Equal(t, sub.ID, rec.submissions[0].ID)

	unread, err := svc.UnreadContactSubmissions(ctx)
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, sub.ID, unread[0].ID)

	for i := 0; i < 2; i++ {
		read, err := svc.MarkContactSubmissionRead(ctx, schema.IDInput{ID: sub.ID})
		require.NoError(t, err)
		assert.True(t, read.IsRead)
	}

	unread, err = svc.UnreadContactSubmissions(ctx)
	require.NoError(t, err)
	assert.Empty(t, unread)

	got, err := svc.ContactSubmission(ctx, schema.IDInput{ID: sub.ID})
	require.NoError(t, err)
	assert.True(t, got.IsRead)
}

func TestExperienceOrdering(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	for _, start := range []string{"2018-01-01", "2022-05-01", "2020-03-15"} {
		_, err := svc.CreateExperience(ctx, schema.CreateExperienceInput{
			CompanyName: "Co " + start, Position: "Dev", StartDate: mustDate(t, start),
		})
		require.NoError(t, err)
	}

	list, err := svc.Experience(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, 2022, list[0].StartDate.Year())
	assert.Equal(t, 2020, list[1].StartDate.Year())
	assert.Equal(t, 2018, list[2].StartDate.Year())
}

func TestEducationGPAIsNumeric(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	var in schema.CreateEducationInput
	require.NoError(t, schema.Decode([]byte(`{"institution":"State","degree":"BSc","start_date":"2014-09-01","gpa":3.8}`), &in))
	created, err := svc.CreateEducation(ctx, in)
	require.NoError(t, err)

	got, err := svc.EducationByID(ctx, schema.IDInput{ID: created.ID})
	require.NoError(t, err)
	require.NotNil(t, got.GPA)
	assert.InDelta(t, 3.8, *got.GPA, 1e-9)

	raw, err := json.Marshal(got)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"gpa":3.8`)
}

func TestCacheDisabled(t *testing.T) {
	svc, _ := newTestService(t, WithCache(0, 0))
	assert.Nil(t, svc.cache)

	_, err := svc.Education(context.Background())
	require.NoError(t, err)
}

func TestHealth(t *testing.T) {
	svc, _ := newTestService(t)
	h := svc.Health()
	assert.Equal(t, "ok", h.Status)
	assert.WithinDuration(t, time.Now(), h.Timestamp, time.Minute)
}
