// Package portfolio implements the portfolio operations on top of the store:
// input validation, read caching, and the hooks that fire after writes.
package portfolio

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/aTrapDeer/portfolio-backend/internal/models"
	"github.com/aTrapDeer/portfolio-backend/internal/schema"
	"github.com/aTrapDeer/portfolio-backend/internal/store"
)

// Resource names, shared by cache keys and change notifications.
const (
	ResourceContactInfo        = "contactInfo"
	ResourceSkills             = "skills"
	ResourceExperience         = "experience"
	ResourceProjects           = "projects"
	ResourceEducation          = "education"
	ResourceContactSubmissions = "contactSubmissions"
)

// ChangeNotifier is told about every successful write. Implementations must
// not block the caller.
type ChangeNotifier interface {
	Changed(resource string)
}

// SubmissionNotifier is told about every new contact submission.
// Implementations must not block the caller.
type SubmissionNotifier interface {
	SubmissionReceived(sub models.ContactSubmission)
}

type Service struct {
	store       *store.Store
	logger      *slog.Logger
	cache       *cache.Cache
	changes     ChangeNotifier
	submissions SubmissionNotifier

	cacheMu     sync.Mutex
	generations map[string]uint64
}

type Option func(*Service)

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithCache sets the read cache lifetime. A ttl of zero or less disables it.
func WithCache(ttl, cleanup time.Duration) Option {
	return func(s *Service) {
		if ttl <= 0 {
			s.cache = nil
			return
		}
		s.cache = cache.New(ttl, cleanup)
	}
}

func WithChangeNotifier(n ChangeNotifier) Option {
	return func(s *Service) { s.changes = n }
}

func WithSubmissionNotifier(n SubmissionNotifier) Option {
	return func(s *Service) { s.submissions = n }
}

// New returns a Service over st. Reads are cached for five minutes unless
// WithCache says otherwise.
func New(st *store.Store, opts ...Option) *Service {
	s := &Service{
		store:       st,
		logger:      slog.Default(),
		cache:       cache.New(5*time.Minute, 10*time.Minute),
		generations: map[string]uint64{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Health is the healthcheck payload.
type Health struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

func (s *Service) Health() Health {
	return Health{Status: "ok", Timestamp: time.Now().UTC()}
}

// fail logs err against op and hands it back unchanged.
func (s *Service) fail(op string, err error) error {
	switch {
	case schema.IsValidationError(err):
		s.logger.Debug("invalid input", "op", op, "error", err)
	case errors.Is(err, store.ErrNotFound):
		s.logger.Info("not found", "op", op, "error", err)
	default:
		s.logger.Error("operation failed", "op", op, "error", err)
	}
	return err
}

// changed drops cached reads of resource and notifies listeners.
func (s *Service) changed(resource string) {
	s.invalidate(resource)
	if s.changes != nil {
		s.changes.Changed(resource)
	}
}

func (s *Service) validate(op string, in any) error {
	if err := schema.Validate(in); err != nil {
		return s.fail(op, err)
	}
	return nil
}
