package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"tzbot/config"
	"tzbot/infras/otel"
	"tzbot/internal/domains/zone/model"
	"tzbot/internal/domains/zone/model/dto"
	"tzbot/internal/domains/zone/registry"
	"tzbot/internal/domains/zone/report"
	"tzbot/internal/domains/zone/repository"
	"tzbot/shared/cache"
	"tzbot/shared/constant"
	"tzbot/shared/failure"
	"tzbot/shared/logger"
	"tzbot/shared/validator"
)

const (
	cacheKeyReport = "report"
)

type Zone interface {
	// Register validates and stores an entry, then persists the registry. A
	// persistence failure is returned but the entry stays registered in memory.
	Register(ctx context.Context, req dto.RegisterRequest) error
	Entries(ctx context.Context, guildID model.GuildID) dto.EntriesResponse
	// Report renders the guild's current times. On error the response still
	// carries the rendered report.
	Report(ctx context.Context, guildID model.GuildID) (dto.ReportResponse, error)
}

type serviceImpl struct {
	registry  *registry.Registry
	repo      repository.Zone
	formatter *report.Formatter
	validate  *validator.Validator
	cache     cache.RedisCache
	cfg       *config.Config
	otel      otel.Otel
	now       func() time.Time

	// saveMu orders saves; the snapshot is taken while holding it.
	saveMu sync.Mutex
}

func New(
	reg *registry.Registry,
	repo repository.Zone,
	formatter *report.Formatter,
	validate *validator.Validator,
	cache cache.RedisCache,
	cfg *config.Config,
	otel otel.Otel,
) Zone {
	return NewWithClock(reg, repo, formatter, validate, cache, cfg, otel, time.Now)
}

func NewWithClock(
	reg *registry.Registry,
	repo repository.Zone,
	formatter *report.Formatter,
	validate *validator.Validator,
	cache cache.RedisCache,
	cfg *config.Config,
	otel otel.Otel,
	now func() time.Time,
) Zone {
	return &serviceImpl{
		registry:  reg,
		repo:      repo,
		formatter: formatter,
		validate:  validate,
		cache:     cache,
		cfg:       cfg,
		otel:      otel,
		now:       now,
	}
}

func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Register")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttributes(map[string]any{
		constant.LogFieldGuildID:  req.GuildID,
		constant.LogFieldTimezone: req.Timezone,
	})

	if err = s.validate.Struct(&req); err != nil {
		if validator.FailedOn(err, validator.TagTimezone) {
			return failure.BadRequest(fmt.Errorf("%w: %q", model.ErrUnknownTimezone, req.Timezone)) //nolint:wrapcheck
		}

		if validator.FailedOn(err, validator.TagMax) {
			return failure.BadRequest(fmt.Errorf("%w: %w", model.ErrPersonTooLong, err)) //nolint:wrapcheck
		}

		return err
	}

	s.registry.Add(req.GuildID, req.Person, req.Timezone)

	logger.Ctx(ctx).Info().
		Stringer(constant.LogFieldGuildID, req.GuildID).
		Str(constant.LogFieldPerson, req.Person).
		Str(constant.LogFieldTimezone, req.Timezone).
		Msg("registered timezone")

	s.invalidateReports(ctx, req.GuildID)

	if err = s.persist(ctx); err != nil {
		logger.Ctx(ctx).Error().Err(err).Stringer(constant.LogFieldGuildID, req.GuildID).Msg("failed to persist zones")

		return failure.InternalError(err) //nolint:wrapcheck
	}

	return nil
}

// persist writes a snapshot taken under saveMu, so a save can never overwrite
// the file with state older than what a previous save wrote.
func (s *serviceImpl) persist(ctx context.Context) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	return s.repo.Save(ctx, s.registry.Snapshot())
}

func (s *serviceImpl) Entries(ctx context.Context, guildID model.GuildID) (res dto.EntriesResponse) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Entries")
	defer scope.End()

	res.FromModels(guildID, s.registry.Get(guildID))

	return res
}

func (s *serviceImpl) Report(ctx context.Context, guildID model.GuildID) (res dto.ReportResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Report")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(constant.LogFieldGuildID, guildID)

	now := s.now().UTC()
	res.GuildID = guildID.String()

	// Keys carry the registry revision: a report rendered before an Add is
	// never served after it, even when it is stored after the Add's Clear.
	entries, revision := s.registry.Read(guildID)
	key := cache.BuildCacheKey(cacheKeyReport, guildID, revision, now.Truncate(time.Minute).Unix())

	var cached string
	if cerr := s.cache.Get(ctx, key, &cached); cerr == nil {
		scope.AddEvent("report served from cache")
		res.Report = cached

		return res, nil
	} else if !errors.Is(cerr, cache.Nil) {
		logger.Ctx(ctx).Warn().Err(cerr).Str("key", key).Msg("failed to read cached report")
	}

	text, ferr := s.formatter.Format(guildID, entries, now)
	res.Report = text

	if ferr != nil {
		res.Errors = splitErrors(ferr)

		logger.Ctx(ctx).Error().Err(ferr).Stringer(constant.LogFieldGuildID, guildID).Msg("report has unresolvable timezones")

		return res, failure.Unprocessable(ferr) //nolint:wrapcheck
	}

	if cerr := s.cache.Save(ctx, key, text, s.cfg.Cache.TTL); cerr != nil {
		logger.Ctx(ctx).Warn().Err(cerr).Str("key", key).Msg("failed to cache report")
	}

	return res, nil
}

func (s *serviceImpl) invalidateReports(ctx context.Context, guildID model.GuildID) {
	pattern := cache.BuildCacheKey(cacheKeyReport, guildID, "*")

	if err := s.cache.Clear(ctx, pattern); err != nil {
		log.Warn().Err(err).Str("pattern", pattern).Msg("failed to invalidate cached reports")
	}
}

func splitErrors(err error) []string {
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		errs := joined.Unwrap()
		out := make([]string, len(errs))

		for i, e := range errs {
			out[i] = e.Error()
		}

		return out
	}

	return []string{err.Error()}
}
