package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ArowuTest/rsu-vesting/internal/metrics"
	"github.com/ArowuTest/rsu-vesting/internal/models"
	"github.com/ArowuTest/rsu-vesting/internal/repositories"
	"github.com/ArowuTest/rsu-vesting/internal/vesting"
)

// ErrInvalidAward wraps every input-validation failure of a submission.
var ErrInvalidAward = errors.New("invalid award")

// quarterly16 schedules always span four years
const quarterly16Years = 4

// AwardService defines the operations behind the calculator form and API.
type AwardService interface {
	// Submit validates the request, generates its schedule and stores the award,
	// replacing any award with the same name. Invalid input leaves the store untouched.
	Submit(ctx context.Context, sessionID string, req *models.AwardRequest) (*models.AwardSummary, error)
	// Preview generates the schedule for a request without storing anything.
	Preview(req *models.AwardRequest) (*models.AwardSummary, vesting.Series, error)
	List(ctx context.Context, sessionID string) ([]*models.Award, error)
	Get(ctx context.Context, sessionID, name string) (*models.AwardSummary, error)
	Schedule(ctx context.Context, sessionID, name string) (vesting.Series, error)
	// Total sums every award of the session.
	Total(ctx context.Context, sessionID string) (vesting.Series, error)
	// Chart returns one line per award plus the total when there is more than one award.
	Chart(ctx context.Context, sessionID string) (*models.ChartData, error)
}

type awardService struct {
	awardRepo repositories.AwardRepository
	metrics   *metrics.Registry
}

// NewAwardService creates a new AwardService implementation
func NewAwardService(awardRepo repositories.AwardRepository, m *metrics.Registry) AwardService {
	return &awardService{
		awardRepo: awardRepo,
		metrics:   m,
	}
}

// BuildAward turns a request into an award, validating every field that does
// not need the schedule itself.
func BuildAward(req *models.AwardRequest) (*models.Award, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidAward)
	}
	grant, err := vesting.ParseDate(strings.TrimSpace(req.GrantDate))
	if err != nil {
		return nil, fmt.Errorf("%w: grant date must be YYYY-MM-DD", ErrInvalidAward)
	}
	variant, err := vesting.ParseVariant(strings.TrimSpace(req.Variant))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAward, err)
	}

	duration := req.DurationYears
	if variant == vesting.VariantQuarterly16 {
		duration = quarterly16Years
	}
	return &models.Award{
		Name:          name,
		GrantDate:     grant,
		TotalValue:    req.TotalValue,
		CliffYears:    req.CliffYears,
		DurationYears: duration,
		Variant:       variant,
	}, nil
}

func (s *awardService) generate(award *models.Award) (vesting.Series, error) {
	start := time.Now()
	series, err := vesting.ForParams(award.Params())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAward, err)
	}
	s.metrics.GenerationSeconds.Observe(time.Since(start).Seconds())
	s.metrics.SchedulesGenerated.WithLabelValues(string(award.Variant)).Inc()
	return series, nil
}

func (s *awardService) Submit(ctx context.Context, sessionID string, req *models.AwardRequest) (*models.AwardSummary, error) {
	award, err := BuildAward(req)
	if err == nil {
		var series vesting.Series
		series, err = s.generate(award)
		if err == nil {
			if err = s.awardRepo.Upsert(ctx, sessionID, award); err != nil {
				s.metrics.Submissions.WithLabelValues("error").Inc()
				log.Error().Err(err).Str("session", sessionID).Str("award", award.Name).Msg("Failed to store award")
				return nil, fmt.Errorf("store award: %w", err)
			}
			s.metrics.Submissions.WithLabelValues("accepted").Inc()
			log.Info().Str("session", sessionID).Str("award", award.Name).
				Float64("final", series.Final()).Msg("Award submitted")
			return summarize(award, series), nil
		}
	}

	s.metrics.Submissions.WithLabelValues("invalid").Inc()
	log.Warn().Err(err).Str("session", sessionID).Str("award", req.Name).Msg("Rejected award submission")
	return nil, err
}

func (s *awardService) Preview(req *models.AwardRequest) (*models.AwardSummary, vesting.Series, error) {
	award, err := BuildAward(req)
	if err != nil {
		return nil, nil, err
	}
	series, err := s.generate(award)
	if err != nil {
		return nil, nil, err
	}
	return summarize(award, series), series, nil
}

func (s *awardService) List(ctx context.Context, sessionID string) ([]*models.Award, error) {
	return s.awardRepo.FindAll(ctx, sessionID)
}

func (s *awardService) Get(ctx context.Context, sessionID, name string) (*models.AwardSummary, error) {
	award, err := s.awardRepo.FindByName(ctx, sessionID, strings.TrimSpace(name))
	if err != nil {
		return nil, err
	}
	series, err := s.generate(award)
	if err != nil {
		return nil, err
	}
	return summarize(award, series), nil
}

func (s *awardService) Schedule(ctx context.Context, sessionID, name string) (vesting.Series, error) {
	award, err := s.awardRepo.FindByName(ctx, sessionID, strings.TrimSpace(name))
	if err != nil {
		return nil, err
	}
	return s.generate(award)
}

func (s *awardService) Total(ctx context.Context, sessionID string) (vesting.Series, error) {
	lines, err := s.awardLines(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	all := make([]vesting.Series, len(lines))
	for i, l := range lines {
		all[i] = l.Points
	}
	return vesting.Aggregate(all...), nil
}

func (s *awardService) Chart(ctx context.Context, sessionID string) (*models.ChartData, error) {
	lines, err := s.awardLines(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(lines) > 1 {
		all := make([]vesting.Series, len(lines))
		for i, l := range lines {
			all[i] = l.Points
		}
		lines = append(lines, models.NamedSeries{
			Name:   models.TotalSeriesName,
			Total:  true,
			Points: vesting.Aggregate(all...),
		})
	}
	return &models.ChartData{Series: lines}, nil
}

func (s *awardService) awardLines(ctx context.Context, sessionID string) ([]models.NamedSeries, error) {
	awards, err := s.awardRepo.FindAll(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	lines := make([]models.NamedSeries, 0, len(awards)+1)
	for _, a := range awards {
		series, err := s.generate(a)
		if err != nil {
			return nil, fmt.Errorf("award %q: %w", a.Name, err)
		}
		lines = append(lines, models.NamedSeries{Name: a.Name, Points: series})
	}
	return lines, nil
}

func summarize(award *models.Award, series vesting.Series) *models.AwardSummary {
	releases := vesting.Releases(series)
	if releases == nil {
		releases = []vesting.Release{}
	}
	return &models.AwardSummary{
		Award:       award,
		Horizon:     vesting.Horizon(award.Variant),
		FinalValue:  series.Final(),
		Releases:    releases,
		PointsCount: len(series),
	}
}
