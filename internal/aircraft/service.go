package aircraft

import (
	"errors"
	"fmt"
	"time"

	"github.com/ngmaloney/e6b-terminal/internal/airspeed"
	"github.com/ngmaloney/e6b-terminal/internal/fuel"
	"github.com/ngmaloney/e6b-terminal/internal/models"
)

// ErrInvalidLeg is returned for legs that cannot be planned.
var ErrInvalidLeg = errors.New("invalid leg")

// LegPlan is the wind triangle and fuel picture for one leg.
type LegPlan struct {
	Profile     models.AircraftProfile
	CourseDeg   int
	DistanceNM  float64
	Wind        airspeed.PolarVector // direction the wind blows from
	HeadingDeg  int                  // true heading to fly, [0, 360)
	Correction  int                  // HeadingDeg minus course, degrees
	GroundSpeed float64              // knots
	ETE         time.Duration
	FuelGal     float64
	FuelLb      float64
	ReserveGal  float64 // VFR reserve at cruise burn
	Endurance   time.Duration
	Sufficient  bool // usable fuel covers the leg plus reserve
}

// Service orchestrates profile storage and leg planning
type Service struct {
	repo    *Repository
	reserve time.Duration
}

// NewService creates a new aircraft service that plans with the day
// VFR reserve.
func NewService(repo *Repository) *Service {
	return &Service{repo: repo, reserve: fuel.DayReserve}
}

// SetReserve changes the reserve carried on top of each leg, e.g.
// fuel.NightReserve for night VFR.
func (s *Service) SetReserve(d time.Duration) {
	s.reserve = d
}

func (s *Service) SaveProfile(p *models.AircraftProfile) error {
	return s.repo.SaveProfile(p)
}

func (s *Service) ListProfiles() ([]models.AircraftProfile, error) {
	return s.repo.ListProfiles()
}

func (s *Service) GetProfile(name string) (*models.AircraftProfile, error) {
	return s.repo.GetProfile(name)
}

func (s *Service) DeleteProfile(name string) error {
	return s.repo.DeleteProfile(name)
}

// PlanLeg solves the wind triangle for a leg flown at the profile's
// cruise TAS and works out the fuel it needs. wind is given the way
// METARs report it, as the direction it blows from.
func (s *Service) PlanLeg(profile models.AircraftProfile, courseDeg int, distanceNM float64, wind airspeed.PolarVector) (*LegPlan, error) {
	if profile.CruiseTAS <= 0 {
		return nil, fmt.Errorf("%w: cruise TAS must be positive", ErrInvalidLeg)
	}
	if distanceNM < 0 {
		return nil, fmt.Errorf("%w: negative distance", ErrInvalidLeg)
	}

	air := airspeed.PolarVector{Direction: courseDeg, Speed: profile.CruiseTAS}.Normalized()
	toward := airspeed.PolarVector{Direction: wind.Direction + 180, Speed: wind.Speed}.Normalized()

	ground, err := airspeed.Compose(air, toward)
	if err != nil {
		return nil, fmt.Errorf("planning leg on course %03d: %w", courseDeg, err)
	}
	// Rounding can leave a nonzero resultant at 0 kt
	if ground.Speed <= 0 {
		return nil, fmt.Errorf("%w: no ground speed on course %03d: %w", ErrInvalidLeg, courseDeg, airspeed.ErrDegenerateComposition)
	}

	plan := &LegPlan{
		Profile:     profile,
		CourseDeg:   air.Direction,
		DistanceNM:  distanceNM,
		Wind:        wind,
		HeadingDeg:  ground.Normalized().Direction,
		Correction:  ground.Direction - air.Direction,
		GroundSpeed: ground.Speed,
		ETE:         time.Duration(distanceNM / ground.Speed * float64(time.Hour)),
	}

	ft, err := fuel.ParseType(profile.FuelType)
	if err != nil {
		ft = fuel.Avgas
	}
	plan.FuelGal = fuel.Volume(profile.FuelBurnGPH, plan.ETE)
	plan.FuelLb = fuel.Weight(plan.FuelGal, ft)
	plan.ReserveGal = fuel.Reserve(profile.FuelBurnGPH, s.reserve)

	if endurance, err := fuel.Endurance(profile.UsableFuelGal, profile.FuelBurnGPH); err == nil {
		plan.Endurance = endurance
		plan.Sufficient = profile.UsableFuelGal-plan.ReserveGal >= plan.FuelGal
	}

	return plan, nil
}

// CheckCrosswind reports whether components are within the profile's
// crosswind limit. A profile without a limit accepts any crosswind.
func CheckCrosswind(profile models.AircraftProfile, components airspeed.WindComponents) bool {
	if profile.MaxCrosswind <= 0 {
		return true
	}
	return components.Cross.Magnitude <= profile.MaxCrosswind
}
