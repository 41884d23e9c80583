package models

import (
	"time"

	"github.com/ArowuTest/rsu-vesting/internal/vesting"
)

// Award is a single RSU grant submitted within a session.
type Award struct {
	SessionID     string          `json:"-" bson:"session_id"`
	Name          string          `json:"name" bson:"name"`
	GrantDate     time.Time       `json:"grantDate" bson:"grant_date"`
	TotalValue    float64         `json:"totalValue" bson:"total_value"`
	CliffYears    int             `json:"cliffYears" bson:"cliff_years"`
	DurationYears int             `json:"durationYears,omitempty" bson:"duration_years"`
	Variant       vesting.Variant `json:"variant" bson:"variant"`
	Seq           int64           `json:"-" bson:"seq,omitempty"` // submission order within the session
	CreatedAt     time.Time       `json:"createdAt" bson:"created_at"`
	UpdatedAt     time.Time       `json:"updatedAt" bson:"updated_at"`
}

// Params returns the schedule inputs of the award.
func (a *Award) Params() vesting.Params {
	return vesting.Params{
		GrantDate:     a.GrantDate,
		TotalValue:    a.TotalValue,
		CliffYears:    a.CliffYears,
		DurationYears: a.DurationYears,
		Variant:       a.Variant,
	}
}

// AwardRequest is the submission payload for an award.
type AwardRequest struct {
	Name          string  `json:"name" form:"name" binding:"required"`
	GrantDate     string  `json:"grantDate" form:"grantDate" binding:"required"`
	TotalValue    float64 `json:"totalValue" form:"totalValue"`
	CliffYears    int     `json:"cliffYears" form:"cliffYears"`
	DurationYears int     `json:"durationYears" form:"durationYears"`
	Variant       string  `json:"variant" form:"variant"`
}

// AwardSummary is an award with its release events.
type AwardSummary struct {
	Award       *Award            `json:"award"`
	Horizon     time.Time         `json:"horizon"`
	FinalValue  float64           `json:"finalValue"`
	Releases    []vesting.Release `json:"releases"`
	PointsCount int               `json:"pointsCount"`
}
