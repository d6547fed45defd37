package rental

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

// ErrInvalidSelection is returned when a Selection names a label or rider
// type outside its enumeration.
var ErrInvalidSelection = errors.New("invalid selection")

// Selection is the per-request filter: label sets for year, season and
// weather plus the rider type. An empty set selects nothing.
type Selection struct {
	Years    []string  `json:"years" validate:"dive,year_label"`
	Seasons  []string  `json:"seasons" validate:"dive,season_label"`
	Weathers []string  `json:"weathers" validate:"dive,weather_label"`
	Rider    RiderType `json:"rider" validate:"required,oneof=Total Casual Registered"`
}

// FullSelection selects every label, Unknown included, with the Total rider
// type. Filtering with it returns the table unchanged.
func FullSelection() Selection {
	return Selection{
		Years:    withUnknown(yearNames[:]),
		Seasons:  withUnknown(seasonNames[:]),
		Weathers: withUnknown(weatherNames[:]),
		Rider:    RiderTotal,
	}
}

func withUnknown(names []string) []string {
	out := make([]string, 0, len(names)+1)
	out = append(out, names...)
	return append(out, LabelUnknown)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	register := func(tag string, names []string) {
		allowed := lo.SliceToMap(withUnknown(names), func(s string) (string, struct{}) {
			return s, struct{}{}
		})
		// Registration only fails for an empty tag or nil func.
		_ = v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			_, ok := allowed[fl.Field().String()]
			return ok
		})
	}
	register("year_label", yearNames[:])
	register("season_label", seasonNames[:])
	register("weather_label", weatherNames[:])
	return v
}

// Validate checks every label and the rider type against their enumerations.
func (s Selection) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSelection, err)
	}
	return nil
}
