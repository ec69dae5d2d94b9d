package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Faultbox/gridplan/internal/search"
	"github.com/Faultbox/gridplan/internal/world"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields by their YAML names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("strategy", func(fl validator.FieldLevel) bool {
		_, err := search.ParseStrategy(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("layout", func(fl validator.FieldLevel) bool {
		name := fl.Field().String()
		if name == "" {
			return true
		}
		for _, known := range world.Layouts() {
			if name == known {
				return true
			}
		}
		return false
	})
	return v
}

// Validate checks field constraints and that the start and goal lie inside
// the configured grid.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	w := c.World
	if w.LayoutFile == "" {
		if w.Start.Row >= w.Rows || w.Start.Col >= w.Cols {
			return fmt.Errorf("%w: start %s outside %dx%d grid", ErrInvalidConfig, w.Start, w.Rows, w.Cols)
		}
		if w.Goal != nil && (w.Goal.Row >= w.Rows || w.Goal.Col >= w.Cols) {
			return fmt.Errorf("%w: goal %s outside %dx%d grid", ErrInvalidConfig, *w.Goal, w.Rows, w.Cols)
		}
	}
	return nil
}
