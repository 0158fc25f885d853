package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"github.com/san-kum/visualearn/internal/experiment"
	"github.com/san-kum/visualearn/internal/params"
)

var (
	validate   *validator.Validate
	translator ut.Translator
)

func init() {
	validate = validator.New()

	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// report yaml names, which is what users type in scene files
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Validate checks field constraints, then that the simulation exists and
// every parameter lies inside its declared range.
func Validate(cfg *Config, reg *experiment.Registry) error {
	if err := validate.Struct(cfg); err != nil {
		return err
	}
	entry, err := reg.Get(cfg.Simulation)
	if err != nil {
		return err
	}
	set := params.NewSet(entry.Specs)
	for name, v := range cfg.Params {
		if err := set.Validate(name, v); err != nil {
			return fmt.Errorf("scene %s: %w", cfg.Simulation, err)
		}
	}
	return nil
}

// FieldErrors renders validator errors as field → message. Other errors
// yield nil.
func FieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = fe.Translate(translator)
	}
	return out
}
