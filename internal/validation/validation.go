// Package validation turns struct tags into the field-level error taxonomy
// shown inline by the settings and instance forms.
package validation

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/studiowebux/launcher/internal/catalog"
	"github.com/studiowebux/launcher/internal/types"
)

// RAMStep is the allocation granularity of preferences.ram, in MB
const RAMStep = 256

var jvmArgsPattern = regexp.MustCompile(`^-[\w\d]+(\s+-[\w\d]+)*$`)

// messages maps "<field path>|<tag>" to the text shown under the field
var messages = map[string]string{
	"preferences.resolution.width|dimension":  `Width must be a number or "auto".`,
	"preferences.resolution.width|positive":   "Width must be a positive number.",
	"preferences.resolution.height|dimension": `Height must be a number or "auto".`,
	"preferences.resolution.height|positive":  "Height must be a positive number.",
	"preferences.ram|gte":                     "At least 1024 MB of RAM must be allocated.",
	"preferences.ram|ramstep":                 "RAM must be allocated in steps of 256 MB.",
	"advanced.JVMArguments|jvmargs":           "Invalid JVM arguments format.",
	"launcher.language|required":              "Select a language.",
	"gameOptions.version|gameversion":         "Select a supported game version.",
	"name|required":                           "Instance name is required",
	"loader|required":                         "Mod Loader is required",
	"loader|loader":                           "Mod Loader is required",
	"version|required":                        "Select a game version",
	"version|gameversion":                     "Select a game version",
}

// Validator checks launcher structs
type Validator struct {
	validate *validator.Validate
}

// New builds a validator with the launcher's custom rules registered
func New() *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})

	mustRegister(v, "jvmargs", func(fl validator.FieldLevel) bool {
		return jvmArgsPattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "ramstep", func(fl validator.FieldLevel) bool {
		return fl.Field().Int()%RAMStep == 0
	})
	mustRegister(v, "loader", func(fl validator.FieldLevel) bool {
		return catalog.IsLoader(fl.Field().String())
	})
	mustRegister(v, "gameversion", func(fl validator.FieldLevel) bool {
		return catalog.IsGameVersion(fl.Field().String())
	})

	v.RegisterStructValidation(validateResolution, types.Resolution{})

	return &Validator{validate: v}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validation: register %s: %v", tag, err))
	}
}

func validateResolution(sl validator.StructLevel) {
	res := sl.Current().Interface().(types.Resolution)
	checkDimension(sl, res.Width, "width", "Width")
	checkDimension(sl, res.Height, "height", "Height")
}

func checkDimension(sl validator.StructLevel, d types.Dimension, field, structField string) {
	switch {
	case d.Invalid != "":
		sl.ReportError(d.Invalid, field, structField, "dimension", "")
	case !d.Auto && (math.IsInf(d.Value, 0) || math.IsNaN(d.Value)):
		sl.ReportError(d.Value, field, structField, "dimension", "")
	case !d.Auto && d.Value <= 0:
		sl.ReportError(d.Value, field, structField, "positive", "")
	}
}

// Struct validates s and returns nil or a *types.ValidationError
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := &types.ValidationError{}
	for _, fe := range fieldErrs {
		path := fieldPath(fe.Namespace())
		out.Errors = append(out.Errors, types.FieldError{
			Field:   path,
			Message: message(path, fe),
		})
	}
	return out
}

// fieldPath drops the root struct name from a namespace
func fieldPath(namespace string) string {
	if idx := strings.Index(namespace, "."); idx != -1 {
		return namespace[idx+1:]
	}
	return namespace
}

func message(path string, fe validator.FieldError) string {
	if msg, ok := messages[path+"|"+fe.Tag()]; ok {
		return msg
	}

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required.", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s.", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
	case "gte":
		return fmt.Sprintf("%s must be at least %s.", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid.", fe.Field())
	}
}
