package server

import (
	"errors"
	"regexp"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"biodesigner/internal/model"
)

var (
	registerOnce sync.Once
	registerErr  error

	organismPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_. ]{0,63}$`)
)

// registerValidators adds the circuitgoal and organism tags to gin's
// validator.
func registerValidators() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = errors.New("unexpected binding validator engine")
			return
		}
		if err := v.RegisterValidation("circuitgoal", validateGoal); err != nil {
			registerErr = err
			return
		}
		registerErr = v.RegisterValidation("organism", validateOrganism)
	})
	return registerErr
}

func validateGoal(fl validator.FieldLevel) bool {
	_, err := model.ParseGoal(fl.Field().String())
	return err == nil
}

func validateOrganism(fl validator.FieldLevel) bool {
	return organismPattern.MatchString(fl.Field().String())
}

// bindingMessage turns a binding error into the response message.
func bindingMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid request body"
	}
	switch verrs[0].Tag() {
	case "circuitgoal":
		return "Unknown optimization goal"
	case "organism":
		return "Invalid organism name"
	default:
		return "Invalid " + verrs[0].Field()
	}
}
