package validation

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/tasklink/tasklink/internal/domain/task"
)

func SetUpValidators() {
	log.Info().Msg("Setting up custom validators")
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		err := v.RegisterValidation(TaskStatusValidatorTag, TaskStatusValidator)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to set up Task status validator")
		}
		err = v.RegisterValidation(TaskPriorityValidatorTag, TaskPriorityValidator)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to set up Task priority validator")
		}
	}
}

var TaskStatusValidatorTag = "taskStatus"
var TaskStatusValidator validator.Func = func(fl validator.FieldLevel) bool {
	status, ok := fl.Field().Interface().(string)
	if ok {
		if _, err := task.StatusFromString(status); err != nil {
			return false
		}
	}
	return true
}

var TaskPriorityValidatorTag = "taskPriority"
var TaskPriorityValidator validator.Func = func(fl validator.FieldLevel) bool {
	priority, ok := fl.Field().Interface().(string)
	if ok {
		if _, err := task.PriorityFromString(priority); err != nil {
			return false
		}
	}
	return true
}
