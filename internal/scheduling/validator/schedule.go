package validator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"courtly/internal/scheduling/generator"
	"courtly/pkg/logger"
	"courtly/pkg/model"

	"github.com/go-playground/validator/v10"
)

var (
	dateRegex = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])-(0[1-9]|[12]\d|3[01])$`)
	timeRegex = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

// ScheduleValidator validates every operator-facing payload: slots,
// generation requests, closed periods, activities and working hours.
type ScheduleValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewScheduleValidator(log *logger.Logger) *ScheduleValidator {
	v := validator.New()

	if err := v.RegisterValidation("slot_date", validateSlotDate); err != nil {
		log.Fatal("Failed to register 'slot_date' validator",
			"error", err,
		)
	}
	if err := v.RegisterValidation("slot_time", validateSlotTime); err != nil {
		log.Fatal("Failed to register 'slot_time' validator",
			"error", err,
		)
	}

	log.Info("Schedule validator initialized successfully")

	return &ScheduleValidator{
		validate: v,
		logger:   log,
	}
}

func validateSlotDate(fl validator.FieldLevel) bool {
	return dateRegex.MatchString(fl.Field().String())
}

func validateSlotTime(fl validator.FieldLevel) bool {
	return timeRegex.MatchString(fl.Field().String())
}

func (v *ScheduleValidator) ValidateSlot(slot *model.TimeSlot) error {
	if err := v.validate.Struct(slot); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	if slot.CurrentBookings > slot.MaxCapacity {
		return ValidationErrors{
			ValidationError{
				Field:   "CurrentBookings",
				Message: fmt.Sprintf("current_bookings (%d) exceeds max_capacity (%d)", slot.CurrentBookings, slot.MaxCapacity),
			},
		}
	}

	return nil
}

func (v *ScheduleValidator) ValidateMove(move *model.SlotMove) error {
	return v.validateStruct(move)
}

func (v *ScheduleValidator) ValidateResize(resize *model.SlotResize) error {
	return v.validateStruct(resize)
}

func (v *ScheduleValidator) ValidateGeneration(req *generator.Request) error {
	if err := v.validateStruct(req); err != nil {
		return err
	}

	if req.EndDate < req.StartDate {
		return ValidationErrors{
			ValidationError{
				Field:   "EndDate",
				Message: fmt.Sprintf("end_date (%s) must not be before start_date (%s)", req.EndDate, req.StartDate),
			},
		}
	}

	return nil
}

func (v *ScheduleValidator) ValidateClosure(closure *model.ClosedPeriod) error {
	if err := v.validateStruct(closure); err != nil {
		return err
	}

	// Lexicographic comparison is correct for the fixed date layout.
	if closure.EndDate < closure.StartDate {
		return ValidationErrors{
			ValidationError{
				Field:   "EndDate",
				Message: fmt.Sprintf("end_date (%s) must not be before start_date (%s)", closure.EndDate, closure.StartDate),
			},
		}
	}

	return nil
}

func (v *ScheduleValidator) ValidateActivity(activity *model.Activity) error {
	return v.validateStruct(activity)
}

func (v *ScheduleValidator) ValidateActivityUpdate(update *model.ActivityUpdate) error {
	return v.validateStruct(update)
}

func (v *ScheduleValidator) ValidateWorkingHours(update *model.WorkingHoursUpdate) error {
	if err := v.validateStruct(update); err != nil {
		return err
	}

	for day, hours := range update.Hours {
		if day < "0" || day > "6" || len(day) != 1 {
			return ValidationErrors{
				ValidationError{
					Field:   "Hours",
					Message: fmt.Sprintf("day key must be 0..6 (Sunday..Saturday), got: %s", day),
				},
			}
		}
		if hours.Enabled && hours.Start >= hours.End {
			return ValidationErrors{
				ValidationError{
					Field:   "Hours",
					Message: fmt.Sprintf("day %s: start (%s) must be before end (%s)", day, hours.Start, hours.End),
				},
			}
		}
	}

	if update.LunchBreak != nil && update.LunchBreak.Start >= update.LunchBreak.End {
		return ValidationErrors{
			ValidationError{
				Field:   "LunchBreak",
				Message: fmt.Sprintf("start (%s) must be before end (%s)", update.LunchBreak.Start, update.LunchBreak.End),
			},
		}
	}

	return nil
}

func (v *ScheduleValidator) validateStruct(s any) error {
	if err := v.validate.Struct(s); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func (v *ScheduleValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "required_if":
			message = fmt.Sprintf("%s is required when the day is enabled", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "uuid4":
			message = fmt.Sprintf("%s must be a valid UUID", err.Field())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
		case "slot_date":
			message = fmt.Sprintf("%s must be in YYYY-MM-DD format", err.Field())
		case "slot_time":
			message = fmt.Sprintf("%s must be in HH:MM format", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
