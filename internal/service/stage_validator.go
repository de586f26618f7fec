package service

import (
	"fmt"
	"regexp"
	"time"

	"construction-stage-api/internal/domain"
	"construction-stage-api/internal/dto"
	"construction-stage-api/internal/response"
)

// timeLayout is the wire format for every timestamp crossing the API
// boundary: ISO-8601 UTC, second precision.
const timeLayout = "2006-01-02T15:04:05Z"

const maxNameLength = 255
const maxExternalIDLength = 255

var colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// patchState accumulates the write set and the effective
// (start, end, unit) triple while the descriptor table is applied to a
// patch payload.
type patchState struct {
	writeSet      map[string]interface{}
	effStart      time.Time
	effEnd        *time.Time
	effUnit       domain.DurationUnit
	tripleTouched bool
}

// stageFields is the field descriptor table: payload name, storage column
// and the rule applied when the field is present, in validation order.
// startDate precedes endDate so the end-boundary rule always sees the
// effective start. Patch iterates the table exactly once; absent fields
// are skipped, not re-validated.
type fieldDescriptor struct {
	name   string
	column string
	apply  func(req *dto.UpdateStageRequest, st *patchState) *response.AppError
}

var stageFields = []fieldDescriptor{
	{name: "name", column: "name", apply: applyName},
	{name: "startDate", column: "start_date", apply: applyStartDate},
	{name: "endDate", column: "end_date", apply: applyEndDate},
	{name: "durationUnit", column: "duration_unit", apply: applyDurationUnit},
	{name: "color", column: "color", apply: applyColor},
	{name: "externalId", column: "external_id", apply: applyExternalID},
	{name: "status", column: "status", apply: applyStatus},
}

// requireValue unwraps a tri-state field that does not accept an explicit
// null. Only endDate treats null as meaningful.
func requireValue[T any](o dto.Optional[T], field string) (T, bool, *response.AppError) {
	var zero T
	if !o.Set {
		return zero, false, nil
	}
	if o.Null {
		return zero, false, response.NewValidationError(field, "Field must not be null")
	}
	return o.Value, true, nil
}

func applyName(req *dto.UpdateStageRequest, st *patchState) *response.AppError {
	v, ok, aerr := requireValue(req.Name, "name")
	if aerr != nil || !ok {
		return aerr
	}
	if aerr := validateName(v); aerr != nil {
		return aerr
	}
	st.writeSet["name"] = v
	return nil
}

func applyStartDate(req *dto.UpdateStageRequest, st *patchState) *response.AppError {
	v, ok, aerr := requireValue(req.StartDate, "startDate")
	if aerr != nil || !ok {
		return aerr
	}
	t, aerr := validateStartDate(v)
	if aerr != nil {
		return aerr
	}
	st.effStart = t
	st.tripleTouched = true
	st.writeSet["start_date"] = t
	return nil
}

func applyEndDate(req *dto.UpdateStageRequest, st *patchState) *response.AppError {
	if !req.EndDate.Set {
		return nil
	}
	if req.EndDate.Null {
		// Explicit null clears the end boundary; omitting the key would
		// have left it untouched.
		st.effEnd = nil
		st.tripleTouched = true
		st.writeSet["end_date"] = nil
		return nil
	}
	t, aerr := validateEndDate(req.EndDate.Value, st.effStart)
	if aerr != nil {
		return aerr
	}
	st.effEnd = &t
	st.tripleTouched = true
	st.writeSet["end_date"] = t
	return nil
}

func applyDurationUnit(req *dto.UpdateStageRequest, st *patchState) *response.AppError {
	v, ok, aerr := requireValue(req.DurationUnit, "durationUnit")
	if aerr != nil || !ok {
		return aerr
	}
	unit, aerr := validateDurationUnit(v)
	if aerr != nil {
		return aerr
	}
	st.effUnit = unit
	st.tripleTouched = true
	st.writeSet["duration_unit"] = unit
	return nil
}

func applyColor(req *dto.UpdateStageRequest, st *patchState) *response.AppError {
	v, ok, aerr := requireValue(req.Color, "color")
	if aerr != nil || !ok {
		return aerr
	}
	if aerr := validateColor(v); aerr != nil {
		return aerr
	}
	st.writeSet["color"] = v
	return nil
}

func applyExternalID(req *dto.UpdateStageRequest, st *patchState) *response.AppError {
	v, ok, aerr := requireValue(req.ExternalID, "externalId")
	if aerr != nil || !ok {
		return aerr
	}
	if aerr := validateExternalID(v); aerr != nil {
		return aerr
	}
	st.writeSet["external_id"] = v
	return nil
}

func applyStatus(req *dto.UpdateStageRequest, st *patchState) *response.AppError {
	v, ok, aerr := requireValue(req.Status, "status")
	if aerr != nil || !ok {
		return aerr
	}
	status, aerr := validateStatus(v)
	if aerr != nil {
		return aerr
	}
	st.writeSet["status"] = status
	return nil
}

func columnFor(field string) string {
	for _, d := range stageFields {
		if d.name == field {
			return d.column
		}
	}
	return field
}

func validateName(name string) *response.AppError {
	if name == "" {
		return response.NewValidationError("name", "Name must not be empty")
	}
	if len(name) > maxNameLength {
		return response.NewValidationError("name",
			fmt.Sprintf("Name is too long, maximum length is %d characters", maxNameLength))
	}
	return nil
}

func validateStartDate(raw string) (time.Time, *response.AppError) {
	t, err := time.ParseInLocation(timeLayout, raw, time.UTC)
	if err != nil {
		return time.Time{}, response.NewValidationError("startDate",
			"Invalid start date, use ISO format, e.g. 2024-12-31T14:59:00Z")
	}
	return t, nil
}

// validateEndDate parses and checks the end boundary against the
// effective start date: the supplied one on create, or the stored one on
// patch unless a new startDate arrives in the same payload.
func validateEndDate(raw string, effectiveStart time.Time) (time.Time, *response.AppError) {
	t, err := time.ParseInLocation(timeLayout, raw, time.UTC)
	if err != nil {
		return time.Time{}, response.NewValidationError("endDate",
			"Invalid end date, use ISO format, e.g. 2024-12-31T14:59:00Z")
	}
	if t.Before(effectiveStart) {
		return time.Time{}, response.NewValidationError("endDate",
			"End date must not be earlier than start date")
	}
	return t, nil
}

func validateDurationUnit(raw string) (domain.DurationUnit, *response.AppError) {
	unit := domain.DurationUnit(raw)
	if !unit.IsValid() {
		return "", response.NewValidationError("durationUnit",
			"Invalid duration unit, use HOURS, DAYS or WEEKS")
	}
	return unit, nil
}

func validateColor(raw string) *response.AppError {
	if !colorPattern.MatchString(raw) {
		return response.NewValidationError("color",
			"Invalid color, use HEX format, e.g. #FF0000")
	}
	return nil
}

func validateExternalID(raw string) *response.AppError {
	if len(raw) > maxExternalIDLength {
		return response.NewValidationError("externalId",
			fmt.Sprintf("External ID is too long, maximum length is %d characters", maxExternalIDLength))
	}
	return nil
}

func validateStatus(raw string) (domain.StageStatus, *response.AppError) {
	status := domain.StageStatus(raw)
	if !status.IsValid() {
		return "", response.NewValidationError("status",
			"Invalid status, use NEW, PLANNED or DELETED")
	}
	return status, nil
}
