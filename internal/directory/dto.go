package directory

import (
	"github.com/smartworld/smartdesk/internal"
	"github.com/smartworld/smartdesk/internal/core/common/validation"
)

type UpdateImageRequest struct {
	ProfileImage string `json:"profileImage"`
}

func (r UpdateImageRequest) Validate() error {
	v := validation.NewValidator()
	v.Field("profileImage", r.ProfileImage).Required().MaxLength(2048)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type EmployeesResponse struct {
	Employees []Employee `json:"employees"`
	Total     int        `json:"total"`
}

type EmployeeResponse struct {
	Employee *Employee `json:"employee"`
}

type ImageResponse struct {
	Message  string    `json:"message"`
	ImageURL string    `json:"imageUrl"`
	Employee *Employee `json:"employee"`
}

type DepartmentsResponse struct {
	Departments []string `json:"departments"`
}

type LocationsResponse struct {
	Locations []string `json:"locations"`
}

var errImageFieldMissing = internal.NewValidationFieldError("image", "image file is required", internal.ErrCodeValidationFailed)
