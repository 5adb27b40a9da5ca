package request

type CreateMechanicRequest struct {
	Name   string `json:"name" binding:"required"`
	OnDuty bool   `json:"on_duty"`
}

// SetDutyRequest uses a pointer so "on_duty": false survives binding.
type SetDutyRequest struct {
	OnDuty *bool `json:"on_duty" binding:"required"`
}
