package assessment

type StartAttemptDTO struct {
	Category string `json:"category" validate:"required"`
	Lang     string `json:"lang" validate:"omitempty,oneof=en sw"`
}

type SelectAnswerDTO struct {
	Option *int `json:"option" validate:"required"`
}

type AdvanceDTO struct {
	Direction Direction `json:"direction" validate:"required,oneof=forward backward"`
}
