package auth

import "lsers_hub_backend/internal/domain"

// Stage is a screen of the PIN gate.
type Stage string

const (
	StageChoice            Stage = "choice"
	StageEnteringNameNew   Stage = "entering_name_new"
	StageEnteringNameLogin Stage = "entering_name_login"
	StageCreatingPin       Stage = "creating_pin"
	StageConfirmingPin     Stage = "confirming_pin"
	StageSetupQuestions    Stage = "setup_questions"
	StageEnteringPinLogin  Stage = "entering_pin_login"
	StageEnteringPinUnlock Stage = "entering_pin_unlock"
	StageForgotPinName     Stage = "forgot_pin_name"
	StageRecoveryQuestions Stage = "recovery_questions"
)

// Nav is a navigation button outside of handleAction.
type Nav string

const (
	NavChoice Nav = "choice"
	NavNew    Nav = "new"
	NavLogin  Nav = "login"
	NavForgot Nav = "forgot"
	NavBack   Nav = "back"
)

const (
	PinLength     = 4
	QuestionSlots = 3
)

// Gate validation messages.
const (
	MsgNameRequired        = "Please enter your name"
	MsgPinLength           = "PIN must be 4 digits"
	MsgPinMismatch         = "PINs do not match"
	MsgAnswerRequired      = "Answer required"
	MsgQuestionRepeated    = "Choose a different question"
	MsgProfileNotFound     = "Profile not found"
	MsgIncorrectPin        = "Incorrect PIN"
	MsgRecoveryUnavailable = "Recovery not available"
	MsgIncorrectAnswer     = "Incorrect answer"
)

// Questions is the fixed catalog of security questions.
var Questions = []string{
	"What was the name of your first pet?",
	"What is your mother's maiden name?",
	"What was the name of your primary school?",
	"In what city were you born?",
	"What was your first car?",
	"What is your favorite food?",
}

const defaultPin = "1234"

// defaultRecovery is the question set given to every seeded account.
var defaultRecovery = []domain.SecurityQuestionAnswer{
	{Question: Questions[0], Answer: "Buddy"},
	{Question: Questions[1], Answer: "Smith"},
	{Question: Questions[3], Answer: "Monrovia"},
}

// GateView is what a client renders for the gate. PIN buffers are exposed as lengths only.
type GateView struct {
	Stage            Stage                           `json:"stage"`
	Title            string                          `json:"title"`
	Name             string                          `json:"name"`
	PinLength        int                             `json:"pinLength"`
	ConfirmPinLength int                             `json:"confirmPinLength"`
	Step             int                             `json:"step"`
	Setup            []domain.SecurityQuestionAnswer `json:"setup,omitempty"`
	// RecoveryQuestion is the question asked at the current recovery step.
	RecoveryQuestion string       `json:"recoveryQuestion,omitempty"`
	Error            string       `json:"error,omitempty"`
	Unlocked         bool         `json:"unlocked"`
	User             *domain.User `json:"user,omitempty"`
}

// NameRequest fills the name buffer.
type NameRequest struct {
	Name string `json:"name" binding:"max=80"`
}

// DigitRequest presses one keypad digit.
type DigitRequest struct {
	Digit string `json:"digit" binding:"required,len=1,numeric"`
}

// SetupQuestionRequest fills one security question slot during setup.
type SetupQuestionRequest struct {
	Question string `json:"question" binding:"required"`
	Answer   string `json:"answer" binding:"max=120"`
}

// RecoveryAnswerRequest fills one recovery answer.
type RecoveryAnswerRequest struct {
	Answer string `json:"answer" binding:"max=120"`
}
