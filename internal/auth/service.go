package auth

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"lsers_hub_backend/internal/common"
	"lsers_hub_backend/internal/config"
	"lsers_hub_backend/internal/domain"
	"lsers_hub_backend/internal/store"

	"go.uber.org/zap"
)

// Service drives the PIN gate of every device and owns the resulting sessions.
type Service interface {
	View(ctx context.Context, deviceID string) GateView
	Navigate(ctx context.Context, deviceID string, nav Nav) (GateView, error)
	SetName(ctx context.Context, deviceID, name string) GateView
	PressDigit(ctx context.Context, deviceID, digit string) GateView
	DeleteDigit(ctx context.Context, deviceID string) GateView
	SetSetupQuestion(ctx context.Context, deviceID string, slot int, question, answer string) (GateView, error)
	SetRecoveryAnswer(ctx context.Context, deviceID string, slot int, answer string) (GateView, error)
	// Submit validates the current screen and advances it, unlocking when a flow completes.
	Submit(ctx context.Context, deviceID string) (GateView, error)
	Lock(ctx context.Context, deviceID string) GateView
	Session(deviceID string) common.Session
	// ResetCredentials replaces the device PIN and display name of an unlocked session.
	ResetCredentials(ctx context.Context, deviceID, name, pin string) error
	Questions() []string
}

type gate struct {
	mu sync.Mutex
	gateState
}

// gateState is everything a gate shows or remembers. Resetting it never touches the gate's lock.
type gateState struct {
	stage      Stage
	title      string
	name       string
	pin        string
	confirmPin string
	step       int
	setup      [QuestionSlots]domain.SecurityQuestionAnswer
	recovery   [QuestionSlots]string
	recoverFor *domain.RegisteredUser

	errMsg string
	errAt  time.Time

	session common.Session
	user    *domain.User
}

type service struct {
	stores   *store.Manager
	users    UserAttacher
	hasher   *hasher
	errorTTL time.Duration
	logger   *zap.Logger
	now      func() time.Time

	mu    sync.Mutex
	gates map[string]*gate
}

// NewService creates the PIN gate service.
func NewService(stores *store.Manager, users UserAttacher, cfg *config.Config, logger *zap.Logger) Service {
	ttl := cfg.PinErrorTTL
	if ttl <= 0 {
		ttl = 4 * time.Second
	}
	return &service{
		stores:   stores,
		users:    users,
		hasher:   newHasher(cfg.PinHashCost),
		errorTTL: ttl,
		logger:   logger.Named("auth"),
		now:      time.Now,
		gates:    make(map[string]*gate),
	}
}

func (s *service) Questions() []string {
	return slices.Clone(Questions)
}

func (s *service) gateFor(ctx context.Context, deviceID string) *gate {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.gates[deviceID]
	if !ok {
		g = &gate{}
		s.resetToStart(ctx, g, deviceID)
		s.gates[deviceID] = g
	}
	return g
}

// resetToStart puts g on the first screen a device sees when the app opens.
func (s *service) resetToStart(ctx context.Context, g *gate, deviceID string) {
	st := s.stores.For(deviceID)
	storedPin, storedName := st.Pin.Get(ctx), st.UserName.Get(ctx)

	g.gateState = gateState{}
	g.session = common.Session{DeviceID: deviceID}
	if storedPin != "" && strings.TrimSpace(storedName) != "" {
		g.stage = StageEnteringPinUnlock
		g.name = storedName
		g.title = "Hi, " + strings.Fields(storedName)[0]
		return
	}
	g.stage = StageChoice
	g.title = "Welcome"
}

func (s *service) registry(deviceID string) *registry {
	return &registry{st: s.stores.For(deviceID), hasher: s.hasher, logger: s.logger}
}

func (s *service) fail(g *gate, msg string) {
	g.errMsg = msg
	g.errAt = s.now()
}

func (s *service) view(g *gate) GateView {
	v := GateView{
		Stage:            g.stage,
		Title:            g.title,
		Name:             g.name,
		PinLength:        len(g.pin),
		ConfirmPinLength: len(g.confirmPin),
		Step:             g.step,
		Unlocked:         g.session.Unlocked,
	}
	if g.errMsg != "" && s.now().Sub(g.errAt) < s.errorTTL {
		v.Error = g.errMsg
	}
	switch g.stage {
	case StageSetupQuestions:
		v.Setup = make([]domain.SecurityQuestionAnswer, QuestionSlots)
		for i, qa := range g.setup {
			// Answers stay private; only the chosen question is echoed back.
			v.Setup[i] = domain.SecurityQuestionAnswer{Question: qa.Question}
		}
	case StageRecoveryQuestions:
		if g.recoverFor != nil && g.step < len(g.recoverFor.SecurityQuestions) {
			v.RecoveryQuestion = g.recoverFor.SecurityQuestions[g.step].Question
		}
	}
	if g.user != nil {
		u := *g.user
		v.User = &u
	}
	return v
}

func (s *service) View(ctx context.Context, deviceID string) GateView {
	g := s.gateFor(ctx, deviceID)
	g.mu.Lock()
	defer g.mu.Unlock()
	return s.view(g)
}

func (s *service) Navigate(ctx context.Context, deviceID string, nav Nav) (GateView, error) {
	g := s.gateFor(ctx, deviceID)
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.session.Unlocked {
		return s.view(g), nil
	}
	switch nav {
	case NavNew:
		g.stage, g.title = StageEnteringNameNew, "Setup"
		g.name, g.pin, g.confirmPin = "", "", ""
	case NavLogin:
		g.stage, g.title = StageEnteringNameLogin, "Login"
		g.name, g.pin = "", ""
	case NavForgot:
		g.stage, g.title = StageForgotPinName, "Reset"
		g.pin = ""
	case NavChoice, NavBack:
		g.stage, g.title = StageChoice, "Welcome"
		g.pin, g.confirmPin = "", ""
	default:
		return s.view(g), common.ErrBadRequest.WithDetails(fmt.Sprintf("Unknown navigation %q.", nav))
	}
	g.step = 0
	g.errMsg = ""
	return s.view(g), nil
}

func (s *service) SetName(ctx context.Context, deviceID, name string) GateView {
	g := s.gateFor(ctx, deviceID)
	g.mu.Lock()
	defer g.mu.Unlock()

	switch g.stage {
	case StageEnteringNameNew, StageEnteringNameLogin, StageForgotPinName:
		g.name = name
	}
	return s.view(g)
}

func (s *service) PressDigit(ctx context.Context, deviceID, digit string) GateView {
	g := s.gateFor(ctx, deviceID)
	g.mu.Lock()
	defer g.mu.Unlock()

	g.errMsg = ""
	if g.stage == StageConfirmingPin {
		if len(g.confirmPin) < PinLength {
			g.confirmPin += digit
		}
	} else if len(g.pin) < PinLength {
		g.pin += digit
	}
	return s.view(g)
}

func (s *service) DeleteDigit(ctx context.Context, deviceID string) GateView {
	g := s.gateFor(ctx, deviceID)
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.stage == StageConfirmingPin {
		if n := len(g.confirmPin); n > 0 {
			g.confirmPin = g.confirmPin[:n-1]
		}
	} else if n := len(g.pin); n > 0 {
		g.pin = g.pin[:n-1]
	}
	return s.view(g)
}

func (s *service) SetSetupQuestion(ctx context.Context, deviceID string, slot int, question, answer string) (GateView, error) {
	g := s.gateFor(ctx, deviceID)
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.stage != StageSetupQuestions {
		return s.view(g), common.ErrConflict.WithDetails("Security questions are not being set up.")
	}
	if slot < 0 || slot >= QuestionSlots {
		return s.view(g), common.ErrBadRequest.WithDetails("Question slot must be 0, 1 or 2.")
	}
	if !slices.Contains(Questions, question) {
		return s.view(g), common.ErrBadRequest.WithDetails("Unknown security question.")
	}
	g.setup[slot] = domain.SecurityQuestionAnswer{Question: question, Answer: answer}
	return s.view(g), nil
}

func (s *service) SetRecoveryAnswer(ctx context.Context, deviceID string, slot int, answer string) (GateView, error) {
	g := s.gateFor(ctx, deviceID)
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.stage != StageRecoveryQuestions {
		return s.view(g), common.ErrConflict.WithDetails("Recovery is not in progress.")
	}
	if slot < 0 || slot >= QuestionSlots {
		return s.view(g), common.ErrBadRequest.WithDetails("Answer slot must be 0, 1 or 2.")
	}
	g.recovery[slot] = answer
	return s.view(g), nil
}

func (s *service) Submit(ctx context.Context, deviceID string) (GateView, error) {
	g := s.gateFor(ctx, deviceID)
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.session.Unlocked {
		return s.view(g), nil
	}
	if err := s.handleAction(ctx, deviceID, g); err != nil {
		return s.view(g), err
	}
	return s.view(g), nil
}

func (s *service) handleAction(ctx context.Context, deviceID string, g *gate) error {
	reg := s.registry(deviceID)
	st := s.stores.For(deviceID)

	switch g.stage {
	case StageEnteringNameNew:
		if strings.TrimSpace(g.name) == "" {
			s.fail(g, MsgNameRequired)
			return nil
		}
		g.stage, g.title = StageCreatingPin, "Create PIN"

	case StageCreatingPin:
		if len(g.pin) != PinLength {
			s.fail(g, MsgPinLength)
			return nil
		}
		g.stage, g.title = StageConfirmingPin, "Confirm PIN"

	case StageConfirmingPin:
		if g.pin != g.confirmPin {
			s.fail(g, MsgPinMismatch)
			g.pin, g.confirmPin = "", ""
			g.stage, g.title = StageCreatingPin, "Create PIN"
			return nil
		}
		existing, ok := reg.find(ctx, g.name)
		if !ok {
			g.stage, g.title, g.step = StageSetupQuestions, "Security Layer", 0
			g.setup = [QuestionSlots]domain.SecurityQuestionAnswer{}
			return nil
		}
		if err := reg.save(ctx, existing.Name, g.pin, existing.SecurityQuestions); err != nil {
			return fmt.Errorf("saving registry entry: %w", err)
		}
		return s.unlock(ctx, deviceID, g, existing.Name)

	case StageSetupQuestions:
		// Earlier slots can still be rewritten, so every slot up to the current one is rechecked.
		if msg := checkSetup(g.setup[:g.step+1]); msg != "" {
			s.fail(g, msg)
			return nil
		}
		if g.step < QuestionSlots-1 {
			g.step++
			return nil
		}
		name := strings.TrimSpace(g.name)
		if err := reg.save(ctx, name, g.pin, g.setup[:]); err != nil {
			return fmt.Errorf("saving registry entry: %w", err)
		}
		return s.unlock(ctx, deviceID, g, name)

	case StageEnteringNameLogin:
		if strings.TrimSpace(g.name) == "" {
			s.fail(g, MsgNameRequired)
			return nil
		}
		if _, ok := reg.find(ctx, g.name); !ok {
			s.fail(g, MsgProfileNotFound)
			return nil
		}
		g.stage, g.title = StageEnteringPinLogin, "Welcome Back"

	case StageEnteringPinLogin:
		user, ok := reg.find(ctx, g.name)
		if !ok || !s.hasher.matches(user.PinHash, g.pin) {
			s.fail(g, MsgIncorrectPin)
			g.pin = ""
			return nil
		}
		st.Pin.Save(ctx, user.PinHash)
		st.UserName.Save(ctx, user.Name)
		return s.unlock(ctx, deviceID, g, user.Name)

	case StageEnteringPinUnlock:
		if !s.hasher.matches(st.Pin.Get(ctx), g.pin) {
			s.fail(g, MsgIncorrectPin)
			g.pin = ""
			return nil
		}
		return s.unlock(ctx, deviceID, g, g.name)

	case StageForgotPinName:
		if strings.TrimSpace(g.name) == "" {
			s.fail(g, MsgNameRequired)
			return nil
		}
		user, ok := reg.find(ctx, g.name)
		if !ok || len(user.SecurityQuestions) < QuestionSlots {
			s.fail(g, MsgRecoveryUnavailable)
			return nil
		}
		g.recoverFor = &user
		g.recovery = [QuestionSlots]string{}
		g.stage, g.title, g.step = StageRecoveryQuestions, "Reset PIN", 0

	case StageRecoveryQuestions:
		want := g.recoverFor.SecurityQuestions[g.step].Answer
		if !strings.EqualFold(strings.TrimSpace(g.recovery[g.step]), strings.TrimSpace(want)) {
			s.fail(g, MsgIncorrectAnswer)
			return nil
		}
		if g.step < QuestionSlots-1 {
			g.step++
			return nil
		}
		g.name = g.recoverFor.Name
		g.recoverFor = nil
		g.pin, g.confirmPin, g.step = "", "", 0
		g.stage, g.title = StageCreatingPin, "New PIN"
	}
	return nil
}

// checkSetup reports the first problem with the filled slots: an empty question or answer,
// or a question used twice.
func checkSetup(slots []domain.SecurityQuestionAnswer) string {
	for i, qa := range slots {
		if qa.Question == "" || strings.TrimSpace(qa.Answer) == "" {
			return MsgAnswerRequired
		}
		for _, earlier := range slots[:i] {
			if earlier.Question == qa.Question {
				return MsgQuestionRepeated
			}
		}
	}
	return ""
}

func (s *service) unlock(ctx context.Context, deviceID string, g *gate, name string) error {
	user, err := s.users.AttachOnUnlock(ctx, deviceID, name)
	if err != nil {
		return err
	}
	role := user.Role
	if role == "" {
		role = domain.RoleUser
	}
	g.session = common.Session{
		DeviceID: deviceID,
		Unlocked: true,
		UserID:   user.ID,
		UserName: user.Name,
		Role:     role,
	}
	g.user = user
	g.pin, g.confirmPin, g.errMsg = "", "", ""
	g.setup = [QuestionSlots]domain.SecurityQuestionAnswer{}
	s.logger.Info("Device unlocked",
		zap.String("device_id", deviceID),
		zap.Int64("user_id", user.ID),
		zap.String("role", string(role)),
	)
	return nil
}

func (s *service) Lock(ctx context.Context, deviceID string) GateView {
	g := s.gateFor(ctx, deviceID)
	g.mu.Lock()
	defer g.mu.Unlock()

	s.resetToStart(ctx, g, deviceID)
	s.logger.Info("Device locked", zap.String("device_id", deviceID))
	return s.view(g)
}

func (s *service) Session(deviceID string) common.Session {
	s.mu.Lock()
	g, ok := s.gates[deviceID]
	s.mu.Unlock()
	if !ok {
		return common.Session{DeviceID: deviceID}
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.session
}

func (s *service) ResetCredentials(ctx context.Context, deviceID, name, pin string) error {
	g := s.gateFor(ctx, deviceID)
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.session.Unlocked {
		return common.ErrUnauthorized
	}
	hash, err := s.hasher.hash(pin)
	if err != nil {
		return fmt.Errorf("hashing pin: %w", err)
	}
	st := s.stores.For(deviceID)
	st.Pin.Save(ctx, hash)
	st.UserName.Save(ctx, name)
	g.session.UserName = name
	g.name = name
	if g.user != nil {
		g.user.Name = name
	}
	return nil
}
