package auth

import (
	"context"
	"testing"
	"time"

	"lsers_hub_backend/internal/config"
	"lsers_hub_backend/internal/domain"
	"lsers_hub_backend/internal/platform/kv"
	"lsers_hub_backend/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type MockUserAttacher struct {
	mock.Mock
}

func (m *MockUserAttacher) AttachOnUnlock(ctx context.Context, deviceID, name string) (*domain.User, error) {
	args := m.Called(ctx, deviceID, name)
	if u := args.Get(0); u != nil {
		return u.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

const device = "device-0001"

type fixture struct {
	svc    *service
	users  *MockUserAttacher
	stores *store.Manager
	clock  time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cfg := config.Default()
	cfg.PinHashCost = bcrypt.MinCost

	f := &fixture{
		users:  new(MockUserAttacher),
		stores: store.NewManager(kv.NewMemoryBackend(), zap.NewNop()),
		clock:  time.Date(2024, 7, 15, 9, 0, 0, 0, time.UTC),
	}
	f.svc = NewService(f.stores, f.users, cfg, zap.NewNop()).(*service)
	f.svc.now = func() time.Time { return f.clock }
	return f
}

func (f *fixture) expectUnlock(name string, role domain.Role) {
	f.users.On("AttachOnUnlock", mock.Anything, device, name).
		Return(&domain.User{ID: 42, Name: name, Role: role}, nil).Once()
}

func (f *fixture) typePin(ctx context.Context, pin string) {
	for _, d := range pin {
		f.svc.PressDigit(ctx, device, string(d))
	}
}

func (f *fixture) submit(t *testing.T, ctx context.Context) GateView {
	t.Helper()
	v, err := f.svc.Submit(ctx, device)
	require.NoError(t, err)
	return v
}

func TestFreshDeviceStartsAtChoice(t *testing.T) {
	f := newFixture(t)
	v := f.svc.View(context.Background(), device)
	assert.Equal(t, StageChoice, v.Stage)
	assert.Equal(t, "Welcome", v.Title)
	assert.False(t, v.Unlocked)
}

func TestRegisterNewUserGoesThroughSecurityQuestions(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.Navigate(ctx, device, NavNew)
	require.NoError(t, err)
	f.svc.SetName(ctx, device, "  Admin Jane ")
	v := f.submit(t, ctx)
	assert.Equal(t, StageCreatingPin, v.Stage)
	assert.Equal(t, "Create PIN", v.Title)

	f.typePin(ctx, "1234")
	v = f.submit(t, ctx)
	assert.Equal(t, StageConfirmingPin, v.Stage)

	f.typePin(ctx, "1234")
	v = f.submit(t, ctx)
	require.Equal(t, StageSetupQuestions, v.Stage)
	assert.Equal(t, "Security Layer", v.Title)
	assert.False(t, v.Unlocked)

	// Empty answer does not advance.
	_, err = f.svc.SetSetupQuestion(ctx, device, 0, Questions[0], "  ")
	require.NoError(t, err)
	v = f.submit(t, ctx)
	assert.Equal(t, MsgAnswerRequired, v.Error)
	assert.Equal(t, 0, v.Step)

	_, err = f.svc.SetSetupQuestion(ctx, device, 0, Questions[0], "Rex")
	require.NoError(t, err)
	assert.Equal(t, 1, f.submit(t, ctx).Step)

	// Reusing a question is rejected.
	_, err = f.svc.SetSetupQuestion(ctx, device, 1, Questions[0], "Rex")
	require.NoError(t, err)
	v = f.submit(t, ctx)
	assert.Equal(t, MsgQuestionRepeated, v.Error)

	_, err = f.svc.SetSetupQuestion(ctx, device, 1, Questions[2], "St. Teresa")
	require.NoError(t, err)
	f.submit(t, ctx)
	_, err = f.svc.SetSetupQuestion(ctx, device, 2, Questions[3], "Gbarnga")
	require.NoError(t, err)

	f.expectUnlock("Admin Jane", domain.RoleAdmin)
	v = f.submit(t, ctx)
	assert.True(t, v.Unlocked)
	f.users.AssertExpectations(t)

	session := f.svc.Session(device)
	assert.True(t, session.IsAdmin())
	assert.Equal(t, "Admin Jane", session.UserName)

	st := f.stores.For(device)
	assert.Equal(t, "Admin Jane", st.UserName.Get(ctx))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(st.Pin.Get(ctx)), []byte("1234")))
	registry := st.UserRegistry.All(ctx)
	require.Len(t, registry, 1)
	assert.Len(t, registry[0].SecurityQuestions, 3)
}

func TestConfirmMismatchRestartsPinCreation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, _ = f.svc.Navigate(ctx, device, NavNew)
	f.svc.SetName(ctx, device, "Kofi")
	f.submit(t, ctx)
	f.typePin(ctx, "1234")
	f.submit(t, ctx)
	f.typePin(ctx, "4321")
	v := f.submit(t, ctx)

	assert.Equal(t, StageCreatingPin, v.Stage)
	assert.Equal(t, MsgPinMismatch, v.Error)
	assert.Zero(t, v.PinLength)
	assert.Zero(t, v.ConfirmPinLength)
}

func TestShortPinIsRejected(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, _ = f.svc.Navigate(ctx, device, NavNew)
	f.svc.SetName(ctx, device, "Kofi")
	f.submit(t, ctx)
	f.typePin(ctx, "12")
	v := f.submit(t, ctx)
	assert.Equal(t, StageCreatingPin, v.Stage)
	assert.Equal(t, MsgPinLength, v.Error)
}

func TestRegisteringExistingNameSkipsQuestions(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, _ = f.svc.Navigate(ctx, device, NavNew)
	f.svc.SetName(ctx, device, "test user")
	f.submit(t, ctx)
	f.typePin(ctx, "9999")
	f.submit(t, ctx)
	f.typePin(ctx, "9999")

	f.expectUnlock("Test User", domain.RoleUser)
	v := f.submit(t, ctx)
	assert.True(t, v.Unlocked)

	entry := f.stores.For(device).UserRegistry.All(ctx)[0]
	assert.Equal(t, "Test User", entry.Name)
	assert.Equal(t, defaultRecovery, entry.SecurityQuestions)
}

func TestLoginWithSeededAccount(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, _ = f.svc.Navigate(ctx, device, NavLogin)
	f.svc.SetName(ctx, device, "Nobody")
	v := f.submit(t, ctx)
	assert.Equal(t, MsgProfileNotFound, v.Error)

	f.svc.SetName(ctx, device, "john doe")
	v = f.submit(t, ctx)
	require.Equal(t, StageEnteringPinLogin, v.Stage)
	assert.Equal(t, "Welcome Back", v.Title)

	f.typePin(ctx, "0000")
	v = f.submit(t, ctx)
	assert.Equal(t, MsgIncorrectPin, v.Error)
	assert.Zero(t, v.PinLength)

	f.typePin(ctx, "1234")
	f.expectUnlock("John Doe", domain.RoleUser)
	v = f.submit(t, ctx)
	assert.True(t, v.Unlocked)
	assert.Equal(t, "John Doe", f.stores.For(device).UserName.Get(ctx))
}

func TestLockThenReturningDeviceUnlock(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, _ = f.svc.Navigate(ctx, device, NavLogin)
	f.svc.SetName(ctx, device, "Massa Washington")
	f.submit(t, ctx)
	f.typePin(ctx, "1234")
	f.expectUnlock("Massa Washington", domain.RoleUser)
	f.submit(t, ctx)

	v := f.svc.Lock(ctx, device)
	assert.False(t, v.Unlocked)
	assert.Equal(t, StageEnteringPinUnlock, v.Stage)
	assert.Equal(t, "Hi, Massa", v.Title)
	assert.False(t, f.svc.Session(device).Unlocked)

	f.typePin(ctx, "1234")
	f.expectUnlock("Massa Washington", domain.RoleUser)
	assert.True(t, f.submit(t, ctx).Unlocked)
}

func TestRecoveryFlowForcesNewPin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, _ = f.svc.Navigate(ctx, device, NavForgot)
	f.svc.SetName(ctx, device, "Stranger")
	v := f.submit(t, ctx)
	assert.Equal(t, MsgRecoveryUnavailable, v.Error)

	f.svc.SetName(ctx, device, "Fatu Kromah")
	v = f.submit(t, ctx)
	require.Equal(t, StageRecoveryQuestions, v.Stage)
	assert.Equal(t, Questions[0], v.RecoveryQuestion)

	_, err := f.svc.SetRecoveryAnswer(ctx, device, 0, "rover")
	require.NoError(t, err)
	v = f.submit(t, ctx)
	assert.Equal(t, MsgIncorrectAnswer, v.Error)
	assert.Equal(t, 0, v.Step)

	for slot, answer := range []string{"  buddy ", "SMITH", "monrovia"} {
		_, err := f.svc.SetRecoveryAnswer(ctx, device, slot, answer)
		require.NoError(t, err)
		v = f.submit(t, ctx)
	}
	require.Equal(t, StageCreatingPin, v.Stage)
	assert.Equal(t, "New PIN", v.Title)
	assert.False(t, v.Unlocked)

	f.typePin(ctx, "5678")
	f.submit(t, ctx)
	f.typePin(ctx, "5678")
	f.expectUnlock("Fatu Kromah", domain.RoleUser)
	assert.True(t, f.submit(t, ctx).Unlocked)

	st := f.stores.For(device)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(st.Pin.Get(ctx)), []byte("5678")))
}

func TestErrorClearsAfterTTL(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, _ = f.svc.Navigate(ctx, device, NavNew)
	v := f.submit(t, ctx)
	assert.Equal(t, MsgNameRequired, v.Error)

	f.clock = f.clock.Add(3 * time.Second)
	assert.Equal(t, MsgNameRequired, f.svc.View(ctx, device).Error)

	f.clock = f.clock.Add(time.Second)
	assert.Empty(t, f.svc.View(ctx, device).Error)
}

func TestKeypadCapsAtFourDigits(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, _ = f.svc.Navigate(ctx, device, NavNew)
	f.typePin(ctx, "123456")
	v := f.svc.View(ctx, device)
	assert.Equal(t, 4, v.PinLength)

	v = f.svc.DeleteDigit(ctx, device)
	assert.Equal(t, 3, v.PinLength)
}

func TestSetupQuestionOutsideSetupConflicts(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.SetSetupQuestion(context.Background(), device, 0, Questions[0], "x")
	assert.Error(t, err)
}

// register walks a fresh device through setup with three distinct answered questions.
func (f *fixture) register(t *testing.T, ctx context.Context, name string, answers [QuestionSlots]string) {
	t.Helper()
	_, err := f.svc.Navigate(ctx, device, NavNew)
	require.NoError(t, err)
	f.svc.SetName(ctx, device, name)
	f.submit(t, ctx)
	f.typePin(ctx, "2468")
	f.submit(t, ctx)
	f.typePin(ctx, "2468")
	require.Equal(t, StageSetupQuestions, f.submit(t, ctx).Stage)

	for slot, answer := range answers {
		_, err := f.svc.SetSetupQuestion(ctx, device, slot, Questions[slot], answer)
		require.NoError(t, err)
		if slot == QuestionSlots-1 {
			f.expectUnlock(name, domain.RoleUser)
		}
		f.submit(t, ctx)
	}
	require.True(t, f.svc.Session(device).Unlocked)
}

func TestRegisteredAnswersSurviveUnlock(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.register(t, ctx, "Jane Kollie", [QuestionSlots]string{"Rex", "Doe", "Paris"})

	entry := f.stores.For(device).UserRegistry.All(ctx)
	require.Len(t, entry, 1)
	var answers []string
	for _, qa := range entry[0].SecurityQuestions {
		answers = append(answers, qa.Answer)
	}
	assert.Equal(t, []string{"Rex", "Doe", "Paris"}, answers)

	f.svc.Lock(ctx, device)
	_, err := f.svc.Navigate(ctx, device, NavForgot)
	require.NoError(t, err)
	f.svc.SetName(ctx, device, "Jane Kollie")
	require.Equal(t, StageRecoveryQuestions, f.submit(t, ctx).Stage)

	// Blank answers must not match what was registered.
	v := f.submit(t, ctx)
	assert.Equal(t, MsgIncorrectAnswer, v.Error)
	assert.Equal(t, StageRecoveryQuestions, v.Stage)

	_, err = f.svc.SetRecoveryAnswer(ctx, device, 0, "Max")
	require.NoError(t, err)
	v = f.submit(t, ctx)
	assert.Equal(t, MsgIncorrectAnswer, v.Error)

	for slot, answer := range []string{"rex", "doe", "paris"} {
		_, err := f.svc.SetRecoveryAnswer(ctx, device, slot, answer)
		require.NoError(t, err)
		v = f.submit(t, ctx)
	}
	assert.Equal(t, StageCreatingPin, v.Stage)
	assert.Equal(t, "New PIN", v.Title)
}

func TestLockLeavesGateUsable(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	// Locking twice in a row and then pressing keys must not trip the gate's lock.
	f.svc.Lock(ctx, device)
	v := f.svc.Lock(ctx, device)
	assert.Equal(t, StageChoice, v.Stage)

	_, err := f.svc.Navigate(ctx, device, NavLogin)
	require.NoError(t, err)
	assert.Equal(t, StageEnteringNameLogin, f.svc.View(ctx, device).Stage)
}

func TestRewritingEarlierSetupSlotIsRechecked(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, _ = f.svc.Navigate(ctx, device, NavNew)
	f.svc.SetName(ctx, device, "Musa Kamara")
	f.submit(t, ctx)
	f.typePin(ctx, "1357")
	f.submit(t, ctx)
	f.typePin(ctx, "1357")
	require.Equal(t, StageSetupQuestions, f.submit(t, ctx).Stage)

	for slot := 0; slot < 2; slot++ {
		_, err := f.svc.SetSetupQuestion(ctx, device, slot, Questions[slot], "answer")
		require.NoError(t, err)
		f.submit(t, ctx)
	}
	_, err := f.svc.SetSetupQuestion(ctx, device, 2, Questions[2], "answer")
	require.NoError(t, err)

	cases := []struct {
		name     string
		question string
		answer   string
		want     string
	}{
		{"repeated question", Questions[1], "answer", MsgQuestionRepeated},
		{"emptied answer", Questions[0], " ", MsgAnswerRequired},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.SetSetupQuestion(ctx, device, 0, tc.question, tc.answer)
			require.NoError(t, err)
			v := f.submit(t, ctx)
			assert.Equal(t, tc.want, v.Error)
			assert.False(t, v.Unlocked)
			assert.Empty(t, f.stores.For(device).UserRegistry.All(ctx))
		})
	}

	_, err = f.svc.SetSetupQuestion(ctx, device, 0, Questions[0], "answer")
	require.NoError(t, err)
	f.expectUnlock("Musa Kamara", domain.RoleUser)
	assert.True(t, f.submit(t, ctx).Unlocked)
}
