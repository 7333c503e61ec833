package application

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/recipe-app-api/pkg/helpers"
)

func newUserService(t *testing.T) *UserService {
	t.Helper()
	logger := logrus.New()
	reset := helpers.NewResetTokenManager("test-secret", 30*time.Minute)
	return NewUserService(newFakeUserRepo(), newFakeTokenRepo(), reset, nil, "", nil, logger, nil, "", nil)
}

func TestRegisterHashesPasswordAndNormalizesEmail(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, "New_Us@GMAIL.COM", "Test1234", "New User")
	require.NoError(t, err)
	assert.Equal(t, "new_us@gmail.com", u.Email)
	assert.NotEqual(t, "Test1234", u.Password)
	assert.True(t, helpers.CompareHashAndPassword(u.Password, "Test1234"))
	assert.True(t, u.IsActive)
	assert.False(t, u.IsStaff)
	assert.False(t, u.IsSuperuser)
}

func TestRegisterEmptyEmailFails(t *testing.T) {
	svc := newUserService(t)
	for _, email := range []string{"", "   "} {
		_, err := svc.Register(context.Background(), email, "hue2323c4", "")
		assert.ErrorIs(t, err, ErrEmailRequired)
	}
}

func TestRegisterDuplicateEmailFails(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "dup@mail.com", "password1", "")
	require.NoError(t, err)
	_, err = svc.Register(ctx, "DUP@mail.com", "password2", "")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestCreateSuperuserSetsFlags(t *testing.T) {
	svc := newUserService(t)

	u, err := svc.CreateSuperuser(context.Background(), "admin@mail.com", "dhahdas3hh")
	require.NoError(t, err)
	assert.True(t, u.IsStaff)
	assert.True(t, u.IsSuperuser)
}

func TestAuthenticate(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "test_us@mail.com", "123test", "")
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		u, err := svc.Authenticate(ctx, "test_us@mail.com", "123test")
		require.NoError(t, err)
		assert.Equal(t, "test_us@mail.com", u.Email)
	})

	t.Run("case-insensitive email lookup", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "Test_Us@MAIL.com", "123test")
		assert.NoError(t, err)
	})

	t.Run("wrong password", func(t *testing.T) {
		u, err := svc.Authenticate(ctx, "test_us@mail.com", "wrongpass")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.Nil(t, u)
	})

	t.Run("unknown email is indistinguishable", func(t *testing.T) {
		u, err := svc.Authenticate(ctx, "nobody@mail.com", "123test")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.Nil(t, u)
	})
}

func TestIssueTokenIsIdempotent(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, "token@mail.com", "123456", "")
	require.NoError(t, err)

	t1, err := svc.IssueToken(ctx, u)
	require.NoError(t, err)
	assert.Len(t, t1.Key, helpers.TokenKeyLen)

	t2, err := svc.IssueToken(ctx, u)
	require.NoError(t, err)
	assert.Equal(t, t1.Key, t2.Key)
}

func TestGetUserByTokenKey(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, "bearer@mail.com", "123456", "")
	require.NoError(t, err)
	tok, err := svc.IssueToken(ctx, u)
	require.NoError(t, err)

	got, err := svc.GetUserByTokenKey(ctx, tok.Key)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = svc.GetUserByTokenKey(ctx, "deadbeefdeadbeefdeadbeefdeadbeefdeadbeef")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.GetUserByTokenKey(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestUpdateProfileRehashesPassword(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, "update@mail.com", "oldpass1", "Old Name")
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(ctx, u.ID, UpdateProfileInput{Name: "New Name", Password: "newpass1"})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.True(t, helpers.CompareHashAndPassword(updated.Password, "newpass1"))
	assert.False(t, helpers.CompareHashAndPassword(updated.Password, "oldpass1"))

	// name-only update keeps the password
	again, err := svc.UpdateProfile(ctx, u.ID, UpdateProfileInput{Name: "Third Name"})
	require.NoError(t, err)
	assert.True(t, helpers.CompareHashAndPassword(again.Password, "newpass1"))
}

func TestPasswordResetFlow(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, "reset@mail.com", "oldpass1", "")
	require.NoError(t, err)

	// unknown address reports success, preventing enumeration
	assert.NoError(t, svc.InitPasswordReset(ctx, "unknown@mail.com"))

	token, _, err := svc.Reset.Generate(u.ID)
	require.NoError(t, err)

	require.NoError(t, svc.ConfirmPasswordReset(ctx, token, "newpass1"))
	_, err = svc.Authenticate(ctx, "reset@mail.com", "newpass1")
	assert.NoError(t, err)
	_, err = svc.Authenticate(ctx, "reset@mail.com", "oldpass1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	err = svc.ConfirmPasswordReset(ctx, "not-a-token", "whatever1")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
