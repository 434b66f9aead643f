package usecase

import (
	"context"
	"testing"

	"github.com/Syeddabbas07/chest-ray/internal/delivery/dto"
	"github.com/Syeddabbas07/chest-ray/internal/domain/entity"
	"github.com/Syeddabbas07/chest-ray/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerRequest(email string) *dto.RegisterPatientRequest {
	return &dto.RegisterPatientRequest{
		FullName:         "Amina Otieno",
		DateOfBirth:      "1988-03-14",
		Address:          "12 Ngong Road",
		Contact:          "+254700000001",
		Email:            email,
		NextOfKin:        "Joseph Otieno",
		NextOfKinContact: "+254700000002",
		Password:         "secret123",
	}
}

func TestRegisterPatient_CreatesAccountAndRecord(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.auth.RegisterPatient(ctx, registerRequest("amina@example.com"))
	require.NoError(t, err)
	assert.Equal(t, "/patient/dashboard", resp.Redirect)
	assert.Equal(t, string(entity.RolePatient), resp.Account.Role)
	assert.NotEmpty(t, resp.Token)

	session, err := f.sessions.Resolve(ctx, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.Account.ID, session.AccountID)
	assert.Equal(t, entity.RolePatient, session.Role)

	var patient entity.Patient
	require.NoError(t, f.db.Where("user_id = ?", resp.Account.ID).First(&patient).Error)
	assert.Equal(t, "Amina Otieno", patient.Name)
	assert.Equal(t, entity.HealthStatusStable, patient.HealthStatus)
	assert.Nil(t, patient.HealthWorkerID)
	assert.Equal(t, "1988-03-14", patient.DateOfBirth.Format("2006-01-02"))

	var account entity.Account
	require.NoError(t, f.db.First(&account, resp.Account.ID).Error)
	assert.NotEqual(t, "secret123", account.Password)
}

func TestRegisterPatient_DuplicateEmailWritesNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.auth.RegisterPatient(ctx, registerRequest("amina@example.com"))
	require.NoError(t, err)
	accounts, patients := f.count(t, &entity.Account{}), f.count(t, &entity.Patient{})

	second := registerRequest("amina@example.com")
	second.NextOfKinContact = "+254700000099"
	_, err = f.auth.RegisterPatient(ctx, second)
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)

	assert.Equal(t, accounts, f.count(t, &entity.Account{}))
	assert.Equal(t, patients, f.count(t, &entity.Patient{}))
}

func TestRegisterPatient_LoginIsCaseSensitive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.auth.RegisterPatient(ctx, registerRequest("amina@example.com"))
	require.NoError(t, err)

	second := registerRequest("Amina@example.com")
	second.NextOfKinContact = ""
	_, err = f.auth.RegisterPatient(ctx, second)
	assert.NoError(t, err)
}

func TestRegisterPatient_DuplicateNextOfKinContact(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.auth.RegisterPatient(ctx, registerRequest("amina@example.com"))
	require.NoError(t, err)

	_, err = f.auth.RegisterPatient(ctx, registerRequest("other@example.com"))
	assert.ErrorIs(t, err, ErrNextOfKinContactExists)
	assert.Equal(t, int64(1), f.count(t, &entity.Account{}))
}

func TestRegisterPatient_InvalidDate(t *testing.T) {
	f := newFixture(t)

	req := registerRequest("amina@example.com")
	req.DateOfBirth = "14/03/1988"
	_, err := f.auth.RegisterPatient(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDateFormat)
	assert.Zero(t, f.count(t, &entity.Account{}))
}

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.auth.RegisterPatient(ctx, registerRequest("amina@example.com"))
	require.NoError(t, err)

	_, unknownErr := f.auth.Login(ctx, &dto.LoginRequest{Login: "nobody@example.com", Password: "secret123"})
	_, wrongErr := f.auth.Login(ctx, &dto.LoginRequest{Login: "amina@example.com", Password: "wrong-password"})

	require.Error(t, unknownErr)
	require.Error(t, wrongErr)
	assert.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	assert.ErrorIs(t, wrongErr, ErrInvalidCredentials)
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
}

func TestLogin_RedirectsByRoleAndStampsLastLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.createHealthWorker(t, "worker1")
	f.createExpert(t, "expert1")
	_, err := f.admin.CreateAdmin(ctx, nil, &dto.CreateAdminRequest{Login: "admin1", Password: "secret123", ContactDetails: "admin1-contact"})
	require.NoError(t, err)
	_, err = f.auth.RegisterPatient(ctx, registerRequest("amina@example.com"))
	require.NoError(t, err)

	cases := map[string]string{
		"worker1":           "/health_worker/dashboard",
		"expert1":           "/expert/dashboard",
		"admin1":            "/admin/dashboard",
		"amina@example.com": "/patient/dashboard",
	}
	for login, redirect := range cases {
		resp, err := f.auth.Login(ctx, &dto.LoginRequest{Login: login, Password: "secret123"})
		require.NoError(t, err, login)
		assert.Equal(t, redirect, resp.Redirect, login)
		assert.NotNil(t, resp.Account.LastLogin, login)

		var account entity.Account
		require.NoError(t, f.db.First(&account, resp.Account.ID).Error)
		assert.NotNil(t, account.LastLogin, login)
	}
}

func TestLogout_RevokesSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.auth.RegisterPatient(ctx, registerRequest("amina@example.com"))
	require.NoError(t, err)
	session, err := f.sessions.Resolve(ctx, resp.Token)
	require.NoError(t, err)

	require.NoError(t, f.auth.Logout(ctx, session))

	_, err = f.sessions.Resolve(ctx, resp.Token)
	assert.ErrorIs(t, err, service.ErrSessionInvalid)

	var logs []entity.AuditLog
	require.NoError(t, f.db.Where("user_id = ? AND action = ?", session.AccountID, entity.AuditActionUserLogout).Find(&logs).Error)
	assert.Len(t, logs, 1)
}
