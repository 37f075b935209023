package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yukikurage/acme-dashboard/internal/models"
)

func TestCompanyRepository_CreateCompanyWithManager(t *testing.T) {
	db := newTestDB(t)
	log := testLogger(t)
	ctx := context.Background()

	userID, err := NewUserRepository(db, log).CreateUser(ctx, "Ada", "ada@example.com", "hash")
	require.NoError(t, err)

	repo := NewCompanyRepository(db, log)
	companyID, err := repo.CreateCompanyWithManager(ctx, "Acme", userID)
	require.NoError(t, err)

	company, found, err := repo.FetchCompanyByID(ctx, companyID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Acme", company.Name)
	assert.Equal(t, userID, company.CreatedBy)

	role, found, err := repo.FetchUserRole(ctx, userID, companyID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, models.RoleManager, role.Role)
}

func TestCompanyRepository_CreateCompanyWithManager_RollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCompanyRepository(db, testLogger(t))

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO companies`).
		WithArgs(sqlmock.AnyArg(), "Acme", "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO user_roles`).
		WithArgs(sqlmock.AnyArg(), "u1", sqlmock.AnyArg(), "Manager").
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	id, err := repo.CreateCompanyWithManager(context.Background(), "Acme", "u1")
	assert.Equal(t, ErrCreateCompany, err)
	assert.Empty(t, id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCompanyRepository_CreateCompany_UnknownCreator(t *testing.T) {
	db := newTestDB(t)
	repo := NewCompanyRepository(db, testLogger(t))

	id, err := repo.CreateCompany(context.Background(), "Ghost Inc", uuid.NewString())
	assert.ErrorIs(t, err, ErrCreateCompany)
	assert.Empty(t, id)
}

func TestCompanyRepository_FetchCompaniesByName(t *testing.T) {
	db := newTestDB(t)
	log := testLogger(t)
	ctx := context.Background()

	userID, err := NewUserRepository(db, log).CreateUser(ctx, "Ada", "ada@example.com", "hash")
	require.NoError(t, err)

	repo := NewCompanyRepository(db, log)
	for _, name := range []string{"Zeta", "Acme", "Mango"} {
		_, err := repo.CreateCompany(ctx, name, userID)
		require.NoError(t, err)
	}

	companies, err := repo.FetchCompanies(ctx)
	require.NoError(t, err)
	require.Len(t, companies, 3)
	assert.Equal(t, "Acme", companies[0].Name)
	assert.Equal(t, "Mango", companies[1].Name)
	assert.Equal(t, "Zeta", companies[2].Name)
}

func TestCompanyRepository_Memberships(t *testing.T) {
	db := newTestDB(t)
	log := testLogger(t)
	ctx := context.Background()
	f := seedWorkspace(t, db)

	employeeID, err := NewUserRepository(db, log).CreateUser(ctx, "Bob", "bob@example.com", "hash")
	require.NoError(t, err)

	repo := NewCompanyRepository(db, log)
	roleID, err := repo.AddUserToCompany(ctx, employeeID, f.companyID, models.RoleEmployee)
	require.NoError(t, err)
	assert.NotEmpty(t, roleID)

	roles, err := repo.FetchUserRoles(ctx, employeeID)
	require.NoError(t, err)
	require.Len(t, roles, 1)
	assert.Equal(t, f.companyID, roles[0].CompanyID)
	assert.Equal(t, models.RoleEmployee, roles[0].Role)

	_, found, err := repo.FetchUserRole(ctx, employeeID, uuid.NewString())
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCompanyRepository_AddUserToUnknownCompany(t *testing.T) {
	db := newTestDB(t)
	f := seedWorkspace(t, db)
	repo := NewCompanyRepository(db, testLogger(t))

	id, err := repo.AddUserToCompany(context.Background(), f.userID, uuid.NewString(), models.RoleEmployee)
	assert.ErrorIs(t, err, ErrAddUserToCompany)
	assert.Empty(t, id)
}

func TestCompanyRepository_FindCompanyID(t *testing.T) {
	db := newTestDB(t)
	log := testLogger(t)
	ctx := context.Background()
	f := seedWorkspace(t, db)

	taskID, err := NewTaskRepository(db, log).CreateTask(ctx, f.recordID, "Design", "", nil, nil)
	require.NoError(t, err)

	repo := NewCompanyRepository(db, log)

	id, found, err := repo.FindCompanyIDByProject(ctx, f.projectID)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, f.companyID, id)

	id, found, err = repo.FindCompanyIDByRecord(ctx, f.recordID)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, f.companyID, id)

	id, found, err = repo.FindCompanyIDByTask(ctx, taskID)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, f.companyID, id)

	_, found, err = repo.FindCompanyIDByTask(ctx, uuid.NewString())
	require.NoError(t, err)
	assert.False(t, found)
}
