package middleware

import (
	"testing"

	"lms/database"
	"lms/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// An in-memory sqlite database exists per connection
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	database.Database = database.DbInstance{Db: db}
	return db
}

type permissionFixture struct {
	user       models.User
	student    models.Role
	admin      models.Role
	coursesUpd models.Permission
	coursesMng models.Permission
}

func seedPermissionFixture(t *testing.T, db *gorm.DB) permissionFixture {
	t.Helper()

	f := permissionFixture{
		user:       models.User{Email: "student@test.local", Password: "x"},
		student:    models.Role{Name: "STUDENT", PermissionLevel: 10},
		admin:      models.Role{Name: "ADMIN", PermissionLevel: 100},
		coursesUpd: models.Permission{Code: "courses:update", ResourceType: "courses", Action: models.ActionUpdate},
		coursesMng: models.Permission{Code: "courses:manage", ResourceType: "courses", Action: models.ActionManage},
	}
	require.NoError(t, db.Create(&f.user).Error)
	require.NoError(t, db.Create(&f.student).Error)
	require.NoError(t, db.Create(&f.admin).Error)
	require.NoError(t, db.Create(&f.coursesUpd).Error)
	require.NoError(t, db.Create(&f.coursesMng).Error)
	return f
}

func TestHasPermissionDeniesWithoutRoles(t *testing.T) {
	db := setupTestDB(t)
	f := seedPermissionFixture(t, db)

	allowed, err := HasPermission(db, f.user.ID, "courses", models.ActionUpdate)
	require.NoError(t, err)
	assert.False(t, allowed, "user without roles must be denied")
}

func TestHasPermissionDeniesWithoutGrant(t *testing.T) {
	db := setupTestDB(t)
	f := seedPermissionFixture(t, db)

	require.NoError(t, db.Create(&models.UserRole{UserID: f.user.ID, RoleID: f.student.ID, IsActive: true}).Error)

	allowed, err := HasPermission(db, f.user.ID, "courses", models.ActionUpdate)
	require.NoError(t, err)
	assert.False(t, allowed, "absence of a grant row is a deny")
}

func TestHasPermissionAllowsGrantedRole(t *testing.T) {
	db := setupTestDB(t)
	f := seedPermissionFixture(t, db)

	require.NoError(t, db.Create(&models.UserRole{UserID: f.user.ID, RoleID: f.admin.ID, IsActive: true}).Error)
	require.NoError(t, db.Create(&models.RolePermission{RoleID: f.admin.ID, PermissionID: f.coursesUpd.ID, IsGranted: true}).Error)

	allowed, err := HasPermission(db, f.user.ID, "courses", models.ActionUpdate)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestHasPermissionUnionAcrossRoles(t *testing.T) {
	db := setupTestDB(t)
	f := seedPermissionFixture(t, db)

	// STUDENT carries no grant, ADMIN does; holding both must allow
	require.NoError(t, db.Create(&models.UserRole{UserID: f.user.ID, RoleID: f.student.ID, IsActive: true}).Error)
	require.NoError(t, db.Create(&models.UserRole{UserID: f.user.ID, RoleID: f.admin.ID, IsActive: true}).Error)
	require.NoError(t, db.Create(&models.RolePermission{RoleID: f.admin.ID, PermissionID: f.coursesUpd.ID, IsGranted: true}).Error)

	allowed, err := HasPermission(db, f.user.ID, "courses", models.ActionUpdate)
	require.NoError(t, err)
	assert.True(t, allowed, "grants union across roles, an ungranted role does not override")
}

func TestHasPermissionIgnoresInactiveRoles(t *testing.T) {
	db := setupTestDB(t)
	f := seedPermissionFixture(t, db)

	userRole := models.UserRole{UserID: f.user.ID, RoleID: f.admin.ID, IsActive: true}
	require.NoError(t, db.Create(&userRole).Error)
	require.NoError(t, db.Create(&models.RolePermission{RoleID: f.admin.ID, PermissionID: f.coursesUpd.ID, IsGranted: true}).Error)

	allowed, err := HasPermission(db, f.user.ID, "courses", models.ActionUpdate)
	require.NoError(t, err)
	require.True(t, allowed)

	// Deactivating every role makes every check false
	require.NoError(t, db.Model(&userRole).Update("is_active", false).Error)

	allowed, err = HasPermission(db, f.user.ID, "courses", models.ActionUpdate)
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestHasPermissionIgnoresRevokedGrant(t *testing.T) {
	db := setupTestDB(t)
	f := seedPermissionFixture(t, db)

	require.NoError(t, db.Create(&models.UserRole{UserID: f.user.ID, RoleID: f.admin.ID, IsActive: true}).Error)
	require.NoError(t, db.Create(&models.RolePermission{RoleID: f.admin.ID, PermissionID: f.coursesUpd.ID, IsGranted: false}).Error)

	allowed, err := HasPermission(db, f.user.ID, "courses", models.ActionUpdate)
	require.NoError(t, err)
	assert.False(t, allowed, "a grant row with is_granted=false is a deny")
}

func TestManageIsNotImpliedByCrud(t *testing.T) {
	db := setupTestDB(t)
	f := seedPermissionFixture(t, db)

	require.NoError(t, db.Create(&models.UserRole{UserID: f.user.ID, RoleID: f.admin.ID, IsActive: true}).Error)
	require.NoError(t, db.Create(&models.RolePermission{RoleID: f.admin.ID, PermissionID: f.coursesUpd.ID, IsGranted: true}).Error)

	allowed, err := HasPermission(db, f.user.ID, "courses", models.ActionManage)
	require.NoError(t, err)
	assert.False(t, allowed, "manage must be granted explicitly")

	require.NoError(t, db.Create(&models.RolePermission{RoleID: f.admin.ID, PermissionID: f.coursesMng.ID, IsGranted: true}).Error)

	allowed, err = HasPermission(db, f.user.ID, "courses", models.ActionManage)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestHasAnyRole(t *testing.T) {
	db := setupTestDB(t)
	f := seedPermissionFixture(t, db)

	require.NoError(t, db.Create(&models.UserRole{UserID: f.user.ID, RoleID: f.student.ID, IsActive: true}).Error)

	allowed, err := HasAnyRole(db, f.user.ID, "ADMIN", "STUDENT")
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = HasAnyRole(db, f.user.ID, "ADMIN")
	require.NoError(t, err)
	assert.False(t, allowed)

	require.NoError(t, db.Model(&models.UserRole{}).Where("user_id = ?", f.user.ID).Update("is_active", false).Error)

	allowed, err = HasAnyRole(db, f.user.ID, "STUDENT")
	require.NoError(t, err)
	assert.False(t, allowed)
}
