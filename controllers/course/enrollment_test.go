package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"lms/models"
	courseModels "lms/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrollInCourse(t *testing.T) {
	app, db, f := newTestApp(t)

	newbie := models.User{Name: "Newbie", Email: "newbie@test.local", Password: "x"}
	require.NoError(t, db.Create(&newbie).Error)

	body := fmt.Sprintf(`{"batch_id": %d}`, f.batch.ID)
	status, resp := doRequest(t, app, http.MethodPost, "/course/"+f.course.Hash+"/enroll", tokenFor(t, newbie), body)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, resp["success"])

	var enrollment courseModels.Enrollment
	require.NoError(t, db.Where("user_id = ?", newbie.ID).First(&enrollment).Error)
	assert.Equal(t, courseModels.EnrollmentActive, enrollment.Status)
	assert.Equal(t, f.batchCourse.ID, enrollment.BatchCourseID)
}

func TestEnrollTwiceConflicts(t *testing.T) {
	app, _, f := newTestApp(t)

	body := fmt.Sprintf(`{"batch_id": %d}`, f.batch.ID)
	status, resp := doRequest(t, app, http.MethodPost, "/course/"+f.course.Hash+"/enroll", tokenFor(t, f.user), body)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "User already enrolled in this course!", resp["error"])
}

func TestEnrollUnpublishedCourse(t *testing.T) {
	app, db, f := newTestApp(t)

	require.NoError(t, db.Model(&courseModels.Course{}).
		Where("id = ?", f.course.ID).
		Update("is_published", false).Error)

	body := fmt.Sprintf(`{"batch_id": %d}`, f.batch.ID)
	status, _ := doRequest(t, app, http.MethodPost, "/course/"+f.course.Hash+"/enroll", tokenFor(t, f.user), body)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestEnrollRejectsMissingBatch(t *testing.T) {
	app, _, f := newTestApp(t)

	status, resp := doRequest(t, app, http.MethodPost, "/course/"+f.course.Hash+"/enroll", tokenFor(t, f.user), `{}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Validation failed!", resp["error"])
}

func TestDropThenReenrollReactivatesRow(t *testing.T) {
	app, db, f := newTestApp(t)
	token := tokenFor(t, f.user)

	status, _ := doRequest(t, app, http.MethodPost, "/course/"+f.course.Hash+"/drop", token, "")
	require.Equal(t, http.StatusOK, status)

	var dropped courseModels.Enrollment
	require.NoError(t, db.First(&dropped, f.enrollment.ID).Error)
	assert.Equal(t, courseModels.EnrollmentDropped, dropped.Status)

	// Re-enrolling flips the same row back instead of inserting a second
	body := fmt.Sprintf(`{"batch_id": %d}`, f.batch.ID)
	status, _ = doRequest(t, app, http.MethodPost, "/course/"+f.course.Hash+"/enroll", token, body)
	require.Equal(t, http.StatusOK, status)

	var count int64
	require.NoError(t, db.Model(&courseModels.Enrollment{}).
		Where("user_id = ? AND batch_course_id = ?", f.user.ID, f.batchCourse.ID).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)

	var active courseModels.Enrollment
	require.NoError(t, db.First(&active, f.enrollment.ID).Error)
	assert.Equal(t, courseModels.EnrollmentActive, active.Status)
	assert.Greater(t, active.Version, dropped.Version)
}

func TestDropWithoutEnrollment(t *testing.T) {
	app, db, f := newTestApp(t)

	stranger := models.User{Name: "Stranger", Email: "stranger@test.local", Password: "x"}
	require.NoError(t, db.Create(&stranger).Error)

	status, _ := doRequest(t, app, http.MethodPost, "/course/"+f.course.Hash+"/drop", tokenFor(t, stranger), "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestUpdateProgress(t *testing.T) {
	app, db, f := newTestApp(t)

	body := fmt.Sprintf(`{"progress_percentage": 40, "version": %d}`, f.enrollment.Version)
	status, _ := doRequest(t, app, http.MethodPut, "/course/"+f.course.Hash+"/progress", tokenFor(t, f.user), body)
	require.Equal(t, http.StatusOK, status)

	var updated courseModels.Enrollment
	require.NoError(t, db.First(&updated, f.enrollment.ID).Error)
	assert.EqualValues(t, 40, updated.ProgressPercentage)
	assert.Equal(t, f.enrollment.Version+1, updated.Version)
	assert.Equal(t, courseModels.EnrollmentActive, updated.Status)
}

func TestUpdateProgressStaleVersionConflicts(t *testing.T) {
	app, db, f := newTestApp(t)

	body := fmt.Sprintf(`{"progress_percentage": 10, "version": %d}`, f.enrollment.Version+7)
	status, resp := doRequest(t, app, http.MethodPut, "/course/"+f.course.Hash+"/progress", tokenFor(t, f.user), body)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, false, resp["success"])

	var unchanged courseModels.Enrollment
	require.NoError(t, db.First(&unchanged, f.enrollment.ID).Error)
	assert.EqualValues(t, 0, unchanged.ProgressPercentage)
}

func TestUpdateProgressToHundredCompletes(t *testing.T) {
	app, db, f := newTestApp(t)

	body := fmt.Sprintf(`{"progress_percentage": 100, "version": %d}`, f.enrollment.Version)
	status, _ := doRequest(t, app, http.MethodPut, "/course/"+f.course.Hash+"/progress", tokenFor(t, f.user), body)
	require.Equal(t, http.StatusOK, status)

	var completed courseModels.Enrollment
	require.NoError(t, db.First(&completed, f.enrollment.ID).Error)
	assert.Equal(t, courseModels.EnrollmentCompleted, completed.Status)
	require.NotNil(t, completed.CompletionDate)
}

func TestEnrollmentPairUniqueIndex(t *testing.T) {
	_, db, f := newTestApp(t)

	// The check-then-insert in the controller is racy on its own; the
	// composite index is what actually holds the one-row-per-pair line
	err := db.Create(&courseModels.Enrollment{
		UserID:        f.user.ID,
		BatchCourseID: f.batchCourse.ID,
		Status:        courseModels.EnrollmentActive,
		Version:       1,
	}).Error
	assert.Error(t, err)
}

func TestGetEnrollments(t *testing.T) {
	app, _, f := newTestApp(t)

	status, resp := doRequest(t, app, http.MethodGet, "/user/enrollments", tokenFor(t, f.user), "")
	require.Equal(t, http.StatusOK, status)

	data := resp["data"].(map[string]interface{})
	enrollments := data["enrollments"].([]interface{})
	require.Len(t, enrollments, 1)
	first := enrollments[0].(map[string]interface{})
	assert.Equal(t, courseModels.EnrollmentActive, first["status"])
}
