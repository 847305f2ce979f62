package controllers_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"lms/config"
	controllers "lms/controllers/course"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/routers/courseRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB, fixture) {
	t.Helper()

	config.LoadConfig()
	db := setupTestDB(t)
	f := seedCurriculum(t, db)

	// Enrollment mails go over smtp, not something a test should do
	controllers.SendEnrollmentEmailFn = func(to, name, course, batch string) error { return nil }

	app := fiber.New()
	courseRoutes.SetupCourseRoutes(app)
	return app, db, f
}

func tokenFor(t *testing.T, user models.User) string {
	t.Helper()
	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Email)
	require.NoError(t, err)
	return token
}

func doRequest(t *testing.T, app *fiber.App, method, target, token, body string) (int, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &parsed))
	return resp.StatusCode, parsed
}

func TestGetPhaseWeeksRequiresToken(t *testing.T) {
	app, _, f := newTestApp(t)

	status, body := doRequest(t, app, http.MethodGet, "/phase/"+f.phase.Hash+"/weeks", "", "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, false, body["success"])
}

func TestGetPhaseWeeksDeniesUnenrolledUser(t *testing.T) {
	app, db, f := newTestApp(t)

	stranger := models.User{Name: "Stranger", Email: "stranger@test.local", Password: "x"}
	require.NoError(t, db.Create(&stranger).Error)

	status, body := doRequest(t, app, http.MethodGet, "/phase/"+f.phase.Hash+"/weeks", tokenFor(t, stranger), "")
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "not enrolled in course containing this phase", body["error"])
}

func TestGetPhaseWeeksReturnsOrderedTree(t *testing.T) {
	app, _, f := newTestApp(t)

	status, body := doRequest(t, app, http.MethodGet, "/phase/"+f.phase.Hash+"/weeks", tokenFor(t, f.user), "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])

	data := body["data"].(map[string]interface{})
	phase := data["phase"].(map[string]interface{})
	weeks := phase["weeks"].([]interface{})
	require.Len(t, weeks, 2)

	week1 := weeks[0].(map[string]interface{})
	assert.Equal(t, "Getting Started", week1["title"])
	assert.Len(t, week1["week_components"], 2)
	assert.Len(t, week1["class_topics"], 2)

	// Empty layers serialize as [], never null
	week2 := weeks[1].(map[string]interface{})
	require.NotNil(t, week2["week_components"])
	assert.Len(t, week2["week_components"], 0)
	require.NotNil(t, week2["class_topics"])
	assert.Len(t, week2["class_topics"], 0)
}

func TestGetPhaseWeeksUnknownPhase(t *testing.T) {
	app, _, f := newTestApp(t)

	status, _ := doRequest(t, app, http.MethodGet, "/phase/nosuch00/weeks", tokenFor(t, f.user), "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestGetCourseHierarchy(t *testing.T) {
	app, _, f := newTestApp(t)

	status, body := doRequest(t, app, http.MethodGet, "/course/"+f.course.Hash+"/hierarchy", tokenFor(t, f.user), "")
	require.Equal(t, http.StatusOK, status)

	data := body["data"].(map[string]interface{})
	course := data["course"].(map[string]interface{})
	assert.Equal(t, "Backend Track", course["name"])
	phases := course["phases"].([]interface{})
	require.Len(t, phases, 1)
	weeks := phases[0].(map[string]interface{})["weeks"].([]interface{})
	assert.Len(t, weeks, 2)
}

func TestGetCourseDetailsAmbiguousIdentifier(t *testing.T) {
	app, db, f := newTestApp(t)

	// Published course whose hash spells another published course's id
	collider := courseModels.Course{Name: "Collider", Hash: uintToString(f.course.ID), IsPublished: true}
	require.NoError(t, db.Create(&collider).Error)

	status, body := doRequest(t, app, http.MethodGet, "/course/"+uintToString(f.course.ID), tokenFor(t, f.user), "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Course identifier is ambiguous!", body["error"])
}

func TestGetCourseHierarchyDeniesUnenrolledUser(t *testing.T) {
	app, db, f := newTestApp(t)

	stranger := models.User{Name: "Stranger", Email: "stranger@test.local", Password: "x"}
	require.NoError(t, db.Create(&stranger).Error)

	status, _ := doRequest(t, app, http.MethodGet, "/course/"+f.course.Hash+"/hierarchy", tokenFor(t, stranger), "")
	assert.Equal(t, http.StatusForbidden, status)
}
