package controllers_test

import (
	"testing"
	"time"

	"lms/database"
	"lms/models"
	courseModels "lms/models/course"

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

// fixture is one enrolled user with a two-week phase:
//
//	Course -> Phase (order 1) -> Week 1 {components todo(1)+recap(2), topic A(1)+B(2)}
//	                          -> Week 2 {no components, no topics}
type fixture struct {
	user        models.User
	course      courseModels.Course
	batch       courseModels.Batch
	batchCourse courseModels.BatchCourse
	phase       courseModels.Phase
	week1       courseModels.Week
	week2       courseModels.Week
	topicA      courseModels.ClassTopic
	topicB      courseModels.ClassTopic
	enrollment  courseModels.Enrollment
}

func seedCurriculum(t *testing.T, db *gorm.DB) fixture {
	t.Helper()

	f := fixture{
		user:   models.User{Name: "Student", Email: "student@test.local", Password: "x"},
		course: courseModels.Course{Name: "Backend Track", Hash: "c0ffee01", IsPublished: true},
		batch:  courseModels.Batch{Name: "Batch 2026"},
	}
	require.NoError(t, db.Create(&f.user).Error)
	require.NoError(t, db.Create(&f.course).Error)
	require.NoError(t, db.Create(&f.batch).Error)

	f.batchCourse = courseModels.BatchCourse{BatchID: f.batch.ID, CourseID: f.course.ID}
	require.NoError(t, db.Create(&f.batchCourse).Error)

	f.phase = courseModels.Phase{CourseID: f.course.ID, Name: "Foundations", Hash: "p0000001", Order: 1}
	require.NoError(t, db.Create(&f.phase).Error)

	f.week1 = courseModels.Week{PhaseID: f.phase.ID, WeekName: "week-1", Title: "Getting Started", WeekOrder: 1, Hash: "w0000001"}
	f.week2 = courseModels.Week{PhaseID: f.phase.ID, WeekName: "week-2", Title: "Digging In", WeekOrder: 2, Hash: "w0000002"}
	require.NoError(t, db.Create(&f.week1).Error)
	require.NoError(t, db.Create(&f.week2).Error)

	todo := courseModels.WeekComponent{WeekID: f.week1.ID, Title: "TODO list", Order: 1, IconType: "todo"}
	recap := courseModels.WeekComponent{WeekID: f.week1.ID, Title: "Recap", Order: 2, IconType: "recap"}
	require.NoError(t, db.Create(&todo).Error)
	require.NoError(t, db.Create(&recap).Error)
	require.NoError(t, db.Create(&courseModels.WeekComponentContent{
		WeekComponentID: todo.ID, Title: "Install toolchain", Order: 1,
	}).Error)
	require.NoError(t, db.Create(&courseModels.WeekComponentContent{
		WeekComponentID: todo.ID, Title: "Read syllabus", Order: 2,
	}).Error)

	f.topicA = courseModels.ClassTopic{WeekID: f.week1.ID, Title: "Class A", Order: 1, Hash: "t0000001"}
	f.topicB = courseModels.ClassTopic{WeekID: f.week1.ID, Title: "Class B", Order: 2, Hash: "t0000002"}
	require.NoError(t, db.Create(&f.topicA).Error)
	require.NoError(t, db.Create(&f.topicB).Error)

	component := courseModels.ClassComponent{ClassTopicID: f.topicA.ID, Title: "Checklist", Order: 1}
	require.NoError(t, db.Create(&component).Error)
	require.NoError(t, db.Create(&courseModels.ClassComponentContent{
		ClassComponentID: component.ID, Title: "Warm-up", Order: 1,
	}).Error)

	require.NoError(t, db.Create(&courseModels.VideoSection{
		ClassTopicID: f.topicA.ID, Title: "Intro video", Order: 1, Hash: "v0000001", MinimumMinutesRequired: 10,
	}).Error)

	scheduled := time.Now().Add(48 * time.Hour)
	require.NoError(t, db.Create(&courseModels.LiveSession{
		ClassTopicID: f.topicA.ID, Title: "Live Q&A", Hash: "l0000001",
		ScheduledAt: &scheduled, MinimumMinutesRequired: 30, VideoLengthMinutes: 60,
	}).Error)

	f.enrollment = courseModels.Enrollment{
		UserID:        f.user.ID,
		BatchCourseID: f.batchCourse.ID,
		Status:        courseModels.EnrollmentActive,
		Version:       1,
	}
	require.NoError(t, db.Create(&f.enrollment).Error)

	return f
}
