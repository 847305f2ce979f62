package controllers_test

import (
	"context"
	"encoding/json"
	"testing"

	controllers "lms/controllers/course"
	courseModels "lms/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestBuildPhaseWeeksOrdering(t *testing.T) {
	db := setupTestDB(t)
	f := seedCurriculum(t, db)

	tree, err := controllers.BuildPhaseWeeks(context.Background(), db, f.phase.ID)
	require.NoError(t, err)

	require.Len(t, tree.Weeks, 2)
	assert.Equal(t, "week-1", tree.Weeks[0].WeekName)
	assert.Equal(t, "week-2", tree.Weeks[1].WeekName)
	assert.Equal(t, 1, tree.Weeks[0].Order)
	assert.Equal(t, 2, tree.Weeks[1].Order)

	week1 := tree.Weeks[0]
	require.Len(t, week1.WeekComponents, 2)
	assert.Equal(t, "TODO list", week1.WeekComponents[0].Title)
	assert.Equal(t, "Recap", week1.WeekComponents[1].Title)

	require.Len(t, week1.WeekComponents[0].WeekComponentContents, 2)
	assert.Equal(t, "Install toolchain", week1.WeekComponents[0].WeekComponentContents[0].Title)
	assert.Equal(t, "Read syllabus", week1.WeekComponents[0].WeekComponentContents[1].Title)

	require.Len(t, week1.ClassTopics, 2)
	assert.Equal(t, "Class A", week1.ClassTopics[0].Title)
	assert.Equal(t, "Class B", week1.ClassTopics[1].Title)

	topicA := week1.ClassTopics[0]
	require.Len(t, topicA.ClassComponents, 1)
	require.Len(t, topicA.ClassComponents[0].ClassComponentContents, 1)
	require.Len(t, topicA.ClassVideoSectionBySections, 1)
	assert.Equal(t, 10, topicA.ClassVideoSectionBySections[0].MinimumMinutesRequired)
	require.Len(t, topicA.ClassVideoLiveSessions, 1)
	assert.Equal(t, 60, topicA.ClassVideoLiveSessions[0].VideoLengthMinutes)
}

func TestBuildPhaseWeeksEmptyLevelsAreEmptyLists(t *testing.T) {
	db := setupTestDB(t)
	f := seedCurriculum(t, db)

	tree, err := controllers.BuildPhaseWeeks(context.Background(), db, f.phase.ID)
	require.NoError(t, err)

	// Week 2 has nothing attached; every level must serialize as [],
	// never null
	raw, err := json.Marshal(tree.Weeks[1])
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	for _, key := range []string{"week_components", "class_topics", "group_sessions"} {
		value, present := decoded[key]
		require.True(t, present, key)
		list, ok := value.([]interface{})
		require.True(t, ok, "%s must be a list, got %T", key, value)
		assert.Empty(t, list)
	}

	// Topic B has no components or sessions at all
	topicRaw, err := json.Marshal(tree.Weeks[0].ClassTopics[1])
	require.NoError(t, err)
	var topicDecoded map[string]interface{}
	require.NoError(t, json.Unmarshal(topicRaw, &topicDecoded))
	for _, key := range []string{"class_components", "class_video_section_by_sections", "class_video_live_sessions"} {
		value, present := topicDecoded[key]
		require.True(t, present, key)
		_, ok := value.([]interface{})
		require.True(t, ok, "%s must be a list, got %T", key, value)
	}
}

func TestBuildPhaseWeeksIdempotent(t *testing.T) {
	db := setupTestDB(t)
	f := seedCurriculum(t, db)

	first, err := controllers.BuildPhaseWeeks(context.Background(), db, f.phase.ID)
	require.NoError(t, err)
	second, err := controllers.BuildPhaseWeeks(context.Background(), db, f.phase.ID)
	require.NoError(t, err)

	firstRaw, err := json.Marshal(first)
	require.NoError(t, err)
	secondRaw, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(firstRaw), string(secondRaw), "no intervening writes, trees must be byte-identical")
}

func TestBuildPhaseWeeksDuplicateOrderStableByInsertion(t *testing.T) {
	db := setupTestDB(t)
	f := seedCurriculum(t, db)

	// Two topics in week 2 sharing an order value is bad data; they must
	// come back in insertion order, consistently
	first := courseModels.ClassTopic{WeekID: f.week2.ID, Title: "First inserted", Order: 1, Hash: "dup00001"}
	second := courseModels.ClassTopic{WeekID: f.week2.ID, Title: "Second inserted", Order: 1, Hash: "dup00002"}
	require.NoError(t, db.Create(&first).Error)
	require.NoError(t, db.Create(&second).Error)

	for i := 0; i < 3; i++ {
		tree, err := controllers.BuildPhaseWeeks(context.Background(), db, f.phase.ID)
		require.NoError(t, err)
		topics := tree.Weeks[1].ClassTopics
		require.Len(t, topics, 2)
		assert.Equal(t, "First inserted", topics[0].Title)
		assert.Equal(t, "Second inserted", topics[1].Title)
	}
}

func TestBuildPhaseWeeksMissingPhase(t *testing.T) {
	db := setupTestDB(t)
	seedCurriculum(t, db)

	_, err := controllers.BuildPhaseWeeks(context.Background(), db, 9999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestBuildCourseTreeSkipsNothingWhenIntact(t *testing.T) {
	db := setupTestDB(t)
	f := seedCurriculum(t, db)

	tree, err := controllers.BuildCourseTree(context.Background(), db, f.course.ID)
	require.NoError(t, err)

	require.Len(t, tree.Phases, 1)
	assert.Equal(t, f.phase.ID, tree.Phases[0].ID)
	assert.Len(t, tree.Phases[0].Weeks, 2)
}

func TestBuildCourseTreePhaseOrdering(t *testing.T) {
	db := setupTestDB(t)
	f := seedCurriculum(t, db)

	// Insert an earlier phase after the first one to prove ordering is
	// by order value, not id
	early := courseModels.Phase{CourseID: f.course.ID, Name: "Phase Zero", Hash: "p0000000", Order: 0}
	require.NoError(t, db.Create(&early).Error)

	tree, err := controllers.BuildCourseTree(context.Background(), db, f.course.ID)
	require.NoError(t, err)

	require.Len(t, tree.Phases, 2)
	assert.Equal(t, "Phase Zero", tree.Phases[0].Name)
	assert.Equal(t, "Foundations", tree.Phases[1].Name)
}

func TestBuildPhaseWeeksCancelledContext(t *testing.T) {
	db := setupTestDB(t)
	f := seedCurriculum(t, db)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := controllers.BuildPhaseWeeks(ctx, db, f.phase.ID)
	assert.Error(t, err, "a cancelled request must not assemble a tree")
}
