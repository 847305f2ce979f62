package controllers

import (
	"errors"
	"strconv"

	courseModels "lms/models/course"

	"gorm.io/gorm"
)

var (
	// ErrCourseNotFound means the identifier matched no course the user
	// is actively enrolled in
	ErrCourseNotFound = errors.New("course not found among active enrollments")
	// ErrAmbiguousIdentifier means a short id matched more than one
	// enrolled course; the request is rejected rather than guessing
	ErrAmbiguousIdentifier = errors.New("course identifier is ambiguous")
)

// PhaseAccess is the outcome of the enrollment gate for one phase
type PhaseAccess struct {
	Allowed    bool
	Reason     string
	Phase      *courseModels.Phase
	Course     *courseModels.Course
	Enrollment *courseModels.Enrollment
}

// CanAccessPhase decides whether the user may read the given phase's
// content. Access requires an active enrollment in a batch-course whose
// course owns the phase; dropped or completed enrollments do not grant
// access. Store errors propagate; a missing phase is reported through
// gorm.ErrRecordNotFound.
func CanAccessPhase(db *gorm.DB, userID uint, phaseID uint) (*PhaseAccess, error) {
	var phase courseModels.Phase
	if err := db.Where("id = ? AND is_deleted = ?", phaseID, false).First(&phase).Error; err != nil {
		return nil, err
	}

	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", phase.CourseID, false).First(&course).Error; err != nil {
		return nil, err
	}

	var enrollments []courseModels.Enrollment
	if err := db.Where("user_id = ? AND status = ?", userID, courseModels.EnrollmentActive).
		Preload("BatchCourse").
		Find(&enrollments).Error; err != nil {
		return nil, err
	}

	for i := range enrollments {
		if enrollments[i].BatchCourse.CourseID == course.ID {
			return &PhaseAccess{
				Allowed:    true,
				Phase:      &phase,
				Course:     &course,
				Enrollment: &enrollments[i],
			}, nil
		}
	}

	return &PhaseAccess{
		Allowed: false,
		Reason:  "not enrolled in course containing this phase",
		Phase:   &phase,
		Course:  &course,
	}, nil
}

// ResolveCourseForUser looks up a course by numeric id or by public hash
// among the user's actively-enrolled courses. An all-digit identifier is
// valid in both namespaces, so both are matched; if the id and the hash
// name different courses the ambiguity is rejected, never resolved by
// first match.
func ResolveCourseForUser(db *gorm.DB, userID uint, identifier string) (*courseModels.Course, *courseModels.Enrollment, error) {
	var enrollments []courseModels.Enrollment
	if err := db.Where("user_id = ? AND status = ?", userID, courseModels.EnrollmentActive).
		Preload("BatchCourse.Course").
		Find(&enrollments).Error; err != nil {
		return nil, nil, err
	}

	// A user may reach the same course through several batches; that is
	// one match, not an ambiguity. Only distinct courses count.
	matchByCourse := make(map[uint]int)
	id, numeric := parseID(identifier)
	for i := range enrollments {
		c := enrollments[i].BatchCourse.Course
		if c.Hash == identifier || numeric && c.ID == id {
			if _, seen := matchByCourse[c.ID]; !seen {
				matchByCourse[c.ID] = i
			}
		}
	}

	switch len(matchByCourse) {
	case 0:
		return nil, nil, ErrCourseNotFound
	case 1:
		for _, i := range matchByCourse {
			return &enrollments[i].BatchCourse.Course, &enrollments[i], nil
		}
	}
	return nil, nil, ErrAmbiguousIdentifier
}

func parseID(identifier string) (uint, bool) {
	id, err := strconv.ParseUint(identifier, 10, 64)
	return uint(id), err == nil
}

// ResolvePhase looks up a phase by numeric id or by public hash. An
// all-digit identifier is checked against both columns; two distinct
// matches are rejected as ambiguous.
func ResolvePhase(db *gorm.DB, identifier string) (*courseModels.Phase, error) {
	query := db.Where("is_deleted = ?", false)
	if id, numeric := parseID(identifier); numeric {
		query = query.Where("id = ? OR hash = ?", id, identifier)
	} else {
		query = query.Where("hash = ?", identifier)
	}

	var phases []courseModels.Phase
	if err := query.Find(&phases).Error; err != nil {
		return nil, err
	}
	switch len(phases) {
	case 0:
		return nil, gorm.ErrRecordNotFound
	case 1:
		return &phases[0], nil
	}
	return nil, ErrAmbiguousIdentifier
}

// findPublishedCourse looks up a published course by numeric id or by
// public hash, with the same ambiguity rejection as ResolvePhase.
func findPublishedCourse(db *gorm.DB, identifier string) (*courseModels.Course, error) {
	query := db.Where("is_deleted = ? AND is_published = ?", false, true)
	if id, numeric := parseID(identifier); numeric {
		query = query.Where("id = ? OR hash = ?", id, identifier)
	} else {
		query = query.Where("hash = ?", identifier)
	}

	var courses []courseModels.Course
	if err := query.Find(&courses).Error; err != nil {
		return nil, err
	}
	switch len(courses) {
	case 0:
		return nil, gorm.ErrRecordNotFound
	case 1:
		return &courses[0], nil
	}
	return nil, ErrAmbiguousIdentifier
}
