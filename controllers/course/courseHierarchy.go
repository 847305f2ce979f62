package controllers

import (
	"context"
	"log"

	courseModels "lms/models/course"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// Tree nodes for the hierarchy endpoints. Every list is initialized to
// an empty slice so levels serialize as [] rather than null, and every
// list is sorted by its order column (id breaks ties from bad data, so
// duplicates keep insertion order instead of flapping between requests).

type WeekComponentContentNode struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	ContentType string `json:"content_type"`
	TextContent string `json:"text_content"`
	URL         string `json:"url"`
	Order       int    `json:"order"`
}

type WeekComponentNode struct {
	ID                    uint                       `json:"id"`
	Title                 string                     `json:"title"`
	Order                 int                        `json:"order"`
	IconType              string                     `json:"icon_type"`
	WeekComponentContents []WeekComponentContentNode `json:"week_component_contents"`
}

type ClassComponentContentNode struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	ContentType string `json:"content_type"`
	TextContent string `json:"text_content"`
	URL         string `json:"url"`
	Order       int    `json:"order"`
}

type ClassComponentNode struct {
	ID                     uint                        `json:"id"`
	Title                  string                      `json:"title"`
	Order                  int                         `json:"order"`
	IconType               string                      `json:"icon_type"`
	ClassComponentContents []ClassComponentContentNode `json:"class_component_contents"`
}

type VideoSectionNode struct {
	ID                     uint   `json:"id"`
	Title                  string `json:"title"`
	Order                  int    `json:"order"`
	Hash                   string `json:"hash"`
	MinimumMinutesRequired int    `json:"minimum_minutes_required"`
}

type LiveSessionNode struct {
	ID                     uint   `json:"id"`
	Title                  string `json:"title"`
	Hash                   string `json:"hash"`
	MinimumMinutesRequired int    `json:"minimum_minutes_required"`
	VideoLengthMinutes     int    `json:"video_length_minutes"`
}

type GroupSessionNode struct {
	ID                     uint   `json:"id"`
	Title                  string `json:"title"`
	Hash                   string `json:"hash"`
	MinimumMinutesRequired int    `json:"minimum_minutes_required"`
}

type ClassTopicNode struct {
	ID                          uint                 `json:"id"`
	Title                       string               `json:"title"`
	Order                       int                  `json:"order"`
	Hash                        string               `json:"hash"`
	Description                 string               `json:"description"`
	HasChecklist                bool                 `json:"has_checklist"`
	ClassComponents             []ClassComponentNode `json:"class_components"`
	ClassVideoSectionBySections []VideoSectionNode   `json:"class_video_section_by_sections"`
	ClassVideoLiveSessions      []LiveSessionNode    `json:"class_video_live_sessions"`
}

type WeekNode struct {
	ID             uint                `json:"id"`
	WeekName       string              `json:"week_name"`
	Title          string              `json:"title"`
	Order          int                 `json:"order"`
	Hash           string              `json:"hash"`
	WeekComponents []WeekComponentNode `json:"week_components"`
	ClassTopics    []ClassTopicNode    `json:"class_topics"`
	GroupSessions  []GroupSessionNode  `json:"group_sessions"`
}

type PhaseNode struct {
	ID               uint       `json:"id"`
	Name             string     `json:"name"`
	Path             string     `json:"path"`
	BriefDescription string     `json:"brief_description"`
	FullDescription  string     `json:"full_description"`
	Icon             string     `json:"icon"`
	Hash             string     `json:"hash"`
	Order            int        `json:"order"`
	Weeks            []WeekNode `json:"weeks"`
}

type CourseNode struct {
	ID               uint        `json:"id"`
	Name             string      `json:"name"`
	Path             string      `json:"path"`
	BriefDescription string      `json:"brief_description"`
	FullDescription  string      `json:"full_description"`
	Icon             string      `json:"icon"`
	Hash             string      `json:"hash"`
	Phases           []PhaseNode `json:"phases"`
}

// weekFanOut caps how many week subtrees are fetched concurrently
const weekFanOut = 4

// BuildPhaseWeeks assembles the nested week tree for one phase. Week
// subtrees are independent of each other and fetched concurrently;
// cancelling ctx aborts all pending fetches. The phase itself must
// exist; a missing phase surfaces as gorm.ErrRecordNotFound.
func BuildPhaseWeeks(ctx context.Context, db *gorm.DB, phaseID uint) (*PhaseNode, error) {
	var phase courseModels.Phase
	if err := db.WithContext(ctx).Where("id = ? AND is_deleted = ?", phaseID, false).First(&phase).Error; err != nil {
		return nil, err
	}

	var weeks []courseModels.Week
	if err := db.WithContext(ctx).
		Where("phase_id = ? AND is_deleted = ?", phaseID, false).
		Order("week_order asc, id asc").
		Find(&weeks).Error; err != nil {
		return nil, err
	}
	warnDuplicateOrders("weeks", phase.ID, weekOrders(weeks))

	node := &PhaseNode{
		ID:               phase.ID,
		Name:             phase.Name,
		Path:             phase.Path,
		BriefDescription: phase.BriefDescription,
		FullDescription:  phase.FullDescription,
		Icon:             phase.Icon,
		Hash:             phase.Hash,
		Order:            phase.Order,
		Weeks:            make([]WeekNode, len(weeks)),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(weekFanOut)
	for i := range weeks {
		i := i
		g.Go(func() error {
			weekNode, err := buildWeekNode(gctx, db, weeks[i])
			if err != nil {
				return err
			}
			node.Weeks[i] = *weekNode
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return node, nil
}

// BuildCourseTree assembles the full phase/week tree for one course
func BuildCourseTree(ctx context.Context, db *gorm.DB, courseID uint) (*CourseNode, error) {
	var c courseModels.Course
	if err := db.WithContext(ctx).Where("id = ? AND is_deleted = ?", courseID, false).First(&c).Error; err != nil {
		return nil, err
	}

	var phases []courseModels.Phase
	if err := db.WithContext(ctx).
		Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("order_number asc, id asc").
		Find(&phases).Error; err != nil {
		return nil, err
	}

	node := &CourseNode{
		ID:               c.ID,
		Name:             c.Name,
		Path:             c.Path,
		BriefDescription: c.BriefDescription,
		FullDescription:  c.FullDescription,
		Icon:             c.Icon,
		Hash:             c.Hash,
		Phases:           make([]PhaseNode, 0, len(phases)),
	}

	for _, phase := range phases {
		phaseNode, err := BuildPhaseWeeks(ctx, db, phase.ID)
		if err != nil {
			// A phase row vanishing mid-assembly is an orphan, not a
			// reason to fail the whole course tree
			if err == gorm.ErrRecordNotFound {
				log.Printf("Skipping orphaned phase %d while building course %d tree", phase.ID, courseID)
				continue
			}
			return nil, err
		}
		node.Phases = append(node.Phases, *phaseNode)
	}

	return node, nil
}

// buildWeekNode fetches one week's components, class topics and group
// sessions. Sub-levels depend only on the week row, so they are safe to
// assemble independently of sibling weeks.
func buildWeekNode(ctx context.Context, db *gorm.DB, week courseModels.Week) (*WeekNode, error) {
	node := &WeekNode{
		ID:             week.ID,
		WeekName:       week.WeekName,
		Title:          week.Title,
		Order:          week.WeekOrder,
		Hash:           week.Hash,
		WeekComponents: []WeekComponentNode{},
		ClassTopics:    []ClassTopicNode{},
		GroupSessions:  []GroupSessionNode{},
	}

	var components []courseModels.WeekComponent
	if err := db.WithContext(ctx).
		Where("week_id = ? AND is_deleted = ?", week.ID, false).
		Order("order_number asc, id asc").
		Find(&components).Error; err != nil {
		return nil, err
	}
	warnDuplicateOrders("week_components", week.ID, componentOrders(components))

	for _, component := range components {
		var contents []courseModels.WeekComponentContent
		if err := db.WithContext(ctx).
			Where("week_component_id = ? AND is_deleted = ?", component.ID, false).
			Order("order_number asc, id asc").
			Find(&contents).Error; err != nil {
			return nil, err
		}

		componentNode := WeekComponentNode{
			ID:                    component.ID,
			Title:                 component.Title,
			Order:                 component.Order,
			IconType:              component.IconType,
			WeekComponentContents: make([]WeekComponentContentNode, 0, len(contents)),
		}
		for _, content := range contents {
			componentNode.WeekComponentContents = append(componentNode.WeekComponentContents, WeekComponentContentNode{
				ID:          content.ID,
				Title:       content.Title,
				ContentType: content.ContentType,
				TextContent: content.TextContent,
				URL:         content.URL,
				Order:       content.Order,
			})
		}
		node.WeekComponents = append(node.WeekComponents, componentNode)
	}

	var topics []courseModels.ClassTopic
	if err := db.WithContext(ctx).
		Where("week_id = ? AND is_deleted = ?", week.ID, false).
		Order("order_number asc, id asc").
		Find(&topics).Error; err != nil {
		return nil, err
	}
	warnDuplicateOrders("class_topics", week.ID, topicOrders(topics))

	for _, topic := range topics {
		topicNode, err := buildClassTopicNode(ctx, db, topic)
		if err != nil {
			return nil, err
		}
		node.ClassTopics = append(node.ClassTopics, *topicNode)
	}

	var groupSessions []courseModels.GroupSession
	if err := db.WithContext(ctx).
		Where("week_id = ? AND is_deleted = ?", week.ID, false).
		Order("id asc").
		Find(&groupSessions).Error; err != nil {
		return nil, err
	}
	for _, session := range groupSessions {
		node.GroupSessions = append(node.GroupSessions, GroupSessionNode{
			ID:                     session.ID,
			Title:                  session.Title,
			Hash:                   session.Hash,
			MinimumMinutesRequired: session.MinimumMinutesRequired,
		})
	}

	return node, nil
}

func buildClassTopicNode(ctx context.Context, db *gorm.DB, topic courseModels.ClassTopic) (*ClassTopicNode, error) {
	node := &ClassTopicNode{
		ID:                          topic.ID,
		Title:                       topic.Title,
		Order:                       topic.Order,
		Hash:                        topic.Hash,
		Description:                 topic.Description,
		HasChecklist:                topic.HasChecklist,
		ClassComponents:             []ClassComponentNode{},
		ClassVideoSectionBySections: []VideoSectionNode{},
		ClassVideoLiveSessions:      []LiveSessionNode{},
	}

	var components []courseModels.ClassComponent
	if err := db.WithContext(ctx).
		Where("class_topic_id = ? AND is_deleted = ?", topic.ID, false).
		Order("order_number asc, id asc").
		Find(&components).Error; err != nil {
		return nil, err
	}

	for _, component := range components {
		var contents []courseModels.ClassComponentContent
		if err := db.WithContext(ctx).
			Where("class_component_id = ? AND is_deleted = ?", component.ID, false).
			Order("order_number asc, id asc").
			Find(&contents).Error; err != nil {
			return nil, err
		}

		componentNode := ClassComponentNode{
			ID:                     component.ID,
			Title:                  component.Title,
			Order:                  component.Order,
			IconType:               component.IconType,
			ClassComponentContents: make([]ClassComponentContentNode, 0, len(contents)),
		}
		for _, content := range contents {
			componentNode.ClassComponentContents = append(componentNode.ClassComponentContents, ClassComponentContentNode{
				ID:          content.ID,
				Title:       content.Title,
				ContentType: content.ContentType,
				TextContent: content.TextContent,
				URL:         content.URL,
				Order:       content.Order,
			})
		}
		node.ClassComponents = append(node.ClassComponents, componentNode)
	}

	var sections []courseModels.VideoSection
	if err := db.WithContext(ctx).
		Where("class_topic_id = ? AND is_deleted = ?", topic.ID, false).
		Order("order_number asc, id asc").
		Find(&sections).Error; err != nil {
		return nil, err
	}
	for _, section := range sections {
		node.ClassVideoSectionBySections = append(node.ClassVideoSectionBySections, VideoSectionNode{
			ID:                     section.ID,
			Title:                  section.Title,
			Order:                  section.Order,
			Hash:                   section.Hash,
			MinimumMinutesRequired: section.MinimumMinutesRequired,
		})
	}

	// Live sessions carry no order column; there are at most a handful
	// per topic and they list in creation order
	var liveSessions []courseModels.LiveSession
	if err := db.WithContext(ctx).
		Where("class_topic_id = ? AND is_deleted = ?", topic.ID, false).
		Order("id asc").
		Find(&liveSessions).Error; err != nil {
		return nil, err
	}
	for _, session := range liveSessions {
		node.ClassVideoLiveSessions = append(node.ClassVideoLiveSessions, LiveSessionNode{
			ID:                     session.ID,
			Title:                  session.Title,
			Hash:                   session.Hash,
			MinimumMinutesRequired: session.MinimumMinutesRequired,
			VideoLengthMinutes:     session.VideoLengthMinutes,
		})
	}

	return node, nil
}

// warnDuplicateOrders flags siblings sharing an order value. The sort
// already resolved them stably by id; this is the data-integrity signal.
func warnDuplicateOrders(level string, parentID uint, orders []int) {
	seen := make(map[int]bool, len(orders))
	for _, order := range orders {
		if seen[order] {
			log.Printf("Data integrity: duplicate order %d among %s of parent %d", order, level, parentID)
		}
		seen[order] = true
	}
}

func weekOrders(weeks []courseModels.Week) []int {
	orders := make([]int, len(weeks))
	for i, w := range weeks {
		orders[i] = w.WeekOrder
	}
	return orders
}

func componentOrders(components []courseModels.WeekComponent) []int {
	orders := make([]int, len(components))
	for i, c := range components {
		orders[i] = c.Order
	}
	return orders
}

func topicOrders(topics []courseModels.ClassTopic) []int {
	orders := make([]int, len(topics))
	for i, t := range topics {
		orders[i] = t.Order
	}
	return orders
}
