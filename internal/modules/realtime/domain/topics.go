package domain

import "strings"

const (
	SystemEntity       = "system"
	BoardsEntity       = "boards"
	ReservationsEntity = "reservations"

	TopicSystemConnected = SystemEntity + ".connected"
	TopicSystemPong      = SystemEntity + ".pong"
	TopicSystemError     = SystemEntity + ".error"

	ActionConnected = "connected"
	ActionPong      = "pong"
	ActionError     = "error"
	ActionView      = "view"
	ActionCreated   = "created"
	ActionUpdated   = "updated"
	ActionDeleted   = "deleted"
	ActionUnknown   = "unknown"
	ActionAny       = "*"

	// MetadataBoardID routes a message to the clients watching one board.
	MetadataBoardID = "boardId"
)

// ViewTopic returns the topic board views are published on.
func ViewTopic() string {
	return buildEntityTopic(BoardsEntity, ActionView)
}

// ErrorTopic returns the canonical error topic for the given entity.
func ErrorTopic(entity string) string {
	return buildEntityTopic(entity, ActionError)
}

// CustomTopic returns the canonical topic for the given entity and action.
func CustomTopic(entity, action string) string {
	return buildEntityTopic(entity, action)
}

// WildcardTopic addresses every action of entity. The handler registry falls back
// to it when no handler is registered for a message's exact topic.
func WildcardTopic(entity string) string {
	return buildEntityTopic(entity, ActionAny)
}

// ReservationChangeTopics lists the topics that signal the reservation source
// changed. The wildcard catches events published without a known action.
func ReservationChangeTopics() []string {
	return []string{
		CustomTopic(ReservationsEntity, ActionCreated),
		CustomTopic(ReservationsEntity, ActionUpdated),
		CustomTopic(ReservationsEntity, ActionDeleted),
		WildcardTopic(ReservationsEntity),
	}
}

func buildEntityTopic(entity, action string) string {
	cleanEntity := strings.TrimSpace(entity)
	cleanAction := strings.TrimSpace(action)
	if cleanEntity == "" || cleanAction == "" {
		return ""
	}
	return cleanEntity + "." + cleanAction
}
