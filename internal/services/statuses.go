package services

import "campusfix/internal/models"

// The closed status set. "Assigned" is written by the assign endpoint and
// has been part of live data since the first deploy, so it is a full member.
var knownStatuses = map[models.TaskStatus]bool{
	models.StatusAwaitingApproval: true,
	models.StatusPending:          true,
	models.StatusAssigned:         true,
	models.StatusInProgress:       true,
	models.StatusCompleted:        true,
}

// Statuses a caller may set through the status endpoint. "Awaiting Approval"
// is reachable only via the public intake, never by update.
var settableStatuses = map[models.TaskStatus]bool{
	models.StatusPending:    true,
	models.StatusAssigned:   true,
	models.StatusInProgress: true,
	models.StatusCompleted:  true,
}

func IsKnownStatus(s models.TaskStatus) bool {
	return knownStatuses[s]
}

func IsSettableStatus(s models.TaskStatus) bool {
	return settableStatuses[s]
}
