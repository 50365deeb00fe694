package auth

import (
	"github.com/careerdock/jobportal/internal/domain/models"
)

type Operation string

const (
	OpSubmit      Operation = "submit"
	OpDecide      Operation = "decide"
	OpEdit        Operation = "edit"
	OpDelete      Operation = "delete"
	OpListMine    Operation = "listMine"
	OpListPending Operation = "listPending"
	OpIngest      Operation = "ingestResume"
	OpMatch       Operation = "match"
	OpSaveJob     Operation = "saveJob"
	OpApply       Operation = "apply"

	OpViewDecisions Operation = "viewDecisions"
)

// ownership constants for rule lookup: some operations only make sense on
// resources the actor owns, others ignore ownership entirely.
type ownership int

const (
	anyResource ownership = iota
	ownResource
)

var rules = map[models.Role]map[Operation]ownership{
	models.RoleAdmin: {
		OpDecide:        anyResource,
		OpEdit:          anyResource,
		OpDelete:        anyResource,
		OpListMine:      anyResource,
		OpListPending:   anyResource,
		OpViewDecisions: anyResource,
	},
	models.RoleEmployer: {
		OpSubmit:        anyResource,
		OpEdit:          ownResource,
		OpDelete:        ownResource,
		OpListMine:      anyResource,
		OpViewDecisions: ownResource,
	},
	models.RoleJobSeeker: {
		OpIngest:  anyResource,
		OpMatch:   anyResource,
		OpSaveJob: anyResource,
		OpApply:   anyResource,
	},
}

// Allowed is a pure function of the rule table: unknown (role, operation)
// pairs are denied, never defaulted to allow.
func Allowed(actor models.Actor, ownerID int64, op Operation) bool {
	ops, ok := rules[actor.Role]
	if !ok {
		return false
	}

	scope, ok := ops[op]
	if !ok {
		return false
	}

	if scope == ownResource && actor.ID != ownerID {
		return false
	}
	return true
}
