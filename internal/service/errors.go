package service

import "errors"

var (
	ErrProjectNotFound      = errors.New("project not found")
	ErrSubmissionNotFound   = errors.New("submission not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrDepartmentNotFound   = errors.New("department not found")
	ErrUnitNotFound         = errors.New("unit not found")
	ErrDelegationNotFound   = errors.New("delegation not found")
	ErrStepNotFound         = errors.New("workflow step not found")
	ErrCancellationNotFound = errors.New("no active cancellation request")

	ErrForbidden          = errors.New("user doesn't have sufficient rights for the operation")
	ErrWrongDepartment    = errors.New("operation is restricted to another department")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrProjectNotUnassigned    = errors.New("project is not in the unassigned pool")
	ErrProjectAlreadyAssigned  = errors.New("project already has an assignee for the phase")
	ErrProjectNotWaitingAccept = errors.New("project is not waiting for acceptance")
	ErrProjectNotInProgress    = errors.New("project is not in progress")
	ErrNotProjectAssignee      = errors.New("user is not an assignee of the project")
	ErrAssigneeLimitReached    = errors.New("phase already has the maximum number of assignees")
	ErrAssigneeAlreadyAdded    = errors.New("user is already assigned to the phase")
	ErrProjectHasSubmissions   = errors.New("project with submissions can't be returned")
	ErrCancellationPending     = errors.New("project already has an active cancellation request")
	ErrProjectCancelled        = errors.New("project is cancelled")
	ErrProjectReferenced       = errors.New("project with history or submissions can't be deleted")

	ErrWrongSubmissionStatus   = errors.New("submission status doesn't allow the transition")
	ErrMissingRequiredFields   = errors.New("submission is missing required fields")
	ErrCommentRequired         = errors.New("rejection requires a comment")
	ErrWorkflowTypeMismatch    = errors.New("workflow type doesn't match the project's current phase")
	ErrProcurementNotCompleted = errors.New("procurement phase is not completed yet")

	ErrRoleScopeMismatch   = errors.New("role scope doesn't match the given department or unit")
	ErrDelegationDateOrder = errors.New("delegation end date precedes its start date")
	ErrNotDelegationOwner  = errors.New("only the delegator can cancel the delegation")

	ErrNoNewChanges  = errors.New("no new values")
	ErrStateConflict = errors.New("state changed concurrently, retry the operation")
)
