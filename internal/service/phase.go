package service

import (
	"procurement-workflow-api/internal/common"
	"procurement-workflow-api/internal/entity"
)

// derivePhaseStatus folds the steps of one workflow type and the staff
// submissions made against them into a single phase status. Only the latest
// round per step counts. Resolution order: a rejected step wins, then the
// first step without any submission, then the first step still mid-pipeline,
// and COMPLETED only when every step's latest round completed. Ties break on
// ascending step order.
func derivePhaseStatus(steps []entity.WorkflowStep, submissions []entity.Submission) entity.PhaseStatus {
	if len(steps) == 0 {
		return entity.PhaseStatus{Status: common.PhaseNotStarted}
	}

	latest := make(map[int]*entity.Submission)
	for i := range submissions {
		s := &submissions[i]
		if prev, ok := latest[s.StepOrder]; !ok || s.Round > prev.Round {
			latest[s.StepOrder] = s
		}
	}

	for _, step := range steps {
		if s, ok := latest[step.Order]; ok && s.Status == common.Rejected {
			return entity.PhaseStatus{Status: common.PhaseRejected, Step: step.Order}
		}
	}

	for _, step := range steps {
		if _, ok := latest[step.Order]; !ok {
			return entity.PhaseStatus{Status: common.PhaseInProgress, Step: step.Order}
		}
	}

	for _, step := range steps {
		switch latest[step.Order].Status {
		case common.Submitted:
			return entity.PhaseStatus{Status: common.PhaseWaitingApproval, Step: step.Order}
		case common.PendingProposal:
			return entity.PhaseStatus{Status: common.PhasePendingProposal, Step: step.Order}
		case common.Proposing:
			return entity.PhaseStatus{Status: common.PhaseProposing, Step: step.Order}
		}
	}

	return entity.PhaseStatus{Status: common.PhaseCompleted}
}

// gateContractPhase enforces the sequential gate: the contract phase reads
// NOT_STARTED until the project was advanced to the contract workflow type,
// has a contract assignee, and procurement fully completed.
func gateContractPhase(project *entity.Project, procurement entity.PhaseStatus, contract entity.PhaseStatus) entity.PhaseStatus {
	if project.CurrentWorkflowType != common.TypeContract {
		return entity.PhaseStatus{Status: common.PhaseNotStarted}
	}
	if len(project.ContractAssignees) == 0 {
		return entity.PhaseStatus{Status: common.PhaseNotStarted}
	}
	if procurement.Status != common.PhaseCompleted {
		return entity.PhaseStatus{Status: common.PhaseNotStarted}
	}

	return contract
}
