// Package router maps a classification result to the engine's next action.
// It is pure: no I/O, no clock, no randomness, so it is testable without a
// backend and always gives the same decision for the same analysis.
package router

import "github.com/agrovox/chatbot-engine/internal/models"

// Canned escalation copy. The irregularity notice is deliberately more
// detailed: reports need the reassurance that they will be registered
// properly before the transfer happens.
const (
	TransferNotice = "Of course. One moment while I transfer you to a specialist."

	IrregularityNotice = "Understood. To make sure your report is registered correctly and given proper attention, I am transferring you to a specialized agent. Please hold on."
)

// Route decides what to do with an analyzed message. Intents in the
// escalation-forcing set always escalate, no matter what the other analysis
// fields say. Every other intent gets an automated reply and records the
// intent itself as the next conversation state.
//
// The switch lists the whole taxonomy so a newly added intent does not
// silently inherit a route.
func Route(a models.AnalysisResult) models.RoutingDecision {
	switch a.Intent {
	case models.IntentTransferToAgent:
		return escalate(TransferNotice)

	case models.IntentReportIrregularity:
		return escalate(IrregularityNotice)

	case models.IntentFinancingProgram,
		models.IntentTransitPermit,
		models.IntentEnvironmentalRegistry,
		models.IntentEquipmentRegistry,
		models.IntentAnimalHealth,
		models.IntentPlantHealth,
		models.IntentCertification,
		models.IntentPesticideRegistration,
		models.IntentGeneralInformation,
		models.IntentGreetingFarewell,
		models.IntentNotUnderstood:
		return reply(a.Intent)

	default:
		// Unreachable for taxonomy-valid input; unknown intents die at
		// parse time as analysis failures. Kept total so Route never
		// returns a zero decision.
		return reply(a.Intent)
	}
}

func reply(intent models.Intent) models.RoutingDecision {
	return models.RoutingDecision{
		Action:    models.ActionReply,
		NextState: string(intent),
	}
}

func escalate(notice string) models.RoutingDecision {
	return models.RoutingDecision{
		Action:           models.ActionEscalate,
		NextState:        models.StateEscalated,
		EscalationNotice: notice,
	}
}
