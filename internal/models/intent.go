package models

import "fmt"

// Intent is the closed classification taxonomy for user messages. Any value
// outside this set coming back from the backend is treated as an analysis
// failure, not as a catch-all intent.
type Intent string

const (
	IntentFinancingProgram      Intent = "info-financing-program"
	IntentTransitPermit         Intent = "info-transit-permit"
	IntentEnvironmentalRegistry Intent = "info-environmental-registry"
	IntentEquipmentRegistry     Intent = "info-equipment-registry"
	IntentAnimalHealth          Intent = "info-animal-health"
	IntentPlantHealth           Intent = "info-plant-health"
	IntentCertification         Intent = "info-certification"
	IntentReportIrregularity    Intent = "report-irregularity"
	IntentPesticideRegistration Intent = "info-pesticide-registration-check"
	IntentGeneralInformation    Intent = "general-information"
	IntentTransferToAgent       Intent = "transfer-to-agent"
	IntentGreetingFarewell      Intent = "greeting-farewell"
	IntentNotUnderstood         Intent = "not-understood"
)

// Intents lists the full taxonomy in a stable order.
var Intents = []Intent{
	IntentFinancingProgram,
	IntentTransitPermit,
	IntentEnvironmentalRegistry,
	IntentEquipmentRegistry,
	IntentAnimalHealth,
	IntentPlantHealth,
	IntentCertification,
	IntentReportIrregularity,
	IntentPesticideRegistration,
	IntentGeneralInformation,
	IntentTransferToAgent,
	IntentGreetingFarewell,
	IntentNotUnderstood,
}

// ParseIntent validates taxonomy membership.
func ParseIntent(s string) (Intent, error) {
	for _, in := range Intents {
		if s == string(in) {
			return in, nil
		}
	}
	return "", fmt.Errorf("unknown intent %q", s)
}

// AnalysisResult is the structured classification returned by the
// text-understanding backend. The JSON keys are the backend contract and
// must not change without retraining the analysis prompt.
type AnalysisResult struct {
	IsOffTopic  bool    `json:"is_off_topic"`
	ContainsPII bool    `json:"contains_pii"`
	PIIType     *string `json:"pii_type"`
	CEPDetected *string `json:"cep_detected"`
	Intent      Intent  `json:"intent"`
	CropOrPest  *string `json:"cultura_ou_praga_identificada"`
}

// Action is the engine's final verdict for one inbound message.
type Action string

const (
	ActionReply    Action = "reply"
	ActionEscalate Action = "escalate"
)

// RoutingDecision is the router's output: what to do, which chatbot state
// to record, and the canned notice to send when escalating.
type RoutingDecision struct {
	Action           Action
	NextState        string
	EscalationNotice string
}
