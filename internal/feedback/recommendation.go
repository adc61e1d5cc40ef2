package feedback

// NoDecision is returned for any recommendation code that is not recognized.
const NoDecision = "No Decision"

// MapRecommendation maps a recommendation code to its display label.
func MapRecommendation(code string) string {
	switch code {
	case StrongProceed:
		return "Strong Hire"
	case Proceed:
		return "Hire"
	case Borderline:
		return "Hire - with another technical round"
	case Reject:
		return "No Hire"
	case StrongReject:
		return "Strong No Hire"
	default:
		return NoDecision
	}
}
