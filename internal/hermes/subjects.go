package hermes

const (
	SubjectAssessmentRejected = "cardiorisk.assessment.rejected"

	StreamName     = "CARDIORISK_EVENTS"
	StreamSubjects = "cardiorisk.assessment.>"
	StreamMaxAge   = "720h" // 30 days
)

func SubjectAssessmentCompleted(id string) string {
	return "cardiorisk.assessment." + id + ".completed"
}
