package entities

// NoticeKind classifies a non-fatal condition surfaced with a classification
type NoticeKind string

const (
	NoticeMalformedMetadata       NoticeKind = "malformed_metadata"
	NoticeInsufficientContent     NoticeKind = "insufficient_content"
	NoticeAmbiguousHybridMeeting  NoticeKind = "ambiguous_hybrid_meeting"
	NoticeOverrideLogWriteFailure NoticeKind = "override_log_write_failure"
	NoticeEnrichmentFailed        NoticeKind = "enrichment_failed"
)

// Notice is a non-fatal diagnostic attached to a classification or decision
type Notice struct {
	Kind    NoticeKind `json:"kind"`
	Field   string     `json:"field,omitempty"`
	Message string     `json:"message"`
}
