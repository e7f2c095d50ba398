package observability

// Standard span attribute keys.
const (
	AttrSessionID     = "aurascribe.session_id"
	AttrUserID        = "aurascribe.user_id"
	AttrAgentName     = "aurascribe.agent"
	AttrPersona       = "aurascribe.persona"
	AttrModel         = "aurascribe.model"
	AttrLanguage      = "aurascribe.language"
	AttrChunkIndex    = "aurascribe.chunk_index"
	AttrStatus        = "aurascribe.status"
	AttrErrorMessage  = "aurascribe.error"
	AttrDurationMs    = "aurascribe.duration_ms"
	AttrFallbackUsed  = "aurascribe.fallback_used"
	AttrAgentCount    = "aurascribe.agent_count"
	AttrTranscriptLen = "aurascribe.transcript_len"
)
