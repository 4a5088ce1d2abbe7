package inbound

import "storyspark-api/domain"

// VoiceMapperPort converts an approved script plus a character voice profile
// into the synthesis request. Pure: no provider calls, so no context.
type VoiceMapperPort interface {
	Map(script string, profile domain.VoiceProfile) (*domain.VoiceParameters, error)
}
