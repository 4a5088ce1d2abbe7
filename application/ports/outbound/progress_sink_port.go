package outbound

import "storyspark-api/domain"

// ProgressSinkPort receives one event per accepted clip transition, in
// transition order. Publishing a terminal event ends the clip's stream.
type ProgressSinkPort interface {
	Publish(event domain.ProgressEvent)
}
