package realtime

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrUnknownEventType = errors.New("unknown realtime event type")

type envelope struct {
	Event
	Payload json.RawMessage `json:"payload"`
}

// Decode восстанавливает событие из брокера вместе с типизированным payload,
// чтобы подписчики хаба не отличали его от локального.
func Decode(data []byte) (Event, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Event{}, fmt.Errorf("decode event: %w", err)
	}

	event := env.Event
	if event.Topic == "" {
		return Event{}, errors.New("decode event: empty topic")
	}

	var err error
	switch event.Type {
	case EventLocationCreated:
		event.Payload, err = decodePayload[LocationPayload](env.Payload)
	case EventETAUpserted:
		event.Payload, err = decodePayload[ETAPayload](env.Payload)
	case EventETADeleted:
		event.Payload, err = decodePayload[ETADeletedPayload](env.Payload)
	case EventAssignmentCreated:
		event.Payload, err = decodePayload[AssignmentPayload](env.Payload)
	case EventAssignmentAccepted:
		event.Payload, err = decodePayload[AcceptedPayload](env.Payload)
	case EventDeliveryStatus:
		event.Payload, err = decodePayload[DeliveryStatusPayload](env.Payload)
	default:
		return Event{}, fmt.Errorf("%w: %q", ErrUnknownEventType, event.Type)
	}
	if err != nil {
		return Event{}, fmt.Errorf("decode %s payload: %w", event.Type, err)
	}

	return event, nil
}

func decodePayload[T any](raw json.RawMessage) (T, error) {
	var payload T
	err := json.Unmarshal(raw, &payload)
	return payload, err
}
