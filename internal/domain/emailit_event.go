package domain

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

//go:generate mockgen -destination mocks/mock_emailit_event_service.go -package mocks github.com/wsdmailer/wsdmailer/internal/domain EmailitEventService

const (
	EmailitTypeDeliveryPrefix = "email.delivery."
	EmailitTypeLoaded         = "email.loaded"
	EmailitTypeLinkClicked    = "email.link.clicked"

	// DefaultEmailToken is stored when the provider omits the email token
	DefaultEmailToken = "unknown-token"
)

// EventKind classifies a webhook once so the state machine never re-parses the type string
type EventKind int

const (
	// EventKindOther is recorded but changes no email or summary state
	EventKindOther EventKind = iota
	EventKindDelivery
	EventKindOpen
	EventKindClick
	// EventKindUnrecognizedDelivery is an email.delivery.* type with no known status
	EventKindUnrecognizedDelivery
)

func (k EventKind) String() string {
	switch k {
	case EventKindDelivery:
		return "delivery"
	case EventKindOpen:
		return "open"
	case EventKindClick:
		return "click"
	case EventKindUnrecognizedDelivery:
		return "unrecognized"
	default:
		return "other"
	}
}

// ClassifyEmailitType maps an Emailit event type to its kind. The status is
// only set for EventKindDelivery.
func ClassifyEmailitType(eventType string) (EventKind, DeliveryStatus) {
	switch {
	case eventType == EmailitTypeLoaded:
		return EventKindOpen, ""
	case eventType == EmailitTypeLinkClicked:
		return EventKindClick, ""
	case strings.HasPrefix(eventType, EmailitTypeDeliveryPrefix):
		if status, ok := ParseDeliveryStatus(strings.TrimPrefix(eventType, EmailitTypeDeliveryPrefix)); ok {
			return EventKindDelivery, status
		}
		return EventKindUnrecognizedDelivery, ""
	default:
		return EventKindOther, ""
	}
}

// NormalizedEvent is the canonical form of one Emailit webhook
type NormalizedEvent struct {
	EventID        string
	Type           string
	Kind           EventKind
	DeliveryStatus DeliveryStatus
	OccurredAt     time.Time

	MessageID       string
	ProviderEmailID int64
	Token           string
	To              string
	From            string
	Subject         string
	SpamStatus      *int
	DomainName      string

	Status    *string
	IPAddress *string
	Country   *string
	City      *string
	UserAgent *string
	LinkID    *string
	LinkURL   *string

	Raw json.RawMessage
}

// NormalizeEmailitPayload parses a raw webhook body. It has no side effects;
// now and newID are used when the payload has no timestamp or event_id.
func NormalizeEmailitPayload(raw []byte, now time.Time, newID func() string) (*NormalizedEvent, error) {
	if !gjson.ValidBytes(raw) {
		return nil, &MalformedPayloadError{Reason: "body is not valid JSON"}
	}
	root := gjson.ParseBytes(raw)
	if !root.IsObject() {
		return nil, &MalformedPayloadError{Reason: "body is not a JSON object"}
	}

	eventType := root.Get("type").String()
	if eventType == "" {
		return nil, &MalformedPayloadError{Field: "type", Reason: "is required"}
	}

	obj := root.Get("object")
	email := obj.Get("email")

	messageID := email.Get("message_id").String()
	if messageID == "" {
		return nil, &MalformedPayloadError{Field: "object.email.message_id", Reason: "is required"}
	}

	kind, status := ClassifyEmailitType(eventType)

	event := &NormalizedEvent{
		EventID:         root.Get("event_id").String(),
		Type:            eventType,
		Kind:            kind,
		DeliveryStatus:  status,
		OccurredAt:      now.UTC(),
		MessageID:       messageID,
		ProviderEmailID: email.Get("id").Int(),
		Token:           email.Get("token").String(),
		To:              email.Get("to").String(),
		From:            email.Get("from").String(),
		Subject:         email.Get("subject").String(),
		SpamStatus:      intOrNil(email.Get("spam_status")),
		Status:          stringOrNil(obj.Get("status")),
		IPAddress:       stringOrNil(obj.Get("ip_address")),
		Country:         stringOrNil(obj.Get("country")),
		City:            stringOrNil(obj.Get("city")),
		UserAgent:       stringOrNil(obj.Get("user_agent")),
		LinkID:          stringOrNil(obj.Get("link.id")),
		LinkURL:         stringOrNil(obj.Get("link.url")),
		Raw:             json.RawMessage(raw),
	}

	if event.EventID == "" {
		event.EventID = newID()
	}
	if event.Token == "" {
		event.Token = DefaultEmailToken
	}
	if ts := obj.Get("timestamp").Float(); ts > 0 {
		event.OccurredAt = time.UnixMilli(int64(ts * 1000)).UTC()
	}
	event.DomainName = DomainFromAddress(event.From)

	return event, nil
}

// stringOrNil accepts strings and numbers; empty values and 0 become nil
func stringOrNil(r gjson.Result) *string {
	switch r.Type {
	case gjson.String:
		if r.Str == "" {
			return nil
		}
		s := r.Str
		return &s
	case gjson.Number:
		if r.Num == 0 {
			return nil
		}
		s := r.Raw
		return &s
	}
	return nil
}

// intOrNil accepts numbers and numeric strings
func intOrNil(r gjson.Result) *int {
	switch r.Type {
	case gjson.Number:
		v := int(r.Int())
		return &v
	case gjson.String:
		n := gjson.Parse(strings.TrimSpace(r.Str))
		if n.Type != gjson.Number {
			return nil
		}
		v := int(n.Int())
		return &v
	}
	return nil
}

// ProcessEventResult is returned for every accepted webhook
type ProcessEventResult struct {
	EventID   string `json:"event_id"`
	Type      string `json:"type"`
	MessageID string `json:"message_id"`

	Kind            EventKind `json:"-"`
	FirstEngagement bool      `json:"-"`
	Unrecognized    bool      `json:"-"`
}

// EmailitEventService ingests Emailit webhooks
type EmailitEventService interface {
	ProcessEvent(ctx context.Context, raw []byte) (*ProcessEventResult, error)
}
