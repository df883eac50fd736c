package effect

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"
)

type Kind string

const (
	KindEmail        Kind = "email"
	KindNotification Kind = "notification"
)

// Intent is a side effect requested by a state change. Key deduplicates redelivery.
type Intent struct {
	Kind         Kind          `json:"kind"`
	Key          string        `json:"key"`
	Email        *Email        `json:"email,omitempty"`
	Notification *Notification `json:"notification,omitempty"`
}

type Email struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type Notification struct {
	UserID        uint64 `json:"user_id"`
	Type          string `json:"type"`
	Title         string `json:"title"`
	Message       string `json:"message"`
	Link          string `json:"link,omitempty"`
	AppointmentID uint64 `json:"appointment_id,omitempty"`
}

var ErrInvalidIntent = errors.New("invalid intent")

func NewEmail(key, to, subject, body string) Intent {
	return Intent{
		Kind:  KindEmail,
		Key:   key,
		Email: &Email{To: to, Subject: subject, Body: body},
	}
}

func NewNotification(key string, n Notification) Intent {
	return Intent{
		Kind:         KindNotification,
		Key:          key,
		Notification: &n,
	}
}

func (i Intent) Validate() error {
	if i.Key == "" {
		return fmt.Errorf("%w: empty key", ErrInvalidIntent)
	}
	switch i.Kind {
	case KindEmail:
		if i.Email == nil || i.Email.To == "" {
			return fmt.Errorf("%w: email without recipient", ErrInvalidIntent)
		}
	case KindNotification:
		if i.Notification == nil || i.Notification.UserID == 0 {
			return fmt.Errorf("%w: notification without user", ErrInvalidIntent)
		}
	default:
		return fmt.Errorf("%w: kind %q", ErrInvalidIntent, i.Kind)
	}
	return nil
}

// Recipient is the ordering key of an intent on the broker.
func (i Intent) Recipient() string {
	switch {
	case i.Email != nil:
		return i.Email.To
	case i.Notification != nil:
		return "user:" + strconv.FormatUint(i.Notification.UserID, 10)
	}
	return i.Key
}

func Encode(in Intent) ([]byte, error) {
	return json.Marshal(in)
}

// Decode parses a broker message body. Unknown kinds are rejected before the full decode.
func Decode(body []byte) (Intent, error) {
	if !gjson.ValidBytes(body) {
		return Intent{}, fmt.Errorf("%w: malformed json", ErrInvalidIntent)
	}
	switch Kind(gjson.GetBytes(body, "kind").String()) {
	case KindEmail, KindNotification:
	default:
		return Intent{}, fmt.Errorf("%w: kind %q", ErrInvalidIntent, gjson.GetBytes(body, "kind").String())
	}

	var in Intent
	if err := json.Unmarshal(body, &in); err != nil {
		return Intent{}, fmt.Errorf("%w: %v", ErrInvalidIntent, err)
	}
	return in, in.Validate()
}
