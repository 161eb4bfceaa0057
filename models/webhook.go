package models

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"gorm.io/datatypes"
)

// WebhookEvent is a YooKassa notification:
// {"type":"notification","event":"payment.succeeded","object":{...}}.
type WebhookEvent struct {
	Type   string        `json:"type"`
	Event  string        `json:"event"`
	Object WebhookObject `json:"object"`
}

type WebhookObject struct {
	ID       string                 `json:"id"`
	Status   string                 `json:"status"`
	Metadata map[string]interface{} `json:"metadata"`
}

// BookingID extracts metadata.booking_id. The gateway echoes metadata values
// as strings but numbers are accepted too.
func (o WebhookObject) BookingID() (int64, bool) {
	raw, ok := o.Metadata["booking_id"]
	if !ok || raw == nil {
		return 0, false
	}

	var id int64
	var err error
	switch v := raw.(type) {
	case string:
		id, err = strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	case float64:
		if v != float64(int64(v)) {
			return 0, false
		}
		id = int64(v)
	case json.Number:
		id, err = v.Int64()
	default:
		return 0, false
	}
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// PaymentNotification is the audit record of every structurally valid
// webhook delivery.
type PaymentNotification struct {
	ID               uint           `gorm:"primaryKey;autoIncrement"`
	GatewayPaymentID string         `gorm:"type:varchar(64);index"`
	Event            string         `gorm:"type:varchar(64)"`
	GatewayStatus    string         `gorm:"type:varchar(32)"`
	BookingID        *int64         `gorm:"index"`
	Applied          bool           `gorm:"not null;default:false"`
	Payload          datatypes.JSON `gorm:"type:jsonb"`
	ReceivedAt       time.Time      `gorm:"autoCreateTime"`
}
