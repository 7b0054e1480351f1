// Package queue defines message payloads exchanged over the message broker
// and the background consumer that records them.
package queue

// PurchaseConfirmedEvent is published after a purchase lands in the
// session's purchase set.  It carries enough for downstream consumers to
// log or notify without reading the stores.  The catalog's aggregate
// counters are deliberately not part of the flow; purchase only mutates
// the session record.
type PurchaseConfirmedEvent struct {
	AccountID   string  `json:"account_id"`
	Email       string  `json:"email"`
	VideoID     string  `json:"video_id"`
	VideoTitle  string  `json:"video_title"`
	Price       float64 `json:"price"`
	PurchasedAt string  `json:"purchased_at"`
}
