package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/cardtaphq/cardtap-backend/internal/config"
	"github.com/cardtaphq/cardtap-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	// SignatureHeader carries "sha256=<hex>" where <hex> is the HMAC-SHA256
	// of the raw request body keyed with the webhook secret.
	SignatureHeader = "X-Cardtap-Signature"
	// EventHeader carries the event type.
	EventHeader = "X-Cardtap-Event"

	// TestEventType is the synthetic type sent by the manual test trigger.
	TestEventType = "test"
)

// Payload is the JSON body delivered to subscriber endpoints. The event id is
// the receiver's dedupe key: delivery is at-least-once.
type Payload struct {
	ID        uint64     `json:"id"`
	Type      string     `json:"type"`
	ProfileID string     `json:"profileId"`
	LinkID    *uuid.UUID `json:"linkId,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Dispatcher delivers signed event payloads to matching webhooks off the
// request path. Events are queued with Notify; a single consumer goroutine
// drains the queue, retrying failed deliveries with exponential backoff and
// recording every attempt as a WebhookDelivery row.
type Dispatcher struct {
	db          *gorm.DB
	client      *http.Client
	queue       chan *models.Event
	maxAttempts int
	baseBackoff time.Duration
	done        chan struct{}
	wg          sync.WaitGroup
}

func NewDispatcher(db *gorm.DB, cfg *config.Config) *Dispatcher {
	return &Dispatcher{
		db:          db,
		client:      &http.Client{Timeout: cfg.WebhookTimeout},
		queue:       make(chan *models.Event, cfg.WebhookQueueSize),
		maxAttempts: cfg.WebhookMaxAttempts,
		baseBackoff: time.Second,
		done:        make(chan struct{}),
	}
}

// Start launches the consumer goroutine.
func (d *Dispatcher) Start() {
	d.wg.Add(1)
	go d.run()
}

// Stop drains queued events, aborts in-flight retry waits and blocks until
// the consumer exits.
func (d *Dispatcher) Stop() {
	close(d.done)
	d.wg.Wait()
}

// Notify enqueues an event without blocking. When the queue is full the event
// is dropped with a log line; the producing request must never stall on slow
// third-party endpoints.
func (d *Dispatcher) Notify(event *models.Event) {
	select {
	case d.queue <- event:
	default:
		slog.Warn("webhook queue full, dropping event", "event_id", event.ID, "event_type", event.EventType)
	}
}

func (d *Dispatcher) run() {
	defer d.wg.Done()
	for {
		select {
		case event := <-d.queue:
			d.dispatch(event)
		case <-d.done:
			for {
				select {
				case event := <-d.queue:
					d.dispatch(event)
				default:
					return
				}
			}
		}
	}
}

// dispatch delivers one event to every enabled webhook on the event's profile
// whose subscription set contains the event type.
func (d *Dispatcher) dispatch(event *models.Event) {
	var webhooks []models.Webhook
	if err := d.db.Where("profile_id = ? AND enabled = ?", event.ProfileID, true).
		Find(&webhooks).Error; err != nil {
		slog.Error("failed to load webhooks for event", "event_id", event.ID, "error", err)
		return
	}

	payload := Payload{
		ID:        event.ID,
		Type:      event.EventType,
		ProfileID: event.ProfileID,
		LinkID:    event.LinkID,
		CreatedAt: event.CreatedAt,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		slog.Error("failed to encode webhook payload", "event_id", event.ID, "error", err)
		return
	}

	for i := range webhooks {
		w := &webhooks[i]
		if !subscribed(w, event.EventType) {
			continue
		}
		d.deliver(w, &event.ID, event.EventType, body)
	}
}

// deliver attempts delivery with exponential backoff until a 2xx response or
// the attempt ceiling. Every attempt leaves an audit row.
func (d *Dispatcher) deliver(w *models.Webhook, eventID *uint64, eventType string, body []byte) {
	backoff := d.baseBackoff
	for attempt := 1; attempt <= d.maxAttempts; attempt++ {
		status, err := d.attempt(w, eventID, eventType, body, attempt)
		if err == nil && status >= 200 && status < 300 {
			return
		}

		if attempt == d.maxAttempts {
			slog.Warn("webhook delivery abandoned", "webhook_id", w.ID, "attempts", attempt, "url", w.URL)
			return
		}
		select {
		case <-time.After(backoff):
			backoff *= 2
		case <-d.done:
			return
		}
	}
}

// attempt POSTs the signed payload once and records the outcome. Status 0
// with a non-empty error means no HTTP response was received.
func (d *Dispatcher) attempt(w *models.Webhook, eventID *uint64, eventType string, body []byte, attempt int) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), d.client.Timeout)
	defer cancel()

	delivery := models.WebhookDelivery{
		WebhookID: w.ID,
		EventID:   eventID,
		Attempt:   attempt,
	}

	start := time.Now()
	status, err := d.post(ctx, w, eventType, body)
	delivery.ResponseMs = int(time.Since(start).Milliseconds())
	delivery.Status = status
	if err != nil {
		delivery.Error = err.Error()
	} else if status < 200 || status >= 300 {
		err = fmt.Errorf("unexpected status %d", status)
		delivery.Error = err.Error()
	}

	if dbErr := d.db.Create(&delivery).Error; dbErr != nil {
		slog.Error("failed to record webhook delivery", "webhook_id", w.ID, "error", dbErr)
	}
	return status, err
}

func (d *Dispatcher) post(ctx context.Context, w *models.Webhook, eventType string, body []byte) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.URL, bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(SignatureHeader, Signature(w.Secret, body))
	req.Header.Set(EventHeader, eventType)

	resp, err := d.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	return resp.StatusCode, nil
}

// SendTest delivers a synthetic test event synchronously with a single
// attempt, always recorded as attempt 1. It returns the response status.
func (d *Dispatcher) SendTest(w *models.Webhook) (int, error) {
	payload := Payload{
		Type:      TestEventType,
		ProfileID: w.ProfileID,
		CreatedAt: time.Now().UTC(),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("failed to encode test payload: %w", err)
	}
	return d.attempt(w, nil, TestEventType, body, 1)
}

// Signature computes the "sha256=<hex>" header value for a body signed with
// secret. Receivers recompute it to verify authenticity and integrity.
func Signature(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

func subscribed(w *models.Webhook, eventType string) bool {
	var events []string
	if err := json.Unmarshal(w.Events, &events); err != nil {
		slog.Error("malformed webhook events set", "webhook_id", w.ID, "error", err)
		return false
	}
	for _, e := range events {
		if e == eventType {
			return true
		}
	}
	return false
}
