// Package notify delivers user notifications fire-and-forget: callers
// enqueue and move on, a background worker posts to the configured
// webhook with retries behind a circuit breaker. Delivery failure never
// surfaces to the caller.
package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"gorm.io/gorm"

	"library-management/pkg/models"
)

const (
	defaultMaxRetries = 3
	retryBackoff      = 10 * time.Second
	pollInterval      = 1 * time.Second
)

type Dispatcher struct {
	db         *gorm.DB
	queue      *deliveryQueue
	breaker    *breaker
	client     *http.Client
	webhookURL string
	stop       chan struct{}
}

// NewDispatcher creates a dispatcher posting to webhookURL. An empty
// URL means notifications are recorded and logged only.
func NewDispatcher(db *gorm.DB, webhookURL string) *Dispatcher {
	return &Dispatcher{
		db:         db,
		queue:      newDeliveryQueue(),
		breaker:    newBreaker(5, 30*time.Second, 60*time.Second),
		client:     &http.Client{Timeout: 10 * time.Second},
		webhookURL: webhookURL,
		stop:       make(chan struct{}),
	}
}

// Notify records the notification and queues it for delivery. It never
// blocks on the sink and never returns a delivery error.
func (d *Dispatcher) Notify(userID uint, userUid, message string) {
	notification := models.Notification{
		UserID:  userID,
		Message: message,
	}
	if err := d.db.Create(&notification).Error; err != nil {
		log.Printf("Failed to record notification for user %s: %v", userUid, err)
		return
	}

	d.queue.enqueue(&pendingNotification{
		NotificationID: notification.ID,
		UserUid:        userUid,
		Message:        message,
		RetryAt:        time.Now(),
		MaxRetries:     defaultMaxRetries,
	})
}

// Start launches the delivery worker. Stop shuts it down.
func (d *Dispatcher) Start() {
	go d.run()
}

func (d *Dispatcher) Stop() {
	close(d.stop)
}

func (d *Dispatcher) run() {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-d.stop:
			return
		case <-ticker.C:
			for {
				pending := d.queue.dequeue()
				if pending == nil {
					break
				}
				d.attempt(pending)
			}
		}
	}
}

func (d *Dispatcher) attempt(pending *pendingNotification) {
	err := d.breaker.execute(func() error {
		return d.deliver(pending)
	})
	if err == nil {
		d.markDelivered(pending.NotificationID)
		return
	}

	pending.RetryCount++
	if pending.RetryCount >= pending.MaxRetries {
		log.Printf("Dropping notification %d for user %s after %d attempts: %v",
			pending.NotificationID, pending.UserUid, pending.RetryCount, err)
		return
	}
	pending.RetryAt = time.Now().Add(retryBackoff)
	d.queue.enqueue(pending)
}

func (d *Dispatcher) deliver(pending *pendingNotification) error {
	if d.webhookURL == "" {
		log.Printf("Notification for user %s: %s", pending.UserUid, pending.Message)
		return nil
	}

	body, err := json.Marshal(map[string]string{
		"userUid": pending.UserUid,
		"message": pending.Message,
	})
	if err != nil {
		return err
	}

	response, err := d.client.Post(d.webhookURL, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer response.Body.Close()

	if response.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", response.StatusCode)
	}
	return nil
}

func (d *Dispatcher) markDelivered(notificationID uint) {
	err := d.db.Model(&models.Notification{}).
		Where("id = ?", notificationID).
		Update("delivered", true).Error
	if err != nil {
		log.Printf("Failed to mark notification %d delivered: %v", notificationID, err)
	}
}
