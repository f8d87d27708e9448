package notify

import (
	"sync"
	"time"
)

type pendingNotification struct {
	NotificationID uint
	UserUid        string
	Message        string
	RetryAt        time.Time
	RetryCount     int
	MaxRetries     int
}

// deliveryQueue holds notifications awaiting delivery or retry. Items
// become visible once their RetryAt has passed.
type deliveryQueue struct {
	items []*pendingNotification
	mu    sync.Mutex
}

func newDeliveryQueue() *deliveryQueue {
	return &deliveryQueue{items: make([]*pendingNotification, 0)}
}

func (q *deliveryQueue) enqueue(n *pendingNotification) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, n)
}

func (q *deliveryQueue) dequeue() *pendingNotification {
	q.mu.Lock()
	defer q.mu.Unlock()

	now := time.Now()
	for i, n := range q.items {
		if !n.RetryAt.After(now) {
			q.items = append(q.items[:i], q.items[i+1:]...)
			return n
		}
	}
	return nil
}

func (q *deliveryQueue) size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
