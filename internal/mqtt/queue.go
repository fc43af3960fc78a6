package mqtt

import "log"

// queuedMsg is a serialized message held for replay after reconnection.
type queuedMsg struct {
	topic    string
	payload  []byte
	qos      byte
	retained bool
}

// offlineQueue keeps the most recent messages published while disconnected.
// When full, the oldest message is dropped. Not safe for concurrent use.
type offlineQueue struct {
	msgs    []queuedMsg
	limit   int
	dropped int
}

func newOfflineQueue(limit int) *offlineQueue {
	return &offlineQueue{limit: limit}
}

func (q *offlineQueue) push(m queuedMsg) {
	if len(q.msgs) == q.limit {
		if q.dropped == 0 {
			log.Printf("mqtt: offline queue full (%d messages), dropping oldest", q.limit)
		}
		q.dropped++
		copy(q.msgs, q.msgs[1:])
		q.msgs[len(q.msgs)-1] = m
		return
	}
	q.msgs = append(q.msgs, m)
}

// drain returns queued messages oldest first and empties the queue.
func (q *offlineQueue) drain() []queuedMsg {
	if len(q.msgs) == 0 {
		return nil
	}
	out := q.msgs
	q.msgs = nil
	if q.dropped > 0 {
		log.Printf("mqtt: %d messages dropped while offline", q.dropped)
		q.dropped = 0
	}
	return out
}

func (q *offlineQueue) len() int {
	return len(q.msgs)
}
