package obbworld

import (
	"bytes"
	"sort"

	"github.com/akmonengine/obbworld/actor"
	"github.com/akmonengine/obbworld/constraint"
)

const (
	SENSOR_ENTER EventType = iota
	COLLISION_ENTER
	SENSOR_STAY
	COLLISION_STAY
	SENSOR_EXIT
	COLLISION_EXIT
)

type pairKey struct {
	bodyA *actor.Body
	bodyB *actor.Body
}

// makePairKey creates a normalized pair key with consistent ordering
func makePairKey(bodyA, bodyB *actor.Body) pairKey {
	if bytes.Compare(bodyB.ID[:], bodyA.ID[:]) < 0 {
		bodyA, bodyB = bodyB, bodyA
	}

	return pairKey{bodyA: bodyA, bodyB: bodyB}
}

func (k pairKey) isSensor() bool {
	return k.bodyA.Sensor || k.bodyB.Sensor
}

func (k pairKey) less(other pairKey) bool {
	if c := bytes.Compare(k.bodyA.ID[:], other.bodyA.ID[:]); c != 0 {
		return c < 0
	}
	return bytes.Compare(k.bodyB.ID[:], other.bodyB.ID[:]) < 0
}

type EventType uint8

// Event interface - all events implement this
type Event interface {
	Type() EventType
}

// Sensor events
type SensorEnterEvent struct {
	BodyA *actor.Body
	BodyB *actor.Body
}

func (e SensorEnterEvent) Type() EventType { return SENSOR_ENTER }

type SensorStayEvent struct {
	BodyA *actor.Body
	BodyB *actor.Body
}

func (e SensorStayEvent) Type() EventType { return SENSOR_STAY }

type SensorExitEvent struct {
	BodyA *actor.Body
	BodyB *actor.Body
}

func (e SensorExitEvent) Type() EventType { return SENSOR_EXIT }

// Collision events
type CollisionEnterEvent struct {
	BodyA *actor.Body
	BodyB *actor.Body
}

func (e CollisionEnterEvent) Type() EventType { return COLLISION_ENTER }

type CollisionStayEvent struct {
	BodyA *actor.Body
	BodyB *actor.Body
}

func (e CollisionStayEvent) Type() EventType { return COLLISION_STAY }

type CollisionExitEvent struct {
	BodyA *actor.Body
	BodyB *actor.Body
}

func (e CollisionExitEvent) Type() EventType { return COLLISION_EXIT }

// EventListener - callback for events
type EventListener func(event Event)

// Events manager
type Events struct {
	// Listeners by event type
	listeners map[EventType][]EventListener

	// Event buffer to send at flush
	buffer []Event

	// Contact tracking for Enter/Stay/Exit detection
	previousActivePairs map[pairKey]bool
	currentActivePairs  map[pairKey]bool
}

func NewEvents() Events {
	return Events{
		listeners:           make(map[EventType][]EventListener),
		buffer:              make([]Event, 0, 256),
		previousActivePairs: make(map[pairKey]bool),
		currentActivePairs:  make(map[pairKey]bool),
	}
}

// Subscribe adds a listener for an event type
func (e *Events) Subscribe(eventType EventType, listener EventListener) {
	if e.listeners == nil {
		*e = NewEvents()
	}
	e.listeners[eventType] = append(e.listeners[eventType], listener)
}

// recordContacts is called once per step with the contacts found touching
func (e *Events) recordContacts(contacts []*constraint.Contact) {
	if e.currentActivePairs == nil {
		*e = NewEvents()
	}

	for _, c := range contacts {
		e.currentActivePairs[makePairKey(c.BodyA, c.BodyB)] = true
	}
}

// forget drops the pairs of a removed body, so that it emits no exit event
func (e *Events) forget(body *actor.Body) {
	for pair := range e.previousActivePairs {
		if pair.bodyA == body || pair.bodyB == body {
			delete(e.previousActivePairs, pair)
		}
	}
	for pair := range e.currentActivePairs {
		if pair.bodyA == body || pair.bodyB == body {
			delete(e.currentActivePairs, pair)
		}
	}
}

// processContactEvents compares current and previous pairs to detect Enter/Stay/Exit.
// Pairs are visited in ID order so that listeners see a stable sequence.
func (e *Events) processContactEvents() {
	for _, pair := range sortedPairs(e.currentActivePairs) {
		if e.previousActivePairs[pair] {
			// Pair was active before and still is, Stay
			if pair.isSensor() {
				e.buffer = append(e.buffer, SensorStayEvent{BodyA: pair.bodyA, BodyB: pair.bodyB})
			} else {
				e.buffer = append(e.buffer, CollisionStayEvent{BodyA: pair.bodyA, BodyB: pair.bodyB})
			}
		} else {
			// New pair, Enter
			if pair.isSensor() {
				e.buffer = append(e.buffer, SensorEnterEvent{BodyA: pair.bodyA, BodyB: pair.bodyB})
			} else {
				e.buffer = append(e.buffer, CollisionEnterEvent{BodyA: pair.bodyA, BodyB: pair.bodyB})
			}
		}
	}

	for _, pair := range sortedPairs(e.previousActivePairs) {
		if e.currentActivePairs[pair] {
			continue
		}
		// Pair was active but is no longer, Exit
		if pair.isSensor() {
			e.buffer = append(e.buffer, SensorExitEvent{BodyA: pair.bodyA, BodyB: pair.bodyB})
		} else {
			e.buffer = append(e.buffer, CollisionExitEvent{BodyA: pair.bodyA, BodyB: pair.bodyB})
		}
	}

	// Swap for next frame and clear current
	e.previousActivePairs, e.currentActivePairs = e.currentActivePairs, e.previousActivePairs
	clear(e.currentActivePairs)
}

func sortedPairs(pairs map[pairKey]bool) []pairKey {
	keys := make([]pairKey, 0, len(pairs))
	for pair := range pairs {
		keys = append(keys, pair)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].less(keys[j]) })

	return keys
}

// flush sends all buffered events and clears the buffer
func (e *Events) flush() {
	e.processContactEvents()

	for _, event := range e.buffer {
		if listeners, ok := e.listeners[event.Type()]; ok {
			for _, listener := range listeners {
				listener(event)
			}
		}
	}
	e.buffer = e.buffer[:0]
}
