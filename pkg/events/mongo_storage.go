package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	eventsCollection     = "events"
	deadLetterCollection = "events_dlq"
)

// MongoStorage implements Storage on MongoDB collections. Claiming uses an
// atomic FindOneAndUpdate so concurrent consumers never deliver the same
// event twice within a lock window; expired locks are reclaimed by the same
// query, which recovers events from crashed consumers.
type MongoStorage struct {
	events *mongo.Collection
	dead   *mongo.Collection
}

// NewMongoStorage creates storage over the given database.
func NewMongoStorage(db *mongo.Database) *MongoStorage {
	return &MongoStorage{
		events: db.Collection(eventsCollection),
		dead:   db.Collection(deadLetterCollection),
	}
}

type eventDoc struct {
	ID          string     `bson:"_id"`
	Name        string     `bson:"name"`
	Payload     []byte     `bson:"payload,omitempty"`
	Status      string     `bson:"status"`
	Attempts    int32      `bson:"attempts"`
	MaxAttempts int32      `bson:"max_attempts"`
	LastError   *string    `bson:"last_error,omitempty"`
	ScheduledAt time.Time  `bson:"scheduled_at"`
	LockedUntil *time.Time `bson:"locked_until,omitempty"`
	LockedBy    *string    `bson:"locked_by,omitempty"`
	DeliveredAt *time.Time `bson:"delivered_at,omitempty"`
	CreatedAt   time.Time  `bson:"created_at"`
}

func toDoc(ev *Event) eventDoc {
	doc := eventDoc{
		ID:          ev.ID.String(),
		Name:        ev.Name,
		Payload:     ev.Payload,
		Status:      string(ev.Status),
		Attempts:    int32(ev.Attempts),
		MaxAttempts: int32(ev.MaxAttempts),
		LastError:   ev.LastError,
		ScheduledAt: ev.ScheduledAt,
		LockedUntil: ev.LockedUntil,
		DeliveredAt: ev.DeliveredAt,
		CreatedAt:   ev.CreatedAt,
	}
	if ev.LockedBy != nil {
		s := ev.LockedBy.String()
		doc.LockedBy = &s
	}
	return doc
}

func fromDoc(doc eventDoc) (*Event, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid event id %q: %w", doc.ID, err)
	}

	ev := &Event{
		ID:          id,
		Name:        doc.Name,
		Payload:     json.RawMessage(doc.Payload),
		Status:      EventStatus(doc.Status),
		Attempts:    int8(doc.Attempts),
		MaxAttempts: int8(doc.MaxAttempts),
		LastError:   doc.LastError,
		ScheduledAt: doc.ScheduledAt,
		LockedUntil: doc.LockedUntil,
		DeliveredAt: doc.DeliveredAt,
		CreatedAt:   doc.CreatedAt,
	}
	if doc.LockedBy != nil {
		lockedBy, err := uuid.Parse(*doc.LockedBy)
		if err == nil {
			ev.LockedBy = &lockedBy
		}
	}
	return ev, nil
}

// Append implements PublisherRepository.
func (s *MongoStorage) Append(ctx context.Context, event *Event) error {
	if event == nil {
		return errors.New("event cannot be nil")
	}
	if _, err := s.events.InsertOne(ctx, toDoc(event)); err != nil {
		return fmt.Errorf("failed to insert event %s: %w", event.ID, err)
	}
	return nil
}

// Claim implements ConsumerRepository.
func (s *MongoStorage) Claim(ctx context.Context, consumerID uuid.UUID, lockFor time.Duration) (*Event, error) {
	now := time.Now()

	filter := bson.M{"$or": bson.A{
		bson.M{
			"status":       string(EventStatusPending),
			"scheduled_at": bson.M{"$lte": now},
		},
		bson.M{
			"status":       string(EventStatusProcessing),
			"locked_until": bson.M{"$lt": now},
		},
	}}
	update := bson.M{"$set": bson.M{
		"status":       string(EventStatusProcessing),
		"locked_until": now.Add(lockFor),
		"locked_by":    consumerID.String(),
	}}
	opts := options.FindOneAndUpdate().
		SetSort(bson.D{{Key: "scheduled_at", Value: 1}}).
		SetReturnDocument(options.After)

	var doc eventDoc
	if err := s.events.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNoEventToClaim
		}
		return nil, fmt.Errorf("failed to claim event: %w", err)
	}

	return fromDoc(doc)
}

// MarkDelivered implements ConsumerRepository.
func (s *MongoStorage) MarkDelivered(ctx context.Context, eventID uuid.UUID) error {
	res, err := s.events.UpdateOne(ctx,
		bson.M{"_id": eventID.String()},
		bson.M{
			"$set":   bson.M{"status": string(EventStatusDelivered), "delivered_at": time.Now()},
			"$unset": bson.M{"locked_until": "", "locked_by": ""},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to mark event %s delivered: %w", eventID, err)
	}
	if res.MatchedCount == 0 {
		return ErrEventNotFound
	}
	return nil
}

// MarkFailed implements ConsumerRepository. The attempt increment, the
// status decision and the backoff reschedule are a single update: a
// partially applied failure would leave an event that neither branch of
// Claim's filter matches, stranding it forever.
func (s *MongoStorage) MarkFailed(ctx context.Context, eventID uuid.UUID, errorMsg string) error {
	res, err := s.events.UpdateOne(ctx,
		bson.M{"_id": eventID.String()},
		markFailedUpdate(errorMsg),
	)
	if err != nil {
		return fmt.Errorf("failed to mark event %s failed: %w", eventID, err)
	}
	if res.MatchedCount == 0 {
		return ErrEventNotFound
	}
	return nil
}

// markFailedUpdate builds the aggregation-pipeline update applied by
// MarkFailed. The first stage increments the attempt counter and records
// the error; the second reads the incremented counter to pick between a
// backed-off reschedule and the terminal failed status; the last releases
// the claim lock.
func markFailedUpdate(errorMsg string) bson.A {
	exhausted := bson.M{"$gte": bson.A{"$attempts", "$max_attempts"}}
	return bson.A{
		bson.M{"$set": bson.M{
			"attempts":   bson.M{"$add": bson.A{"$attempts", 1}},
			"last_error": errorMsg,
		}},
		bson.M{"$set": bson.M{
			"status": bson.M{"$cond": bson.A{
				exhausted,
				string(EventStatusFailed),
				string(EventStatusPending),
			}},
			"scheduled_at": bson.M{"$cond": bson.A{
				exhausted,
				"$scheduled_at",
				bson.M{"$add": bson.A{
					"$$NOW",
					bson.M{"$multiply": bson.A{"$attempts", retryBackoffBase.Milliseconds()}},
				}},
			}},
		}},
		bson.M{"$unset": bson.A{"locked_until", "locked_by"}},
	}
}

// MoveToDeadLetter implements ConsumerRepository.
func (s *MongoStorage) MoveToDeadLetter(ctx context.Context, eventID uuid.UUID) error {
	var doc eventDoc
	if err := s.events.FindOne(ctx, bson.M{"_id": eventID.String()}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrEventNotFound
		}
		return fmt.Errorf("failed to load event %s: %w", eventID, err)
	}

	dead := bson.M{
		"_id":      uuid.NewString(),
		"event_id": doc.ID,
		"name":     doc.Name,
		"payload":  doc.Payload,
		"attempts": doc.Attempts,
		"failed_at": time.Now(),
	}
	if doc.LastError != nil {
		dead["error"] = *doc.LastError
	}

	if _, err := s.dead.InsertOne(ctx, dead); err != nil {
		return fmt.Errorf("failed to insert dead letter for event %s: %w", eventID, err)
	}
	if _, err := s.events.DeleteOne(ctx, bson.M{"_id": eventID.String()}); err != nil {
		return fmt.Errorf("failed to delete event %s: %w", eventID, err)
	}
	return nil
}
