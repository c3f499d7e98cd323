package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/stayware/hotel-console/internal/api/metrics"
	"github.com/stayware/hotel-console/internal/core/domain"
)

const identityCollection = "identities"

// IdentityRepository adapts a MongoDB collection to ports.IdentityStore.
// Passwords are stored as bcrypt hashes only.
type IdentityRepository struct {
	coll *mongo.Collection
}

func NewIdentityRepository(db *mongo.Database) *IdentityRepository {
	return &IdentityRepository{coll: db.Collection(identityCollection)}
}

type identityDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Email        string             `bson:"email"`
	DisplayName  string             `bson:"display_name,omitempty"`
	PasswordHash string             `bson:"password_hash"`
	Role         string             `bson:"role"`
	TenantID     string             `bson:"tenant_id,omitempty"`
	Active       bool               `bson:"active"`
	LastLoginAt  int64              `bson:"last_login_at,omitempty"`
}

// VerifyCredentials fetches the record for email once and performs the
// credential comparison and activity check against that single document,
// so activity can never change between a "check" and a "use".
func (r *IdentityRepository) VerifyCredentials(ctx context.Context, email, password string) (*domain.Identity, error) {
	timer := prometheus.NewTimer(metrics.IdentityStoreLatency.WithLabelValues("verify_credentials"))
	defer timer.ObserveDuration()

	var doc identityDoc
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrIdentityNotFound
		}
		return nil, fmt.Errorf("%w: find identity: %v", domain.ErrIdentityStoreUnavailable, err)
	}

	if bcrypt.CompareHashAndPassword([]byte(doc.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrPasswordMismatch
	}
	if !doc.Active {
		return nil, domain.ErrIdentityInactive
	}

	identity, err := toDomain(doc)
	if err != nil {
		return nil, err
	}
	return identity, nil
}

// FindActiveByID re-validates a cached identity against current store
// truth.
func (r *IdentityRepository) FindActiveByID(ctx context.Context, id string) (*domain.Identity, error) {
	timer := prometheus.NewTimer(metrics.IdentityStoreLatency.WithLabelValues("find_active"))
	defer timer.ObserveDuration()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// A cached id the store cannot even parse identifies nothing.
		return nil, domain.ErrIdentityNotFound
	}

	var doc identityDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrIdentityNotFound
		}
		return nil, fmt.Errorf("%w: find identity: %v", domain.ErrIdentityStoreUnavailable, err)
	}
	if !doc.Active {
		return nil, domain.ErrIdentityInactive
	}

	return toDomain(doc)
}

// RecordLastLogin stamps the identity with the current time. Idempotent
// and safe to retry.
func (r *IdentityRepository) RecordLastLogin(ctx context.Context, id string) error {
	timer := prometheus.NewTimer(metrics.IdentityStoreLatency.WithLabelValues("record_last_login"))
	defer timer.ObserveDuration()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("record last login: %w", err)
	}
	_, err = r.coll.UpdateByID(ctx, oid, bson.M{
		"$set": bson.M{"last_login_at": time.Now().UTC().Unix()},
	})
	if err != nil {
		return fmt.Errorf("record last login: %w", err)
	}
	return nil
}

func toDomain(doc identityDoc) (*domain.Identity, error) {
	role, ok := domain.ParseRole(doc.Role)
	if !ok {
		return nil, fmt.Errorf("%w: malformed role %q", domain.ErrIdentityStoreUnavailable, doc.Role)
	}
	identity := &domain.Identity{
		ID:          doc.ID.Hex(),
		Email:       doc.Email,
		DisplayName: doc.DisplayName,
		Role:        role,
		TenantID:    doc.TenantID,
		IsActive:    doc.Active,
		LastLoginAt: unixToTime(doc.LastLoginAt),
	}
	if !identity.Valid() {
		return nil, fmt.Errorf("%w: structurally incomplete identity record", domain.ErrIdentityStoreUnavailable)
	}
	return identity, nil
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
