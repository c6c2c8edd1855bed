package audit

import (
	"context"
	"referral-portal-service/internal/app/contracts"
	"referral-portal-service/internal/app/models"
	"referral-portal-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AuditMongoRepository struct {
	Collection *mongo.Collection
}

func NewAuditMongoRepository(db *mongo.Client, dbName, collectionName string) contracts.AuditRepository {
	return &AuditMongoRepository{
		Collection: db.Database(dbName).Collection(collectionName),
	}
}

func (r *AuditMongoRepository) Insert(ctx context.Context, event *models.AuditEvent) error {
	_, err := r.Collection.InsertOne(ctx, event)
	if err != nil {
		return exceptions.ErrMongoDBInsertDocument(err)
	}
	return nil
}

// FindByReferralID returns the newest events first.
func (r *AuditMongoRepository) FindByReferralID(ctx context.Context, referralID string, limit int64) ([]models.AuditEvent, error) {
	opts := options.Find().SetSort(bson.D{{Key: "occurredAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := r.Collection.Find(ctx, bson.M{"referralId": referralID}, opts)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	events := make([]models.AuditEvent, 0)
	if err := cursor.All(ctx, &events); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return events, nil
}
