package repo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tobiasbuchner/StockChronicle/pkg/models"
)

const companiesCollection = "companies"

type CompanyRepo struct {
	client *mongo.Client
	coll   *mongo.Collection
}

func NewCompanyRepo(mongoURL, dbName string) (*CompanyRepo, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURL))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	coll := client.Database(dbName).Collection(companiesCollection)

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "index_name", Value: 1}, {Key: "ticker", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "ticker", Value: 1}}},
		{Keys: bson.D{{Key: "ingested_at", Value: -1}}},
	}

	// Indexes may already exist, that is not a startup failure.
	_, _ = coll.Indexes().CreateMany(ctx, indexes)

	return &CompanyRepo{client: client, coll: coll}, nil
}

func (r *CompanyRepo) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return r.client.Disconnect(ctx)
}

// Upsert writes one constituent keyed by (index_name, ticker).
func (r *CompanyRepo) Upsert(ctx context.Context, company *models.Company) error {
	filter := bson.M{"index_name": company.IndexName, "ticker": company.Ticker}
	update := bson.M{"$set": company}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var result models.Company
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&result)
	if err != nil {
		return err
	}
	company.ID = result.ID
	return nil
}

// UpsertAll writes a full per-index result set and returns how many
// documents were written before the first error.
func (r *CompanyRepo) UpsertAll(ctx context.Context, companies []models.Company) (int, error) {
	for i := range companies {
		if err := r.Upsert(ctx, &companies[i]); err != nil {
			return i, err
		}
	}
	return len(companies), nil
}

func (r *CompanyRepo) FindByIndex(ctx context.Context, indexName string) ([]models.Company, error) {
	opts := options.Find().SetSort(bson.D{{Key: "ticker", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"index_name": indexName}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var companies []models.Company
	if err := cursor.All(ctx, &companies); err != nil {
		return nil, err
	}
	return companies, nil
}

func (r *CompanyRepo) FindByTicker(ctx context.Context, ticker string) ([]models.Company, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"ticker": ticker})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var companies []models.Company
	if err := cursor.All(ctx, &companies); err != nil {
		return nil, err
	}
	return companies, nil
}

// CountByIndex groups the stored constituents per index name.
func (r *CompanyRepo) CountByIndex(ctx context.Context) (map[string]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$index_name", "count": bson.M{"$sum": 1}}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	counts := make(map[string]int64)
	for cursor.Next(ctx) {
		var doc struct {
			ID    string `bson:"_id"`
			Count int64  `bson:"count"`
		}
		if err := cursor.Decode(&doc); err == nil {
			counts[doc.ID] = doc.Count
		}
	}
	return counts, cursor.Err()
}
