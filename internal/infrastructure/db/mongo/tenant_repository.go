package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/saasdash/dashboard-api/internal/core/domain"
)

const collectionTenants = "tenants"

// TenantRepository implements ports.TenantRepository on MongoDB.
type TenantRepository struct {
	col *mongo.Collection
}

func NewTenantRepository(db *mongo.Database) *TenantRepository {
	return &TenantRepository{col: db.Collection(collectionTenants)}
}

type tenantDoc struct {
	ID           primitive.ObjectID     `bson:"_id,omitempty"`
	Name         string                 `bson:"name"`
	Domain       string                 `bson:"domain,omitempty"`
	Subdomain    string                 `bson:"subdomain,omitempty"`
	Company      domain.Company         `bson:"company"`
	Settings     domain.TenantSettings  `bson:"settings"`
	Subscription domain.Subscription    `bson:"subscription"`
	IsActive     bool                   `bson:"is_active"`
	OwnerID      string                 `bson:"owner_id"`
	AdminIDs     []string               `bson:"admin_ids,omitempty"`
	Metadata     map[string]interface{} `bson:"metadata,omitempty"`
	CreatedAt    time.Time              `bson:"created_at"`
	UpdatedAt    time.Time              `bson:"updated_at"`
}

func (r *TenantRepository) Create(ctx context.Context, tenant *domain.Tenant) (*domain.Tenant, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := fromTenant(tenant)
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrTenantExists
		}
		return nil, fmt.Errorf("insert tenant: %w", err)
	}

	created := *tenant
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *TenantRepository) FindByID(ctx context.Context, id string) (*domain.Tenant, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrTenantNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc tenantDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTenantNotFound
		}
		return nil, fmt.Errorf("find tenant: %w", err)
	}
	return toTenant(doc), nil
}

func (r *TenantRepository) Update(ctx context.Context, tenant *domain.Tenant) error {
	oid, err := primitive.ObjectIDFromHex(tenant.ID)
	if err != nil {
		return domain.ErrTenantNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := fromTenant(tenant)
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrTenantExists
		}
		return fmt.Errorf("update tenant: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrTenantNotFound
	}
	return nil
}

// EnsureIndexes creates the tenant indexes. Domain and subdomain are unique
// only when present, hence the sparse indexes.
func (r *TenantRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "domain", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
		{
			Keys:    bson.D{{Key: "subdomain", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
		{Keys: bson.D{{Key: "subscription.status", Value: 1}}},
		{Keys: bson.D{{Key: "is_active", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func fromTenant(t *domain.Tenant) tenantDoc {
	return tenantDoc{
		Name:         t.Name,
		Domain:       t.Domain,
		Subdomain:    t.Subdomain,
		Company:      t.Company,
		Settings:     t.Settings,
		Subscription: t.Subscription,
		IsActive:     t.IsActive,
		OwnerID:      t.OwnerID,
		AdminIDs:     t.AdminIDs,
		Metadata:     t.Metadata,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

func toTenant(doc tenantDoc) *domain.Tenant {
	return &domain.Tenant{
		ID:           doc.ID.Hex(),
		Name:         doc.Name,
		Domain:       doc.Domain,
		Subdomain:    doc.Subdomain,
		Company:      doc.Company,
		Settings:     doc.Settings,
		Subscription: doc.Subscription,
		IsActive:     doc.IsActive,
		OwnerID:      doc.OwnerID,
		AdminIDs:     doc.AdminIDs,
		Metadata:     doc.Metadata,
		CreatedAt:    doc.CreatedAt,
		UpdatedAt:    doc.UpdatedAt,
	}
}
