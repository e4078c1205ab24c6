package mysql

import "minerops/pkg/store/mysql/model"

// Repository aggregates all MySQL repositories
type Repository struct {
	ds *Datastore

	User         *UserRepository
	MiningConfig *MiningConfigRepository
	MiningStat   *MiningStatRepository
	EnergySample *EnergySampleRepository
	CryptoPrice  *CryptoPriceRepository
	RentalRecord *RentalRecordRepository
}

// NewRepository creates a new MySQL repository with all sub-repositories
func NewRepository(dsn string) (*Repository, error) {
	ds, err := NewDatastore(dsn)
	if err != nil {
		return nil, err
	}

	return &Repository{
		ds:           ds,
		User:         NewUserRepository(ds),
		MiningConfig: NewMiningConfigRepository(ds),
		MiningStat:   NewMiningStatRepository(ds),
		EnergySample: NewEnergySampleRepository(ds),
		CryptoPrice:  NewCryptoPriceRepository(ds),
		RentalRecord: NewRentalRecordRepository(ds),
	}, nil
}

// Migrate creates or updates the schema for all models
func (r *Repository) Migrate() error {
	return r.ds.GetDB().AutoMigrate(
		&model.User{},
		&model.MiningConfig{},
		&model.MiningStat{},
		&model.EnergySample{},
		&model.CryptoPrice{},
		&model.RentalRecord{},
	)
}

// GetDatastore returns the underlying datastore for transaction support
func (r *Repository) GetDatastore() *Datastore {
	return r.ds
}

// Close closes the database connection
func (r *Repository) Close() error {
	return r.ds.Close()
}
