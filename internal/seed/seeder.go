package seed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"fitprofile/internal/logger"
	"fitprofile/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	DefaultNumUsers   = 100
	DefaultHistory    = 5
	defaultBatchSize  = 500
	insertBatchSize   = 100
	sampleIntervalDay = 14
)

type Options struct {
	StartID uint
	Users   int
	// History is the number of height and weight samples per user.
	History int
	Seed    int64
	Now     time.Time
}

type Result struct {
	Users          int
	Samples        int
	Authorizations int
	Elapsed        time.Duration
}

// Seed writes synthetic profiles for users StartID..StartID+Users-1: a date of
// birth, granted read access to every profile type, and History samples each
// of height and body mass spaced two weeks apart.
func Seed(ctx context.Context, db *gorm.DB, opts Options) (Result, error) {
	if opts.Users <= 0 {
		return Result{}, fmt.Errorf("users must be positive, got %d", opts.Users)
	}
	if opts.StartID == 0 {
		opts.StartID = 1
	}
	if opts.History <= 0 {
		opts.History = DefaultHistory
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now().UTC()
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}

	start := time.Now()
	r := rand.New(rand.NewSource(opts.Seed))
	var res Result

	for i := 0; i < opts.Users; i += defaultBatchSize {
		end := i + defaultBatchSize
		if end > opts.Users {
			end = opts.Users
		}

		batchStart := time.Now()
		var (
			chars   []models.Characteristic
			auths   []models.HealthAuthorization
			samples []models.HealthSample
		)
		for j := i; j < end; j++ {
			userID := opts.StartID + uint(j)
			c, a, s := generateUser(userID, opts, r)
			chars = append(chars, c)
			auths = append(auths, a...)
			samples = append(samples, s...)
		}

		err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"date_of_birth", "updated_at"}),
			}).CreateInBatches(&chars, insertBatchSize).Error; err != nil {
				return err
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}, {Name: "type"}},
				DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
			}).CreateInBatches(&auths, insertBatchSize).Error; err != nil {
				return err
			}
			return tx.CreateInBatches(&samples, insertBatchSize).Error
		})
		if err != nil {
			return res, fmt.Errorf("failed to seed users batch %d-%d: %w", i, end-1, err)
		}

		res.Users += end - i
		res.Authorizations += len(auths)
		res.Samples += len(samples)

		logger.Logger.Info("Seeded batch",
			zap.Int("from", i),
			zap.Int("to", end-1),
			zap.Duration("elapsed", time.Since(batchStart)),
		)
	}

	res.Elapsed = time.Since(start)
	return res, nil
}

func generateUser(userID uint, opts Options, r *rand.Rand) (models.Characteristic, []models.HealthAuthorization, []models.HealthSample) {
	age := 18 + r.Intn(62)
	dob := time.Date(opts.Now.Year()-age, time.Month(1+r.Intn(12)), 1+r.Intn(28), 0, 0, 0, 0, time.UTC)

	auths := make([]models.HealthAuthorization, 0, len(models.ProfileSampleTypes))
	for _, t := range models.ProfileSampleTypes {
		auths = append(auths, models.HealthAuthorization{
			UserID: userID,
			Type:   t,
			Status: models.AuthorizationGranted,
		})
	}

	height := 1.50 + r.Float64()*0.45
	bmi := 18 + r.Float64()*14
	weight := bmi * height * height

	samples := make([]models.HealthSample, 0, 2*opts.History)
	for k := opts.History - 1; k >= 0; k-- {
		at := opts.Now.AddDate(0, 0, -k*sampleIntervalDay)
		samples = append(samples,
			models.HealthSample{
				UserID:     userID,
				Type:       models.SampleTypeHeight,
				Value:      round(height, 2),
				Unit:       models.SampleTypeHeight.CanonicalUnit(),
				RecordedAt: at,
			},
			models.HealthSample{
				UserID:     userID,
				Type:       models.SampleTypeBodyMass,
				Value:      round(weight+(r.Float64()-0.5)*2, 1),
				Unit:       models.SampleTypeBodyMass.CanonicalUnit(),
				RecordedAt: at,
			},
		)
	}

	return models.Characteristic{UserID: userID, DateOfBirth: dob}, auths, samples
}

func round(v float64, places int) float64 {
	p := 1.0
	for i := 0; i < places; i++ {
		p *= 10
	}
	return float64(int64(v*p+0.5)) / p
}
