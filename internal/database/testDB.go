package database

import (
	"context"
	"fmt"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	// Load env
	_ "github.com/joho/godotenv/autoload"

	m "jobtrack-backend/internal/model"
	"jobtrack-backend/internal/utilities"
)

var testDBInstance *DBinstanceStruct
var teardown func(context.Context, ...testcontainers.TerminateOption) error

// Exported seeded users and applications for handler tests.
var (
	TestUser1 m.User
	TestUser2 m.User

	// Plain password shared by all seeded users
	TestSeedPassword = "SeedPass123!"

	TestApp1 m.Application // TestUser1, Applied
	TestApp2 m.Application // TestUser1, Offer
	TestApp3 m.Application // TestUser1, Rejected
	TestApp4 m.Application // TestUser2, Phone Screen
)

// GetTestDB starts a PostgreSQL test container and returns a teardown function,
// the DB instance, and any error encountered during setup.
func GetTestDB() (func(context.Context, ...testcontainers.TerminateOption) error, *DBinstanceStruct, error) {

	if testDBInstance != nil && teardown != nil {
		return teardown, testDBInstance, nil
	}

	// Database configuration
	var (
		dbName = "database"
		dbPwd  = "password"
		dbUser = "user"
	)

	dbContainer, err := postgres.Run(
		context.Background(),
		"postgres:latest",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPwd),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
	)
	if err != nil {
		return nil, nil, err
	}

	dbHost, err := dbContainer.Host(context.Background())
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	dbPort, err := dbContainer.MappedPort(context.Background(), nat.Port("5432/tcp"))
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	config := &DBConfig{
		useConstr: true,
		Constr:    fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", dbHost, dbPort.Port(), dbUser, dbPwd, dbName),
	}

	db, err := NewDBInstance(config)
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	if err := seedTestData(db); err != nil {
		_ = dbContainer.Terminate(context.Background())
		return nil, nil, err
	}

	testDBInstance = db
	teardown = dbContainer.Terminate

	return dbContainer.Terminate, db, nil
}

// seedTestData inserts two users and a handful of applications if empty.
func seedTestData(db *DBinstanceStruct) error {
	var userCount int64
	if err := db.Model(&m.User{}).Count(&userCount).Error; err != nil {
		return err
	}
	if userCount > 0 {
		return loadTestData(db)
	}

	hashedPwd, errHash := utilities.HashPassword(TestSeedPassword)
	if errHash != nil {
		return errHash
	}

	users := []m.User{
		{
			ID:       uuid.New(),
			Username: "seeker_1",
			Email:    ptr("seeker1@example.com"),
			Password: hashedPwd,
		},
		{
			ID:       uuid.New(),
			Username: "seeker_2",
			Email:    ptr("seeker2@example.com"),
			Password: hashedPwd,
		},
	}
	if err := db.Create(&users).Error; err != nil {
		return err
	}
	TestUser1 = users[0]
	TestUser2 = users[1]

	now := time.Now().UTC()
	day := func(daysAgo int) string {
		return now.AddDate(0, 0, -daysAgo).Format(m.DateLayout)
	}
	millis := func(daysAgo int) int64 {
		return now.AddDate(0, 0, -daysAgo).UnixMilli()
	}

	updated := now.UnixMilli()
	apps := []m.Application{
		{
			ID:              uuid.New(),
			UserID:          TestUser1.ID,
			Company:         "TechNova",
			Role:            "Backend Engineer",
			DateApplied:     day(3),
			Status:          m.StatusApplied,
			VisaSponsorship: true,
			Timestamp:       millis(3),
			TagIDs:          pq.StringArray{"industry-tech", "role-engineering"},
		},
		{
			ID:              uuid.New(),
			UserID:          TestUser1.ID,
			Company:         "DataForge",
			Role:            "Senior Data Analyst",
			DateApplied:     day(30),
			Status:          m.StatusOffer,
			VisaSponsorship: false,
			Timestamp:       millis(30),
			UpdatedAt:       &updated,
			TagIDs:          pq.StringArray{"seniority-senior"},
		},
		{
			ID:          uuid.New(),
			UserID:      TestUser1.ID,
			Company:     "FinEdge Capital",
			Role:        "Platform Engineer",
			DateApplied: day(45),
			Status:      m.StatusRejected,
			Timestamp:   millis(45),
			UpdatedAt:   &updated,
		},
		{
			ID:          uuid.New(),
			UserID:      TestUser2.ID,
			Company:     "CloudWorks",
			Role:        "SRE",
			DateApplied: day(10),
			Status:      m.StatusPhoneScreen,
			Timestamp:   millis(10),
		},
	}
	if err := db.Create(&apps).Error; err != nil {
		return err
	}
	TestApp1 = apps[0]
	TestApp2 = apps[1]
	TestApp3 = apps[2]
	TestApp4 = apps[3]

	return nil
}

// loadTestData populates exported variables when records already exist.
func loadTestData(db *DBinstanceStruct) error {
	if err := db.First(&TestUser1, "username = ?", "seeker_1").Error; err != nil {
		return err
	}
	if err := db.First(&TestUser2, "username = ?", "seeker_2").Error; err != nil {
		return err
	}

	var apps []m.Application
	if err := db.Where("user_id = ?", TestUser1.ID).Order("timestamp DESC").Find(&apps).Error; err != nil {
		return err
	}
	if len(apps) > 0 {
		TestApp1 = apps[0]
	}
	if len(apps) > 1 {
		TestApp2 = apps[1]
	}
	if len(apps) > 2 {
		TestApp3 = apps[2]
	}
	_ = db.First(&TestApp4, "user_id = ?", TestUser2.ID).Error

	return nil
}

// ptr helper
func ptr[T any](v T) *T { return &v }
