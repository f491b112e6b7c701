package test

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gartstein/hiringboard/internal/company/controller"
	"github.com/gartstein/hiringboard/internal/company/db"
	"github.com/gartstein/hiringboard/internal/company/events"
	"github.com/gartstein/hiringboard/internal/company/models"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

// IntegrationTestSuite runs the service against real Postgres and Kafka.
// It is enabled by INTEGRATION_DB_HOST and INTEGRATION_KAFKA_BROKERS.
type IntegrationTestSuite struct {
	suite.Suite
	dbRepo      *db.Repository
	kafkaReader *kafka.Reader
	producer    *events.Producer
	logger      *zap.Logger
	testTimeout time.Duration
	topic       string
}

func TestIntegrationSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests")
	}
	if os.Getenv("INTEGRATION_DB_HOST") == "" || os.Getenv("INTEGRATION_KAFKA_BROKERS") == "" {
		t.Skip("INTEGRATION_DB_HOST and INTEGRATION_KAFKA_BROKERS not set")
	}
	suite.Run(t, new(IntegrationTestSuite))
}

func (s *IntegrationTestSuite) SetupSuite() {
	s.logger = zap.NewNop()
	s.testTimeout = 20 * time.Second
	s.topic = "companies-it-" + uuid.NewString()[:8]

	// Initialize database with retries
	var dbErr error
	s.dbRepo, dbErr = initializeDBWithRetry()
	if dbErr != nil {
		s.T().Fatal("Database initialization failed:", dbErr)
	}

	var kafkaErr error
	brokers := strings.Split(os.Getenv("INTEGRATION_KAFKA_BROKERS"), ",")
	s.producer, s.kafkaReader, kafkaErr = initializeKafkaWithRetry(brokers, s.topic)
	if kafkaErr != nil {
		s.T().Fatal("Kafka initialization failed:", kafkaErr)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func initializeDBWithRetry() (*db.Repository, error) {
	port, err := strconv.Atoi(envOr("INTEGRATION_DB_PORT", "5432"))
	if err != nil {
		return nil, err
	}
	cfg := &db.Config{
		Driver:   db.DriverPostgres,
		Host:     os.Getenv("INTEGRATION_DB_HOST"),
		Port:     port,
		User:     envOr("INTEGRATION_DB_USER", "test"),
		Password: envOr("INTEGRATION_DB_PASSWORD", "test"),
		DBName:   envOr("INTEGRATION_DB_NAME", "test"),
		SSLMode:  "disable",
	}

	var repo *db.Repository
	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = 30 * time.Second
	err = backoff.Retry(func() error {
		repo, err = db.NewRepository(cfg)
		return err
	}, b)

	return repo, err
}

func initializeKafkaWithRetry(brokers []string, topic string) (*events.Producer, *kafka.Reader, error) {
	err := backoff.Retry(func() error {
		return events.EnsureTopic(brokers, topic, zap.NewNop())
	}, backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 5))
	if err != nil {
		return nil, nil, fmt.Errorf("Kafka topic creation failed: %w", err)
	}

	// Verify Kafka readiness using metadata instead of blocking on ReadMessage
	err = backoff.Retry(func() error {
		conn, err := kafka.Dial("tcp", brokers[0])
		if err != nil {
			return err
		}
		defer conn.Close()

		partitions, err := conn.ReadPartitions(topic)
		if err != nil || len(partitions) == 0 {
			return fmt.Errorf("topic %s not found", topic)
		}
		return nil
	}, backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 5))
	if err != nil {
		return nil, nil, fmt.Errorf("Kafka topic check failed: %w", err)
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     brokers,
		GroupID:     "it-" + topic,
		Topic:       topic,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafka.FirstOffset,
	})

	return events.NewProducer(brokers, zap.NewNop(), topic), reader, nil
}

func (s *IntegrationTestSuite) TearDownSuite() {
	if s.producer != nil {
		s.producer.Close()
	}
	if s.kafkaReader != nil {
		_ = s.kafkaReader.Close()
	}
	if s.dbRepo != nil {
		_ = s.dbRepo.Close()
	}
}

func (s *IntegrationTestSuite) SetupTest() {
	ctx, cancel := context.WithTimeout(context.Background(), s.testTimeout)
	defer cancel()

	// Clean database safely
	if err := s.dbRepo.Exec(ctx, "TRUNCATE TABLE companies CASCADE"); err != nil {
		s.T().Fatal("Failed to clean database:", err)
	}
}

func (s *IntegrationTestSuite) TestCompanyLifecycle() {
	ctx, cancel := context.WithTimeout(context.Background(), s.testTimeout)
	defer cancel()

	ctrl := controller.NewCompanyService(s.dbRepo, s.producer, s.logger)
	created, err := ctrl.CreateCompany(ctx, &models.Company{Name: "New Company"})
	if err != nil {
		s.T().Fatal("CreateCompany failed:", err)
	}
	assert.Equal(s.T(), models.StatusHiring, created.Status)
	s.verifyKafkaEvent(ctx, events.CompanyCreated, "New Company")

	layoffs := models.StatusLayoffs
	updated, err := ctrl.UpdateCompany(ctx, "New Company", &models.CompanyUpdate{Status: &layoffs})
	if err != nil {
		s.T().Fatal("UpdateCompany failed:", err)
	}
	assert.Equal(s.T(), models.StatusLayoffs, updated.Status)
	s.verifyKafkaEvent(ctx, events.CompanyUpdated, "New Company")

	if err := ctrl.DeleteCompany(ctx, "New Company"); err != nil {
		s.T().Fatal("DeleteCompany failed:", err)
	}
	s.verifyKafkaEvent(ctx, events.CompanyDeleted, "New Company")
}

func (s *IntegrationTestSuite) verifyKafkaEvent(ctx context.Context, eventType events.EventType, name string) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	for {
		msg, err := s.kafkaReader.ReadMessage(ctx)
		if err != nil {
			s.T().Fatalf("No %s event received for %s: %v", eventType, name, err)
			return
		}
		if string(msg.Key) != name {
			s.T().Logf("Skipping message with unmatched key: %s (Expected: %s)", string(msg.Key), name)
			continue
		}
		var event events.Event
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			s.T().Fatalf("Failed to unmarshal Kafka message: %v", err)
		}
		if event.Type != eventType {
			s.T().Logf("Skipping message with unmatched eventType: %s (Expected: %s)", event.Type, eventType)
			continue
		}
		assert.Equal(s.T(), name, event.Company.Name, "Kafka message company mismatch")
		return
	}
}
