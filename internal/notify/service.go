package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/smtp"
	"time"

	"github.com/redis/go-redis/v9"

	"roombook/internal/logger"
	"roombook/internal/metrics"
)

const (
	queueKey       = "notifications"
	failedQueueKey = "notifications:failed"
	maxTries       = 3
)

type Job struct {
	To      string    `json:"to"`
	Name    string    `json:"name"`
	Kind    string    `json:"kind"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	Tries   int       `json:"tries"`
	Created time.Time `json:"created"`
}

// Service queues booking notifications on a Redis list and drains it
// from a background worker, so a slow SMTP server never sits on the
// booking request path.
type Service struct {
	redis    *redis.Client
	from     string
	fromName string
	smtpHost string
	smtpPort string
	smtpUser string
	smtpPass string
}

func New(rdb *redis.Client, fromEmail, fromName, smtpHost, smtpPort, smtpUser, smtpPass string) *Service {
	return &Service{
		redis:    rdb,
		from:     fromEmail,
		fromName: fromName,
		smtpHost: smtpHost,
		smtpPort: smtpPort,
		smtpUser: smtpUser,
		smtpPass: smtpPass,
	}
}

func (s *Service) enqueue(ctx context.Context, job Job) error {
	data, err := json.Marshal(job)
	if err != nil {
		return err
	}

	if err := s.redis.LPush(ctx, queueKey, data).Err(); err != nil {
		logger.Error("failed to queue notification", "to", job.To, "kind", job.Kind, "error", err)
		return err
	}

	logger.Debug("notification queued", "to", job.To, "kind", job.Kind)
	return nil
}

func (s *Service) Start(ctx context.Context) {
	logger.Info("notification worker started")

	for {
		select {
		case <-ctx.Done():
			logger.Info("notification worker stopped")
			return
		default:
			s.processNext(ctx)
		}
	}
}

func (s *Service) processNext(ctx context.Context) {
	result, err := s.redis.BRPop(ctx, 2*time.Second, queueKey).Result()
	if err != nil {
		return
	}

	var job Job
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		logger.Error("dropping malformed notification payload", "error", err)
		return
	}

	job.Tries++
	if err := s.sendNow(job); err != nil {
		logger.Error("failed to send notification", "to", job.To, "attempt", job.Tries, "error", err)

		if job.Tries < maxTries {
			time.Sleep(5 * time.Second)
			data, _ := json.Marshal(job)
			s.redis.LPush(context.Background(), queueKey, data)
			return
		}

		s.saveFailed(job, err)
		metrics.RecordNotification(job.Kind, "failed")
		return
	}

	metrics.RecordNotification(job.Kind, "sent")
	logger.Debug("notification sent", "to", job.To, "kind", job.Kind)
}

func (s *Service) sendNow(job Job) error {
	message := fmt.Sprintf("From: %s <%s>\r\n", s.fromName, s.from)
	message += fmt.Sprintf("To: %s\r\n", job.To)
	message += fmt.Sprintf("Subject: %s\r\n", job.Subject)
	message += "\r\n" + job.Body

	var auth smtp.Auth
	if s.smtpUser != "" && s.smtpPass != "" {
		auth = smtp.PlainAuth("", s.smtpUser, s.smtpPass, s.smtpHost)
	}

	addr := s.smtpHost + ":" + s.smtpPort
	return smtp.SendMail(addr, auth, s.from, []string{job.To}, []byte(message))
}

func (s *Service) saveFailed(job Job, err error) {
	failed := map[string]interface{}{
		"job":   job,
		"error": err.Error(),
		"time":  time.Now(),
	}
	data, _ := json.Marshal(failed)
	s.redis.LPush(context.Background(), failedQueueKey, data)
	logger.Error("notification moved to failed queue after retries", "to", job.To, "kind", job.Kind)
}

func (s *Service) QueueLength(ctx context.Context) int64 {
	length, _ := s.redis.LLen(ctx, queueKey).Result()
	return length
}

// BookingConfirmed queues a confirmation for a granted booking.
func (s *Service) BookingConfirmed(ctx context.Context, email, name, roomName, roomType, date, slotRange string) error {
	body := fmt.Sprintf(`Hi %s,

Your room booking is confirmed.

Room: %s (%s)
Date: %s
Time: %s

- RoomBook`, name, roomName, roomType, date, slotRange)

	return s.enqueue(ctx, Job{
		To:      email,
		Name:    name,
		Kind:    "booking_confirmed",
		Subject: "Booking Confirmed - " + roomName,
		Body:    body,
		Created: time.Now(),
	})
}

// BookingCancelled queues a cancellation notice.
func (s *Service) BookingCancelled(ctx context.Context, email, name, roomName, date, slotRange string) error {
	body := fmt.Sprintf(`Hi %s,

Your room booking has been cancelled.

Room: %s
Date: %s
Time: %s

- RoomBook`, name, roomName, date, slotRange)

	return s.enqueue(ctx, Job{
		To:      email,
		Name:    name,
		Kind:    "booking_cancelled",
		Subject: "Booking Cancelled - " + roomName,
		Body:    body,
		Created: time.Now(),
	})
}
