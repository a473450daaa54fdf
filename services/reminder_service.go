// services/reminder_service.go
package services

import (
	"fmt"
	"log"
	"os"
	"time"

	"tailorly-backend/models"
	"tailorly-backend/utils"

	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

// ReminderService sends next-day appointment reminders to clients.
type ReminderService struct {
	db     *gorm.DB
	client *twilio.RestClient
}

func NewReminderService(db *gorm.DB) *ReminderService {
	// Initialize Twilio client
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &ReminderService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

func (s *ReminderService) StartScheduler() {
	c := cron.New()

	// Run every evening at 6 PM for the following day's appointments
	c.AddFunc("0 18 * * *", func() {
		s.SendUpcomingReminders()
	})

	c.Start()
	log.Println("Appointment reminder scheduler started")
}

func (s *ReminderService) SendUpcomingReminders() {
	log.Println("Starting appointment reminder processing...")

	var tailors []models.Tailor
	if err := s.db.Find(&tailors, "is_active = ? AND appointment_reminders = ?", true, true).Error; err != nil {
		log.Printf("Failed to fetch tailors: %v", err)
		return
	}

	for _, tailor := range tailors {
		s.ProcessTailorReminders(tailor)
	}

	log.Println("Appointment reminder processing completed")
}

func (s *ReminderService) ProcessTailorReminders(tailor models.Tailor) {
	tomorrow := utils.BeginningOfDay(time.Now().AddDate(0, 0, 1))

	var appts []models.Appointment
	err := s.db.
		Where("tailor_id = ?", tailor.ID).
		Where("status = ?", models.AppointmentScheduled).
		Where("start_time >= ? AND start_time < ?", tomorrow, tomorrow.AddDate(0, 0, 1)).
		Order("start_time ASC").
		Find(&appts).Error
	if err != nil {
		log.Printf("Tailor %s: Failed to get tomorrow's appointments: %v", tailor.ID, err)
		return
	}

	for _, appt := range appts {
		s.sendReminder(tailor, appt)
	}
}

func (s *ReminderService) sendReminder(tailor models.Tailor, appt models.Appointment) {
	var client models.Client
	if err := s.db.Where("tailor_id = ? AND id = ?", tailor.ID, appt.ClientID).First(&client).Error; err != nil {
		log.Printf("Tailor %s: client %s not found for reminder: %v", tailor.ID, appt.ClientID, err)
		return
	}
	if client.Phone == "" {
		return
	}

	business := tailor.BusinessName
	if business == "" {
		business = tailor.Name
	}
	message := fmt.Sprintf("Hi %s, a reminder of your %s appointment at %s tomorrow at %s.",
		client.Name, appt.ServiceType, business, appt.StartTime.Format("15:04"))

	// WhatsApp when the number is E.164 and the tailor enabled it, else SMS
	channel := "sms"
	to := client.Phone
	if tailor.WhatsAppNotifications && len(client.Phone) > 0 && client.Phone[0] == '+' {
		to = "whatsapp:" + client.Phone
		channel = "whatsapp"
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetBody(message)

	if channel == "whatsapp" {
		params.SetFrom("whatsapp:" + os.Getenv("TWILIO_WHATSAPP_NUMBER"))
	} else {
		params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))
	}

	resp, err := s.client.Api.CreateMessage(params)
	status := "sent"
	errorMsg := ""

	if err != nil {
		log.Printf("Failed to send reminder to %s: %v", client.Phone, err)
		status = "failed"
		errorMsg = err.Error()
	} else if resp.Sid != nil {
		log.Printf("Reminder sent to %s, SID: %s", client.Phone, *resp.Sid)
	} else {
		log.Printf("Reminder sent to %s, but no SID returned", client.Phone)
	}

	reminderLog := models.ReminderLog{
		TailorID:      tailor.ID,
		ClientID:      client.ID,
		AppointmentID: appt.ID,
		Message:       message,
		Status:        status,
		ErrorMessage:  errorMsg,
		Channel:       channel,
		SentAt:        time.Now(),
	}

	if err := s.db.Create(&reminderLog).Error; err != nil {
		log.Printf("Failed to log reminder for client %s: %v", client.ID, err)
	}
}
