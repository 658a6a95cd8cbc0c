package services

import (
	"database/sql"
	"log"
	"time"

	"coachdesk/backend/database"
	"coachdesk/backend/models"
)

// StartScheduler starts the task scheduler for periodic tasks
func StartScheduler() {
	log.Println("Starting task scheduler...")

	// Schedule meeting reminders to run daily at 07:00
	go startReminderScheduler()
}

// startReminderScheduler sends reminders for tomorrow's meetings once a day
func startReminderScheduler() {
	for {
		now := time.Now()
		next := time.Date(now.Year(), now.Month(), now.Day(), 7, 0, 0, 0, now.Location())
		if !next.After(now) {
			next = next.Add(24 * time.Hour)
		}

		log.Printf("Next meeting reminder run scheduled in %v", next.Sub(now))
		time.Sleep(next.Sub(now))

		log.Println("Running scheduled meeting reminders...")
		SendUpcomingMeetingReminders()

		// Small delay to ensure we don't run multiple times if execution is very quick
		time.Sleep(time.Second)
	}
}

// SendUpcomingMeetingReminders notifies customers with a scheduled meeting
// in the next 24 hours. Failures are logged per meeting and never stop the
// run.
func SendUpcomingMeetingReminders() {
	from := time.Now()
	to := from.Add(24 * time.Hour)

	rows, err := database.DB.Query(`
		SELECT m.id, m.customer_id, m.title, m.start_time, m.end_time, m.status,
		       c.name, c.email
		FROM meetings m
		JOIN customers c ON c.id = m.customer_id
		WHERE m.status = ? AND m.start_time BETWEEN ? AND ?
	`, models.MeetingScheduled, from, to)
	if err != nil {
		log.Printf("Warning: failed to query upcoming meetings: %v", err)
		return
	}
	defer rows.Close()

	for rows.Next() {
		var meeting models.Meeting
		var customerName string
		var customerEmail sql.NullString
		err := rows.Scan(
			&meeting.ID, &meeting.CustomerID, &meeting.Title,
			&meeting.StartTime, &meeting.EndTime, &meeting.Status,
			&customerName, &customerEmail,
		)
		if err != nil {
			log.Printf("Warning: failed to scan upcoming meeting: %v", err)
			continue
		}

		if !customerEmail.Valid || customerEmail.String == "" {
			continue
		}

		if err := SendMeetingReminder(customerEmail.String, customerName, meeting); err != nil {
			log.Printf("Warning: reminder for meeting %s failed: %v", meeting.ID, err)
		}
	}
}
