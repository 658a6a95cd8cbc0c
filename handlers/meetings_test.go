package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"coachdesk/backend/models"

	_ "github.com/mattn/go-sqlite3"
)

func createTestMeeting(t *testing.T, title string, start time.Time) models.Meeting {
	req := NewAuthenticatedRequest("POST", "/meetings", models.Meeting{
		CustomerID: "c1",
		Title:      title,
		StartTime:  start,
	})
	w := httptest.NewRecorder()
	AddMeeting(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("Error creating test meeting: %s", w.Body.String())
	}

	var meeting models.Meeting
	if err := json.NewDecoder(w.Body).Decode(&meeting); err != nil {
		t.Fatal(err)
	}
	return meeting
}

func TestAddMeeting_Defaults(t *testing.T) {
	SetupTestDB()
	defer CleanupTestDB()

	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	meeting := createTestMeeting(t, "Intro session", start)

	if meeting.Status != models.MeetingScheduled {
		t.Errorf("Expected status '%s', got '%s'", models.MeetingScheduled, meeting.Status)
	}
	// Missing end time defaults to an hour-long slot
	if !meeting.EndTime.Equal(start.Add(time.Hour)) {
		t.Errorf("Expected end time one hour after start, got %v", meeting.EndTime)
	}
}

func TestAddMeeting_Validation(t *testing.T) {
	SetupTestDB()
	defer CleanupTestDB()

	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	testCases := []struct {
		name    string
		meeting models.Meeting
	}{
		{
			name:    "Missing customer",
			meeting: models.Meeting{Title: "Orphan", StartTime: start},
		},
		{
			name:    "Missing start time",
			meeting: models.Meeting{CustomerID: "c1", Title: "Whenever"},
		},
		{
			name: "End before start",
			meeting: models.Meeting{
				CustomerID: "c1",
				Title:      "Backwards",
				StartTime:  start,
				EndTime:    start.Add(-time.Hour),
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := NewAuthenticatedRequest("POST", "/meetings", tc.meeting)
			w := httptest.NewRecorder()

			AddMeeting(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("Expected status code %d, got %d", http.StatusBadRequest, w.Code)
			}
		})
	}
}

func TestGetMeetings_CalendarWindow(t *testing.T) {
	SetupTestDB()
	defer CleanupTestDB()

	createTestMeeting(t, "Monday", time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC))
	createTestMeeting(t, "Wednesday", time.Date(2026, 9, 9, 9, 0, 0, 0, time.UTC))
	createTestMeeting(t, "Next month", time.Date(2026, 10, 5, 9, 0, 0, 0, time.UTC))

	from := url.QueryEscape("2026-09-01T00:00:00Z")
	to := url.QueryEscape("2026-09-30T23:59:59Z")
	req := NewAuthenticatedRequest("GET", "/meetings?from="+from+"&to="+to, nil)
	w := httptest.NewRecorder()

	GetMeetings(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	var meetings []models.Meeting
	if err := json.NewDecoder(w.Body).Decode(&meetings); err != nil {
		t.Fatal(err)
	}
	if len(meetings) != 2 {
		t.Fatalf("Expected 2 meetings inside the window, got %d", len(meetings))
	}
	// Results come back in chronological order
	if meetings[0].Title != "Monday" || meetings[1].Title != "Wednesday" {
		t.Errorf("Expected chronological order, got %s then %s", meetings[0].Title, meetings[1].Title)
	}
}

func TestGetMeetings_InvalidWindow(t *testing.T) {
	SetupTestDB()
	defer CleanupTestDB()

	req := NewAuthenticatedRequest("GET", "/meetings?from=yesterday", nil)
	w := httptest.NewRecorder()

	GetMeetings(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status code %d, got %d", http.StatusBadRequest, w.Code)
	}
}
