package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/eventdesk/eventdesk-api/internal/events"
	"github.com/eventdesk/eventdesk-api/internal/models"
)

func newEventRequest(authorization, title string, start, end time.Time, location string) *CreateEventRequest {
	req := &CreateEventRequest{}
	req.Authorization = authorization
	req.Body.Title = title
	req.Body.EventType = models.EventTypeWorkshop
	req.Body.StartTime = start
	req.Body.EndTime = end
	if location != "" {
		req.Body.Location = &location
	}
	return req
}

func TestEventScheduling_EndToEnd(t *testing.T) {
	db, authHandler := setupTest(t)
	_, bearer := createUser(t, db, authHandler, "org@example.com", models.RoleOrganizer)
	handler := NewEventHandler(db, events.NewScheduler(db), authHandler)

	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	at := func(h, m int) time.Time { return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute) }

	// 10:00-11:00 in Room A.
	resp, err := handler.HandleCreateEvent(context.Background(), newEventRequest(bearer, "First", at(10, 0), at(11, 0), "Room A"))
	if err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if resp.Body.ID == 0 {
		t.Fatal("expected created event to have an ID")
	}

	// 10:30-11:30 in Room A collides.
	_, err = handler.HandleCreateEvent(context.Background(), newEventRequest(bearer, "Overlap", at(10, 30), at(11, 30), "Room A"))
	if got := statusOf(t, err); got != http.StatusConflict {
		t.Fatalf("expected 409, got %d (%v)", got, err)
	}

	// 11:00-12:00 is back-to-back, no overlap.
	if _, err := handler.HandleCreateEvent(context.Background(), newEventRequest(bearer, "BackToBack", at(11, 0), at(12, 0), "Room A")); err != nil {
		t.Fatalf("back-to-back create failed: %v", err)
	}
}

func TestHandleCreateEvent_Authorization(t *testing.T) {
	db, authHandler := setupTest(t)
	_, participantBearer := createUser(t, db, authHandler, "part@example.com", models.RoleParticipant)
	handler := NewEventHandler(db, events.NewScheduler(db), authHandler)

	day := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)

	t.Run("AnonymousIs401", func(t *testing.T) {
		_, err := handler.HandleCreateEvent(context.Background(), newEventRequest("", "E", day, day.Add(time.Hour), ""))
		if got := statusOf(t, err); got != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", got)
		}
	})

	t.Run("ParticipantIs403", func(t *testing.T) {
		_, err := handler.HandleCreateEvent(context.Background(), newEventRequest(participantBearer, "E", day, day.Add(time.Hour), ""))
		if got := statusOf(t, err); got != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", got)
		}
	})

	t.Run("ReversedWindowIs400", func(t *testing.T) {
		_, organizerBearer := createUser(t, db, authHandler, "org2@example.com", models.RoleOrganizer)
		_, err := handler.HandleCreateEvent(context.Background(), newEventRequest(organizerBearer, "E", day.Add(time.Hour), day, ""))
		if got := statusOf(t, err); got != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", got)
		}
	})
}

func TestHandleGetEvent_PrivateIsNotFound(t *testing.T) {
	db, authHandler := setupTest(t)
	organizer, organizerBearer := createUser(t, db, authHandler, "org@example.com", models.RoleOrganizer)
	_, participantBearer := createUser(t, db, authHandler, "part@example.com", models.RoleParticipant)
	handler := NewEventHandler(db, events.NewScheduler(db), authHandler)

	day := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	evt := models.Event{Title: "Secret", EventType: models.EventTypeInternalMeeting, StartTime: day, EndTime: day.Add(time.Hour), IsPublic: false, CreatorID: organizer.ID}
	if err := db.Create(&evt).Error; err != nil {
		t.Fatalf("failed to seed event: %v", err)
	}

	get := func(authorization string) (*EventDetailResponse, error) {
		req := &GetEventRequest{ID: evt.ID}
		req.Authorization = authorization
		return handler.HandleGetEvent(context.Background(), req)
	}

	if _, err := get(""); statusOf(t, err) != http.StatusNotFound {
		t.Error("expected 404 for anonymous caller")
	}
	if _, err := get(participantBearer); statusOf(t, err) != http.StatusNotFound {
		t.Error("expected 404 for participant, not 403")
	}
	resp, err := get(organizerBearer)
	if err != nil {
		t.Fatalf("organizer lookup failed: %v", err)
	}
	if resp.Body.Title != "Secret" {
		t.Errorf("expected 'Secret', got %q", resp.Body.Title)
	}
}

func TestHandleUpdateEvent_OwnershipGate(t *testing.T) {
	db, authHandler := setupTest(t)
	creator, creatorBearer := createUser(t, db, authHandler, "creator@example.com", models.RoleOrganizer)
	_, otherBearer := createUser(t, db, authHandler, "other@example.com", models.RoleOrganizer)
	_, adminBearer := createUser(t, db, authHandler, "admin@example.com", models.RoleAdmin)
	handler := NewEventHandler(db, events.NewScheduler(db), authHandler)

	day := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	evt := models.Event{Title: "Owned", EventType: models.EventTypeTalk, StartTime: day, EndTime: day.Add(time.Hour), IsPublic: true, CreatorID: creator.ID}
	if err := db.Create(&evt).Error; err != nil {
		t.Fatalf("failed to seed event: %v", err)
	}

	update := func(authorization, title string) (*EventDetailResponse, error) {
		req := &UpdateEventRequest{ID: evt.ID}
		req.Authorization = authorization
		req.Body.Title = &title
		return handler.HandleUpdateEvent(context.Background(), req)
	}

	if _, err := update(otherBearer, "Hijacked"); statusOf(t, err) != http.StatusForbidden {
		t.Error("expected 403 for non-creator organizer")
	}
	if resp, err := update(creatorBearer, "Renamed"); err != nil || resp.Body.Title != "Renamed" {
		t.Errorf("creator update failed: %v", err)
	}
	if resp, err := update(adminBearer, "Admined"); err != nil || resp.Body.Title != "Admined" {
		t.Errorf("admin update failed: %v", err)
	}
}

func TestHandleDeleteEvent(t *testing.T) {
	db, authHandler := setupTest(t)
	creator, creatorBearer := createUser(t, db, authHandler, "creator@example.com", models.RoleOrganizer)
	handler := NewEventHandler(db, events.NewScheduler(db), authHandler)

	day := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	evt := models.Event{Title: "Doomed", EventType: models.EventTypeTalk, StartTime: day, EndTime: day.Add(time.Hour), IsPublic: true, CreatorID: creator.ID}
	if err := db.Create(&evt).Error; err != nil {
		t.Fatalf("failed to seed event: %v", err)
	}

	req := &DeleteEventRequest{ID: evt.ID}
	req.Authorization = creatorBearer
	if _, err := handler.HandleDeleteEvent(context.Background(), req); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	var count int64
	db.Model(&models.Event{}).Where("id = ?", evt.ID).Count(&count)
	if count != 0 {
		t.Error("expected event to be gone")
	}

	if _, err := handler.HandleDeleteEvent(context.Background(), req); statusOf(t, err) != http.StatusNotFound {
		t.Error("expected 404 on repeat delete")
	}
}

func TestHandleListEvents_Filters(t *testing.T) {
	db, authHandler := setupTest(t)
	handler := NewEventHandler(db, events.NewScheduler(db), authHandler)

	day := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	seed := []models.Event{
		{Title: "Go Workshop", EventType: models.EventTypeWorkshop, StartTime: day, EndTime: day.Add(time.Hour), IsPublic: true},
		{Title: "Keynote Talk", EventType: models.EventTypeTalk, StartTime: day.Add(2 * time.Hour), EndTime: day.Add(3 * time.Hour), IsPublic: true},
		{Title: "Planning", EventType: models.EventTypeInternalMeeting, StartTime: day.Add(4 * time.Hour), EndTime: day.Add(5 * time.Hour), IsPublic: false},
	}
	for i := range seed {
		if err := db.Create(&seed[i]).Error; err != nil {
			t.Fatalf("failed to seed event: %v", err)
		}
	}

	t.Run("AnonymousSeesPublicOnly", func(t *testing.T) {
		resp, err := handler.HandleListEvents(context.Background(), &ListEventsRequest{})
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(resp.Body) != 2 {
			t.Errorf("expected 2 events, got %d", len(resp.Body))
		}
	})

	t.Run("TypeFilter", func(t *testing.T) {
		resp, err := handler.HandleListEvents(context.Background(), &ListEventsRequest{EventType: "workshop"})
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(resp.Body) != 1 || resp.Body[0].Title != "Go Workshop" {
			t.Errorf("expected only the workshop, got %+v", resp.Body)
		}
	})

	t.Run("TitleFilter", func(t *testing.T) {
		resp, err := handler.HandleListEvents(context.Background(), &ListEventsRequest{Title: "KEYNOTE"})
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(resp.Body) != 1 || resp.Body[0].Title != "Keynote Talk" {
			t.Errorf("expected only the keynote, got %+v", resp.Body)
		}
	})
}
