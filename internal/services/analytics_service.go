package services

import (
	"fmt"
	"time"

	"github.com/cardtaphq/cardtap-backend/internal/dto"
	"github.com/cardtaphq/cardtap-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AnalyticsService struct {
	db *gorm.DB
}

func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{db: db}
}

type eventTypeCount struct {
	EventType string
	Count     int64
}

type topLinkRow struct {
	LinkID *uuid.UUID
	Title  string
	Clicks int64
}

type dailyViewRow struct {
	Date  string
	Views int64
}

// GetAnalytics aggregates engagement for a profile over the trailing window
// of days: per-type totals, top-10 clicked links with current titles, and the
// per-day profile view series (days without views are not zero-filled).
func (s *AnalyticsService) GetAnalytics(profileID string, days int) (*dto.AnalyticsResponse, error) {
	if days < 1 {
		days = 30
	}
	if days > 365 {
		days = 365
	}
	cutoff := time.Now().AddDate(0, 0, -days)

	var typeCounts []eventTypeCount
	if err := s.db.Model(&models.Event{}).
		Select("event_type, count(*) as count").
		Where("profile_id = ? AND created_at >= ?", profileID, cutoff).
		Group("event_type").
		Scan(&typeCounts).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate event counts: %w", err)
	}

	resp := &dto.AnalyticsResponse{
		TopLinks:   []dto.TopLink{},
		DailyViews: []dto.DailyViews{},
	}
	for _, tc := range typeCounts {
		switch tc.EventType {
		case models.EventProfileView:
			resp.ProfileViews = tc.Count
		case models.EventLinkClick:
			resp.LinkClicks = tc.Count
		case models.EventNFCScan:
			resp.NFCScans = tc.Count
		case models.EventContactSave:
			resp.ContactsSaved = tc.Count
		}
	}

	// Titles resolve in the same query; a link deleted after the click was
	// recorded falls back to 'Unknown'.
	var topRows []topLinkRow
	if err := s.db.Model(&models.Event{}).
		Select("events.link_id, COALESCE(links.title, 'Unknown') as title, count(*) as clicks").
		Joins("LEFT JOIN links ON links.id = events.link_id").
		Where("events.profile_id = ? AND events.event_type = ? AND events.created_at >= ?",
			profileID, models.EventLinkClick, cutoff).
		Group("events.link_id, links.title").
		Order("clicks DESC").
		Limit(10).
		Scan(&topRows).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate top links: %w", err)
	}
	for _, row := range topRows {
		tl := dto.TopLink{Title: row.Title, Clicks: row.Clicks}
		if row.LinkID != nil {
			tl.LinkID = row.LinkID.String()
		}
		resp.TopLinks = append(resp.TopLinks, tl)
	}

	var dailyRows []dailyViewRow
	if err := s.db.Model(&models.Event{}).
		Select("CAST(date(created_at) AS TEXT) as date, count(*) as views").
		Where("profile_id = ? AND event_type = ? AND created_at >= ?",
			profileID, models.EventProfileView, cutoff).
		Group("date(created_at)").
		Order("date(created_at)").
		Scan(&dailyRows).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate daily views: %w", err)
	}
	for _, row := range dailyRows {
		resp.DailyViews = append(resp.DailyViews, dto.DailyViews{Date: row.Date, Views: row.Views})
	}

	return resp, nil
}
