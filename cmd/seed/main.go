package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"nexusems/internal/discounts"
	"nexusems/internal/events"
	"nexusems/internal/shared/config"
	"nexusems/internal/shared/database"
	"nexusems/internal/shared/idgen"
	"nexusems/internal/shared/middleware"
	"nexusems/internal/tickets"
	"nexusems/pkg/logger"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Seeder struct {
	db     *database.DB
	events events.Service
	seats  tickets.Service
	promos discounts.Service
}

func main() {
	fmt.Println("🌱 Starting NexusEMS database seeder...")

	_ = godotenv.Load()
	cfg := config.Load()
	cfg.Redis.Enabled = false
	appLogger := logger.NewWithWriter(log.Writer(), cfg.LogLevel)

	db, err := database.InitDB(cfg, appLogger)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	eventService := events.NewService(events.NewRepository(db.PostgreSQL), appLogger)
	seeder := &Seeder{
		db:     db,
		events: eventService,
		seats:  tickets.NewService(tickets.NewRepository(db.PostgreSQL), eventService, appLogger),
		promos: discounts.NewService(discounts.NewRepository(db.PostgreSQL), nil, discounts.DefaultServiceConfig(), appLogger),
	}

	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}

	organizerID := idgen.Organizer(nil)

	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(context.Background(), organizerID); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	token, err := middleware.NewAccessToken(cfg.JWT.Secret, organizerID, middleware.RoleOrganizer, cfg.JWT.ExpiresIn)
	if err != nil {
		log.Fatalf("Failed to sign organizer token: %v", err)
	}

	fmt.Println("\n🎉 Seeding completed!")
	fmt.Printf("Organizer %s token:\n%s\n", organizerID, token)
}

// CleanDatabase truncates every table the service owns
func (s *Seeder) CleanDatabase() error {
	return s.db.PostgreSQL.Exec(`TRUNCATE TABLE booking_seats, bookings, waitlist_entries, discounts, tickets, events`).Error
}

func (s *Seeder) SeedAll(ctx context.Context, organizerID string) error {
	startsAt := time.Now().UTC().AddDate(0, 1, 0).Truncate(time.Hour)

	event, err := s.events.CreateEvent(ctx, organizerID, events.CreateEventRequest{
		Name:     "Winter Gala",
		Venue:    "Grand Hall",
		StartsAt: startsAt,
	})
	if err != nil {
		return fmt.Errorf("event: %w", err)
	}
	fmt.Printf("  ✅ Event %s (%s)\n", event.EventID, event.Name)

	var layout []tickets.SeatSpec
	for _, row := range []string{"A", "B"} {
		for seat := 1; seat <= 5; seat++ {
			layout = append(layout, tickets.SeatSpec{
				Layout: "Orchestra", Row: row, SeatNo: seat,
				TicketType: "VIP", Price: decimal.NewFromInt(125),
			})
		}
	}
	for seat := 1; seat <= 10; seat++ {
		layout = append(layout, tickets.SeatSpec{
			Layout: "Balcony", Row: "C", SeatNo: seat,
			TicketType: "GA", Price: decimal.NewFromInt(60),
		})
	}

	created, err := s.seats.CreateLayout(ctx, event.EventID, tickets.CreateLayoutRequest{Seats: layout})
	if err != nil {
		return fmt.Errorf("tickets: %w", err)
	}
	fmt.Printf("  ✅ %d tickets (%s..%s)\n", len(created), created[0].TicketID, created[len(created)-1].TicketID)

	promos := []discounts.SaveDiscountRequest{
		{Name: "NEXUS10", Percentage: decimal.NewFromInt(10), ExpiryDate: startsAt},
		{Name: "VIPONLY", Percentage: decimal.NewFromInt(25), TicketTypeIDs: []string{"VIP"}, ExpiryDate: startsAt, EventID: &event.EventID},
	}
	for _, req := range promos {
		d, _, err := s.promos.Save(ctx, req)
		if err != nil {
			return fmt.Errorf("discount %s: %w", req.Name, err)
		}
		fmt.Printf("  ✅ Discount %s %s (%s%%)\n", d.DiscountID, d.Name, d.Percentage.String())
	}

	return nil
}
