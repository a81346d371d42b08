package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"

	"roombooking/internal/api"
	"roombooking/internal/auth"
	"roombooking/internal/realtime"
	"roombooking/internal/repository"
	"roombooking/internal/service"
)

func main() {
	godotenv.Load()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL not set")
	}
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	bookingRepo := repository.NewBookingRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	userRepo := repository.NewUserRepository(db)

	clock := service.NewSettingsClock(settingsRepo)
	clock.Refresh()

	hub := realtime.NewHub(dbURL)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	settingsSvc := service.NewSettingsService(settingsRepo)
	bookingSvc := service.NewBookingService(bookingRepo, settingsSvc, clock)
	roomSvc := service.NewRoomService(roomRepo)
	gridSvc := service.NewGridService(roomSvc, bookingRepo, settingsSvc, clock)
	userSvc := service.NewUserService(userRepo)
	notifySvc := service.NewNotifyService()
	reconciler := service.NewReconcilerService(bookingRepo, clock, notifySvc)

	c := cron.New()
	c.AddFunc("@every 1m", reconciler.Run)
	c.AddFunc("@every 10s", clock.Refresh)
	c.Start()
	defer c.Stop()

	bookingHandler := api.NewBookingHandler(bookingSvc)
	gridHandler := api.NewGridHandler(gridSvc, clock)
	catalogHandler := api.NewCatalogHandler(roomSvc, courseRepo)
	eventsHandler := api.NewEventsHandler(hub)
	authHandler := api.NewAuthHandler(userSvc)
	adminHandler := api.NewAdminHandler(roomSvc, courseRepo, settingsSvc, clock, userSvc, bookingRepo)

	r := mux.NewRouter()
	r.Use(api.RequestID)

	// Login is the only route reachable without a token.
	r.HandleFunc("/api/login", authHandler.Login).Methods("POST")

	// Signed-in endpoints
	app := r.PathPrefix("/api").Subrouter()
	app.Use(auth.AuthMiddleware)
	app.HandleFunc("/grid", gridHandler.Grid).Methods("GET")
	app.HandleFunc("/now", gridHandler.Now).Methods("GET")
	app.HandleFunc("/events", eventsHandler.Stream).Methods("GET")
	app.HandleFunc("/rooms", catalogHandler.ListRooms).Methods("GET")
	app.HandleFunc("/courses", catalogHandler.ListCourses).Methods("GET")
	app.HandleFunc("/bookings", bookingHandler.ListBookings).Methods("GET")
	app.HandleFunc("/bookings", bookingHandler.CreateBooking).Methods("POST")
	app.HandleFunc("/bookings/options", bookingHandler.BookingOptions).Methods("GET")
	app.HandleFunc("/bookings/{id}", bookingHandler.GetBooking).Methods("GET")
	app.HandleFunc("/bookings/{id}", bookingHandler.UpdateBooking).Methods("PUT")
	app.HandleFunc("/bookings/{id}", bookingHandler.DeleteBooking).Methods("DELETE")
	app.HandleFunc("/bookings/{id}/start", bookingHandler.StartBooking).Methods("POST")
	app.HandleFunc("/bookings/{id}/end", bookingHandler.EndBooking).Methods("POST")
	app.HandleFunc("/bookings/{id}/extend", bookingHandler.ExtendBooking).Methods("POST")

	// Admin endpoints (protected)
	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(auth.AuthMiddleware)
	admin.Use(auth.AdminMiddleware(userRepo))
	admin.HandleFunc("/rooms", adminHandler.ListRooms).Methods("GET")
	admin.HandleFunc("/rooms", adminHandler.CreateRoom).Methods("POST")
	admin.HandleFunc("/rooms/{id}", adminHandler.UpdateRoom).Methods("PUT")
	admin.HandleFunc("/rooms/{id}", adminHandler.DeleteRoom).Methods("DELETE")
	admin.HandleFunc("/courses", adminHandler.CreateCourse).Methods("POST")
	admin.HandleFunc("/courses/{id}", adminHandler.UpdateCourse).Methods("PUT")
	admin.HandleFunc("/courses/{id}", adminHandler.DeleteCourse).Methods("DELETE")
	admin.HandleFunc("/settings/opening-hours", adminHandler.GetOpeningHours).Methods("GET")
	admin.HandleFunc("/settings/opening-hours", adminHandler.SetOpeningHours).Methods("PUT")
	admin.HandleFunc("/settings/testing-clock", adminHandler.GetTestingClock).Methods("GET")
	admin.HandleFunc("/settings/testing-clock", adminHandler.SetTestingClock).Methods("PUT")
	admin.HandleFunc("/users", adminHandler.ListUsers).Methods("GET")
	admin.HandleFunc("/users", adminHandler.CreateUser).Methods("POST")
	admin.HandleFunc("/users/{id}", adminHandler.UpdateUserFlags).Methods("PUT")
	admin.HandleFunc("/users/{id}", adminHandler.DeleteUser).Methods("DELETE")
	admin.HandleFunc("/reports/usage", adminHandler.UsageReport).Methods("GET")

	origins := os.Getenv("CORS_ORIGINS")
	if origins == "" {
		origins = "*"
	}
	cors := handlers.CORS(
		handlers.AllowedOrigins(strings.Split(origins, ",")),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, handlers.LoggingHandler(os.Stdout, cors(r))))
}
